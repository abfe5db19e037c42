package money

import (
	"math/big"
	"sort"
	"strings"
)

// Totals accumulates amounts per currency in minor units.
type Totals struct {
	decimalsFor func(code string) int
	sums        map[string]*big.Int
}

// NewTotals creates an accumulator. decimalsFor supplies the precision for
// each currency code.
func NewTotals(decimalsFor func(code string) int) *Totals {
	return &Totals{
		decimalsFor: decimalsFor,
		sums:        make(map[string]*big.Int),
	}
}

// Add adds an amount in the given currency. Codes are case-insensitive.
func (t *Totals) Add(currency string, amount Amount) error {
	code := strings.ToUpper(strings.TrimSpace(currency))
	minor, err := amount.MinorUnits(t.decimalsFor(code))
	if err != nil {
		return err
	}

	sum, ok := t.sums[code]
	if !ok {
		sum = new(big.Int)
		t.sums[code] = sum
	}
	sum.Add(sum, minor)
	return nil
}

// CurrencyTotal is the rendered total for one currency
type CurrencyTotal struct {
	Currency string `json:"currency"`
	Total    string `json:"total"`
}

// Result returns the totals ordered by currency code.
func (t *Totals) Result() []CurrencyTotal {
	codes := make([]string, 0, len(t.sums))
	for code := range t.sums {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := make([]CurrencyTotal, 0, len(codes))
	for _, code := range codes {
		out = append(out, CurrencyTotal{
			Currency: code,
			Total:    FromMinorUnits(t.sums[code], t.decimalsFor(code)),
		})
	}
	return out
}
