package money

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ErrInvalidAmount is returned when arithmetic is attempted on an amount
// whose wire text is not a number.
var ErrInvalidAmount = errors.New("amount is not a number")

// Amount is an entry amount. The remote API sends it either as a JSON number
// or as a string. Numeric strings decode to their value; any other text is
// kept verbatim and written back unchanged.
type Amount struct {
	value float64
	raw   string
}

// NewAmount returns a numeric amount
func NewAmount(f float64) Amount {
	return Amount{value: f}
}

// ParseAmount parses user input such as "12.5" into an Amount.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, fmt.Errorf("amount is required")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return Amount{}, fmt.Errorf("invalid amount %q", s)
	}
	return NewAmount(f), nil
}

// Valid reports whether the amount is a number
func (a Amount) Valid() bool {
	return a.raw == ""
}

// Float64 returns the numeric value, 0 when the amount is not a number
func (a Amount) Float64() float64 {
	return a.value
}

// String renders the shortest representation that parses back to a, or the
// wire text of a non-numeric amount.
func (a Amount) String() string {
	if !a.Valid() {
		return a.raw
	}
	return strconv.FormatFloat(a.value, 'f', -1, 64)
}

// MinorUnits converts the amount to minor units at the given precision.
func (a Amount) MinorUnits(decimals int) (*big.Int, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, a.raw)
	}
	return ToMinorUnits(a.String(), decimals)
}

// UnmarshalJSON implements json.Unmarshaler
// Supports: "12.5", 12.5, "", null; other strings are kept as wire text.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = Amount{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			*a = Amount{}
			return nil
		}
		parsed, err := ParseAmount(s)
		if err != nil {
			*a = Amount{raw: s}
			return nil
		}
		*a = parsed
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		f, err := n.Float64()
		if err != nil {
			*a = Amount{raw: n.String()}
			return nil
		}
		*a = NewAmount(f)
		return nil
	}

	return fmt.Errorf("cannot unmarshal %s into Amount", string(data))
}

// MarshalJSON implements json.Marshaler. Numbers are written as numbers,
// non-numeric wire text as the original string.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid() {
		return json.Marshal(a.raw)
	}
	if math.IsNaN(a.value) || math.IsInf(a.value, 0) {
		return nil, fmt.Errorf("amount is not a finite number")
	}
	return []byte(a.String()), nil
}
