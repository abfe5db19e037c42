package money

import (
	"fmt"
	"math/big"
	"strings"
)

// ToMinorUnits converts a decimal amount string to minor units (cents for a
// 2-decimal currency). "12.5" with 2 decimals → 1250. Extra fraction digits
// are truncated, not rounded.
func ToMinorUnits(amountStr string, decimals int) (*big.Int, error) {
	amountStr = strings.TrimSpace(amountStr)
	if amountStr == "" {
		return nil, fmt.Errorf("amount is required")
	}

	negative := strings.HasPrefix(amountStr, "-")
	amountStr = strings.TrimPrefix(amountStr, "-")

	parts := strings.Split(amountStr, ".")
	if len(parts) > 2 {
		return nil, fmt.Errorf("invalid amount format")
	}

	intPart := parts[0]
	if intPart == "" {
		intPart = "0"
	}

	decPart := ""
	if len(parts) > 1 {
		decPart = parts[1]
	}

	if len(decPart) < decimals {
		decPart = decPart + strings.Repeat("0", decimals-len(decPart))
	} else if len(decPart) > decimals {
		decPart = decPart[:decimals]
	}

	combined := strings.TrimLeft(intPart+decPart, "0")
	if combined == "" {
		combined = "0"
	}
	if strings.ContainsAny(combined, "+-") {
		return nil, fmt.Errorf("invalid amount format")
	}

	result := new(big.Int)
	if _, ok := result.SetString(combined, 10); !ok {
		return nil, fmt.Errorf("invalid amount format")
	}
	if negative {
		result.Neg(result)
	}

	return result, nil
}

// FromMinorUnits renders minor units with exactly decimals fraction digits.
// 1250 with 2 decimals → "12.50".
func FromMinorUnits(amount *big.Int, decimals int) string {
	if amount == nil {
		amount = new(big.Int)
	}

	sign := ""
	str := amount.String()
	if amount.Sign() < 0 {
		sign = "-"
		str = str[1:]
	}

	if decimals == 0 {
		return sign + str
	}

	for len(str) <= decimals {
		str = "0" + str
	}

	pos := len(str) - decimals
	return sign + str[:pos] + "." + str[pos:]
}
