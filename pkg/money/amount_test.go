package money

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	a, err := ParseAmount("12.5")
	require.NoError(t, err)
	assert.Equal(t, 12.5, a.Float64())

	a, err = ParseAmount(" 7 ")
	require.NoError(t, err)
	assert.Equal(t, NewAmount(7), a)
}

func TestParseAmount_Rejects(t *testing.T) {
	for _, in := range []string{"", "abc", "NaN", "Inf", "12,5"} {
		_, err := ParseAmount(in)
		assert.Error(t, err, in)
	}
}

func TestAmount_UnmarshalJSON_Number(t *testing.T) {
	var a Amount
	require.NoError(t, json.Unmarshal([]byte(`12.5`), &a))
	assert.Equal(t, NewAmount(12.5), a)
}

func TestAmount_UnmarshalJSON_String(t *testing.T) {
	var a Amount
	require.NoError(t, json.Unmarshal([]byte(`"3.20"`), &a))
	assert.Equal(t, NewAmount(3.2), a)
	assert.True(t, a.Valid())
}

func TestAmount_UnmarshalJSON_EmptyAndNull(t *testing.T) {
	a := NewAmount(9)
	require.NoError(t, json.Unmarshal([]byte(`""`), &a))
	assert.Zero(t, a)

	a = NewAmount(9)
	require.NoError(t, json.Unmarshal([]byte(`null`), &a))
	assert.Zero(t, a)
}

func TestAmount_UnmarshalJSON_KeepsNonNumericText(t *testing.T) {
	var a Amount
	require.NoError(t, json.Unmarshal([]byte(`"12,50"`), &a))
	assert.False(t, a.Valid())
	assert.Equal(t, "12,50", a.String())
	assert.Zero(t, a.Float64())

	_, err := a.MinorUnits(2)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Equal(t, `"12,50"`, string(data), "wire text is written back unchanged")
}

func TestAmount_UnmarshalJSON_RejectsNonScalar(t *testing.T) {
	var a Amount
	assert.Error(t, json.Unmarshal([]byte(`true`), &a))
	assert.Error(t, json.Unmarshal([]byte(`{"value":1}`), &a))
}

func TestAmount_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(NewAmount(12.5))
	require.NoError(t, err)
	assert.Equal(t, `12.5`, string(data))

	data, err = json.Marshal(struct {
		Amount Amount `json:"amount"`
	}{Amount: NewAmount(3)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":3}`, string(data))
}

func TestAmount_MinorUnits(t *testing.T) {
	minor, err := NewAmount(19.99).MinorUnits(2)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1999), minor)
}

func TestTotals(t *testing.T) {
	decimals := func(code string) int {
		if code == "JPY" {
			return 0
		}
		return 2
	}

	totals := NewTotals(decimals)
	require.NoError(t, totals.Add("eur", NewAmount(12.5)))
	require.NoError(t, totals.Add("EUR", NewAmount(0.1)))
	require.NoError(t, totals.Add("JPY", NewAmount(1500)))
	require.NoError(t, totals.Add("usd", NewAmount(2)))

	assert.Equal(t, []CurrencyTotal{
		{Currency: "EUR", Total: "12.60"},
		{Currency: "JPY", Total: "1500"},
		{Currency: "USD", Total: "2.00"},
	}, totals.Result())
}

func TestTotals_RejectsNonNumericAmount(t *testing.T) {
	totals := NewTotals(func(string) int { return 2 })
	require.NoError(t, totals.Add("EUR", NewAmount(1)))

	var bad Amount
	require.NoError(t, json.Unmarshal([]byte(`"n/a"`), &bad))
	assert.ErrorIs(t, totals.Add("EUR", bad), ErrInvalidAmount)

	assert.Equal(t, []CurrencyTotal{{Currency: "EUR", Total: "1.00"}}, totals.Result(), "a rejected amount leaves the sum alone")
}
