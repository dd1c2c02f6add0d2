package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFirstMoney(t *testing.T) {
	tests := []struct {
		input    string
		value    string
		hadMinus bool
		ok       bool
	}{
		{"Coffee Shop Purchase 4.50", "4.5", false, true},
		{"1,200.00", "1200", false, true},
		{"-$50.00", "50", true, true},
		{"$ 25.99 extra", "25.99", false, true},
		{"13.99 1,234.56", "13.99", false, true},
		{"89.10-", "89.1", true, true},
		{"no amounts here", "", false, false},
		{"date 8/12 only", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, ok := extractFirstMoney(tt.input)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.value, tok.Value.String())
			assert.Equal(t, tt.hadMinus, tok.HadMinus)
		})
	}
}

func TestIsMoneyOnly(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"1,200.00", true},
		{"-$50.00", true},
		{"  4.50  ", true},
		{"4.50 ⧫", true},
		{"4.50 and text", false},
		{"13.99 1,234.56", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, isMoneyOnly(tt.input))
		})
	}
}

func TestMoneyWithTrailingBalance(t *testing.T) {
	tok, ok := moneyWithTrailingBalance("13.99 1,234.56")
	require.True(t, ok)
	assert.Equal(t, "13.99", tok.Value.String())

	tok, ok = moneyWithTrailingBalance("-46.00 12,991.87")
	require.True(t, ok)
	assert.Equal(t, "46", tok.Value.String())
	assert.True(t, tok.HadMinus)

	_, ok = moneyWithTrailingBalance("13.99")
	assert.False(t, ok, "single amount is not the balance form")

	_, ok = moneyWithTrailingBalance("desc 13.99 1,234.56")
	assert.False(t, ok, "balance form must span the whole line")
}

func TestParseMoneyStripsDecoration(t *testing.T) {
	d, err := parseMoney("-$ 1,234.56")
	require.NoError(t, err)
	assert.Equal(t, "1234.56", d.String())

	_, err = parseMoney("$-")
	require.Error(t, err)
	var amountErr *AmountError
	assert.ErrorAs(t, err, &amountErr)
}

func TestSplitDateStart(t *testing.T) {
	tests := []struct {
		input string
		raw   string
		rest  string
		ok    bool
	}{
		{"03/05/24 Coffee Shop Purchase 4.50", "03/05/24", "Coffee Shop Purchase 4.50", true},
		{"8/1 Purchase Costco", "8/1", "Purchase Costco", true},
		{"8/1* eDeposit Branch", "8/1", "eDeposit Branch", true},
		{"12/31/2024 Year End", "12/31/2024", "Year End", true},
		{"Costco 8/1 Purchase", "", "", false},
		{"8/1", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			raw, rest, ok := splitDateStart(tt.input)
			require.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.raw, raw)
			assert.Equal(t, tt.rest, rest)
		})
	}
}

func TestMatchAbbrevDate(t *testing.T) {
	mon, day, width, ok := matchAbbrevDate("Aug02 Aug03 NETFLIX")
	require.True(t, ok)
	assert.Equal(t, "Aug", mon)
	assert.Equal(t, "02", day)
	assert.Equal(t, 5, width)

	_, _, _, ok = matchAbbrevDate("August payment")
	assert.False(t, ok, "full month names are not the tabular form")
}
