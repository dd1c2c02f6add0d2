package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/metwallusion/BankStatement/internal/models"
)

func TestResolveSignPrecedence(t *testing.T) {
	generic := profileFor(models.BrandGeneric)
	amex := profileFor(models.BrandAmex)

	tests := []struct {
		name     string
		memo     string
		hadMinus bool
		profile  brandProfile
		expected int
	}{
		{"explicit minus wins over positive hint", "Direct Deposit Payroll", true, generic, -1},
		{"negative hint", "Coffee Shop Purchase", false, generic, -1},
		{"positive hint", "ACH Deposit From Employer", false, generic, 1},
		{"negative hint beats positive hint", "Refund Reversal Fee", false, generic, -1},
		{"generic default is negative", "Zelle To John", false, generic, -1},
		{"amex default is positive", "NETFLIX.COM", false, amex, 1},
		{"amex credit override flips explicit minus", "Online Payment Thank You", true, amex, 1},
		{"amex explicit minus without credit keyword stays negative", "Balance Transfer", true, amex, -1},
		{"wellsfargo default is negative", "Zelle To John", false, profileFor(models.BrandWellsFargo), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolveSign(tt.memo, tt.hadMinus, tt.profile))
		})
	}
}

func TestResolveSignTotality(t *testing.T) {
	// Every combination resolves to exactly +1 or -1.
	for _, brand := range []models.Brand{models.BrandGeneric, models.BrandWellsFargo, models.BrandAmex, models.BrandChase} {
		profile := profileFor(brand)
		for _, memo := range []string{"", "unrecognizable memo text", "purchase deposit"} {
			for _, hadMinus := range []bool{true, false} {
				sign := resolveSign(memo, hadMinus, profile)
				assert.Contains(t, []int{1, -1}, sign)
			}
		}
	}
}
