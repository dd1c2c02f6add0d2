package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/metwallusion/BankStatement/internal/models"
)

func TestDetectBrand(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected models.Brand
	}{
		{
			"wells fargo with layout phrase",
			"Wells Fargo Everyday Checking\nTransaction history\nDate Description",
			models.BrandWellsFargo,
		},
		{
			"wells fargo via daily balance section",
			"WELLS FARGO BANK, N.A.\nEnding daily balance\n",
			models.BrandWellsFargo,
		},
		{
			"wells fargo via site footer",
			"Questions? Visit wellsfargo.com/help",
			models.BrandWellsFargo,
		},
		{
			"amex",
			"American Express\nPrepared for JOHN DOE\nClosing Date 08/26/25",
			models.BrandAmex,
		},
		{
			"chase needs the layout phrase",
			"JPMorgan Chase Bank\nTRANSACTION DETAIL\n",
			models.BrandChase,
		},
		{
			"institution name alone is not enough for wells fargo",
			"Wells Fargo Advisors brochure",
			models.BrandGeneric,
		},
		{
			"unknown bank",
			"ACME Credit Union statement of account",
			models.BrandGeneric,
		},
		{
			"empty",
			"",
			models.BrandGeneric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectBrand(tt.text))
		})
	}
}

func TestProfileFor(t *testing.T) {
	assert.Equal(t, -1, profileFor(models.BrandGeneric).SignDefault)
	assert.Equal(t, 1, profileFor(models.BrandAmex).SignDefault)
	assert.True(t, profileFor(models.BrandWellsFargo).KeepOpenAfterAmount)
	assert.False(t, profileFor(models.BrandGeneric).KeepOpenAfterAmount)

	// Unknown brands fall back to generic heuristics.
	assert.Equal(t, -1, profileFor(models.Brand("unheard-of")).SignDefault)
}
