package parser

import (
	"strings"

	"github.com/metwallusion/BankStatement/internal/models"
)

// brandProfile bundles the per-brand heuristics so call sites never branch
// on the brand directly. Keyword lists are empirical, tuned against
// observed statements; new brands get their own entries.
type brandProfile struct {
	// SignDefault applies when neither an explicit sign nor a hint keyword
	// decides. Statements omit the sign for their most common transaction
	// type, so the default differs per brand.
	SignDefault int

	// CreditOverrides: an explicitly negative amount whose memo contains
	// one of these is re-read as a credit. Charge-card statements print
	// payments and refunds with a minus even though they raise the balance
	// available.
	CreditOverrides []string

	// NoiseKeywords truncate memos and mark header/footer lines.
	NoiseKeywords []string

	// KeepOpenAfterAmount keeps a transaction open after its amount
	// resolves so legitimate auxiliary lines (card numbers, references,
	// city/state) still land in the memo.
	KeepOpenAfterAmount bool

	// CloseMarkers force-close an open transaction at a section boundary.
	CloseMarkers []string
}

var baseNoiseKeywords = []string{
	"summary", "detail", "account", "page",
}

var profiles = map[models.Brand]brandProfile{
	models.BrandGeneric: {
		SignDefault:   -1,
		NoiseKeywords: baseNoiseKeywords,
	},
	models.BrandWellsFargo: {
		SignDefault: -1,
		NoiseKeywords: append([]string{
			"transaction history", "totals", "ending daily balance",
			"monthly service fee",
		}, baseNoiseKeywords...),
		KeepOpenAfterAmount: true,
		CloseMarkers:        []string{"totals", "ending daily balance"},
	},
	models.BrandAmex: {
		SignDefault:     1,
		CreditOverrides: []string{"payment", "credit", "refund"},
		NoiseKeywords:   append([]string{"total", "interest charged"}, baseNoiseKeywords...),
	},
	models.BrandChase: {
		SignDefault:   -1,
		NoiseKeywords: append([]string{"transaction detail", "total"}, baseNoiseKeywords...),
	},
}

// profileFor returns the heuristics for a brand, falling back to generic.
func profileFor(b models.Brand) brandProfile {
	if p, ok := profiles[b]; ok {
		return p
	}
	return profiles[models.BrandGeneric]
}

// brandRule is one detection rule: all phrases must appear.
type brandRule struct {
	brand   models.Brand
	phrases []string
}

// Ordered: first match wins. Institution name plus a layout phrase where
// one name spans several statement products.
var brandRules = []brandRule{
	{models.BrandWellsFargo, []string{"wells fargo", "transaction history"}},
	{models.BrandWellsFargo, []string{"wells fargo", "ending daily balance"}},
	{models.BrandWellsFargo, []string{"wellsfargo.com"}},
	{models.BrandAmex, []string{"american express"}},
	{models.BrandAmex, []string{"americanexpress.com"}},
	{models.BrandChase, []string{"chase", "transaction detail"}},
	{models.BrandChase, []string{"chase.com"}},
}

// DetectBrand classifies the statement layout from the text of the first
// pages. Detection happens once per document; everything downstream is
// parameterized by the result.
func DetectBrand(text string) models.Brand {
	lower := strings.ToLower(text)
	for _, rule := range brandRules {
		matched := true
		for _, phrase := range rule.phrases {
			if !strings.Contains(lower, phrase) {
				matched = false
				break
			}
		}
		if matched {
			return rule.brand
		}
	}
	return models.BrandGeneric
}
