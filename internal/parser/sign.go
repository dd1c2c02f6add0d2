package parser

import "strings"

// Keyword lists for inferring the sign of an unsigned amount. Small and
// intentionally easy to extend.
var (
	positiveHints = []string{"deposit", "payment", "credit", "refund"}
	negativeHints = []string{"purchase", "withdrawal", "fee", "debit"}
)

// resolveSign decides the arithmetic sign of an amount from its memo, the
// presence of an explicit minus and the brand profile. The precedence is
// load-bearing: brand credit-override, then the explicit sign, then
// negative hints, then positive hints, then the brand default. Reordering
// changes outcomes on ambiguous memos.
func resolveSign(memo string, hadMinus bool, profile brandProfile) int {
	memoLower := strings.ToLower(memo)

	if hadMinus {
		for _, kw := range profile.CreditOverrides {
			if strings.Contains(memoLower, kw) {
				return 1
			}
		}
		return -1
	}

	for _, kw := range negativeHints {
		if strings.Contains(memoLower, kw) {
			return -1
		}
	}
	for _, kw := range positiveHints {
		if strings.Contains(memoLower, kw) {
			return 1
		}
	}

	return profile.SignDefault
}
