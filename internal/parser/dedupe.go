package parser

import (
	"strings"

	"github.com/metwallusion/BankStatement/internal/models"
)

// deduplicate re-cleans every memo for uniformity and drops exact
// duplicates keyed on date, amount rounded to two decimals and memo,
// preserving first-seen order. Overlapping heuristics can emit the same
// logical transaction twice; this is the safety net, not the primary
// correctness mechanism. Running it on its own output is a no-op.
func deduplicate(txns []models.Transaction, profile brandProfile) []models.Transaction {
	seen := make(map[string]struct{}, len(txns))
	out := make([]models.Transaction, 0, len(txns))

	for _, tx := range txns {
		tx.Memo = cleanMemo(tx.Memo, profile)
		if tx.Memo == "" {
			continue
		}
		key := strings.Join([]string{
			tx.Date.Format("2006-01-02"),
			tx.Amount.Round(2).String(),
			tx.Memo,
		}, "|")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tx)
	}
	return out
}
