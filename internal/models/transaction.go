// Package models provides the data structures shared by the parser,
// extractor, writer and API layers.
package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one normalized statement transaction. Amount carries its
// sign (negative for money out) with two-decimal currency semantics.
type Transaction struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Memo   string          `json:"memo"`
}

// DateString renders the date as M/D/YYYY without zero padding, which is
// the format the CSV output uses.
func (t Transaction) DateString() string {
	return fmt.Sprintf("%d/%d/%d", int(t.Date.Month()), t.Date.Day(), t.Date.Year())
}

// Brand identifies the statement layout family. It drives sign defaults,
// noise vocabulary and continuation handling.
type Brand string

const (
	BrandGeneric    Brand = "generic"
	BrandWellsFargo Brand = "wellsfargo"
	BrandAmex       Brand = "amex"
	BrandChase      Brand = "chase"
)

// KnownBrand reports whether b names a recognized layout family.
func KnownBrand(b Brand) bool {
	switch b {
	case BrandGeneric, BrandWellsFargo, BrandAmex, BrandChase:
		return true
	}
	return false
}

// ParseMode governs how lines following a transaction start are interpreted.
type ParseMode int

const (
	// ModeNone means no transaction is in progress.
	ModeNone ParseMode = iota
	// ModeSingleLine means the current transaction matched date, description
	// and amount on one line; further lines may extend the memo.
	ModeSingleLine
	// ModeMultiLine means a date line was seen and the scanner is still
	// looking for the terminal amount.
	ModeMultiLine
)

func (m ParseMode) String() string {
	switch m {
	case ModeSingleLine:
		return "single-line"
	case ModeMultiLine:
		return "multi-line"
	default:
		return "none"
	}
}

// DebugLine captures what the scanner did with each input line.
type DebugLine struct {
	LineNum int    `json:"lineNum"`
	Text    string `json:"text"`
	Result  string `json:"result"` // "committed", "opened", "continuation", "noise", "skipped"
}

// Statement is the result of parsing one document.
type Statement struct {
	Brand        Brand         `json:"brand"`
	SourceFile   string        `json:"sourceFile,omitempty"`
	Transactions []Transaction `json:"transactions"`
	DebugLines   []DebugLine   `json:"debugLines,omitempty"`
	// UsedFallback is set when the raw byte-stream recovery path produced
	// the transactions instead of structured page extraction.
	UsedFallback bool `json:"usedFallback,omitempty"`
}
