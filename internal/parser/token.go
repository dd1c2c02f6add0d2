package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Low-level token recognizers for money and dates. Everything here is a
// pure function over the input string.

var (
	// A monetary token: optional minus, optional currency symbol, optional
	// space, digit groups with optional thousands separators, exactly two
	// decimals, optional trailing minus.
	moneyInlinePattern = regexp.MustCompile(`(-?\$?\s?\d[\d,]*\.\d{2}-?)`)

	// A line that is nothing but one amount, optionally decorated with an
	// in-statement marker glyph.
	moneyOnlyPattern = regexp.MustCompile(`^\s*-?\$?\s?\d[\d,]*\.\d{2}-?(?:\s*[⧫♦◆*])?\s*$`)

	// An amount immediately followed by a second money-shaped column; the
	// second number is a running balance and is not part of the transaction.
	moneyBalancePattern = regexp.MustCompile(`^\s*(-?\$?\s?\d[\d,]*\.\d{2}-?)\s+[\d,]*\.\d{2}\s*$`)

	// Characters stripped from a money token before numeric conversion.
	moneyStripper = regexp.MustCompile(`[^\d.\-]`)

	// A line starting with a slash date, optionally marked with an asterisk
	// that is consumed but ignored, followed by free-form remainder.
	dateStartPattern = regexp.MustCompile(`^(\d{1,2}/\d{1,2}(?:/\d{2,4})?)\*?\s+(.*)$`)

	// A bare slash date token anywhere in text.
	dateTokenPattern = regexp.MustCompile(`\d{1,2}/\d{1,2}(?:/\d{2,4})?\*?`)

	// Abbreviated month-day token, e.g. "Aug02" or "Aug 2".
	abbrevDatePattern = regexp.MustCompile(`^(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s?(\d{1,2})\*?`)
)

// moneyToken is one recognized monetary amount. Value is the absolute
// magnitude; sign resolution happens later with brand context.
type moneyToken struct {
	Value    decimal.Decimal
	Raw      string
	Start    int
	End      int
	HadMinus bool
}

// parseMoney strips decoration from a money-shaped token and converts it.
// Returns an AmountError when nothing numeric survives the strip.
func parseMoney(raw string) (decimal.Decimal, error) {
	cleaned := moneyStripper.ReplaceAllString(raw, "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	if cleaned == "" || cleaned == "." {
		return decimal.Zero, &AmountError{Raw: raw}
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, &AmountError{Raw: raw}
	}
	return d, nil
}

// extractFirstMoney finds the first monetary token in text.
func extractFirstMoney(text string) (moneyToken, bool) {
	loc := moneyInlinePattern.FindStringIndex(text)
	if loc == nil {
		return moneyToken{}, false
	}
	raw := text[loc[0]:loc[1]]
	value, err := parseMoney(raw)
	if err != nil {
		return moneyToken{}, false
	}
	return moneyToken{
		Value:    value,
		Raw:      raw,
		Start:    loc[0],
		End:      loc[1],
		HadMinus: strings.Contains(raw, "-"),
	}, true
}

// isMoneyOnly reports whether the line consists of a single amount.
func isMoneyOnly(line string) bool {
	return moneyOnlyPattern.MatchString(line)
}

// moneyWithTrailingBalance matches an amount followed by a balance column
// and returns only the first amount.
func moneyWithTrailingBalance(line string) (moneyToken, bool) {
	m := moneyBalancePattern.FindStringSubmatchIndex(line)
	if m == nil {
		return moneyToken{}, false
	}
	raw := line[m[2]:m[3]]
	value, err := parseMoney(raw)
	if err != nil {
		return moneyToken{}, false
	}
	return moneyToken{
		Value:    value,
		Raw:      raw,
		Start:    m[2],
		End:      m[3],
		HadMinus: strings.Contains(raw, "-"),
	}, true
}

// splitDateStart matches a line beginning with a slash date and returns the
// raw date token and the remainder of the line.
func splitDateStart(line string) (raw, rest string, ok bool) {
	m := dateStartPattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// matchAbbrevDate matches an abbreviated month-day token at the start of
// text and returns the month name, day digits and the matched length.
func matchAbbrevDate(text string) (mon, day string, width int, ok bool) {
	m := abbrevDatePattern.FindStringSubmatch(text)
	if m == nil {
		return "", "", 0, false
	}
	return m[1], m[2], len(m[0]), true
}
