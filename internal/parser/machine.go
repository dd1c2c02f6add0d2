package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/metwallusion/BankStatement/internal/models"
)

// txBuilder is the in-progress transaction accumulator. It exists between
// "date line seen" and "amount resolved or page ends" and is discarded if
// the page ends without an amount.
type txBuilder struct {
	date      time.Time
	memoParts []string
	amount    decimal.Decimal
	hasAmount bool
}

func newBuilder(date time.Time) *txBuilder {
	return &txBuilder{date: date}
}

func (b *txBuilder) appendMemo(s string) {
	s = strings.TrimSpace(s)
	if s != "" {
		b.memoParts = append(b.memoParts, s)
	}
}

func (b *txBuilder) memo() string {
	return strings.Join(b.memoParts, " ")
}

// pageScanner consumes one page's lines in order and emits transactions.
// All of its state is scoped to a single page scan except the YearContext,
// which the engine threads through the whole document.
type pageScanner struct {
	profile brandProfile
	years   *YearContext
	builder *txBuilder
	mode    models.ParseMode
	out     []models.Transaction
	debug   []models.DebugLine
}

func newPageScanner(profile brandProfile, years *YearContext) *pageScanner {
	return &pageScanner{profile: profile, years: years}
}

// Abbreviated tabular form: activity date, post date, optional numeric
// reference, description, trailing amount — all on one line.
var abbrevTabularPattern = regexp.MustCompile(
	`^(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s?(\d{1,2})\*?\s+` +
		`(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s?\d{1,2}\*?\s+` +
		`(?:(\d{3,})\s+)?(.+?)\s+(-?\$?\s?\d[\d,]*\.\d{2}-?)\s*$`,
)

// A line with no letters at all: stray column data, rules, page decoration.
var symbolOnlyPattern = regexp.MustCompile(`^[\d\W_]+$`)

// Column header rows like "Date Description Deposits Withdrawals Balance".
var columnHeaderPattern = regexp.MustCompile(`(?i)^date\b.*\b(description|amount|balance)\b`)

// scan processes the page's lines strictly in order. Any builder holding a
// resolved amount at end of page is committed; one without is discarded so
// incomplete transactions never surface.
func (s *pageScanner) scan(lines []string) {
	s.years.resetPage()
	s.builder = nil
	s.mode = models.ModeNone

	for i, line := range lines {
		s.scanLine(i+1, line)
	}
	s.commit()
	s.mode = models.ModeNone
}

func (s *pageScanner) scanLine(num int, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	// Section boundary markers close whatever is open.
	if s.isCloseMarker(line) {
		s.commit()
		s.mode = models.ModeNone
		s.trace(num, line, "boundary")
		return
	}

	// Self-contained abbreviated tabular record, no continuation.
	if tx, ok := s.tryAbbrevTabular(line); ok {
		s.commit()
		s.out = append(s.out, tx)
		s.mode = models.ModeNone
		s.trace(num, line, "committed")
		return
	}

	// A line starting with a date opens a new transaction. A date-shaped
	// token that fails calendar validation falls through and is handled
	// like any other line.
	if raw, rest, ok := splitDateStart(line); ok {
		date, err := normalizeDate(raw, s.years)
		if err == nil {
			s.commit()
			s.openBuilder(date, rest)
			s.trace(num, line, "opened")
			return
		}
	}

	if s.builder == nil {
		s.trace(num, line, "skipped")
		return
	}

	if s.mode == models.ModeMultiLine && !s.builder.hasAmount {
		// Amount first, noise second: a bare amount line would otherwise
		// look like symbol-only noise.
		if s.tryResolveAmount(line) {
			s.trace(num, line, "committed")
			return
		}
		if s.isNoiseLine(line) {
			s.trace(num, line, "noise")
			return
		}
		s.builder.appendMemo(line)
		s.trace(num, line, "continuation")
		return
	}

	// Open transaction that already has its amount: absorb auxiliary memo
	// lines, discard noise, close at the next amount boundary.
	if s.isNoiseLine(line) {
		s.trace(num, line, "noise")
		return
	}
	if _, balanceForm := moneyWithTrailingBalance(line); balanceForm || isMoneyOnly(line) {
		s.commit()
		s.mode = models.ModeNone
		s.trace(num, line, "boundary")
		return
	}
	s.builder.appendMemo(line)
	s.trace(num, line, "continuation")
}

// openBuilder starts a transaction from a date line. When the remainder
// already carries an amount the record resolves immediately but stays open
// for continuation memo lines (categories, references).
func (s *pageScanner) openBuilder(date time.Time, rest string) {
	s.builder = newBuilder(date)

	if tok, ok := extractFirstMoney(rest); ok {
		memo := strings.TrimSpace(rest[:tok.Start])
		s.builder.appendMemo(memo)
		s.setAmount(tok)
		s.mode = models.ModeSingleLine
		return
	}

	s.builder.appendMemo(rest)
	s.mode = models.ModeMultiLine
}

// tryResolveAmount tests a continuation line for a terminal amount: a lone
// amount, an amount next to a running balance column, or an amount embedded
// in trailing text. The first to resolve closes the record unless the brand
// keeps transactions open for auxiliary data.
func (s *pageScanner) tryResolveAmount(line string) bool {
	tok, ok := moneyWithTrailingBalance(line)
	if !ok {
		tok, ok = extractFirstMoney(line)
	}
	if !ok {
		return false
	}

	// Merge any non-amount remainder into the memo.
	remainder := strings.TrimSpace(line[:tok.Start] + " " + line[tok.End:])
	remainder = strings.TrimSpace(stripMoney(remainder))
	if remainder != "" && !s.isNoiseLine(remainder) {
		s.builder.appendMemo(remainder)
	}

	s.setAmount(tok)

	if s.profile.KeepOpenAfterAmount {
		s.mode = models.ModeSingleLine
		return true
	}
	s.commit()
	s.mode = models.ModeNone
	return true
}

// setAmount fixes the builder's amount, resolving the sign from the memo
// accumulated so far.
func (s *pageScanner) setAmount(tok moneyToken) {
	sign := resolveSign(s.builder.memo(), tok.HadMinus, s.profile)
	amount := tok.Value.Round(2)
	if sign < 0 {
		amount = amount.Neg()
	}
	s.builder.amount = amount
	s.builder.hasAmount = true
}

// tryAbbrevTabular parses the two-date tabular form used by card activity
// tables ("Aug02 Aug03 7241 MERCHANT NAME 45.00").
func (s *pageScanner) tryAbbrevTabular(line string) (models.Transaction, bool) {
	m := abbrevTabularPattern.FindStringSubmatch(line)
	if m == nil {
		return models.Transaction{}, false
	}
	// The activity date (first of the two) is the transaction date.
	date, err := normalizeAbbrevDate(m[1], m[2], s.years)
	if err != nil {
		return models.Transaction{}, false
	}
	memo := strings.TrimSpace(m[4])
	if ref := m[3]; ref != "" {
		memo = strings.TrimSpace(ref + " " + memo)
	}

	value, err := parseMoney(m[5])
	if err != nil {
		return models.Transaction{}, false
	}
	sign := resolveSign(memo, strings.Contains(m[5], "-"), s.profile)
	amount := value.Round(2)
	if sign < 0 {
		amount = amount.Neg()
	}

	memo = cleanMemo(memo, s.profile)
	if memo == "" {
		return models.Transaction{}, false
	}
	return models.Transaction{Date: date, Amount: amount, Memo: memo}, true
}

// commit appends the current builder to the output when its amount is
// resolved. Builders without an amount are dropped silently.
func (s *pageScanner) commit() {
	b := s.builder
	s.builder = nil
	if b == nil || !b.hasAmount {
		return
	}
	memo := cleanMemo(b.memo(), s.profile)
	if memo == "" {
		return
	}
	s.out = append(s.out, models.Transaction{
		Date:   b.date,
		Amount: b.amount,
		Memo:   memo,
	})
}

// isNoiseLine recognizes header, footer and boilerplate lines that must
// never reach a memo.
func (s *pageScanner) isNoiseLine(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range s.profile.NoiseKeywords {
		if strings.HasPrefix(lower, kw) {
			return true
		}
	}
	if columnHeaderPattern.MatchString(line) {
		return true
	}
	// Lines with no letters at all, unless money-shaped (those are
	// amount candidates handled elsewhere).
	if !isMoneyOnly(line) && symbolOnlyPattern.MatchString(line) {
		return true
	}
	return false
}

func (s *pageScanner) isCloseMarker(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range s.profile.CloseMarkers {
		if strings.HasPrefix(lower, marker) {
			return true
		}
	}
	return false
}

// cleanMemo strips everything from the first noise keyword onward, removes
// leftover money tokens and collapses whitespace.
func cleanMemo(memo string, profile brandProfile) string {
	lower := strings.ToLower(memo)
	cut := len(memo)
	for _, kw := range profile.NoiseKeywords {
		if idx := strings.Index(lower, kw); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	memo = memo[:cut]
	memo = stripMoney(memo)
	return strings.Join(strings.Fields(memo), " ")
}

// stripMoney removes any money-shaped tokens from text.
func stripMoney(text string) string {
	return moneyInlinePattern.ReplaceAllString(text, "")
}

func (s *pageScanner) trace(num int, line, result string) {
	if len(line) > 120 {
		line = line[:120] + "..."
	}
	s.debug = append(s.debug, models.DebugLine{LineNum: num, Text: line, Result: result})
}
