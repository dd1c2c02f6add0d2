package parser

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// YearContext carries the rolling year state for one page scan. Statements
// frequently print transaction dates without a year, so the scanner seeds a
// hint from the filename and refines it whenever an explicit year is parsed.
type YearContext struct {
	// Hint comes from the filename or a previously detected year. Zero
	// means no hint.
	Hint int
	// Current is the rolling year, updated as concrete years are observed.
	Current int
}

// resetPage restores the rolling year to the document hint. Called at the
// start of each page so one page's drift cannot leak into the next.
func (yc *YearContext) resetPage() {
	yc.Current = yc.Hint
}

// effectiveYear picks the year to append to a partial date.
func (yc *YearContext) effectiveYear() int {
	if yc.Current != 0 {
		return yc.Current
	}
	if yc.Hint != 0 {
		return yc.Hint
	}
	return time.Now().Year()
}

var monthsByName = map[string]time.Month{
	"Jan": time.January, "Feb": time.February, "Mar": time.March,
	"Apr": time.April, "May": time.May, "Jun": time.June,
	"Jul": time.July, "Aug": time.August, "Sep": time.September,
	"Oct": time.October, "Nov": time.November, "Dec": time.December,
}

// normalizeDate resolves a slash-form date token to an absolute date. A
// token with an explicit 2- or 4-digit year parses directly and that year
// becomes the new rolling year; a bare MM/DD gets the effective year
// appended. Calendar-invalid combinations yield a DateError.
func normalizeDate(raw string, yc *YearContext) (time.Time, error) {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "*")

	if strings.Count(raw, "/") == 2 {
		parts := strings.Split(raw, "/")
		layout := "1/2/2006"
		if len(parts[2]) == 2 {
			layout = "1/2/06"
		}
		t, err := time.Parse(layout, raw)
		if err != nil {
			return time.Time{}, &DateError{Raw: raw, Err: err}
		}
		yc.Current = t.Year()
		return t, nil
	}

	year := yc.effectiveYear()
	t, err := time.Parse("1/2/2006", fmt.Sprintf("%s/%d", raw, year))
	if err != nil {
		return time.Time{}, &DateError{Raw: raw, Err: err}
	}
	return t, nil
}

// normalizeAbbrevDate resolves an abbreviated month-day token ("Aug02").
// The form never carries its own year, so it always uses the rolling year.
func normalizeAbbrevDate(mon, day string, yc *YearContext) (time.Time, error) {
	month, ok := monthsByName[mon]
	if !ok {
		return time.Time{}, &DateError{Raw: mon + day, Err: fmt.Errorf("unknown month %q", mon)}
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return time.Time{}, &DateError{Raw: mon + day, Err: err}
	}
	year := yc.effectiveYear()
	t := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (Apr 31 -> May 1), so reject any
	// token that did not round-trip.
	if t.Month() != month || t.Day() != d {
		return time.Time{}, &DateError{Raw: mon + day, Err: fmt.Errorf("day %d out of range for %s", d, mon)}
	}
	return t, nil
}

var (
	filenameYearPattern   = regexp.MustCompile(`(20\d{2})`)
	filenameMMDDYYPattern = regexp.MustCompile(`(\d{6})`)
)

// YearFromFilename pulls a statement year hint out of a file name. Only
// the base name is scanned: directory components (temp dirs especially)
// carry digit runs that would otherwise win the match. A four-digit year
// wins; otherwise a six-digit MMDDYY token maps its last two digits to
// 2000+yy. Returns 0 when neither shape is present.
func YearFromFilename(name string) int {
	name = filepath.Base(name)
	if m := filenameYearPattern.FindStringSubmatch(name); m != nil {
		y, _ := strconv.Atoi(m[1])
		return y
	}
	if m := filenameMMDDYYPattern.FindStringSubmatch(name); m != nil {
		yy, _ := strconv.Atoi(m[1][4:])
		return 2000 + yy
	}
	return 0
}
