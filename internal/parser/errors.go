package parser

import "fmt"

// DateError reports a date-shaped token that failed calendar validation.
// Callers recover by treating the offending line as non-transactional.
type DateError struct {
	Raw string
	Err error
}

func (e *DateError) Error() string {
	return fmt.Sprintf("invalid date token %q: %v", e.Raw, e.Err)
}

func (e *DateError) Unwrap() error {
	return e.Err
}

// AmountError reports a money-shaped token that produced no digits after
// decoration stripping. Recovered the same way as DateError.
type AmountError struct {
	Raw string
}

func (e *AmountError) Error() string {
	return fmt.Sprintf("invalid amount token %q", e.Raw)
}

// ExtractionError reports that structured extraction produced nothing usable
// for the whole document. The engine recovers via the raw-stream fallback;
// an empty result after that is still a valid outcome, not an error.
type ExtractionError struct {
	Source string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("text extraction failed for %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("no text extracted from %s", e.Source)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
