// Package parser implements the statement parsing engine: brand detection,
// the line-classification state machine, date and sign normalization, the
// raw-stream fallback path and deduplication.
package parser

import (
	"os"
	"strings"

	"github.com/metwallusion/BankStatement/internal/extractor"
	"github.com/metwallusion/BankStatement/internal/logging"
	"github.com/metwallusion/BankStatement/internal/models"
)

var log = logging.GetLogger()

// Input is everything the engine needs for one document. Pages come from
// the structured page text extractor (each page's lines joined with
// newlines); Raw is the complete document byte content for the fallback
// path; Filename is an optional year-hint source, never required for
// correctness.
type Input struct {
	Pages    []string
	Raw      []byte
	Filename string
	// Brand forces a layout profile; empty means auto-detect.
	Brand models.Brand
}

// Engine parses one document per Parse call. It holds no per-document
// state, so one Engine may be shared by concurrent callers as long as each
// call gets its own Input.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Parse runs the full pipeline: brand detection, the per-page line scan in
// strict document order, the raw-stream fallback when the page path yields
// nothing, and deduplication. An empty document produces an empty
// statement, not an error.
func (e *Engine) Parse(in Input) (*models.Statement, error) {
	years := &YearContext{Hint: YearFromFilename(in.Filename)}

	brand := in.Brand
	if brand == "" {
		brand = DetectBrand(headText(in.Pages))
	}
	profile := profileFor(brand)

	scanner := newPageScanner(profile, years)
	for _, page := range in.Pages {
		scanner.scan(strings.Split(page, "\n"))
	}

	stmt := &models.Statement{
		Brand:      brand,
		SourceFile: in.Filename,
	}

	txns := scanner.out
	debug := scanner.debug

	// The fallback runs at most once, and only when the whole document
	// produced zero records through the page path.
	if len(txns) == 0 && len(in.Raw) > 0 {
		log.WithField("file", in.Filename).Debug("page path yielded no records, trying raw-stream fallback")

		flat := extractor.RecoverText(in.Raw)
		if flat != "" {
			if in.Brand == "" {
				brand = DetectBrand(flat)
				profile = profileFor(brand)
				stmt.Brand = brand
			}

			fb := newPageScanner(profile, &YearContext{Hint: years.Hint})
			fb.scan(chunkFlatText(flat))
			txns = fb.out
			debug = fb.debug
			stmt.UsedFallback = len(txns) > 0
		}
	}

	stmt.Transactions = deduplicate(txns, profile)
	stmt.DebugLines = debug

	log.WithFields(map[string]interface{}{
		"file":     in.Filename,
		"brand":    stmt.Brand,
		"count":    len(stmt.Transactions),
		"fallback": stmt.UsedFallback,
	}).Info("parsed statement")

	return stmt, nil
}

// ParseFile extracts text from a PDF on disk and parses it. An empty
// brand means auto-detect. Extraction failures are not fatal: the raw
// bytes still feed the fallback path, and a document nothing can read
// comes back as zero records.
func (e *Engine) ParseFile(path string, brand models.Brand) (*models.Statement, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ExtractionError{Source: path, Err: err}
	}

	pages, err := extractor.ExtractPages(path)
	if err != nil {
		log.WithError(err).WithField("file", path).Warn("structured extraction failed, relying on raw fallback")
		pages = nil
	}

	return e.Parse(Input{Pages: pages, Raw: raw, Filename: path, Brand: brand})
}

// headText concatenates the first pages for brand detection. Two pages is
// enough: every observed layout names the institution on page one or two.
func headText(pages []string) string {
	n := len(pages)
	if n > 2 {
		n = 2
	}
	return strings.Join(pages[:n], "\n")
}
