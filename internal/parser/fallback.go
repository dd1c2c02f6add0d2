package parser

import (
	"regexp"
	"strings"
)

// Re-segmentation of the flat string recovered by the raw-stream extractor.
// The flat text has lost all line structure, so transaction boundaries are
// re-derived from date token positions.

// A date token begun but cut off at the end of a chunk, e.g. "8/" or "8/1"
// left dangling by a decompression boundary.
var truncatedDateTail = regexp.MustCompile(`\d{1,2}/\d{0,2}$`)

// Trailing sections that follow the transaction listing; anything from
// these markers onward is summary or boilerplate.
var trailingSectionMarkers = []string{
	"totals",
	"transaction history",
	"monthly service fee",
}

// chunkFlatText splits a flat document string into transaction-like chunks.
// Each chunk runs from one date token to the next. Date tokens preceded by
// the word "on" are ignored so incidental in-sentence dates ("payment
// received on 8/12") do not open a chunk. Chunks without a monetary token
// are dropped, and each survivor is truncated at the first trailing-section
// marker.
func chunkFlatText(flat string) []string {
	positions := dateTokenPattern.FindAllStringIndex(flat, -1)

	var starts []int
	for _, pos := range positions {
		if isProseDate(flat, pos[0]) {
			continue
		}
		starts = append(starts, pos[0])
	}
	if len(starts) == 0 {
		return nil
	}

	var chunks []string
	for i, start := range starts {
		end := len(flat)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		chunk := strings.TrimSpace(flat[start:end])
		if chunk == "" {
			continue
		}
		// A chunk whose predecessor ends mid-date belongs to that date:
		// the token was split across a decompression boundary.
		if len(chunks) > 0 && truncatedDateTail.MatchString(chunks[len(chunks)-1]) {
			chunks[len(chunks)-1] = chunks[len(chunks)-1] + chunk
			continue
		}
		chunks = append(chunks, chunk)
	}

	var out []string
	for _, chunk := range chunks {
		if !moneyInlinePattern.MatchString(chunk) {
			continue
		}
		out = append(out, truncateAtMarker(chunk))
	}
	return out
}

// isProseDate reports whether the date at pos is preceded by the word
// "on". The boundary check matters: words that merely end in "on"
// ("Boston", "Amazon") must not suppress a chunk start.
func isProseDate(text string, pos int) bool {
	if pos < 3 || !strings.EqualFold(text[pos-3:pos], "on ") {
		return false
	}
	if pos == 3 {
		return true
	}
	c := text[pos-4]
	return !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z')
}

func truncateAtMarker(chunk string) string {
	lower := strings.ToLower(chunk)
	cut := len(chunk)
	for _, marker := range trailingSectionMarkers {
		if idx := strings.Index(lower, marker); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	return strings.TrimSpace(chunk[:cut])
}
