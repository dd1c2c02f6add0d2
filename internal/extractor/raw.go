package extractor

import (
	"bytes"
	"compress/zlib"
	"encoding/hex"
	"io"
	"regexp"
	"strings"
	"unicode"
)

// Raw-stream text recovery. When structured extraction yields nothing, the
// document's content streams are located byte-level, inflated where
// possible, and mined for show-text operators. The result is one flat
// string in encounter order; the parser re-derives transaction boundaries
// from date tokens.

// RecoverText extracts all literal text from a document's raw bytes.
// Streams that fail to inflate are used as-is: compression is not
// guaranteed on every region. Returns "" when nothing textual is found.
func RecoverText(data []byte) string {
	var parts []string
	for _, stream := range findStreams(data) {
		text := textFromStream(inflate(stream))
		if text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	// Collapse whitespace runs so downstream chunking sees one flat string.
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// findStreams locates every stream...endstream region.
func findStreams(data []byte) [][]byte {
	var streams [][]byte
	streamMarker := []byte("stream")
	endMarker := []byte("endstream")

	offset := 0
	for offset < len(data) {
		idx := bytes.Index(data[offset:], streamMarker)
		if idx < 0 {
			break
		}
		start := offset + idx + len(streamMarker)
		// Skip the \r\n or \n that follows the stream keyword.
		if start < len(data) && data[start] == '\r' {
			start++
		}
		if start < len(data) && data[start] == '\n' {
			start++
		}
		endIdx := bytes.Index(data[start:], endMarker)
		if endIdx < 0 {
			break
		}
		if endIdx > 0 {
			streams = append(streams, data[start:start+endIdx])
		}
		offset = start + endIdx + len(endMarker)
	}
	return streams
}

// inflate attempts zlib decompression, returning the input unchanged on
// failure.
func inflate(data []byte) []byte {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return data
	}
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return data
	}
	return out
}

var (
	// (text) Tj — a single show-text operation.
	litTjPattern = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)\s*Tj`)
	// <hex> Tj
	hexTjPattern = regexp.MustCompile(`<([0-9A-Fa-f]+)>\s*Tj`)
	// [ ... ] TJ — an array of fragments interleaved with kerning numbers.
	tjArrayPattern = regexp.MustCompile(`\[((?:[^\[\]\\]|\\.)*)\]\s*TJ`)
	// Fragments inside a TJ array.
	litFragmentPattern = regexp.MustCompile(`\(((?:[^()\\]|\\.)*)\)`)
	hexFragmentPattern = regexp.MustCompile(`<([0-9A-Fa-f]+)>`)
)

// textFromStream pulls show-text content out of one content stream, in
// stream order. Array-form strings are concatenated because the array form
// only splits one logical string across kerning adjustments.
func textFromStream(data []byte) string {
	content := string(data)
	if !strings.Contains(content, "Tj") && !strings.Contains(content, "TJ") {
		return ""
	}

	type span struct {
		pos  int
		text string
	}
	var spans []span

	for _, m := range litTjPattern.FindAllStringSubmatchIndex(content, -1) {
		spans = append(spans, span{m[0], decodeLiteral(content[m[2]:m[3]])})
	}
	for _, m := range hexTjPattern.FindAllStringSubmatchIndex(content, -1) {
		spans = append(spans, span{m[0], decodeHex(content[m[2]:m[3]])})
	}
	for _, m := range tjArrayPattern.FindAllStringSubmatchIndex(content, -1) {
		spans = append(spans, span{m[0], decodeArray(content[m[2]:m[3]])})
	}

	// Restore stream order across the three operator shapes.
	for i := 1; i < len(spans); i++ {
		for j := i; j > 0 && spans[j].pos < spans[j-1].pos; j-- {
			spans[j], spans[j-1] = spans[j-1], spans[j]
		}
	}

	var parts []string
	for _, s := range spans {
		if s.text != "" {
			parts = append(parts, s.text)
		}
	}
	return strings.Join(parts, " ")
}

// decodeArray concatenates the string fragments of one TJ array.
func decodeArray(array string) string {
	type frag struct {
		pos  int
		text string
	}
	var frags []frag
	for _, m := range litFragmentPattern.FindAllStringSubmatchIndex(array, -1) {
		frags = append(frags, frag{m[0], decodeLiteral(array[m[2]:m[3]])})
	}
	for _, m := range hexFragmentPattern.FindAllStringSubmatchIndex(array, -1) {
		frags = append(frags, frag{m[0], decodeHex(array[m[2]:m[3]])})
	}
	for i := 1; i < len(frags); i++ {
		for j := i; j > 0 && frags[j].pos < frags[j-1].pos; j-- {
			frags[j], frags[j-1] = frags[j-1], frags[j]
		}
	}
	var b strings.Builder
	for _, f := range frags {
		b.WriteString(f.text)
	}
	return b.String()
}

// decodeLiteral resolves PDF string escape sequences and drops anything
// non-printable.
func decodeLiteral(s string) string {
	var buf strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			buf.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n':
			buf.WriteByte('\n')
		case 'r':
			buf.WriteByte('\r')
		case 't':
			buf.WriteByte('\t')
		case '(', ')', '\\':
			buf.WriteByte(s[i])
		default:
			if s[i] >= '0' && s[i] <= '7' {
				val := int(s[i] - '0')
				for j := 1; j < 3 && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '7'; j++ {
					i++
					val = val*8 + int(s[i]-'0')
				}
				if val < 256 {
					buf.WriteByte(byte(val))
				}
			} else {
				buf.WriteByte(s[i])
			}
		}
	}
	return clean(buf.String())
}

// decodeHex decodes a hex string, trying UTF-16BE first since that is what
// text-bearing hex strings almost always carry.
func decodeHex(h string) string {
	raw, err := hex.DecodeString(h)
	if err != nil {
		return ""
	}
	if len(raw) >= 2 && len(raw)%2 == 0 {
		var b strings.Builder
		for i := 0; i+1 < len(raw); i += 2 {
			cp := rune(raw[i])<<8 | rune(raw[i+1])
			if unicode.IsPrint(cp) || cp == ' ' {
				b.WriteRune(cp)
			}
		}
		if b.Len() > 0 {
			return b.String()
		}
	}
	return clean(string(raw))
}

func clean(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) || r == '\n' || r == '\t' {
			return r
		}
		return -1
	}, s)
}
