package utils

import (
	"iter"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/cloudflare/ahocorasick"
)

// minLineLength drops OCR fragments such as stray punctuation or single glyphs.
const minLineLength = 3

// noiseTokens are matched case-insensitively anywhere in a line. They cover the
// banners the ensemble writes between passes and common invoice boilerplate
// labels that are never the vendor name.
var noiseTokens = []string{
	"===", "---",
	"OCR", "DIGITIZATION", "TESSERACT", "EASYOCR", "PDFPLUMBER",
	"BILLED", "SHIP", "INVOICE", "PAGE", "PHONE", "FAX",
	"EMAIL", "WEB", "TAX", "GST", "VAT", "PAYMENT",
}

var (
	// The matcher keeps per-search state, so searches are serialised.
	noiseMu      sync.Mutex
	noiseMatcher = ahocorasick.NewStringMatcher(noiseTokens)
)

// CleanLines yields the trimmed lines of text that survive noise filtering,
// in document order. Lines are produced on demand; callers that need the
// lines more than once should collect them.
func CleanLines(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for line := range strings.SplitSeq(text, "\n") {
			line = strings.TrimSpace(line)
			if utf8.RuneCountInString(line) < minLineLength {
				continue
			}
			if IsNoiseLine(line) {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}
}

// IsNoiseLine reports whether line contains any denylisted token.
func IsNoiseLine(line string) bool {
	upper := []byte(strings.ToUpper(line))

	noiseMu.Lock()
	defer noiseMu.Unlock()
	return len(noiseMatcher.Match(upper)) > 0
}
