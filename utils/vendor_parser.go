package utils

import (
	"iter"
	"strings"
	"unicode"

	"github.com/Aashish23092/invoice-audit/dto"
)

// vendorScanWindow limits the search to the document header; address blocks
// further down tend to look like names too.
const vendorScanWindow = 8

// ExtractVendor returns the first of the leading cleaned lines that has no
// digits and starts with a letter, or dto.DefaultVendor.
func ExtractVendor(lines iter.Seq[string]) string {
	vendor, _ := extractVendor(lines)
	return vendor
}

func extractVendor(lines iter.Seq[string]) (string, bool) {
	scanned := 0
	for line := range lines {
		if scanned == vendorScanWindow {
			break
		}
		scanned++

		if isVendorLike(line) {
			return line, true
		}
	}
	return dto.DefaultVendor, false
}

func isVendorLike(line string) bool {
	if line == "" || !isASCIILetter(line[0]) {
		return false
	}
	return !strings.ContainsFunc(line, unicode.IsDigit)
}

func isASCIILetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
