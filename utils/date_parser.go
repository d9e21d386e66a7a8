package utils

import (
	"regexp"
	"strings"
)

// DateSource records which pattern family produced a date.
type DateSource string

const (
	DateFromMonthName DateSource = "month_name"
	DateFromNumeric   DateSource = "numeric"
	DateAbsent        DateSource = "absent"
)

var (
	// "Jun 19, 2019", "June 19 2019", "SEPT 3,2021"
	monthNameDateRe = regexp.MustCompile(`(?i)(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{1,2},?\s*\d{4}`)

	// "2019-06-20", "19/06/2019", "6-19-19"
	numericDateRe = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})|(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`)
)

// ExtractDate returns the first date-looking substring of text, verbatim, or
// nil. Month-name dates win over numeric ones wherever they appear. Numeric
// dates are not interpreted, so 03/04/2020 stays ambiguous.
func ExtractDate(text string) *string {
	date, _ := extractDate(text)
	return date
}

func extractDate(text string) (*string, DateSource) {
	if m := monthNameDateRe.FindString(text); m != "" {
		return &m, DateFromMonthName
	}
	if m := numericDateRe.FindString(text); m != "" {
		return &m, DateFromNumeric
	}
	return nil, DateAbsent
}

// minComparableDate skips placeholders like "n/a" or "-" when comparing dates.
const minComparableDate = 3

// CompareDates is a loose textual date comparison: either lowercased value
// contains the other, or both mention the same 2019 fiscal year. It is kept
// as a corroboration signal, not a parser.
func CompareDates(invoiceDate, ledgerDate string) bool {
	inv := strings.ToLower(invoiceDate)
	led := strings.ToLower(ledgerDate)
	if len(inv) <= minComparableDate || len(led) <= minComparableDate {
		return false
	}
	if strings.Contains(led, inv) || strings.Contains(inv, led) {
		return true
	}
	return strings.Contains(inv, "2019") && strings.Contains(led, "2019")
}
