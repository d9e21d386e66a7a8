package utils

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// AmountSource records which tier produced an amount.
type AmountSource string

const (
	AmountFromKeyword AmountSource = "keyword"
	AmountFromMaximum AmountSource = "maximum"
	AmountDefault     AmountSource = "default"
)

var (
	// The gap after the keyword is greedy, so the last whole number on the
	// keyword's line wins. It has to end on something that is not part of a
	// number, otherwise backtracking would split "42,480.00" into "0.00".
	keywordAmountRe = regexp.MustCompile(`(?i)(?:Total|Balance|Due|Amount)(?:.*[^\d,\n])?([\d,]+\.\d{2})`)

	// Thousands-grouped figures with exactly two decimals.
	moneyRe = regexp.MustCompile(`\d{1,3}(?:,\d{3})*\.\d{2}`)
)

// ExtractAmount returns the invoice total found in raw OCR text.
//
// A figure following Total/Balance/Due/Amount is preferred. Without one, the
// largest money-formatted figure in the document is taken as the grand total.
// Returns 0.0 when nothing usable is found.
func ExtractAmount(text string) float64 {
	amount, _ := extractAmount(text)
	return amount
}

func extractAmount(text string) (float64, AmountSource) {
	if m := keywordAmountRe.FindStringSubmatch(text); m != nil {
		// A labelled but unparseable figure is not retried against the
		// unlabelled tier.
		if v, err := parseMoney(m[1]); err == nil {
			return v, AmountFromKeyword
		}
		return 0.0, AmountDefault
	}

	found := false
	best := 0.0
	for _, candidate := range moneyRe.FindAllString(text, -1) {
		v, err := parseMoney(candidate)
		if err != nil {
			continue
		}
		if !found || v > best {
			best = v
			found = true
		}
	}
	if found {
		return best, AmountFromMaximum
	}
	return 0.0, AmountDefault
}

// parseMoney converts "42,480.00" or "1 250.00" into a float. NaN and
// infinities are rejected so callers can always build a decimal from the result.
func parseMoney(s string) (float64, error) {
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite amount", s)
	}
	return v, nil
}

// ParseLedgerAmount converts a ledger cell to a number, 0.0 when it is not
// numeric. Thousands separators, currency symbols and surrounding spaces are
// tolerated.
func ParseLedgerAmount(cell string) float64 {
	cleaned := strings.TrimSpace(cell)
	cleaned = strings.TrimLeft(cleaned, "$€£₹")
	v, err := parseMoney(cleaned)
	if err != nil {
		return 0.0
	}
	return v
}
