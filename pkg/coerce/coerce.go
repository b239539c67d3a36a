// Package coerce turns the heterogeneous textual values found in scraped
// pages and uploaded CSVs into typed values. Every parser is total: bad
// input yields the zero value and ok=false, never a panic.
package coerce

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the canonical calendar-date representation handed to the
// graph store.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"2006-01-02 15:04:05",
}

// ParseDate accepts a bare 4-digit year (mapped to January 1st) or one of
// the supported day/month/year layouts.
func ParseDate(value string) (time.Time, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, false
	}
	if len(s) == 4 && digitRun.FindString(s) == s {
		year, _ := strconv.Atoi(s)
		return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DateString parses value and renders it in the canonical layout.
func DateString(value string) (string, bool) {
	t, ok := ParseDate(value)
	if !ok {
		return "", false
	}
	return t.Format(DateLayout), true
}

var truthy = map[string]bool{
	"true": true, "1": true, "yes": true, "y": true, "si": true, "sì": true,
}

// ParseBool is true for the multilingual truthy set and false for
// everything else, including the empty string.
func ParseBool(value string) bool {
	return truthy[strings.ToLower(strings.TrimSpace(value))]
}

// ParseNumber attempts numeric coercion. Callers decide what absence means;
// see NumberOr for the fallback-to-default variant.
func ParseNumber(value string) (float64, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// NumberOr returns the parsed number or def when the value is absent or
// unparseable. Note that this makes "absent" and "explicitly def"
// indistinguishable downstream.
func NumberOr(value string, def float64) float64 {
	if f, ok := ParseNumber(value); ok {
		return f
	}
	return def
}

var digitRun = regexp.MustCompile(`\d+`)

// ParseEmployeeCount resolves headcounts like "11-50" to the midpoint of
// the range (floor division) and bare values like "25" to the first run of
// digits. Values with no digits yield ok=false.
func ParseEmployeeCount(value string) (int, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, "-") {
		parts := strings.SplitN(s, "-", 2)
		lo, errLo := strconv.Atoi(strings.TrimSpace(parts[0]))
		hi, errHi := strconv.Atoi(strings.TrimSpace(parts[1]))
		if errLo == nil && errHi == nil {
			return (lo + hi) / 2, true
		}
	}
	if m := digitRun.FindString(s); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			return n, true
		}
	}
	return 0, false
}

var nonAmount = regexp.MustCompile(`[^\d.,]`)

// ParseFundingAmount strips currency symbols and separators from strings
// like "€1.5M raised" before numeric coercion.
func ParseFundingAmount(value string) (float64, bool) {
	cleaned := nonAmount.ReplaceAllString(value, "")
	if cleaned == "" {
		return 0, false
	}
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// ExtractYear pulls the first plausible 4-digit year out of a free-text
// date like "Founded in 2019".
func ExtractYear(value string) (int, bool) {
	m := yearPattern.FindString(value)
	if m == "" {
		return 0, false
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return year, true
}
