package normalize

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// serialEpoch is the spreadsheet serial-date origin (1899-12-30, which
// absorbs the historical 1900 leap-year bug offset).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// dayFirstFormats are tried when day-before-month parsing is requested.
// Unambiguous ISO layouts are included so they resolve on the first pass.
var dayFirstFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02.01.2006",
	"02/01/06",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04",
}

var monthFirstFormats = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"01.02.2006",
	"01/02/06",
	"2006-01-02 15:04:05",
	"01/02/2006 15:04",
}

// ParseAmount converts pt-BR formatted monetary text to a decimal value.
// A comma, when present, is the decimal separator and dots are thousands
// separators. On failure it retries after stripping everything but digits,
// dot and sign. Parse failure is data, not an error: ok is false and the
// caller records an empty cell.
func ParseAmount(text string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(text)
	s = strings.TrimSpace(strings.ReplaceAll(s, "R$", ""))
	if s == "" || isNaNLike(s) {
		return decimal.Decimal{}, false
	}

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d, true
	}

	// Fallback: keep digits, dot and a leading sign only.
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && i == 0:
			b.WriteRune(r)
		}
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// ParseDate converts cell text to a calendar date. Five-digit integers are
// interpreted as spreadsheet serial dates counted from 1899-12-30. Calendar
// text is parsed twice: day-before-month first (pt-BR convention), then
// month-before-day. dayFirst flips which pass runs first.
func ParseDate(text string, dayFirst bool) (time.Time, bool) {
	s := strings.TrimSpace(text)
	if s == "" || isNaNLike(s) {
		return time.Time{}, false
	}

	if len(s) == 5 && allDigits(s) {
		days := 0
		for _, r := range s {
			days = days*10 + int(r-'0')
		}
		return serialEpoch.AddDate(0, 0, days), true
	}

	first, second := dayFirstFormats, monthFirstFormats
	if !dayFirst {
		first, second = monthFirstFormats, dayFirstFormats
	}
	for _, layouts := range [][]string{first, second} {
		for _, layout := range layouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// OnlyDigits strips every non-digit character from a tax identifier.
// It deliberately validates neither checksum nor length.
func OnlyDigits(text string) (string, bool) {
	s := strings.TrimSpace(text)
	if s == "" || isNaNLike(s) {
		return "", false
	}
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String(), true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// isNaNLike matches the placeholder text spreadsheet exports leave in
// cells that never held a value.
func isNaNLike(s string) bool {
	switch strings.ToLower(s) {
	case "nan", "none", "null":
		return true
	}
	return false
}
