// Package roparse holds the locale parsing policy for the extracted ledgers:
// Romanian number formatting and the exact dd.MM.yyyy date layout the ANAF
// reports use. All functions are pure and report failure through an ok flag;
// translating failures into record warnings is the caller's concern.
package roparse

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the only date format that appears in the source reports.
const DateLayout = "02.01.2006"

// Date parses a dd.MM.yyyy date. The match is exact: no other layouts, no
// partial parses.
func Date(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Decimal parses a number written with Romanian separators: "." groups
// thousands, "," marks the decimal point (e.g. "1.234,56"). Plain integers
// are accepted too.
func Decimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// Int parses a base-10 integer, tolerating surrounding whitespace.
func Int(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Blank reports whether s is empty or whitespace-only.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
