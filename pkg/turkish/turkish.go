// Package turkish holds the locale helpers the scrapers depend on:
// DD.MM.YYYY date extraction, decimal-comma quantities and Turkish
// title-casing for presentation.
package turkish

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var reDate = regexp.MustCompile(`(\d{2})\.(\d{2})\.(\d{4})`)

// ParseDate finds a DD.MM.YYYY date anywhere in s and returns it in
// ISO YYYY-MM-DD form.
func ParseDate(s string) (string, bool) {
	m := reDate.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1]), true
}

// NormalizeDecimal rewrites a Turkish decimal comma to a dot.
func NormalizeDecimal(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
}

// ParseAmount parses a locale-formatted quantity such as "0,2" or "150".
func ParseAmount(s string) (float64, error) {
	return strconv.ParseFloat(NormalizeDecimal(s), 64)
}

var titleCaser = cases.Title(language.Turkish)

// TitleCase capitalizes each word under Turkish casing rules, where the
// dotless ı and dotted i map to I and İ respectively. Scraped names are
// stored as-is; this is for display only.
func TitleCase(s string) string {
	return titleCaser.String(strings.ToLowerSpecial(unicode.TurkishCase, s))
}
