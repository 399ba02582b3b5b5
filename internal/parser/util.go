package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Portuguese month abbreviations as printed by Inter statements
// ("03 de nov. 2024"). Keys are the first three letters, lowercased.
var ptMonths = map[string]time.Month{
	"jan": time.January, "fev": time.February, "mar": time.March,
	"abr": time.April, "mai": time.May, "jun": time.June,
	"jul": time.July, "ago": time.August, "set": time.September,
	"out": time.October, "nov": time.November, "dez": time.December,
}

var (
	// "03 de nov. 2024" or "03 de novembro 2024"
	longDatePattern = regexp.MustCompile(`(?i)^(\d{1,2})\s+de\s+([a-zà-ú]+)\.?\s+(\d{4})$`)
	// DD/MM/YYYY or DD-MM-YYYY
	numericDatePattern = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})$`)
	// YYYY-MM-DD
	isoDatePattern = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	// DD/MM with the year inherited from the statement
	shortDatePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})$`)
)

// ResolveDate converts statement date text into a fully-qualified calendar
// date. A day/month-only date inherits refYear, the statement's reference
// year.
func ResolveDate(text string, refYear int) (time.Time, error) {
	s := strings.TrimSpace(text)

	if m := longDatePattern.FindStringSubmatch(s); m != nil {
		month, ok := ptMonths[strings.ToLower(firstN(m[2], 3))]
		if !ok {
			return time.Time{}, &ParseError{Input: text, Reason: "unknown month name"}
		}
		return makeDate(atoi(m[3]), month, atoi(m[1]), text)
	}
	if m := numericDatePattern.FindStringSubmatch(s); m != nil {
		return makeDate(atoi(m[3]), time.Month(atoi(m[2])), atoi(m[1]), text)
	}
	if m := isoDatePattern.FindStringSubmatch(s); m != nil {
		return makeDate(atoi(m[1]), time.Month(atoi(m[2])), atoi(m[3]), text)
	}
	if m := shortDatePattern.FindStringSubmatch(s); m != nil {
		if refYear == 0 {
			return time.Time{}, &ParseError{Input: text, Reason: "day/month date with no statement reference year"}
		}
		return makeDate(refYear, time.Month(atoi(m[2])), atoi(m[1]), text)
	}

	return time.Time{}, &ParseError{Input: text, Reason: "unrecognized date format"}
}

// makeDate builds a UTC date and rejects impossible components, which
// time.Date would otherwise silently roll over (32/01 -> 01/02).
func makeDate(year int, month time.Month, day int, input string) (time.Time, error) {
	if month < time.January || month > time.December {
		return time.Time{}, &ParseError{Input: input, Reason: "month out of range"}
	}
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || d.Month() != month || d.Year() != year {
		return time.Time{}, &ParseError{Input: input, Reason: "day out of range"}
	}
	return d, nil
}

func firstN(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// collapseSpaces normalizes internal whitespace to single spaces.
var spaceRun = regexp.MustCompile(`\s+`)

func collapseSpaces(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// containsAnyFold reports whether text contains any needle, case-insensitively.
func containsAnyFold(text string, needles []string) bool {
	upper := strings.ToUpper(text)
	for _, needle := range needles {
		if strings.Contains(upper, strings.ToUpper(needle)) {
			return true
		}
	}
	return false
}
