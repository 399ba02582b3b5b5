package parser

import (
	"strings"

	"github.com/shopspring/decimal"
)

// currencyTokens are stripped before numeric parsing. Brazilian statements
// print "R$"; the rest shows up in multi-currency card lines.
var currencyTokens = []string{"R$", "£", "$", "€", " "}

// ParseAmount converts locale-formatted amount text into a signed decimal.
//
// Both Brazilian ("1.234,56") and plain ("1,234.56") groupings are accepted:
// the rightmost separator followed by exactly two digits is the decimal
// point, every other separator is thousands grouping. A leading minus or a
// parenthesized amount is negative. Currency symbols are stripped first.
func ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, &ParseError{Input: text, Reason: "empty amount"}
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	for _, tok := range currencyTokens {
		s = strings.ReplaceAll(s, tok, "")
	}
	s = strings.TrimSpace(s)

	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = strings.TrimSpace(s[1:])
	case strings.HasPrefix(s, "+"):
		s = strings.TrimSpace(s[1:])
	}
	s = strings.ReplaceAll(s, " ", "")

	if !strings.ContainsAny(s, "0123456789") {
		return decimal.Zero, &ParseError{Input: text, Reason: "no digit sequence remains after stripping"}
	}

	intPart, fracPart := splitDecimal(s)
	intPart = strings.Map(func(r rune) rune {
		if r == '.' || r == ',' {
			return -1
		}
		return r
	}, intPart)

	clean := intPart
	if fracPart != "" {
		clean += "." + fracPart
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, &ParseError{Input: text, Reason: "not a number"}
	}
	if neg {
		d = d.Neg()
	}
	return d, nil
}

// splitDecimal disambiguates separator roles by position: the rightmost
// '.' or ',' followed by exactly two digits is the decimal separator.
func splitDecimal(s string) (intPart, fracPart string) {
	idx := strings.LastIndexAny(s, ".,")
	if idx < 0 {
		return s, ""
	}
	tail := s[idx+1:]
	if len(tail) == 2 && isDigits(tail) {
		return s[:idx], tail
	}
	return s, ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
