package parser

import (
	"regexp"
	"strconv"
)

// Installment markers as vendors print them inside descriptions. Ordered:
// the parenthesized form must win over the bare one so the whole annotation
// is removed, parentheses included.
var installmentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\(\s*PARCELA\s+(\d+)\s+DE\s+(\d+)\s*\)`),
	regexp.MustCompile(`(?i)\bPARCELA\s+(\d+)\s+DE\s+(\d+)\b`),
	regexp.MustCompile(`(?i)\bPARC(?:ELA)?\.?\s*(\d+)\s*/\s*(\d+)\b`),
	regexp.MustCompile(`(?i)\b(\d+)\s*/\s*(\d+)\s+PARCELAS?\b`),
}

// ResolveInstallments detects an installment marker in a description and
// splits it into structured fields. The marker is removed from the returned
// description. When no marker is present (or the printed numbers are
// inconsistent, index outside 1..count) both fields are zero and the
// description comes back untouched beyond whitespace normalization;
// installments are never defaulted to 1/1.
func ResolveInstallments(description string) (cleaned string, index, count int) {
	for _, p := range installmentPatterns {
		m := p.FindStringSubmatchIndex(description)
		if m == nil {
			continue
		}
		idx, _ := strconv.Atoi(description[m[2]:m[3]])
		total, _ := strconv.Atoi(description[m[4]:m[5]])
		if idx < 1 || total < 1 || idx > total {
			continue
		}
		cleaned = collapseSpaces(description[:m[0]] + " " + description[m[1]:])
		return cleaned, idx, total
	}
	return collapseSpaces(description), 0, 0
}
