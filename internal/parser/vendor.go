package parser

import (
	"regexp"
	"strings"
)

// Spending categories Itaú appends to establishment names. Stripped so that
// the same merchant groups into one vendor bucket regardless of category.
var itauCategories = []string{
	"ALIMENTAÇÃO", "EDUCAÇÃO", "VESTUÁRIO", "SAÚDE",
	"TURISMO E ENTRETENIM", "DIVERSOS", "HOBBY", "TRANSPORTE",
}

var (
	// card-network location suffix: "UBER TRIP .SAO PAULO"
	trailingLocation = regexp.MustCompile(`\.[A-ZÀ-Ú][A-ZÀ-Ú\s]*$`)
	// card terminal reference: "-CT 8841"
	cardTerminalRef = regexp.MustCompile(`-CT\s+\S+`)
	// stray transaction date glued to the description: "NETFLIX 26/11"
	trailingShortDate = regexp.MustCompile(`\s+\d{2}/\d{2}$`)
)

// CleanVendor canonicalizes a raw description into a vendor name for stable
// grouping: upper-cased, single-spaced, stripped of installment annotations,
// card-network suffixes and statement noise. Idempotent: the stripping
// passes run to a fixpoint.
func CleanVendor(description string) string {
	v := collapseSpaces(strings.ToUpper(description))

	for {
		prev := v

		v, _, _ = ResolveInstallments(v)

		// card networks glue sub-merchants after an asterisk:
		// "MERCADOLIVRE*TROPICAL" is the MERCADOLIVRE vendor
		if idx := strings.IndexByte(v, '*'); idx >= 0 {
			v = v[:idx]
		}

		v = cardTerminalRef.ReplaceAllString(v, "")
		v = trailingShortDate.ReplaceAllString(v, "")
		v = trailingLocation.ReplaceAllString(v, "")

		for _, cat := range itauCategories {
			v = strings.TrimSuffix(v, " "+cat)
		}

		v = collapseSpaces(v)
		if v == prev {
			break
		}
	}

	if v == "" {
		return "OTHER"
	}
	return v
}
