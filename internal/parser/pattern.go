package parser

import (
	"regexp"
	"strings"

	"github.com/pu10c88/bank-statement-extractor/internal/models"
)

// Rule is one line-shape matcher plus the mapping from its submatches to
// RawMatch fields. Group indices are submatch numbers; zero means the rule
// does not extract that field.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	DateGroup   int
	DescGroup   int
	AmountGroup int
	CreditGroup int // non-empty submatch marks an explicit credit sign
}

// Match applies the rule to a single physical line.
func (r Rule) Match(line string) (models.RawMatch, bool) {
	m := r.Pattern.FindStringSubmatch(line)
	if m == nil {
		return models.RawMatch{}, false
	}
	raw := models.RawMatch{Rule: r.Name}
	if r.DateGroup > 0 {
		raw.DateText = strings.TrimSpace(m[r.DateGroup])
	}
	if r.DescGroup > 0 {
		raw.Description = strings.TrimSpace(m[r.DescGroup])
	}
	if r.AmountGroup > 0 {
		raw.AmountText = strings.TrimSpace(m[r.AmountGroup])
	}
	if r.CreditGroup > 0 && strings.TrimSpace(m[r.CreditGroup]) != "" {
		raw.CreditMark = true
	}
	return raw, true
}

// PatternTable is the per-bank recognition configuration: ordered extraction
// rules (first match wins), card-boundary markers, and the section markers
// that gate scanning where a layout interleaves transactions with summary
// tables. Read-only after construction.
type PatternTable struct {
	Rules          []Rule
	CardBoundaries []*regexp.Regexp // submatches concatenated form the card id
	SectionStart   []string         // empty means the whole file is in scope
	SectionEnd     []string
	SkipWords      []string // header noise that must never become a description
}

// CardBoundary reports whether the line is a card-boundary marker and
// returns the card identifier it establishes.
func (t *PatternTable) CardBoundary(line string) (string, bool) {
	for _, p := range t.CardBoundaries {
		m := p.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		var b strings.Builder
		for _, g := range m[1:] {
			b.WriteString(strings.Map(dropSpace, g))
		}
		if b.Len() > 0 {
			return b.String(), true
		}
	}
	return "", false
}

func dropSpace(r rune) rune {
	if r == ' ' || r == '\t' {
		return -1
	}
	return r
}

// skippable reports header-ish matches that passed a line-shape rule but
// are statement chrome, not transactions.
func (t *PatternTable) skippable(description string) bool {
	if len(description) < 3 {
		return true
	}
	return containsAnyFold(description, t.SkipWords)
}

// amountTail matches a statement amount at the end of a line, in either
// Brazilian (1.234,56) or plain (1,234.56 / 1234.56) grouping.
const amountTail = `([-+]?(?:\d{1,3}(?:[.,]\d{3})*|\d+)[.,]\d{2})`

// InterPatternTable describes Inter bank account and card statements.
// The primary shape is "DD de MMM. YYYY DESCRIPTION - R$ AMOUNT", with a
// "+" before the currency marking credits. Generic numeric-date shapes come
// last so the Inter-specific rules win on ambiguous lines.
func InterPatternTable() *PatternTable {
	return &PatternTable{
		Rules: []Rule{
			{
				Name: "inter-currency-dash",
				Pattern: regexp.MustCompile(
					`(?i)^(\d{1,2}\s+de\s+[a-zà-ú]+\.?\s+\d{4})\s+(.+?)\s+-\s+(\+\s+)?R\$\s*([\d.,]+)`),
				DateGroup: 1, DescGroup: 2, CreditGroup: 3, AmountGroup: 4,
			},
			{
				Name: "inter-currency",
				Pattern: regexp.MustCompile(
					`(?i)^(\d{1,2}\s+de\s+[a-zà-ú]+\.?\s+\d{4})\s+(.+?)\s+(\+\s+)?R\$\s*([\d.,]+)`),
				DateGroup: 1, DescGroup: 2, CreditGroup: 3, AmountGroup: 4,
			},
			{
				Name: "inter-numeric-date",
				Pattern: regexp.MustCompile(
					`^(\d{1,2}[/-]\d{1,2}[/-]\d{4})\s+(.+?)\s+` + amountTail + `\s*$`),
				DateGroup: 1, DescGroup: 2, AmountGroup: 3,
			},
			{
				Name: "inter-iso-date",
				Pattern: regexp.MustCompile(
					`^(\d{4}-\d{2}-\d{2})\s+(.+?)\s+` + amountTail + `\s*$`),
				DateGroup: 1, DescGroup: 2, AmountGroup: 3,
			},
		},
		CardBoundaries: []*regexp.Regexp{
			regexp.MustCompile(`(?i)cart[ãa]o\s+final\s+(\d{4})`),
			regexp.MustCompile(`(\d{4})\s*\*{4}\s*\*{4}\s*(\d{4})`),
			regexp.MustCompile(`(?i)cart[ãa]o.*?(\d{4}\s*\*+\s*\d{4})`),
		},
		SkipWords: []string{"DATA", "VALOR", "DESCRIÇÃO", "DESCRICAO", "TOTAL", "SALDO"},
	}
}

// ItauPatternTable describes Itaú credit card invoices: "DD/MM ESTABLISHMENT
// VALUE" rows inside a marked launch section, one card per file named in the
// header, statement year taken from the due/issue dates.
func ItauPatternTable() *PatternTable {
	return &PatternTable{
		Rules: []Rule{
			{
				Name: "itau-line",
				Pattern: regexp.MustCompile(
					`^(\d{2}/\d{2})\s+(.+?)\s+(-?[\d.,]+)$`),
				DateGroup: 1, DescGroup: 2, AmountGroup: 3,
			},
			{
				// transaction split across two physical lines; the scanner
				// resolves the amount from the lookahead line
				Name:      "itau-continuation",
				Pattern:   regexp.MustCompile(`^(\d{2}/\d{2})\s+(.+)$`),
				DateGroup: 1, DescGroup: 2,
			},
		},
		CardBoundaries: []*regexp.Regexp{
			regexp.MustCompile(`(?i)cart[ãa]o\s+(\d{4}\.X{4}\.X{4}\.\d{4})`),
			regexp.MustCompile(`(\d{4}\.X{4}\.X{4}\.\d{4})`),
			regexp.MustCompile(`(?i)final\s+(\d{4})`),
		},
		SectionStart: []string{"Lançamentos", "Lancamentos", "DATA ESTABELECIMENTO VALOR"},
		SectionEnd:   []string{"Limites de crédito", "Limites de credito", "Encargos cobrados", "Resumo da fatura"},
		SkipWords:    []string{"FINAL", "CARTÃO", "CARTAO", "TOTAL", "SALDO"},
	}
}
