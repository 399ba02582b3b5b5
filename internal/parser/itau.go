package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pu10c88/bank-statement-extractor/internal/models"
)

// ItauParser handles Itaú credit card invoices.
//
// Layout facts that differ from Inter: transactions carry day/month only
// ("26/11 LEROY MERLIN 144,45") and inherit the statement year from the
// invoice header; exactly one card per file, named once in the header; the
// launch section is delimited ("Lançamentos:" ... "Limites de crédito") and
// everything outside it is summary chrome. Long establishment names spill
// onto a second physical line, sometimes leaving the amount alone there.
type ItauParser struct {
	table *PatternTable
}

// NewItauParser builds an Itaú parser over the static Itaú pattern table.
func NewItauParser() *ItauParser {
	return &ItauParser{table: ItauPatternTable()}
}

func (p *ItauParser) Bank() models.BankType { return models.BankItau }

func (p *ItauParser) Label() string { return "Itaú" }

var (
	itauYearPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Vencimento:\s*\d{2}/\d{2}/(\d{4})`),
		regexp.MustCompile(`(?i)Emiss[ãa]o:\s*\d{2}/\d{2}/(\d{4})`),
		regexp.MustCompile(`\b(20\d{2})\b`),
	}
	itauAmountOnly = regexp.MustCompile(`^(-?[\d.,]+)$`)
)

// Plausibility window for statement years. Card numbers and totals also
// contain 20xx digit groups, so anything outside the window is noise.
const (
	minStatementYear = 2020
	maxStatementYear = 2030
)

// statementYear finds the year the statement's short dates belong to:
// the due date if printed, the issue date otherwise, and as a last resort
// the most recent plausible year anywhere in the text.
func (p *ItauParser) statementYear(text string) int {
	for _, pat := range itauYearPatterns {
		best := 0
		for _, m := range pat.FindAllStringSubmatch(text, -1) {
			y, _ := strconv.Atoi(m[1])
			if y >= minStatementYear && y <= maxStatementYear && y > best {
				best = y
			}
		}
		if best > 0 {
			return best
		}
	}
	return 0
}

// cardNumber finds the file-level card identifier from the header, falling
// back to a 4-digit group in the filename when the header hides it.
func (p *ItauParser) cardNumber(text, reference string) string {
	for _, line := range strings.Split(text, "\n") {
		if card, ok := p.table.CardBoundary(line); ok {
			return card
		}
	}
	if m := regexp.MustCompile(`\d{4}`).FindString(reference); m != "" {
		return m
	}
	return ""
}

// Extract scans the launch section with a one-line lookahead window for the
// split-transaction shapes.
func (p *ItauParser) Extract(text, reference string) (*Extraction, error) {
	ext := &Extraction{
		ReferenceYear: p.statementYear(text),
		CardNumber:    p.cardNumber(text, reference),
	}

	lines := strings.Split(text, "\n")
	inSection := false

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		if containsAnyFold(line, p.table.SectionStart) {
			inSection = true
			continue
		}
		if containsAnyFold(line, p.table.SectionEnd) {
			inSection = false
			continue
		}
		if !inSection {
			continue
		}

		m, matched := p.matchLine(line)
		if !matched {
			continue
		}

		if m.AmountText == "" {
			// split transaction: resolve the amount from the next line
			resolved, consumed := p.resolveLookahead(m, lines, i)
			if !consumed {
				continue
			}
			m = resolved
			i++
		}

		if p.table.skippable(m.Description) {
			continue
		}
		m.Line = i + 1
		ext.Matches = append(ext.Matches, m)
	}

	return ext, nil
}

func (p *ItauParser) matchLine(line string) (models.RawMatch, bool) {
	for _, rule := range p.table.Rules {
		if m, ok := rule.Match(line); ok {
			return m, true
		}
	}
	return models.RawMatch{}, false
}

// resolveLookahead completes a date+description match using the following
// physical line: either the amount stands alone there, or the description
// continues and ends with the amount.
func (p *ItauParser) resolveLookahead(m models.RawMatch, lines []string, i int) (models.RawMatch, bool) {
	if i+1 >= len(lines) {
		return m, false
	}
	next := strings.TrimSpace(lines[i+1])
	if next == "" || shortDatePrefix.MatchString(next) {
		return m, false
	}

	if am := itauAmountOnly.FindStringSubmatch(next); am != nil {
		m.AmountText = am[1]
		return m, true
	}

	joined := m.Description + " " + next
	if loc := trailingAmount.FindStringSubmatchIndex(joined); loc != nil {
		m.AmountText = joined[loc[2]:loc[3]]
		m.Description = strings.TrimSpace(joined[:loc[0]])
		return m, true
	}
	return m, false
}

var (
	shortDatePrefix = regexp.MustCompile(`^\d{2}/\d{2}`)
	trailingAmount  = regexp.MustCompile(`\s(-?[\d.,]*\d[.,]\d{2})$`)
)
