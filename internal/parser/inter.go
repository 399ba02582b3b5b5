package parser

import (
	"strings"

	"github.com/pu10c88/bank-statement-extractor/internal/models"
)

// InterParser handles Inter bank statements.
//
// Inter prints one transaction per line with a fully-qualified Portuguese
// date and an explicit currency marker:
//
//	03 de nov. 2024 MERCADOLIVRE - R$ 150,00
//	05 de nov. 2024 PAGAMENTO RECEBIDO - + R$ 1.200,00
//
// A single statement can cover several cards; "Cartão final NNNN" headers
// recur through the file and every transaction after a header belongs to
// that card until the next one.
type InterParser struct {
	table *PatternTable
}

// NewInterParser builds an Inter parser over the static Inter pattern table.
func NewInterParser() *InterParser {
	return &InterParser{table: InterPatternTable()}
}

func (p *InterParser) Bank() models.BankType { return models.BankInter }

func (p *InterParser) Label() string { return "Banco Inter" }

// Extract scans line by line, threading the current card-context through
// the scan. A statement with no boundary marker at all yields matches with
// an empty card number rather than failing.
func (p *InterParser) Extract(text, reference string) (*Extraction, error) {
	ext := &Extraction{}
	cardContext := ""

	for i, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		if card, ok := p.table.CardBoundary(line); ok {
			cardContext = card
			continue
		}

		for _, rule := range p.table.Rules {
			m, ok := rule.Match(line)
			if !ok {
				continue
			}
			if p.table.skippable(m.Description) {
				break
			}
			m.CardNumber = cardContext
			m.Line = i + 1
			ext.Matches = append(ext.Matches, m)
			break
		}
	}

	return ext, nil
}
