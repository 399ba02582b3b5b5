package parser

import (
	"fmt"

	"github.com/pu10c88/bank-statement-extractor/internal/models"
)

// Parser turns one statement's raw page text into pre-normalization matches.
// Implementations are re-entrant: all scan state lives on the stack of
// Extract.
type Parser interface {
	// Extract scans the raw text and returns the matched lines plus the
	// file-level context (reference year, file-level card) the normalizer
	// needs. A text with zero matches is not an error.
	Extract(text, reference string) (*Extraction, error)
	// Bank returns the bank this parser understands.
	Bank() models.BankType
	// Label returns the human-readable bank name used in reports.
	Label() string
}

// Extraction is the outcome of scanning one statement file.
type Extraction struct {
	Matches       []models.RawMatch
	ReferenceYear int    // statement year for day/month-only dates
	CardNumber    string // file-level card, when the layout has exactly one per file
}

// New returns the parser for the given bank. Bank selection is mandatory;
// there is no detection fallback.
func New(bank models.BankType) (Parser, error) {
	switch bank {
	case models.BankInter:
		return NewInterParser(), nil
	case models.BankItau:
		return NewItauParser(), nil
	default:
		return nil, fmt.Errorf("unsupported bank type: %q", bank)
	}
}
