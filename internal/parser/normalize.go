package parser

import (
	"github.com/shopspring/decimal"

	"github.com/pu10c88/bank-statement-extractor/internal/config"
	"github.com/pu10c88/bank-statement-extractor/internal/models"
)

// Normalizer turns raw pattern matches into fully-populated Transactions:
// date resolution with statement-year inheritance, amount parsing,
// debit/credit classification under the bank's policy, installment and
// vendor extraction, card and reference binding. Stateless and safe to
// share across files.
type Normalizer struct {
	keywords config.Classification
}

// NewNormalizer builds a normalizer with the given classification keyword
// set (the bank's portion of config.Keywords).
func NewNormalizer(keywords config.Classification) *Normalizer {
	return &Normalizer{keywords: keywords}
}

// Normalize converts one raw match. A *ParseError return means the line
// must be dropped with a warning, never promoted to a transaction with a
// zero or garbage amount.
func (n *Normalizer) Normalize(m models.RawMatch, ctx models.StatementContext) (models.Transaction, error) {
	date, err := ResolveDate(m.DateText, ctx.ReferenceYear)
	if err != nil {
		return models.Transaction{}, err
	}

	signed, err := ParseAmount(m.AmountText)
	if err != nil {
		return models.Transaction{}, err
	}
	if signed.IsZero() {
		return models.Transaction{}, &ParseError{Input: m.AmountText, Reason: "zero amount"}
	}

	description := collapseSpaces(m.Description)
	cleaned, instIndex, instCount := ResolveInstallments(description)

	card := m.CardNumber
	if card == "" {
		card = ctx.CardNumber
	}

	return models.Transaction{
		Date:             date,
		Description:      description,
		VendorName:       CleanVendor(cleaned),
		Amount:           signed.Abs(),
		Type:             n.classify(ctx.Bank, m, description, signed),
		CardNumber:       card,
		InstallmentIndex: instIndex,
		InstallmentCount: instCount,
		Reference:        ctx.Reference,
	}, nil
}

// NormalizeAll normalizes every match, collecting the per-line errors of
// dropped lines instead of failing the file.
func (n *Normalizer) NormalizeAll(matches []models.RawMatch, ctx models.StatementContext) ([]models.Transaction, []error) {
	var txns []models.Transaction
	var dropped []error
	for _, m := range matches {
		t, err := n.Normalize(m, ctx)
		if err != nil {
			dropped = append(dropped, err)
			continue
		}
		txns = append(txns, t)
	}
	return txns, dropped
}

// classify applies the bank-specific debit/credit policy.
//
// An explicit credit sign (Inter's "+ R$") wins outright. Then the keyword
// sets decide, credit before debit, so a debit keyword pins a line the sign
// rule would otherwise flip. Only then does the sign rule apply: on Itaú
// card invoices a negative amount is a payment (credit), on Inter it is an
// ordinary outflow. Everything left is a debit.
func (n *Normalizer) classify(bank models.BankType, m models.RawMatch, description string, signed decimal.Decimal) models.TransactionType {
	if m.CreditMark {
		return models.Credit
	}
	if containsAnyFold(description, n.keywords.CreditKeywords) {
		return models.Credit
	}
	if containsAnyFold(description, n.keywords.DebitKeywords) {
		return models.Debit
	}
	if signed.IsNegative() && bank == models.BankItau {
		return models.Credit
	}
	return models.Debit
}
