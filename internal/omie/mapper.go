// Package omie projects normalized transactions into the accounts-payable
// import schema of the Omie ERP. The output is a file for later import;
// nothing here talks to Omie.
package omie

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pu10c88/bank-statement-extractor/internal/models"
)

// Record is one accounts-payable title in the Omie import schema. Field
// names mirror the cXxx/nXxx/dXxx columns the ERP expects.
type Record struct {
	SupplierName string          // cNomeFornecedor
	Amount       decimal.Decimal // nValorTitulo
	CardNumber   string          // cNumeroCartao, empty when the source had none
	Installments string          // cNumeroParcelas, "index/count" or empty
	Observation  string          // cObservacao
	IssueDate    time.Time       // dEmissao: the purchase date
	DueDate      time.Time       // dVencimento: the invoice due date, supplied per run
}

// omieDateFormat is the DD/MM/YYYY layout Omie imports.
const omieDateFormat = "02/01/2006"

// IssueDateString renders dEmissao for the CSV.
func (r Record) IssueDateString() string { return r.IssueDate.Format(omieDateFormat) }

// DueDateString renders dVencimento for the CSV.
func (r Record) DueDateString() string { return r.DueDate.Format(omieDateFormat) }

// Mapper builds Omie records for one bank's transactions.
type Mapper struct {
	bankLabel string
}

// NewMapper returns a mapper whose observations carry the given
// bank-identifying invoice label ("Fatura do Banco Inter", "Fatura do Itaú").
func NewMapper(bankLabel string) *Mapper {
	return &Mapper{bankLabel: "Fatura do " + bankLabel}
}

// Map projects one transaction. Credits produce no record at all, only
// debits become payable titles, so the second return reports whether a
// record was produced.
func (m *Mapper) Map(t models.Transaction, dueDate time.Time) (Record, bool) {
	if t.Type != models.Debit {
		return Record{}, false
	}

	obs := m.bankLabel
	installments := t.InstallmentLabel()
	if installments != "" {
		obs += " - Parcela " + installments
	}

	return Record{
		SupplierName: t.VendorName,
		Amount:       t.Amount,
		CardNumber:   t.CardNumber,
		Installments: installments,
		Observation:  obs,
		IssueDate:    t.Date,
		DueDate:      dueDate,
	}, true
}

// MapAll projects every debit transaction, preserving input order.
func (m *Mapper) MapAll(txns []models.Transaction, dueDate time.Time) []Record {
	var records []Record
	for _, t := range txns {
		if r, ok := m.Map(t, dueDate); ok {
			records = append(records, r)
		}
	}
	return records
}
