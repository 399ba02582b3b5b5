package omie

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pu10c88/bank-statement-extractor/internal/models"
)

func TestMapDebit(t *testing.T) {
	m := NewMapper("Banco Inter")
	due := time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC)

	rec, ok := m.Map(models.Transaction{
		Date:       time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC),
		VendorName: "MERCADOLIVRE",
		Amount:     decimal.RequireFromString("150.00"),
		Type:       models.Debit,
		CardNumber: "1234",
	}, due)

	require.True(t, ok)
	assert.Equal(t, "MERCADOLIVRE", rec.SupplierName)
	assert.True(t, rec.Amount.Equal(decimal.RequireFromString("150.00")))
	assert.Equal(t, "1234", rec.CardNumber)
	assert.Empty(t, rec.Installments)
	assert.Equal(t, "Fatura do Banco Inter", rec.Observation)
	assert.Equal(t, "03/11/2024", rec.IssueDateString())
	assert.Equal(t, "10/12/2024", rec.DueDateString())
}

func TestMapCreditProducesNoRecord(t *testing.T) {
	m := NewMapper("Itaú")

	_, ok := m.Map(models.Transaction{
		VendorName: "PAGAMENTO RECEBIDO",
		Amount:     decimal.RequireFromString("1200.00"),
		Type:       models.Credit,
	}, time.Now())

	assert.False(t, ok)
}

func TestMapInstallments(t *testing.T) {
	m := NewMapper("Itaú")

	rec, ok := m.Map(models.Transaction{
		Date:             time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC),
		VendorName:       "LOJAS AMERICANAS",
		Amount:           decimal.RequireFromString("99.90"),
		Type:             models.Debit,
		InstallmentIndex: 3,
		InstallmentCount: 10,
	}, time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC))

	require.True(t, ok)
	assert.Equal(t, "3/10", rec.Installments)
	assert.Equal(t, "Fatura do Itaú - Parcela 3/10", rec.Observation)
}

// The record count of an export equals the debit count of its input:
// credits are excluded entirely, never mapped as negative titles.
func TestMapAllExcludesCredits(t *testing.T) {
	m := NewMapper("Banco Inter")
	due := time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC)

	txns := []models.Transaction{
		{VendorName: "A", Amount: decimal.RequireFromString("10.00"), Type: models.Debit},
		{VendorName: "B", Amount: decimal.RequireFromString("20.00"), Type: models.Credit},
		{VendorName: "C", Amount: decimal.RequireFromString("30.00"), Type: models.Debit},
	}

	records := m.MapAll(txns, due)
	require.Len(t, records, 2)
	assert.Equal(t, "A", records[0].SupplierName)
	assert.Equal(t, "C", records[1].SupplierName)
	for _, r := range records {
		assert.Equal(t, due, r.DueDate)
	}
}
