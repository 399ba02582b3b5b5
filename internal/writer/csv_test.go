package writer

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pu10c88/bank-statement-extractor/internal/config"
	"github.com/pu10c88/bank-statement-extractor/internal/models"
	"github.com/pu10c88/bank-statement-extractor/internal/omie"
	"github.com/pu10c88/bank-statement-extractor/internal/report"
)

func readCSV(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	rows, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	return rows
}

func testTransactions() []models.Transaction {
	return []models.Transaction{
		{
			Date:        time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC),
			Description: "MERCADOLIVRE",
			VendorName:  "MERCADOLIVRE",
			Amount:      decimal.RequireFromString("150.00"),
			Type:        models.Debit,
			CardNumber:  "1234",
			Reference:   "Inter-fatura.pdf",
		},
		{
			Date:        time.Date(2024, 11, 7, 0, 0, 0, 0, time.UTC),
			Description: "PAGAMENTO RECEBIDO",
			VendorName:  "PAGAMENTO RECEBIDO",
			Amount:      decimal.RequireFromString("1200.00"),
			Type:        models.Credit,
			CardNumber:  "1234",
			Reference:   "Inter-fatura.pdf",
		},
	}
}

func TestWriteStandard(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	require.NoError(t, w.WriteStandard(&buf, testTransactions()))

	rows := readCSV(t, &buf)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"date", "description", "amount", "transaction_type", "card_number", "reference"}, rows[0])
	assert.Equal(t, []string{"03/11/2024", "MERCADOLIVRE", "150.00", "debit", "1234", "Inter-fatura.pdf"}, rows[1])
	assert.Equal(t, "credit", rows[2][3])
}

func TestWriteOmie(t *testing.T) {
	m := omie.NewMapper("Banco Inter")
	due := time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC)
	records := m.MapAll(testTransactions(), due)

	var buf bytes.Buffer
	w := &CSVWriter{}
	require.NoError(t, w.WriteOmie(&buf, records))

	rows := readCSV(t, &buf)
	// header plus the single debit; the credit never reaches the file
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"cNomeFornecedor", "nValorTitulo", "cNumeroCartao", "cNumeroParcelas", "cObservacao", "dEmissao", "dVencimento"}, rows[0])
	assert.Equal(t, []string{"MERCADOLIVRE", "150.00", "1234", "", "Fatura do Banco Inter", "03/11/2024", "10/12/2024"}, rows[1])
}

func TestWriteGrouped(t *testing.T) {
	view := report.Aggregate(testTransactions(), report.GroupCard)

	var buf bytes.Buffer
	w := &CSVWriter{}
	require.NoError(t, w.WriteGrouped(&buf, view))

	rows := readCSV(t, &buf)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"card_number", "net_amount", "debit_total", "credit_total", "transaction_count"}, rows[0])
	assert.Equal(t, []string{"1234", "1050.00", "150.00", "1200.00", "2"}, rows[1])
}

func TestWriteSummary(t *testing.T) {
	s := report.Summarize(testTransactions())

	var buf bytes.Buffer
	w := &CSVWriter{}
	require.NoError(t, w.WriteSummary(&buf, s))

	rows := readCSV(t, &buf)
	assert.Equal(t, []string{"metric", "value"}, rows[0])
	assert.Equal(t, []string{"total_transactions", "2"}, rows[1])
	assert.Equal(t, []string{"total_debits", "150.00"}, rows[2])
	assert.Equal(t, []string{"total_credits", "1200.00"}, rows[3])
	assert.Equal(t, []string{"net_amount", "1050.00"}, rows[4])
	assert.Equal(t, []string{"date_range", "03/11/2024 to 07/11/2024"}, rows[5])
}

func TestWriteToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.csv")

	w := &CSVWriter{}
	err := w.WriteToFile(path, func(out io.Writer) error {
		return w.WriteStandard(out, testTransactions())
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "MERCADOLIVRE")
}

func TestOutputPath(t *testing.T) {
	now := time.Date(2024, 12, 1, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, filepath.Join("out", "custom.csv"),
		OutputPath("out", "custom", config.ReportStandard, now))
	assert.Equal(t, filepath.Join("out", "report.csv"),
		OutputPath("out", "report.csv", config.ReportStandard, now))
	assert.Equal(t, filepath.Join("out", "omie_transactions_20241201_150405.csv"),
		OutputPath("out", "", config.ReportOmie, now))
	assert.Equal(t, filepath.Join("out", "bank_transactions_20241201_150405.csv"),
		OutputPath("out", "", config.ReportStandard, now))
}
