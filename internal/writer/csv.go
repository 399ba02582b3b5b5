// Package writer serializes every report shape to CSV. Column order is part
// of the output contract.
package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pu10c88/bank-statement-extractor/internal/config"
	"github.com/pu10c88/bank-statement-extractor/internal/models"
	"github.com/pu10c88/bank-statement-extractor/internal/omie"
	"github.com/pu10c88/bank-statement-extractor/internal/report"
)

// dateFormat is the DD/MM/YYYY layout used for transaction dates in CSVs.
const dateFormat = "02/01/2006"

// CSVWriter writes report CSVs.
type CSVWriter struct{}

// WriteStandard writes the flat transaction export:
// date, description, amount, transaction_type, card_number, reference.
func (w *CSVWriter) WriteStandard(out io.Writer, txns []models.Transaction) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	if err := cw.Write([]string{"date", "description", "amount", "transaction_type", "card_number", "reference"}); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, t := range txns {
		row := []string{
			t.Date.Format(dateFormat),
			t.Description,
			report.FormatAmount(t.Amount),
			string(t.Type),
			t.CardNumber,
			t.Reference,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	return cw.Error()
}

// WriteOmie writes the Omie ERP accounts-payable import file.
func (w *CSVWriter) WriteOmie(out io.Writer, records []omie.Record) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	header := []string{"cNomeFornecedor", "nValorTitulo", "cNumeroCartao", "cNumeroParcelas", "cObservacao", "dEmissao", "dVencimento"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.SupplierName,
			report.FormatAmount(r.Amount),
			r.CardNumber,
			r.Installments,
			r.Observation,
			r.IssueDateString(),
			r.DueDateString(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	return cw.Error()
}

// groupKeyColumn names the first column of a grouped report.
func groupKeyColumn(key report.GroupKey) string {
	switch key {
	case report.GroupCard:
		return "card_number"
	case report.GroupVendor:
		return "vendor_name"
	case report.GroupMonth:
		return "month"
	default:
		return "group"
	}
}

// WriteGrouped writes a by-card / by-vendor / by-month view: the grouping
// key column followed by net_amount, debit_total, credit_total,
// transaction_count.
func (w *CSVWriter) WriteGrouped(out io.Writer, view report.ReportView) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	header := []string{groupKeyColumn(view.Key), "net_amount", "debit_total", "credit_total", "transaction_count"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, b := range view.Buckets {
		row := []string{
			b.Key,
			report.FormatAmount(b.NetAmount),
			report.FormatAmount(b.DebitTotal),
			report.FormatAmount(b.CreditTotal),
			strconv.Itoa(b.Count),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	return cw.Error()
}

// WriteSummary writes the aggregate metrics followed by the per-card and
// top-vendor breakdowns as repeated rows.
func (w *CSVWriter) WriteSummary(out io.Writer, s report.Summary) error {
	cw := csv.NewWriter(out)
	defer cw.Flush()

	if err := cw.Write([]string{"metric", "value"}); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	rows := [][]string{
		{"total_transactions", strconv.Itoa(s.TotalTransactions)},
		{"total_debits", report.FormatAmount(s.TotalDebits)},
		{"total_credits", report.FormatAmount(s.TotalCredits)},
		{"net_amount", report.FormatAmount(s.NetAmount)},
	}
	if dr := s.DateRange(); dr != "" {
		rows = append(rows, []string{"date_range", dr})
	}
	for _, b := range s.Cards {
		rows = append(rows, []string{"card:" + b.Key, report.FormatAmount(b.NetAmount)})
	}
	for _, b := range s.TopVendors {
		rows = append(rows, []string{"vendor:" + b.Key, report.FormatAmount(b.DebitTotal)})
	}

	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	return cw.Error()
}

// WriteToFile creates path (and its directory) and streams one report into
// it via write.
func (w *CSVWriter) WriteToFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file %q: %w", path, err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return err
	}
	return f.Close()
}

// OutputPath resolves the final report path inside outputDir: a custom
// filename when given (with .csv enforced), a timestamped per-report default
// otherwise.
func OutputPath(outputDir, filename string, reportType config.ReportType, now time.Time) string {
	if filename == "" {
		filename = fmt.Sprintf("%s_%s.csv", defaultStem(reportType), now.Format("20060102_150405"))
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".csv") {
		filename += ".csv"
	}
	return filepath.Join(outputDir, filename)
}

func defaultStem(reportType config.ReportType) string {
	switch reportType {
	case config.ReportOmie:
		return "omie_transactions"
	case config.ReportByCard:
		return "transactions_by_card"
	case config.ReportByVendor:
		return "transactions_by_vendor"
	case config.ReportByMonth:
		return "transactions_by_month"
	case config.ReportSummary:
		return "summary_report"
	default:
		return "bank_transactions"
	}
}
