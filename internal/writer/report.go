package writer

import (
	"fmt"
	"io"
	"time"

	"github.com/pu10c88/bank-statement-extractor/internal/config"
	"github.com/pu10c88/bank-statement-extractor/internal/models"
	"github.com/pu10c88/bank-statement-extractor/internal/omie"
	"github.com/pu10c88/bank-statement-extractor/internal/report"
)

// WriteReport serializes the requested report view of txns. bankLabel feeds
// the Omie observation field; dueDate is only consulted for the Omie report.
func (w *CSVWriter) WriteReport(out io.Writer, reportType config.ReportType, txns []models.Transaction, bankLabel string, dueDate time.Time) error {
	switch reportType {
	case config.ReportStandard:
		return w.WriteStandard(out, txns)
	case config.ReportOmie:
		records := omie.NewMapper(bankLabel).MapAll(txns, dueDate)
		return w.WriteOmie(out, records)
	case config.ReportByCard:
		return w.WriteGrouped(out, report.Aggregate(txns, report.GroupCard))
	case config.ReportByVendor:
		return w.WriteGrouped(out, report.Aggregate(txns, report.GroupVendor))
	case config.ReportByMonth:
		return w.WriteGrouped(out, report.Aggregate(txns, report.GroupMonth))
	case config.ReportSummary:
		return w.WriteSummary(out, report.Summarize(txns))
	default:
		return fmt.Errorf("unknown report type: %q", reportType)
	}
}
