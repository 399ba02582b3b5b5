// Package api exposes the conversion pipeline over HTTP for callers that
// upload statements instead of running the CLI.
package api

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/pu10c88/bank-statement-extractor/internal/config"
	"github.com/pu10c88/bank-statement-extractor/internal/extractor"
	"github.com/pu10c88/bank-statement-extractor/internal/models"
	"github.com/pu10c88/bank-statement-extractor/internal/pipeline"
	"github.com/pu10c88/bank-statement-extractor/internal/report"
	"github.com/pu10c88/bank-statement-extractor/internal/writer"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// pageBreak separates pages in client-side extracted text.
const pageBreak = "\n---PAGE_BREAK---\n"

// ConvertResponse is the JSON response from POST /api/convert.
type ConvertResponse struct {
	Success      bool                 `json:"success"`
	Error        string               `json:"error,omitempty"`
	Bank         string               `json:"bank,omitempty"`
	Count        int                  `json:"count"`
	TotalDebit   string               `json:"totalDebit"`
	TotalCredit  string               `json:"totalCredit"`
	NetAmount    string               `json:"netAmount"`
	Transactions []models.Transaction `json:"transactions"`
	CSV          string               `json:"csv,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Keywords config.Keywords
	Log      *zap.SugaredLogger
}

// NewApp builds the fiber application with all routes registered.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:             32 << 20, // statement PDFs are small; 32MB is generous
		DisableStartupMessage: true,
	})
	app.Get("/api/health", h.handleHealth)
	app.Post("/api/convert", h.handleConvert)
	return app
}

func (h *Handler) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": Version,
		"engine":  "fiber",
	})
}

func (h *Handler) handleConvert(c *fiber.Ctx) error {
	bank, err := models.ParseBankType(c.FormValue("bank"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}
	reportType, err := config.ParseReportType(c.FormValue("reportType"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	var dueDate time.Time
	if reportType == config.ReportOmie {
		dueDate, err = time.Parse(config.InvoiceDateFormat, c.FormValue("invoiceDate"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "the omie report requires invoiceDate in DD/MM/YYYY format")
		}
	}

	text, filename, err := h.statementText(c)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	runner, err := pipeline.NewRunner(bank, h.Keywords, h.Log)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	txns, err := runner.ProcessText(text, filename)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var csvBuf bytes.Buffer
	w := &writer.CSVWriter{}
	if err := w.WriteReport(&csvBuf, reportType, txns, runner.Parser().Label(), dueDate); err != nil {
		return writeError(c, fiber.StatusInternalServerError, err.Error())
	}

	s := report.Summarize(txns)
	return c.JSON(ConvertResponse{
		Success:      true,
		Bank:         string(bank),
		Count:        s.TotalTransactions,
		TotalDebit:   report.FormatAmount(s.TotalDebits),
		TotalCredit:  report.FormatAmount(s.TotalCredits),
		NetAmount:    report.FormatAmount(s.NetAmount),
		Transactions: txns,
		CSV:          csvBuf.String(),
	})
}

// statementText returns the raw statement text: either the pre-extracted
// text field (client-side PDF extraction) or the text of an uploaded PDF.
func (h *Handler) statementText(c *fiber.Ctx) (text, filename string, err error) {
	if extracted := c.FormValue("extractedText"); extracted != "" {
		pages := strings.Split(extracted, pageBreak)
		return strings.Join(pages, "\n"), c.FormValue("filename", "upload"), nil
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return "", "", fiber.NewError(fiber.StatusBadRequest, "no file uploaded; use form field 'file' or 'extractedText'")
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
		return "", "", fiber.NewError(fiber.StatusBadRequest, "only PDF files are supported")
	}

	tmp := filepath.Join(os.TempDir(), "stmt-upload-*.pdf")
	f, err := os.CreateTemp(filepath.Dir(tmp), filepath.Base(tmp))
	if err != nil {
		return "", "", err
	}
	f.Close()
	defer os.Remove(f.Name())

	if err := c.SaveFile(fh, f.Name()); err != nil {
		return "", "", err
	}
	text, err = extractor.ExtractTextCombined(f.Name())
	if err != nil {
		return "", "", err
	}
	return text, fh.Filename, nil
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{Success: false, Error: msg})
}
