package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pu10c88/bank-statement-extractor/internal/models"
)

// Classification holds the keyword sets that steer debit/credit
// classification for one bank. The sets are data, not logic: real
// statements keep surfacing new wordings, so they are overridable
// from a YAML file.
type Classification struct {
	CreditKeywords []string `yaml:"credit_keywords"`
	DebitKeywords  []string `yaml:"debit_keywords"`
}

// Keywords bundles the per-bank classification sets.
type Keywords struct {
	Inter Classification `yaml:"inter"`
	Itau  Classification `yaml:"itau"`
}

// ForBank returns the classification set for the given bank.
func (k Keywords) ForBank(bank models.BankType) Classification {
	if bank == models.BankItau {
		return k.Itau
	}
	return k.Inter
}

// DefaultKeywords returns the built-in keyword sets, validated against real
// Inter and Itaú statement samples.
func DefaultKeywords() Keywords {
	return Keywords{
		Inter: Classification{
			CreditKeywords: []string{
				"CREDIT", "DEPOSIT", "TRANSFER IN", "REFUND", "INTEREST",
				"PAGAMENTO", "DEB AUT", "ESTORNO",
			},
			DebitKeywords: []string{
				"DEBIT", "WITHDRAWAL", "TRANSFER OUT", "FEE", "CHARGE",
				"MULTA", "ENCARGOS", "JUROS", "IOF", "TRANSFERENCIA",
			},
		},
		Itau: Classification{
			CreditKeywords: []string{
				"PAGAMENTO", "CREDITO", "CRÉDITO", "ESTORNO", "DEVOLUÇÃO", "DEVOLUCAO",
			},
			DebitKeywords: []string{
				"COMPRA", "SAQUE", "ANUIDADE", "JUROS", "MULTA", "IOF", "ENCARGO",
			},
		},
	}
}

// LoadKeywords reads a keywords YAML file and overlays it on the defaults.
// Only non-empty sets in the file replace the built-in ones.
func LoadKeywords(path string) (Keywords, error) {
	kw := DefaultKeywords()

	data, err := os.ReadFile(path)
	if err != nil {
		return kw, fmt.Errorf("reading keywords file: %w", err)
	}

	var loaded Keywords
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return kw, fmt.Errorf("parsing keywords file: %w", err)
	}

	overlay(&kw.Inter, loaded.Inter)
	overlay(&kw.Itau, loaded.Itau)
	return kw, nil
}

func overlay(dst *Classification, src Classification) {
	if len(src.CreditKeywords) > 0 {
		dst.CreditKeywords = src.CreditKeywords
	}
	if len(src.DebitKeywords) > 0 {
		dst.DebitKeywords = src.DebitKeywords
	}
}

// ReportType selects which CSV report a run produces.
type ReportType string

const (
	ReportStandard ReportType = "standard"
	ReportOmie     ReportType = "omie"
	ReportByCard   ReportType = "by-card"
	ReportByVendor ReportType = "by-vendor"
	ReportByMonth  ReportType = "by-month"
	ReportSummary  ReportType = "summary"
)

// ParseReportType validates a report designation.
func ParseReportType(s string) (ReportType, error) {
	switch ReportType(s) {
	case ReportStandard, ReportOmie, ReportByCard, ReportByVendor, ReportByMonth, ReportSummary:
		return ReportType(s), nil
	case "":
		return ReportStandard, nil
	default:
		return "", fmt.Errorf("unknown report type: %q", s)
	}
}

// InvoiceDateFormat is the DD/MM/YYYY layout used for the Omie due date flag.
const InvoiceDateFormat = "02/01/2006"

// Run is the immutable configuration for one extraction run. It is built
// once from flags (or API parameters) and passed into components; nothing
// reads ambient state.
type Run struct {
	Bank        models.BankType
	Report      ReportType
	InvoiceDate time.Time // due date for the Omie export, zero otherwise
	InputDir    string
	OutputDir   string
	Filename    string // optional custom output filename
	Verbose     bool
}

// ConfigError is a fatal misconfiguration detected before any file is read.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// DefaultInputDir returns the conventional statement folder per bank.
func DefaultInputDir(bank models.BankType) string {
	if bank == models.BankItau {
		return "ItauStatements"
	}
	return "InterStatements"
}

// DefaultOutputDir is where report files land unless overridden.
const DefaultOutputDir = "output"

// Validate checks the run configuration and fills defaulted folders.
// Bank selection is mandatory; the Omie report additionally requires an
// invoice due date.
func (r *Run) Validate() error {
	if r.Bank == "" {
		return &ConfigError{Field: "bank", Reason: "bank selection is required (inter or itau)"}
	}
	if _, err := models.ParseBankType(string(r.Bank)); err != nil {
		return &ConfigError{Field: "bank", Reason: err.Error()}
	}
	if r.Report == "" {
		r.Report = ReportStandard
	}
	if r.Report == ReportOmie && r.InvoiceDate.IsZero() {
		return &ConfigError{Field: "invoice-date", Reason: "the omie report requires an invoice due date (DD/MM/YYYY)"}
	}
	if r.InputDir == "" {
		r.InputDir = DefaultInputDir(r.Bank)
	}
	if r.OutputDir == "" {
		r.OutputDir = DefaultOutputDir
	}
	return nil
}
