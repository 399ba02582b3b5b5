// Package cli defines the command surface: the root command runs an
// extraction over a statement folder, "serve" exposes the HTTP API.
package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pu10c88/bank-statement-extractor/internal/config"
	"github.com/pu10c88/bank-statement-extractor/internal/models"
	"github.com/pu10c88/bank-statement-extractor/internal/pipeline"
	"github.com/pu10c88/bank-statement-extractor/internal/report"
	"github.com/pu10c88/bank-statement-extractor/internal/writer"
)

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	var (
		bankFlag     string
		reportFlag   string
		invoiceFlag  string
		inputFlag    string
		outputFlag   string
		filenameFlag string
		keywordsFlag string
		verboseFlag  bool
	)

	rootCmd := &cobra.Command{
		Use:   "bank-statement-extractor",
		Short: "Extract transactions from Inter and Itaú statement PDFs into CSV reports",
		Long: `Parses bank and credit-card statement PDFs (Banco Inter, Itaú),
normalizes every transaction line, and exports CSV reports: the flat
transaction list, grouped views (by card, vendor, or month), a summary,
or an accounts-payable file in the Omie ERP import schema.`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildRunConfig(bankFlag, reportFlag, invoiceFlag, inputFlag, outputFlag, filenameFlag, verboseFlag)
			if err != nil {
				return err
			}

			keywords := config.DefaultKeywords()
			if keywordsFlag != "" {
				if keywords, err = config.LoadKeywords(keywordsFlag); err != nil {
					return err
				}
			}

			log := newLogger(cfg.Verbose)
			defer log.Sync() //nolint:errcheck

			return runExtraction(cmd.OutOrStdout(), cfg, keywords, log.Sugar())
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&bankFlag, "bank", "b", "", "bank type: inter or itau (required)")
	flags.StringVarP(&reportFlag, "report-type", "r", "standard", "report: standard, omie, by-card, by-vendor, by-month, summary")
	flags.StringVar(&invoiceFlag, "invoice-date", "", "invoice due date for the omie report (DD/MM/YYYY)")
	flags.StringVarP(&inputFlag, "input", "i", "", "folder containing statement PDFs (defaults per bank)")
	flags.StringVarP(&outputFlag, "output", "o", "", "output folder for CSV files (default \"output\")")
	flags.StringVarP(&filenameFlag, "filename", "f", "", "custom output filename")
	flags.StringVar(&keywordsFlag, "keywords", "", "YAML file overriding the debit/credit classification keywords")
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(newServeCommand())
	return rootCmd
}

// buildRunConfig assembles and validates the immutable run configuration.
// Validation failures are fatal and happen before any file is read.
func buildRunConfig(bank, reportType, invoiceDate, input, output, filename string, verbose bool) (*config.Run, error) {
	cfg := &config.Run{
		InputDir:  input,
		OutputDir: output,
		Filename:  filename,
		Verbose:   verbose,
	}
	if bank != "" {
		b, err := models.ParseBankType(bank)
		if err != nil {
			return nil, &config.ConfigError{Field: "bank", Reason: err.Error()}
		}
		cfg.Bank = b
	}

	rt, err := config.ParseReportType(reportType)
	if err != nil {
		return nil, &config.ConfigError{Field: "report-type", Reason: err.Error()}
	}
	cfg.Report = rt

	if invoiceDate != "" {
		d, err := time.Parse(config.InvoiceDateFormat, invoiceDate)
		if err != nil {
			return nil, &config.ConfigError{Field: "invoice-date", Reason: "expected DD/MM/YYYY format"}
		}
		cfg.InvoiceDate = d
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(verbose bool) *zap.Logger {
	zcfg := zap.NewDevelopmentConfig()
	if !verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	log, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// runExtraction executes a validated run end to end: process the folder,
// write the requested report, print the summary.
func runExtraction(out io.Writer, cfg *config.Run, keywords config.Keywords, log *zap.SugaredLogger) error {
	runner, err := pipeline.NewRunner(cfg.Bank, keywords, log)
	if err != nil {
		return err
	}

	txns, err := runner.ProcessFolder(cfg.InputDir)
	if err != nil {
		return err
	}

	path := writer.OutputPath(cfg.OutputDir, cfg.Filename, cfg.Report, time.Now())
	w := &writer.CSVWriter{}
	err = w.WriteToFile(path, func(fw io.Writer) error {
		return w.WriteReport(fw, cfg.Report, txns, runner.Parser().Label(), cfg.InvoiceDate)
	})
	if err != nil {
		return err
	}

	printSummary(out, report.Summarize(txns), path)
	return nil
}

func printSummary(out io.Writer, s report.Summary, path string) {
	line := func(format string, args ...any) { fmt.Fprintf(out, format+"\n", args...) }

	line("Extraction summary")
	line("  Transactions: %d", s.TotalTransactions)
	line("  Debits:  R$ %s", report.FormatAmount(s.TotalDebits))
	line("  Credits: R$ %s", report.FormatAmount(s.TotalCredits))
	line("  Net:     R$ %s", report.FormatAmount(s.NetAmount))
	if dr := s.DateRange(); dr != "" {
		line("  Period:  %s", dr)
	}

	if len(s.Cards) > 0 {
		line("Breakdown by card")
		for _, b := range s.Cards {
			line("  %s: %d transactions, debits R$ %s, credits R$ %s, net R$ %s",
				b.Key, b.Count,
				report.FormatAmount(b.DebitTotal),
				report.FormatAmount(b.CreditTotal),
				report.FormatAmount(b.NetAmount))
		}
	}

	if len(s.TopVendors) > 0 {
		line("Top vendor expenses")
		for i, b := range s.TopVendors {
			line("  %2d. %s: R$ %s (%d transactions)", i+1, b.Key, report.FormatAmount(b.DebitTotal), b.Count)
		}
	}

	line("Report saved: %s", path)
}
