package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pu10c88/bank-statement-extractor/internal/config"
	"github.com/pu10c88/bank-statement-extractor/internal/models"
)

func TestBuildRunConfig(t *testing.T) {
	cfg, err := buildRunConfig("inter", "standard", "", "", "", "", false)
	require.NoError(t, err)
	assert.Equal(t, models.BankInter, cfg.Bank)
	assert.Equal(t, config.ReportStandard, cfg.Report)
	assert.Equal(t, "InterStatements", cfg.InputDir)
	assert.Equal(t, "output", cfg.OutputDir)
}

func TestBuildRunConfigCanonicalizesBank(t *testing.T) {
	cfg, err := buildRunConfig("ITAU", "", "", "", "", "", false)
	require.NoError(t, err)
	assert.Equal(t, models.BankItau, cfg.Bank)
}

func TestBuildRunConfigErrors(t *testing.T) {
	tests := []struct {
		name  string
		bank  string
		rtype string
		date  string
		field string
	}{
		{"no bank", "", "standard", "", "bank"},
		{"unknown bank", "bradesco", "standard", "", "bank"},
		{"unknown report", "inter", "excel", "", "report-type"},
		{"bad invoice date", "inter", "omie", "2024-12-10", "invoice-date"},
		{"omie without date", "inter", "omie", "", "invoice-date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildRunConfig(tt.bank, tt.rtype, tt.date, "", "", "", false)
			var cfgErr *config.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestBuildRunConfigInvoiceDate(t *testing.T) {
	cfg, err := buildRunConfig("inter", "omie", "10/12/2024", "", "", "", false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC), cfg.InvoiceDate)
}

func TestRunExtractionMissingFolder(t *testing.T) {
	// a missing folder fails before any extraction happens
	cfg := &config.Run{
		Bank:      models.BankInter,
		Report:    config.ReportStandard,
		InputDir:  filepath.Join(t.TempDir(), "missing"),
		OutputDir: t.TempDir(),
	}
	require.NoError(t, cfg.Validate())

	var out bytes.Buffer
	err := runExtraction(&out, cfg, config.DefaultKeywords(), zap.NewNop().Sugar())
	assert.Error(t, err)
}

func TestRootCommandRejectsUnknownBank(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--bank", "bradesco", "--input", t.TempDir()})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bank")
}

func TestRootCommandEmptyFolder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(dir, 0o755))

	cmd := NewRootCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--bank", "inter", "--input", dir, "--output", t.TempDir()})

	err := cmd.Execute()
	assert.Error(t, err)
}
