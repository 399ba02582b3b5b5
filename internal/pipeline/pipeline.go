// Package pipeline runs the per-file extraction chain: raw statement text
// through the bank parser and the normalizer into transactions, with the
// per-line and per-file error policy applied.
package pipeline

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pu10c88/bank-statement-extractor/internal/config"
	"github.com/pu10c88/bank-statement-extractor/internal/extractor"
	"github.com/pu10c88/bank-statement-extractor/internal/models"
	"github.com/pu10c88/bank-statement-extractor/internal/parser"
)

// Sentinel conditions that decide the process exit status.
var (
	ErrNoInputFiles   = errors.New("no statement PDF files found in the input folder")
	ErrNoTransactions = errors.New("no transactions were extracted from any input file")
)

// ExtractFunc supplies a statement file's page text. Swappable in tests so
// the pipeline is exercised without real PDFs.
type ExtractFunc func(path string) (string, error)

// Runner wires one bank's parser and normalizer for a run. Each file's
// processing is a pure function of its text, so a Runner is safe to share.
type Runner struct {
	parser  parser.Parser
	norm    *parser.Normalizer
	extract ExtractFunc
	log     *zap.SugaredLogger
}

// NewRunner builds the pipeline for the configured bank.
func NewRunner(bank models.BankType, keywords config.Keywords, log *zap.SugaredLogger) (*Runner, error) {
	p, err := parser.New(bank)
	if err != nil {
		return nil, err
	}
	return &Runner{
		parser:  p,
		norm:    parser.NewNormalizer(keywords.ForBank(bank)),
		extract: extractor.ExtractTextCombined,
		log:     log,
	}, nil
}

// Parser exposes the bank parser, mainly for its label.
func (r *Runner) Parser() parser.Parser { return r.parser }

// SetExtract overrides the text supplier (tests).
func (r *Runner) SetExtract(fn ExtractFunc) { r.extract = fn }

// ProcessText runs one statement's already-extracted text through parse and
// normalize. Zero recognized lines is not an error: the file simply
// contributes no transactions, surfaced as a warning.
func (r *Runner) ProcessText(text, filename string) ([]models.Transaction, error) {
	reference := fmt.Sprintf("%s-%s", bankPrefix(r.parser.Bank()), filename)

	ext, err := r.parser.Extract(text, filename)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	if len(ext.Matches) == 0 {
		r.log.Warnw("no lines matched any extraction rule", "file", filename)
		return nil, nil
	}

	ctx := models.StatementContext{
		Bank:          r.parser.Bank(),
		Reference:     reference,
		ReferenceYear: ext.ReferenceYear,
		CardNumber:    ext.CardNumber,
	}

	txns, dropped := r.norm.NormalizeAll(ext.Matches, ctx)
	if len(dropped) > 0 {
		r.log.Warnw("dropped unparseable lines", "file", filename, "count", len(dropped))
		for _, err := range dropped {
			r.log.Debugw("dropped line", "file", filename, "error", err)
		}
	}
	r.log.Infow("extracted transactions", "file", filename, "count", len(txns))
	return txns, nil
}

// ProcessFile extracts a single PDF's text and processes it.
func (r *Runner) ProcessFile(file extractor.FileInfo) ([]models.Transaction, error) {
	r.log.Debugw("reading statement file", "file", file.Name, "bytes", file.Size)
	text, err := r.extract(file.Path)
	if err != nil {
		return nil, fmt.Errorf("extracting text from %s: %w", file.Name, err)
	}
	return r.ProcessText(text, file.Name)
}

// ProcessFolder processes every PDF in the input folder sequentially,
// concatenating results. Unreadable files are skipped with a warning;
// only a folder with no PDFs at all, or one where every file contributed
// nothing, fails the run.
func (r *Runner) ProcessFolder(dir string) ([]models.Transaction, error) {
	files, err := extractor.ScanPDFs(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoInputFiles, dir)
	}
	r.log.Infow("processing statement folder", "dir", dir, "files", len(files))

	var all []models.Transaction
	for _, f := range files {
		txns, err := r.ProcessFile(f)
		if err != nil {
			r.log.Warnw("skipping file", "file", f.Name, "error", err)
			continue
		}
		all = append(all, txns...)
	}
	if len(all) == 0 {
		return nil, ErrNoTransactions
	}
	return all, nil
}

func bankPrefix(bank models.BankType) string {
	if bank == models.BankItau {
		return "Itau"
	}
	return "Inter"
}
