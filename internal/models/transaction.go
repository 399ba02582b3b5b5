package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tells whether money left or entered the account.
// Amounts are always non-negative magnitudes; direction lives here.
type TransactionType string

const (
	Debit  TransactionType = "debit"
	Credit TransactionType = "credit"
)

// Transaction represents one normalized statement line. Immutable once
// produced by the normalizer.
type Transaction struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"` // raw text as it appeared in the source
	VendorName  string          `json:"vendorName"`  // canonicalized merchant name
	Amount      decimal.Decimal `json:"amount"`      // magnitude, always >= 0
	Type        TransactionType `json:"type"`
	CardNumber  string          `json:"cardNumber,omitempty"` // empty when the source never exposed one

	// Installment plan fields. Both zero when no installment marker was
	// found; both set (1 <= Index <= Count) otherwise.
	InstallmentIndex int `json:"installmentIndex,omitempty"`
	InstallmentCount int `json:"installmentCount,omitempty"`

	Reference string `json:"reference"` // source file identifier
}

// HasInstallments reports whether the line carried an installment marker.
func (t Transaction) HasInstallments() bool {
	return t.InstallmentIndex > 0 && t.InstallmentCount > 0
}

// InstallmentLabel returns "index/count", or "" when not an installment.
func (t Transaction) InstallmentLabel() string {
	if !t.HasInstallments() {
		return ""
	}
	return fmt.Sprintf("%d/%d", t.InstallmentIndex, t.InstallmentCount)
}

// MonthKey returns the MM/YYYY grouping key for monthly reports.
func (t Transaction) MonthKey() string {
	return t.Date.Format("01/2006")
}

// BankType identifies a supported statement layout.
type BankType string

const (
	BankInter BankType = "inter"
	BankItau  BankType = "itau"
)

// ParseBankType validates a bank designation from flags or API parameters.
func ParseBankType(s string) (BankType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inter":
		return BankInter, nil
	case "itau", "itaú":
		return BankItau, nil
	default:
		return "", fmt.Errorf("unsupported bank type: %q (supported: inter, itau)", s)
	}
}

// RawMatch carries the fields a pattern rule extracted from one or more
// physical lines, before date and amount normalization.
type RawMatch struct {
	DateText    string // date exactly as printed ("03 de nov. 2024", "26/11", ...)
	Description string
	AmountText  string
	CreditMark  bool   // the line carried an explicit credit sign ("+ R$")
	CardNumber  string // card-context active when the rule matched
	Line        int    // 1-based physical line number, for warnings
	Rule        string // name of the pattern rule that matched
}

// StatementContext holds per-file facts the normalizer needs beyond the
// matched fields themselves.
type StatementContext struct {
	Bank          BankType
	Reference     string // source file identifier
	ReferenceYear int    // statement year inherited by day/month-only dates
	CardNumber    string // file-level card, when the statement has exactly one
}
