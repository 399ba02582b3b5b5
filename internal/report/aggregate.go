// Package report rolls normalized transactions into grouped views with
// consistent totals. Every view is a disposable projection recomputed from
// the transaction slice; nothing here mutates or persists.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pu10c88/bank-statement-extractor/internal/models"
)

// GroupKey selects the grouping dimension of a report view.
type GroupKey string

const (
	GroupNone   GroupKey = "none"
	GroupCard   GroupKey = "card"
	GroupVendor GroupKey = "vendor"
	GroupMonth  GroupKey = "month"
)

// UnknownCard is the bucket key for transactions whose source never
// exposed a card identifier.
const UnknownCard = "Unknown Card"

// Bucket is one group's aggregate. Net is credits minus debits, so the sum
// of nets across any grouping equals the global net.
type Bucket struct {
	Key         string
	NetAmount   decimal.Decimal
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
	Count       int
}

// ReportView is a derived, read-only grouping of transactions.
type ReportView struct {
	Key     GroupKey
	Buckets []Bucket
}

// Aggregate groups transactions by the given key. GroupNone produces a
// single bucket holding the global totals. Vendor buckets are ordered by
// total volume descending (the statement-review order); card and month
// buckets by key.
func Aggregate(txns []models.Transaction, key GroupKey) ReportView {
	byKey := make(map[string]*Bucket)
	var order []string

	for _, t := range txns {
		k := bucketKey(t, key)
		b, ok := byKey[k]
		if !ok {
			b = &Bucket{Key: k, NetAmount: decimal.Zero, DebitTotal: decimal.Zero, CreditTotal: decimal.Zero}
			byKey[k] = b
			order = append(order, k)
		}
		b.Count++
		if t.Type == models.Debit {
			b.DebitTotal = b.DebitTotal.Add(t.Amount)
		} else {
			b.CreditTotal = b.CreditTotal.Add(t.Amount)
		}
		b.NetAmount = b.CreditTotal.Sub(b.DebitTotal)
	}

	buckets := make([]Bucket, 0, len(order))
	for _, k := range order {
		buckets = append(buckets, *byKey[k])
	}

	switch key {
	case GroupVendor:
		sort.SliceStable(buckets, func(i, j int) bool {
			vi := buckets[i].DebitTotal.Add(buckets[i].CreditTotal)
			vj := buckets[j].DebitTotal.Add(buckets[j].CreditTotal)
			return vi.GreaterThan(vj)
		})
	case GroupCard, GroupMonth:
		sort.SliceStable(buckets, func(i, j int) bool {
			return lessBucketKey(key, buckets[i].Key, buckets[j].Key)
		})
	}

	return ReportView{Key: key, Buckets: buckets}
}

func bucketKey(t models.Transaction, key GroupKey) string {
	switch key {
	case GroupCard:
		if t.CardNumber == "" {
			return UnknownCard
		}
		return t.CardNumber
	case GroupVendor:
		return t.VendorName
	case GroupMonth:
		return t.MonthKey()
	default:
		return "all"
	}
}

// lessBucketKey orders month keys chronologically (MM/YYYY compares by
// year first) and everything else lexically.
func lessBucketKey(key GroupKey, a, b string) bool {
	if key == GroupMonth {
		ta, errA := time.Parse("01/2006", a)
		tb, errB := time.Parse("01/2006", b)
		if errA == nil && errB == nil {
			return ta.Before(tb)
		}
	}
	return a < b
}

// Summary is the global aggregate plus the breakdowns the summary report
// prints: per-card rows and the top expense vendors.
type Summary struct {
	TotalTransactions int
	TotalDebits       decimal.Decimal
	TotalCredits      decimal.Decimal
	NetAmount         decimal.Decimal
	EarliestDate      time.Time
	LatestDate        time.Time
	Cards             []Bucket
	TopVendors        []Bucket // debit activity only, by spend descending
}

// TopVendorLimit bounds the vendor breakdown in the summary report.
const TopVendorLimit = 10

// Summarize computes the global summary. Its totals agree with every
// grouped view built from the same transactions.
func Summarize(txns []models.Transaction) Summary {
	s := Summary{
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}
	for _, t := range txns {
		s.TotalTransactions++
		if t.Type == models.Debit {
			s.TotalDebits = s.TotalDebits.Add(t.Amount)
		} else {
			s.TotalCredits = s.TotalCredits.Add(t.Amount)
		}
		if s.EarliestDate.IsZero() || t.Date.Before(s.EarliestDate) {
			s.EarliestDate = t.Date
		}
		if t.Date.After(s.LatestDate) {
			s.LatestDate = t.Date
		}
	}
	s.NetAmount = s.TotalCredits.Sub(s.TotalDebits)

	s.Cards = Aggregate(txns, GroupCard).Buckets

	// rank by debit spend first, truncate after: a vendor's credit volume
	// must never push it into or out of the expense ranking
	for _, b := range Aggregate(txns, GroupVendor).Buckets {
		if b.DebitTotal.IsPositive() {
			s.TopVendors = append(s.TopVendors, b)
		}
	}
	sort.SliceStable(s.TopVendors, func(i, j int) bool {
		return s.TopVendors[i].DebitTotal.GreaterThan(s.TopVendors[j].DebitTotal)
	})
	if len(s.TopVendors) > TopVendorLimit {
		s.TopVendors = s.TopVendors[:TopVendorLimit]
	}

	return s
}

// FormatAmount renders a decimal with the two places every report uses.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// DateRange renders the summary's covered period, or "" with no data.
func (s Summary) DateRange() string {
	if s.EarliestDate.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s to %s", s.EarliestDate.Format("02/01/2006"), s.LatestDate.Format("02/01/2006"))
}
