// Package stats builds the dashboard rollups: spending by time window, by
// parent category, and the system-wide summary counters.
package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitbooks-dev/splitbooks/internal/balance"
	"github.com/splitbooks-dev/splitbooks/internal/ledger"
	"github.com/splitbooks-dev/splitbooks/internal/model"
	"github.com/splitbooks-dev/splitbooks/internal/query"
)

// PeriodSpending is the expense rollup for one time window.
type PeriodSpending struct {
	Total            decimal.Decimal
	ByPerson         map[string]decimal.Decimal
	TransactionCount int
}

// SpendingByPeriod totals the expenses in the rolling window for p,
// grouped by payer.
func SpendingByPeriod(txns []model.Transaction, p query.Period, now time.Time) PeriodSpending {
	w := query.RollingWindow(p, now)
	matched := query.Apply(txns, query.Filter{
		StartDate: w.Start,
		EndDate:   w.End,
		Type:      model.TypeExpense,
	})

	out := PeriodSpending{
		ByPerson:         make(map[string]decimal.Decimal),
		TransactionCount: len(matched),
	}
	for _, t := range matched {
		out.Total = out.Total.Add(t.Amount)
		out.ByPerson[t.WhoPaid] = out.ByPerson[t.WhoPaid].Add(t.Amount)
	}
	return out
}

// AccountSpending is the expense rollup for one parent category.
type AccountSpending struct {
	Total            decimal.Decimal
	BySubAccount     map[string]decimal.Decimal
	TransactionCount int
}

// ParentAccountSpending totals the expenses under a parent category, grouped
// by sub-account. Either date bound may be empty for an open range.
func ParentAccountSpending(txns []model.Transaction, parent, startDate, endDate string) AccountSpending {
	matched := query.Apply(txns, query.Filter{
		ParentAccount: parent,
		Type:          model.TypeExpense,
		StartDate:     startDate,
		EndDate:       endDate,
	})

	out := AccountSpending{
		BySubAccount:     make(map[string]decimal.Decimal),
		TransactionCount: len(matched),
	}
	for _, t := range matched {
		out.Total = out.Total.Add(t.Amount)
		out.BySubAccount[t.Account] = out.BySubAccount[t.Account].Add(t.Amount)
	}
	return out
}

// Summary holds the system-wide counters shown on the stats page.
type Summary struct {
	TotalTransactions int
	TotalRoommates    int
	TotalSubAccounts  int
	PositiveBalances  int
	NegativeBalances  int
	DataFileSize      int64
	LastUpdated       string
}

// Summarize computes the Summary for a store.
func Summarize(s *ledger.Store) Summary {
	txns := s.Transactions()
	sum := Summary{
		TotalTransactions: len(txns),
		TotalRoommates:    len(s.Roommates()),
		TotalSubAccounts:  len(s.Taxonomy().AllSubAccounts()),
		DataFileSize:      s.FileSize(),
		LastUpdated:       s.Metadata().LastUpdated,
	}
	for _, b := range balance.Calculate(txns) {
		switch {
		case b.IsPositive():
			sum.PositiveBalances++
		case b.IsNegative():
			sum.NegativeBalances++
		}
	}
	return sum
}
