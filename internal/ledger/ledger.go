// Package ledger is the append-only financial record store with a running
// balance. The balance of each appended record is derived from the
// previous one at append time, which keeps balance queries O(1) but makes
// the ledger sensitive to append order.
package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hprasetyo/finbot/internal/domain"
)

// Ledger is the persistence contract consumed by the conversation engine.
type Ledger interface {
	// Append records a confirmed proposal and returns the stored record
	// including its running balance.
	Append(ctx context.Context, proposal domain.Proposal) (domain.Record, error)

	// CurrentBalance returns the running balance after the last record.
	CurrentBalance(ctx context.Context) (decimal.Decimal, error)

	// MonthlyReport returns all records stamped within the given month.
	MonthlyReport(ctx context.Context, month time.Month, year int) ([]domain.Record, error)

	// CategoryTotals aggregates the month's records per category, split by
	// kind, in first-seen order.
	CategoryTotals(ctx context.Context, month time.Month, year int) (domain.CategoryTotals, error)
}

func totalsFromRecords(records []domain.Record) domain.CategoryTotals {
	var totals domain.CategoryTotals
	for _, r := range records {
		if r.Kind == domain.Income {
			totals.AddIncome(r.Category, r.Amount)
		} else {
			totals.AddExpense(r.Category, r.Amount)
		}
	}
	return totals
}

func inMonth(ts time.Time, month time.Month, year int) bool {
	return ts.Month() == month && ts.Year() == year
}
