package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hprasetyo/finbot/internal/domain"
)

func expense(amount int64, category string) domain.Proposal {
	return domain.Proposal{
		Kind:        domain.Expense,
		Amount:      decimal.NewFromInt(amount),
		Category:    category,
		Description: category,
	}
}

func income(amount int64, category string) domain.Proposal {
	return domain.Proposal{
		Kind:        domain.Income,
		Amount:      decimal.NewFromInt(amount),
		Category:    category,
		Description: category,
	}
}

func TestMemory_RunningBalance(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	rec, err := m.Append(ctx, income(1000000, "salary"))
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if !rec.Balance.Equal(decimal.NewFromInt(1000000)) {
		t.Errorf("balance after income = %s, want 1000000", rec.Balance)
	}

	rec, err = m.Append(ctx, expense(50000, "food"))
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if !rec.Balance.Equal(decimal.NewFromInt(950000)) {
		t.Errorf("balance after expense = %s, want 950000", rec.Balance)
	}

	balance, err := m.CurrentBalance(ctx)
	if err != nil {
		t.Fatalf("CurrentBalance() error = %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(950000)) {
		t.Errorf("CurrentBalance() = %s, want 950000", balance)
	}
}

func TestMemory_MonthlyReportFiltersByMonth(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	stamp := time.Date(2026, time.July, 15, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return stamp }
	if _, err := m.Append(ctx, expense(30000, "food")); err != nil {
		t.Fatal(err)
	}

	m.now = func() time.Time { return stamp.AddDate(0, 1, 0) }
	if _, err := m.Append(ctx, expense(20000, "transport")); err != nil {
		t.Fatal(err)
	}

	july, err := m.MonthlyReport(ctx, time.July, 2026)
	if err != nil {
		t.Fatalf("MonthlyReport() error = %v", err)
	}
	if len(july) != 1 || july[0].Category != "food" {
		t.Errorf("MonthlyReport(July) = %+v, want the single food record", july)
	}
}

func TestMemory_CategoryTotals(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	for _, p := range []domain.Proposal{
		expense(30000, "food"),
		expense(20000, "transport"),
		income(500000, "salary"),
		expense(10000, "food"),
	} {
		if _, err := m.Append(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	now := time.Now()
	totals, err := m.CategoryTotals(ctx, now.Month(), now.Year())
	if err != nil {
		t.Fatalf("CategoryTotals() error = %v", err)
	}

	if len(totals.Income) != 1 || totals.Income[0].Category != "salary" ||
		!totals.Income[0].Total.Equal(decimal.NewFromInt(500000)) {
		t.Errorf("income totals = %+v, want salary:500000", totals.Income)
	}

	wantExpense := []struct {
		category string
		total    int64
	}{
		{"food", 40000},
		{"transport", 20000},
	}
	if len(totals.Expense) != len(wantExpense) {
		t.Fatalf("expense totals = %+v, want %d categories", totals.Expense, len(wantExpense))
	}
	for i, want := range wantExpense {
		got := totals.Expense[i]
		if got.Category != want.category || !got.Total.Equal(decimal.NewFromInt(want.total)) {
			t.Errorf("expense[%d] = %+v, want %s:%d", i, got, want.category, want.total)
		}
	}
}
