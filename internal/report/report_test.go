package report

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/hprasetyo/finbot/internal/domain"
	"github.com/hprasetyo/finbot/internal/logger"
)

func totals(expense, income []domain.CategoryTotal) domain.CategoryTotals {
	return domain.CategoryTotals{Income: income, Expense: expense}
}

func ct(category string, total int64) domain.CategoryTotal {
	return domain.CategoryTotal{Category: category, Total: decimal.NewFromInt(total)}
}

func TestMonthly(t *testing.T) {
	records := []domain.Record{
		{Kind: domain.Income, Amount: decimal.NewFromInt(500000)},
		{Kind: domain.Expense, Amount: decimal.NewFromInt(30000)},
		{Kind: domain.Expense, Amount: decimal.NewFromInt(20000)},
	}

	msg := Monthly(records)

	for _, want := range []string{"Rp500.000", "Rp50.000", "Rp450.000"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Monthly() = %q, missing %q", msg, want)
		}
	}
}

func TestMonthly_Empty(t *testing.T) {
	msg := Monthly(nil)
	if !strings.Contains(msg, "Rp0") {
		t.Errorf("Monthly(nil) = %q, want zero totals", msg)
	}
}

func TestRenderBudget_TopThreeDescending(t *testing.T) {
	tt := totals(
		[]domain.CategoryTotal{
			ct("food", 30000),
			ct("transport", 20000),
			ct("bills", 45000),
			ct("entertainment", 5000),
		},
		[]domain.CategoryTotal{ct("salary", 500000)},
	)

	msg := RenderBudget(tt)

	billsIdx := strings.Index(msg, "1. bills")
	foodIdx := strings.Index(msg, "2. food")
	transportIdx := strings.Index(msg, "3. transport")
	if billsIdx == -1 || foodIdx == -1 || transportIdx == -1 {
		t.Fatalf("RenderBudget() = %q, want top-3 ranking by amount", msg)
	}
	if strings.Contains(msg, "entertainment") {
		t.Error("fourth category should not appear in top-3")
	}
	if !strings.Contains(msg, "Rp500.000") {
		t.Error("income total missing")
	}
}

func TestRenderBudget_TiesKeepFirstSeenOrder(t *testing.T) {
	tt := totals(
		[]domain.CategoryTotal{
			ct("food", 20000),
			ct("transport", 20000),
		},
		nil,
	)

	msg := RenderBudget(tt)

	if !strings.Contains(msg, "1. food") || !strings.Contains(msg, "2. transport") {
		t.Errorf("RenderBudget() = %q, want first-seen order on ties", msg)
	}
}

type stubNarrator struct {
	text string
	err  error
}

func (s *stubNarrator) Narrate(_ context.Context, _ domain.CategoryTotals) (string, error) {
	return s.text, s.err
}

func TestGenerator_PrefersNarrator(t *testing.T) {
	g := NewGenerator(&stubNarrator{text: "narrated analysis"}, logger.NewWithWriter(io.Discard))

	got := g.Budget(context.Background(), totals(nil, nil))
	if got != "narrated analysis" {
		t.Errorf("Budget() = %q, want narrator output", got)
	}
}

func TestGenerator_FallsBackOnNarratorError(t *testing.T) {
	g := NewGenerator(&stubNarrator{err: errors.New("backend down")}, logger.NewWithWriter(io.Discard))

	got := g.Budget(context.Background(), totals([]domain.CategoryTotal{ct("food", 1000)}, nil))
	if !strings.Contains(got, "Budget Analysis") {
		t.Errorf("Budget() = %q, want deterministic fallback", got)
	}
}

func TestGenerator_NilNarrator(t *testing.T) {
	g := NewGenerator(nil, logger.NewWithWriter(io.Discard))

	got := g.Budget(context.Background(), totals([]domain.CategoryTotal{ct("food", 1000)}, nil))
	if !strings.Contains(got, "Budget Analysis") {
		t.Errorf("Budget() = %q, want deterministic rendering", got)
	}
}
