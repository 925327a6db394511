// Package report renders the user-facing summaries behind the "report" and
// "budget" commands. Rendering is pure; the optional AI narrator only
// decorates the deterministic result.
package report

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/hprasetyo/finbot/internal/domain"
	"github.com/hprasetyo/finbot/internal/format"
)

// Narrator turns category totals into a narrative budget analysis.
type Narrator interface {
	Narrate(ctx context.Context, totals domain.CategoryTotals) (string, error)
}

// Generator produces the budget message, preferring the narrator when one
// is configured and falling back to the deterministic rendering.
type Generator struct {
	narrator Narrator
	log      zerolog.Logger
}

// NewGenerator creates a budget generator. narrator may be nil.
func NewGenerator(narrator Narrator, log zerolog.Logger) *Generator {
	return &Generator{narrator: narrator, log: log}
}

// Budget renders the budget analysis for one month's totals.
func (g *Generator) Budget(ctx context.Context, totals domain.CategoryTotals) string {
	if g.narrator != nil {
		text, err := g.narrator.Narrate(ctx, totals)
		if err == nil && text != "" {
			return text
		}
		g.log.Warn().Err(err).Msg("Budget narrator failed, using deterministic rendering")
	}
	return RenderBudget(totals)
}

// Monthly renders the income/expense/net summary over one month's records.
func Monthly(records []domain.Record) string {
	var income, expense decimal.Decimal
	for _, r := range records {
		if r.Kind == domain.Income {
			income = income.Add(r.Amount)
		} else {
			expense = expense.Add(r.Amount)
		}
	}

	return "📊 Monthly Report\n\n" +
		"💰 Total Income: " + format.Rupiah(income) + "\n" +
		"💸 Total Expenses: " + format.Rupiah(expense) + "\n" +
		"💵 Net: " + format.Rupiah(income.Sub(expense))
}

// RenderBudget is the deterministic budget rendering: overall totals plus
// the top three expense categories by amount descending. Ties keep their
// first-seen order.
func RenderBudget(totals domain.CategoryTotals) string {
	var totalIncome, totalExpense decimal.Decimal
	for _, t := range totals.Income {
		totalIncome = totalIncome.Add(t.Total)
	}
	for _, t := range totals.Expense {
		totalExpense = totalExpense.Add(t.Total)
	}

	top := make([]domain.CategoryTotal, len(totals.Expense))
	copy(top, totals.Expense)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Total.GreaterThan(top[j].Total)
	})
	if len(top) > 3 {
		top = top[:3]
	}

	var b strings.Builder
	b.WriteString("📊 Budget Analysis\n\n")
	b.WriteString("💸 Total Expenses: " + format.Rupiah(totalExpense) + "\n")
	if len(top) > 0 {
		b.WriteString("Top spending categories:\n")
		for i, t := range top {
			b.WriteString(fmt.Sprintf("%d. %s: %s\n", i+1, t.Category, format.Rupiah(t.Total)))
		}
	}
	b.WriteString("\n💰 Total Income: " + format.Rupiah(totalIncome))
	return b.String()
}
