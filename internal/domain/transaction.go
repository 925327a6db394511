package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind classifies a transaction as money in or money out.
type TransactionKind string

const (
	Income  TransactionKind = "income"
	Expense TransactionKind = "expense"
)

// Valid reports whether k is one of the two known kinds.
func (k TransactionKind) Valid() bool {
	return k == Income || k == Expense
}

// Proposal is an extracted transaction awaiting user confirmation.
// A proposal is all-or-nothing: every field must be populated before it may
// enter the pending store or the ledger.
type Proposal struct {
	Kind        TransactionKind `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
}

// Validate checks the all-fields-present invariant. An incomplete
// extraction is a failure, never a partial proposal.
func (p Proposal) Validate() error {
	if !p.Kind.Valid() {
		return fmt.Errorf("proposal: unknown kind %q", p.Kind)
	}
	if !p.Amount.IsPositive() {
		return fmt.Errorf("proposal: amount must be positive, got %s", p.Amount)
	}
	if p.Category == "" {
		return fmt.Errorf("proposal: category is empty")
	}
	if p.Description == "" {
		return fmt.Errorf("proposal: description is empty")
	}
	return nil
}

// Record is one appended ledger row. Balance is the running balance after
// this record; it is computed at append time from the previous row, never
// recomputed globally.
type Record struct {
	Timestamp   time.Time       `json:"timestamp"`
	Kind        TransactionKind `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Balance     decimal.Decimal `json:"balance"`
}

// Signed returns the amount with the sign implied by the kind.
func (r Record) Signed() decimal.Decimal {
	if r.Kind == Expense {
		return r.Amount.Neg()
	}
	return r.Amount
}

// CategoryTotal is one category's aggregate for a reporting period.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// CategoryTotals holds per-category aggregates for one month, split by
// kind. Slices are ordered by first appearance in the ledger so downstream
// rendering breaks ties deterministically.
type CategoryTotals struct {
	Income  []CategoryTotal `json:"income"`
	Expense []CategoryTotal `json:"expense"`
}

// AddIncome accumulates amount into the income totals, preserving
// first-seen category order.
func (t *CategoryTotals) AddIncome(category string, amount decimal.Decimal) {
	t.Income = accumulate(t.Income, category, amount)
}

// AddExpense accumulates amount into the expense totals, preserving
// first-seen category order.
func (t *CategoryTotals) AddExpense(category string, amount decimal.Decimal) {
	t.Expense = accumulate(t.Expense, category, amount)
}

func accumulate(totals []CategoryTotal, category string, amount decimal.Decimal) []CategoryTotal {
	for i := range totals {
		if totals[i].Category == category {
			totals[i].Total = totals[i].Total.Add(amount)
			return totals
		}
	}
	return append(totals, CategoryTotal{Category: category, Total: amount})
}
