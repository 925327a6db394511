package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestProposal_Validate(t *testing.T) {
	valid := Proposal{
		Kind:        Expense,
		Amount:      decimal.NewFromInt(50000),
		Category:    "food",
		Description: "lunch",
	}

	tests := []struct {
		name    string
		mutate  func(*Proposal)
		wantErr bool
	}{
		{"complete proposal", func(p *Proposal) {}, false},
		{"unknown kind", func(p *Proposal) { p.Kind = "transfer" }, true},
		{"zero amount", func(p *Proposal) { p.Amount = decimal.Zero }, true},
		{"negative amount", func(p *Proposal) { p.Amount = decimal.NewFromInt(-1) }, true},
		{"empty category", func(p *Proposal) { p.Category = "" }, true},
		{"empty description", func(p *Proposal) { p.Description = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			if err := p.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecord_Signed(t *testing.T) {
	r := Record{Kind: Expense, Amount: decimal.NewFromInt(100)}
	if !r.Signed().Equal(decimal.NewFromInt(-100)) {
		t.Errorf("expense Signed() = %s, want -100", r.Signed())
	}

	r.Kind = Income
	if !r.Signed().Equal(decimal.NewFromInt(100)) {
		t.Errorf("income Signed() = %s, want 100", r.Signed())
	}
}

func TestCategoryTotals_FirstSeenOrder(t *testing.T) {
	var totals CategoryTotals

	totals.AddExpense("food", decimal.NewFromInt(30000))
	totals.AddExpense("transport", decimal.NewFromInt(20000))
	totals.AddExpense("food", decimal.NewFromInt(10000))

	if len(totals.Expense) != 2 {
		t.Fatalf("expense categories = %d, want 2", len(totals.Expense))
	}
	if totals.Expense[0].Category != "food" || !totals.Expense[0].Total.Equal(decimal.NewFromInt(40000)) {
		t.Errorf("expense[0] = %+v, want food:40000", totals.Expense[0])
	}
	if totals.Expense[1].Category != "transport" {
		t.Errorf("expense[1] = %+v, want transport first-seen second", totals.Expense[1])
	}
}
