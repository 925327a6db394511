package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hprasetyo/finbot/internal/domain"
)

var (
	expenseKeywords = []string{"spent", "bought", "paid"}
	incomeKeywords  = []string{"received", "salary", "income"}

	// First integer-like substring, thousands separators allowed.
	amountPattern = regexp.MustCompile(`\d+(?:[.,]\d{3})*`)
)

// keyword -> category tables, checked in order. Catch-alls apply when no
// keyword matches.
var expenseCategories = []categoryRule{
	{"food", "food"},
	{"grocery", "food"},
	{"groceries", "food"},
	{"restaurant", "food"},
	{"coffee", "food"},
	{"transport", "transport"},
	{"taxi", "transport"},
	{"bus", "transport"},
	{"train", "transport"},
	{"fuel", "transport"},
	{"rent", "housing"},
	{"electricity", "bills"},
	{"internet", "bills"},
	{"phone", "bills"},
	{"bill", "bills"},
	{"movie", "entertainment"},
	{"game", "entertainment"},
}

var incomeCategories = []categoryRule{
	{"salary", "salary"},
	{"payroll", "salary"},
	{"bonus", "bonus"},
	{"refund", "refund"},
}

const (
	defaultExpenseCategory = "general"
	defaultIncomeCategory  = "other income"
)

type categoryRule struct {
	keyword  string
	category string
}

// Heuristic is the deterministic extraction strategy. It classifies by a
// fixed keyword set and takes the first integer-like substring as the
// amount.
type Heuristic struct{}

// NewHeuristic creates the keyword-based extractor.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

// Extract implements the Extractor interface.
func (h *Heuristic) Extract(_ context.Context, message string) (domain.Proposal, error) {
	lower := strings.ToLower(message)

	var kind domain.TransactionKind
	switch {
	case containsAny(lower, expenseKeywords):
		kind = domain.Expense
	case containsAny(lower, incomeKeywords):
		kind = domain.Income
	default:
		return domain.Proposal{}, ErrNoFinancialIntent
	}

	amount, err := parseAmount(lower)
	if err != nil {
		return domain.Proposal{}, err
	}

	proposal := domain.Proposal{
		Kind:        kind,
		Amount:      amount,
		Category:    categorize(lower, kind),
		Description: message,
	}
	if err := proposal.Validate(); err != nil {
		return domain.Proposal{}, err
	}
	return proposal, nil
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func parseAmount(text string) (decimal.Decimal, error) {
	match := amountPattern.FindString(text)
	if match == "" {
		return decimal.Decimal{}, ErrNoAmount
	}
	digits := strings.NewReplacer(".", "", ",", "").Replace(match)
	amount, err := decimal.NewFromString(digits)
	if err != nil || !amount.IsPositive() {
		return decimal.Decimal{}, ErrNoAmount
	}
	return amount, nil
}

func categorize(text string, kind domain.TransactionKind) string {
	rules := expenseCategories
	fallback := defaultExpenseCategory
	if kind == domain.Income {
		rules = incomeCategories
		fallback = defaultIncomeCategory
	}

	for _, rule := range rules {
		if strings.Contains(text, rule.keyword) {
			return rule.category
		}
	}
	return fallback
}
