package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hprasetyo/finbot/internal/domain"
)

// Memory is an in-memory ledger. It serves as the mock variant when no
// spreadsheet is configured and as the local buffer while persistence is
// degraded. Records are lost on restart.
type Memory struct {
	mu      sync.RWMutex
	records []domain.Record
	balance decimal.Decimal

	now func() time.Time
}

// NewMemory creates an empty in-memory ledger.
func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

// Append implements the Ledger interface.
func (m *Memory) Append(_ context.Context, proposal domain.Proposal) (domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record := domain.Record{
		Timestamp:   m.now(),
		Kind:        proposal.Kind,
		Amount:      proposal.Amount,
		Category:    proposal.Category,
		Description: proposal.Description,
	}
	m.balance = m.balance.Add(record.Signed())
	record.Balance = m.balance
	m.records = append(m.records, record)

	return record, nil
}

// CurrentBalance implements the Ledger interface.
func (m *Memory) CurrentBalance(_ context.Context) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.balance, nil
}

// MonthlyReport implements the Ledger interface.
func (m *Memory) MonthlyReport(_ context.Context, month time.Month, year int) ([]domain.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []domain.Record
	for _, r := range m.records {
		if inMonth(r.Timestamp, month, year) {
			result = append(result, r)
		}
	}
	return result, nil
}

// CategoryTotals implements the Ledger interface.
func (m *Memory) CategoryTotals(ctx context.Context, month time.Month, year int) (domain.CategoryTotals, error) {
	records, err := m.MonthlyReport(ctx, month, year)
	if err != nil {
		return domain.CategoryTotals{}, err
	}
	return totalsFromRecords(records), nil
}

var _ Ledger = (*Memory)(nil)
