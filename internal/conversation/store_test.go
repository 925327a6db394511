package conversation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hprasetyo/finbot/internal/domain"
)

func proposal(amount int64, category string) domain.Proposal {
	return domain.Proposal{
		Kind:        domain.Expense,
		Amount:      decimal.NewFromInt(amount),
		Category:    category,
		Description: category,
	}
}

func TestMemoryStore_SetGetRemove(t *testing.T) {
	s := NewMemoryStore(0)

	if s.Has("+62811") {
		t.Error("empty store should not report a pending entry")
	}

	s.Set("+62811", proposal(50000, "food"))

	if !s.Has("+62811") {
		t.Error("store should report the pending entry")
	}
	got, ok := s.Get("+62811")
	if !ok || got.Category != "food" {
		t.Errorf("Get() = %+v, %v", got, ok)
	}

	s.Remove("+62811")
	if s.Has("+62811") {
		t.Error("entry should be gone after Remove")
	}
}

func TestMemoryStore_SetOverwrites(t *testing.T) {
	s := NewMemoryStore(0)

	s.Set("+62811", proposal(50000, "food"))
	s.Set("+62811", proposal(20000, "transport"))

	got, ok := s.Get("+62811")
	if !ok {
		t.Fatal("entry missing after overwrite")
	}
	if got.Category != "transport" || !got.Amount.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("Get() after overwrite = %+v, want the second proposal", got)
	}
}

func TestMemoryStore_RemoveAbsentIsNoop(t *testing.T) {
	s := NewMemoryStore(0)
	s.Remove("+62811") // must not panic
}

func TestMemoryStore_SendersAreIndependent(t *testing.T) {
	s := NewMemoryStore(0)

	s.Set("+62811", proposal(50000, "food"))
	s.Set("+62822", proposal(70000, "transport"))
	s.Remove("+62811")

	if s.Has("+62811") {
		t.Error("+62811 entry should be removed")
	}
	if !s.Has("+62822") {
		t.Error("+62822 entry should be untouched")
	}
}

func TestMemoryStore_TTLExpiresEntries(t *testing.T) {
	s := NewMemoryStore(20 * time.Millisecond)

	s.Set("+62811", proposal(50000, "food"))
	time.Sleep(50 * time.Millisecond)

	if s.Has("+62811") {
		t.Error("entry should have expired")
	}
}
