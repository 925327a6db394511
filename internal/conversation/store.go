package conversation

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/hprasetyo/finbot/internal/domain"
)

// Store holds at most one pending proposal per sender identity. Entries
// are created and removed only by the Engine; a new proposal for the same
// sender overwrites, never merges.
type Store interface {
	Has(sender string) bool
	Get(sender string) (domain.Proposal, bool)
	Set(sender string, proposal domain.Proposal)
	Remove(sender string)
}

// MemoryStore is the in-process store variant. With a zero TTL a proposal
// stays pending until explicitly confirmed or cancelled; a positive TTL
// expires stale proposals.
type MemoryStore struct {
	c *cache.Cache
}

// NewMemoryStore creates an in-memory store. ttl <= 0 disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		return &MemoryStore{c: cache.New(cache.NoExpiration, 0)}
	}
	return &MemoryStore{c: cache.New(ttl, ttl)}
}

// Has implements the Store interface.
func (s *MemoryStore) Has(sender string) bool {
	_, ok := s.c.Get(sender)
	return ok
}

// Get implements the Store interface.
func (s *MemoryStore) Get(sender string) (domain.Proposal, bool) {
	v, ok := s.c.Get(sender)
	if !ok {
		return domain.Proposal{}, false
	}
	return v.(domain.Proposal), true
}

// Set implements the Store interface.
func (s *MemoryStore) Set(sender string, proposal domain.Proposal) {
	s.c.Set(sender, proposal, cache.DefaultExpiration)
}

// Remove implements the Store interface. Removing an absent entry is a
// no-op.
func (s *MemoryStore) Remove(sender string) {
	s.c.Delete(sender)
}

var _ Store = (*MemoryStore)(nil)
