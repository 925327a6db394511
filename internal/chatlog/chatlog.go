// Package chatlog keeps the conversation history shown on the dashboard.
// Recording is best-effort; failures never affect message handling.
package chatlog

import (
	"context"
	"sync"
	"time"
)

// Entry is one inbound message and the bot's reply to it.
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	Response  string    `json:"botResponse"`
}

// Log records exchanges and serves the most recent ones.
type Log interface {
	Record(ctx context.Context, entry Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

// Memory is the in-process log variant, also used while the spreadsheet is
// not configured.
type Memory struct {
	mu      sync.RWMutex
	entries []Entry
	max     int
}

// NewMemory creates an in-memory log keeping at most max entries
// (0 means unbounded).
func NewMemory(max int) *Memory {
	return &Memory{max: max}
}

// Record implements the Log interface.
func (m *Memory) Record(_ context.Context, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, entry)
	if m.max > 0 && len(m.entries) > m.max {
		m.entries = m.entries[len(m.entries)-m.max:]
	}
	return nil
}

// Recent implements the Log interface. Entries come back oldest first.
func (m *Memory) Recent(_ context.Context, limit int) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 || limit > len(m.entries) {
		limit = len(m.entries)
	}
	result := make([]Entry, limit)
	copy(result, m.entries[len(m.entries)-limit:])
	return result, nil
}

var _ Log = (*Memory)(nil)
