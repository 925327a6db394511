package chatlog

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestMemory_RecentReturnsNewestEntries(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(0)

	for i := 0; i < 5; i++ {
		err := m.Record(ctx, Entry{
			Timestamp: time.Now(),
			Sender:    "+62811",
			Message:   fmt.Sprintf("message %d", i),
			Response:  "ok",
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	entries, err := m.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Recent(2) returned %d entries", len(entries))
	}
	if entries[0].Message != "message 3" || entries[1].Message != "message 4" {
		t.Errorf("Recent(2) = %v, want the two newest entries oldest first", entries)
	}
}

func TestMemory_Bounded(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(3)

	for i := 0; i < 10; i++ {
		if err := m.Record(ctx, Entry{Message: fmt.Sprintf("m%d", i)}); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := m.Recent(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Errorf("bounded log kept %d entries, want 3", len(entries))
	}
	if entries[0].Message != "m7" {
		t.Errorf("oldest kept entry = %q, want m7", entries[0].Message)
	}
}

func TestMemory_RecentOnEmptyLog(t *testing.T) {
	entries, err := NewMemory(0).Recent(context.Background(), 50)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("Recent() on empty log = %v", entries)
	}
}
