package conversation

import "sync"

// senderLocks serializes handling per sender identity. Two concurrent
// messages from the same sender take the same mutex around the whole
// read-decide-write sequence; different senders proceed in parallel.
type senderLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSenderLocks() *senderLocks {
	return &senderLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *senderLocks) acquire(sender string) *sync.Mutex {
	l.mu.Lock()
	m, ok := l.locks[sender]
	if !ok {
		m = &sync.Mutex{}
		l.locks[sender] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m
}
