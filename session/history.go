package session

import "sync"

// historyBuf is a bounded most-recent-first list of completed edits.
type historyBuf struct {
	mu    sync.Mutex
	items []HistoryItem
	max   int
}

func newHistoryBuf() *historyBuf {
	return &historyBuf{max: maxHistory}
}

// Add prepends item, evicting the oldest entries past the cap.
func (b *historyBuf) Add(item HistoryItem) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append([]HistoryItem{item}, b.items...)
	if len(b.items) > b.max {
		b.items = b.items[:b.max]
	}
}

// Snapshot returns a copy of the history, newest first.
func (b *historyBuf) Snapshot() []HistoryItem {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.items) == 0 {
		return nil
	}
	cp := make([]HistoryItem, len(b.items))
	copy(cp, b.items)
	return cp
}
