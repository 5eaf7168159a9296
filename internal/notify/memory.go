package notify

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryFacility keeps pending notifications in memory. It backs tests
// and single-process deployments that have no broker.
type MemoryFacility struct {
	mu      sync.Mutex
	seq     int
	pending map[string]MemoryEntry
}

// MemoryEntry is one pending notification held by a MemoryFacility.
type MemoryEntry struct {
	Content Content
	At      time.Time
}

// NewMemoryFacility creates an empty MemoryFacility.
func NewMemoryFacility() *MemoryFacility {
	return &MemoryFacility{pending: make(map[string]MemoryEntry)}
}

// Schedule implements Facility.
func (f *MemoryFacility) Schedule(ctx context.Context, content Content, at time.Time) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	handle := fmt.Sprintf("mem-%d", f.seq)
	f.pending[handle] = MemoryEntry{Content: content, At: at}
	return handle, nil
}

// Cancel implements Facility.
func (f *MemoryFacility) Cancel(ctx context.Context, handle string) error {
	f.mu.Lock()
	delete(f.pending, handle)
	f.mu.Unlock()
	return nil
}

// ListScheduled implements Facility.
func (f *MemoryFacility) ListScheduled(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	handles := make([]string, 0, len(f.pending))
	for h := range f.pending {
		handles = append(handles, h)
	}
	sort.Strings(handles)
	return handles, nil
}

// Entry returns the pending entry for a handle, if any.
func (f *MemoryFacility) Entry(handle string) (MemoryEntry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.pending[handle]
	return e, ok
}
