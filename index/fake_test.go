package index

import (
	"context"
	"sync"
)

// fakeHandle is a Handle whose items are a []string.
type fakeHandle struct {
	id          string
	items       []string
	builds      int
	keyed       bool
	InitFunc    func(ctx context.Context) ([]string, error)
	SetItemsErr error
}

func newFakeHandle(id string, items ...string) *fakeHandle {
	return &fakeHandle{
		id: id,
		InitFunc: func(context.Context) ([]string, error) {
			return append([]string(nil), items...), nil
		},
	}
}

func (f *fakeHandle) ID() string              { return f.id }
func (f *fakeHandle) Items() any              { return f.items }
func (f *fakeHandle) Len() int                { return len(f.items) }
func (f *fakeHandle) UsesRomanizedKeys() bool { return f.keyed }

func (f *fakeHandle) SetItems(items any) error {
	if f.SetItemsErr != nil {
		return f.SetItemsErr
	}
	v, ok := items.([]string)
	if !ok {
		return ErrItemsType
	}
	f.items = v
	return nil
}

func (f *fakeHandle) InitIndex(ctx context.Context) error {
	f.builds++
	items, err := f.InitFunc(ctx)
	if err != nil {
		return err
	}
	f.items = items
	return nil
}

// recordingMonitor captures monitor callbacks.
type recordingMonitor struct {
	mu       sync.Mutex
	started  []string
	reports  []BuildReport
	hits     []string
	misses   []string
	snapshot []string
	cleared  int
}

func (m *recordingMonitor) BuildStarted(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = append(m.started, id)
}

func (m *recordingMonitor) BuildFinished(report BuildReport) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, report)
}

func (m *recordingMonitor) CacheHit(id string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hits = append(m.hits, id)
}

func (m *recordingMonitor) CacheMiss(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.misses = append(m.misses, id)
}

func (m *recordingMonitor) Snapshot(id string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshot = append(m.snapshot, id)
}

func (m *recordingMonitor) CacheCleared() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleared++
}

// failingStore is a CacheStore whose calls return err.
type failingStore struct {
	err error
}

func (f *failingStore) Get(context.Context, string) (any, bool, error) { return nil, false, f.err }
func (f *failingStore) Put(context.Context, string, any) error         { return f.err }
func (f *failingStore) Clear(context.Context) error                    { return f.err }
