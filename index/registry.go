package index

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// Mode selects how a load treats previously built items.
type Mode int

const (
	// ModeStandard rebuilds every handle on every load.
	ModeStandard Mode = iota
	// ModeCached restores handles from the cache store when possible.
	ModeCached
)

// String returns the lowercase name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeStandard:
		return "standard"
	case ModeCached:
		return "cached"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Registry holds every handle and orchestrates their builds.
type Registry struct {
	mu              sync.Mutex
	handles         []Handle
	byID            map[string]Handle
	loaded          map[string]bool // ids whose items are current
	store           CacheStore
	mode            Mode
	continueOnError bool
	monitor         BuildMonitor
	logger          *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry) error

// WithCacheStore sets the store used in ModeCached.
// Default is a fresh MemoryStore.
func WithCacheStore(store CacheStore) Option {
	return func(r *Registry) error {
		if store == nil {
			return ErrCacheStoreRequired
		}
		r.store = store
		return nil
	}
}

// WithMode sets the initial mode.
// Default is ModeStandard.
func WithMode(mode Mode) Option {
	return func(r *Registry) error {
		r.mode = mode
		return nil
	}
}

// WithContinueOnError keeps building later handles after one fails.
// Default is false: the first failure aborts the pass.
func WithContinueOnError(enabled bool) Option {
	return func(r *Registry) error {
		r.continueOnError = enabled
		return nil
	}
}

// WithMonitor sets a build monitor.
func WithMonitor(monitor BuildMonitor) Option {
	return func(r *Registry) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		r.monitor = monitor
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) (*Registry, error) {
	r := &Registry{
		byID:    make(map[string]Handle),
		loaded:  make(map[string]bool),
		store:   NewMemoryStore(),
		mode:    ModeStandard,
		monitor: &noopMonitor{},
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Register appends a handle. Handles are built in registration order.
func (r *Registry) Register(h Handle) error {
	if h == nil {
		return ErrHandleRequired
	}
	id := h.ID()
	if id == "" {
		return ErrEmptyHandleID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateHandle, id)
	}
	r.handles = append(r.handles, h)
	r.byID[id] = h
	return nil
}

// Handles returns the registered handles in registration order.
func (r *Registry) Handles() []Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.handles)
}

// Handle returns the handle registered under id.
func (r *Registry) Handle(id string) (Handle, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.byID[id]
	return h, ok
}

// Mode returns the current mode.
func (r *Registry) Mode() Mode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mode
}

// SetMode switches the lifecycle mode. Leaving ModeCached clears the store.
func (r *Registry) SetMode(ctx context.Context, mode Mode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mode == ModeCached && mode != ModeCached {
		if err := r.clearStore(ctx); err != nil {
			return err
		}
	}
	r.mode = mode
	return nil
}

// Load builds every handle according to the current mode.
func (r *Registry) Load(ctx context.Context) ([]BuildReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.run(ctx, r.handles, r.mode == ModeCached)
}

// LoadAll rebuilds every handle regardless of mode.
func (r *Registry) LoadAll(ctx context.Context) ([]BuildReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.run(ctx, r.handles, false)
}

// LoadCached restores handles from the store and builds the rest,
// regardless of mode.
func (r *Registry) LoadCached(ctx context.Context) ([]BuildReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.run(ctx, r.handles, true)
}

// Reload rebuilds only the named handles, in registration order.
func (r *Registry) Reload(ctx context.Context, ids ...string) ([]BuildReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := r.byID[id]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownHandle, id)
		}
		wanted[id] = true
	}

	selected := make([]Handle, 0, len(wanted))
	for _, h := range r.handles {
		if wanted[h.ID()] {
			selected = append(selected, h)
		}
	}
	return r.run(ctx, selected, false)
}

// ForceReload discards everything in the store and rebuilds every handle.
func (r *Registry) ForceReload(ctx context.Context) ([]BuildReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.clearStore(ctx); err != nil {
		return nil, err
	}
	return r.run(ctx, r.handles, false)
}

// SnapshotAll writes the items of every loaded handle to the store.
// Handles that never built, failed their last build or were invalidated
// are skipped so a later cached load rebuilds them.
func (r *Registry) SnapshotAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot(ctx)
}

// Teardown snapshots every loaded handle when in ModeCached and does nothing
// otherwise.
func (r *Registry) Teardown(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mode != ModeCached {
		return nil
	}
	return r.snapshot(ctx)
}

func (r *Registry) snapshot(ctx context.Context) error {
	var errs []error
	for _, h := range r.handles {
		if !r.loaded[h.ID()] {
			r.logger.Debug("index not loaded, snapshot skipped", "id", h.ID())
			continue
		}
		if err := r.store.Put(ctx, h.ID(), h.Items()); err != nil {
			errs = append(errs, fmt.Errorf("snapshot %s: %w", h.ID(), err))
			continue
		}
		r.monitor.Snapshot(h.ID(), h.Len())
		r.logger.Debug("index snapshot stored", "id", h.ID(), "items", h.Len())
	}
	return errors.Join(errs...)
}

// Invalidate marks the named handles, or every handle when ids is empty,
// as out of date. They keep their items but are not snapshotted until
// they load again.
func (r *Registry) Invalidate(ids ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(ids) == 0 {
		clear(r.loaded)
		return nil
	}
	for _, id := range ids {
		if _, ok := r.byID[id]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownHandle, id)
		}
	}
	for _, id := range ids {
		delete(r.loaded, id)
	}
	return nil
}

// Loaded reports whether the handle's items came from a successful build
// or cache restore and have not been invalidated since.
func (r *Registry) Loaded(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loaded[id]
}

func (r *Registry) clearStore(ctx context.Context) error {
	if err := r.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	r.monitor.CacheCleared()
	return nil
}

// run processes handles sequentially. Must be called with lock held.
func (r *Registry) run(ctx context.Context, handles []Handle, useCache bool) ([]BuildReport, error) {
	reports := make([]BuildReport, 0, len(handles))
	var errs []error

	for _, h := range handles {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		if useCache {
			if report, ok := r.restore(ctx, h); ok {
				reports = append(reports, report)
				continue
			}
		}

		report := r.build(ctx, h)
		reports = append(reports, report)
		if report.Err != nil {
			errs = append(errs, report.Err)
			if !r.continueOnError {
				break
			}
		}
	}

	return reports, errors.Join(errs...)
}

// restore swaps cached items into h. A store error or an items value of
// the wrong type counts as a miss.
func (r *Registry) restore(ctx context.Context, h Handle) (BuildReport, bool) {
	id := h.ID()

	items, ok, err := r.store.Get(ctx, id)
	if err != nil {
		r.logger.Warn("error reading index cache", "id", id, "err", err)
		ok = false
	}
	if !ok {
		r.monitor.CacheMiss(id)
		return BuildReport{}, false
	}

	if err := h.SetItems(items); err != nil {
		r.logger.Warn("discarding cached index", "id", id, "err", err)
		r.monitor.CacheMiss(id)
		return BuildReport{}, false
	}

	r.loaded[id] = true
	report := BuildReport{ID: id, Items: h.Len(), CacheHit: true}
	r.monitor.CacheHit(id, report.Items)
	r.logger.Debug("index restored from cache", "id", id, "items", report.Items)
	return report, true
}

func (r *Registry) build(ctx context.Context, h Handle) BuildReport {
	id := h.ID()
	r.monitor.BuildStarted(id)

	report := BuildReport{ID: id, Started: time.Now()}
	err := h.InitIndex(ctx)
	report.Finished = time.Now()
	report.Items = h.Len()

	if err != nil {
		delete(r.loaded, id)
		report.Err = fmt.Errorf("build %s: %w", id, err)
		r.logger.Error("error building index", "id", id, "err", err)
	} else {
		r.loaded[id] = true
		r.logger.Info("index built", "id", id, "items", report.Items, "seconds", report.Elapsed().Seconds())
	}

	r.monitor.BuildFinished(report)
	return report
}
