// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package pinyinsearch finds vault items by typing the pinyin of their names.
//
// An Engine owns the dictionary table for the configured variant and
// double pinyin scheme, the search indices built from it, and the registry
// that builds, caches and rebuilds them:
//
//	settings := config.NewSettings(config.WithVaultPath(dir))
//	engine, err := pinyinsearch.NewEngine(ctx, settings)
//	if err != nil {
//	    return err
//	}
//	defer engine.Close(ctx)
//
//	if _, err := engine.Load(ctx); err != nil {
//	    return err
//	}
//	searcher, err := engine.NewSearcher()
package pinyinsearch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/poiesic/pinyinsearch/config"
	"github.com/poiesic/pinyinsearch/dict"
	"github.com/poiesic/pinyinsearch/index"
	"github.com/poiesic/pinyinsearch/metrics"
	"github.com/poiesic/pinyinsearch/search"
	"github.com/poiesic/pinyinsearch/storage/badger"
	"github.com/poiesic/pinyinsearch/vault"
	"github.com/prometheus/client_golang/prometheus"
)

// ErrClosed is returned by operations on a closed engine.
var ErrClosed = errors.New("engine is closed")

// Engine ties the dictionary, the indices and their registry together.
type Engine struct {
	mu       sync.Mutex
	closed   bool
	settings config.Settings
	variant  dict.Variant
	scheme   *dict.Scheme

	// base holds full-syllable keys for the current variant; table is base
	// re-encoded under scheme.
	base  *dict.Table
	table atomic.Pointer[dict.Table]

	converter *dict.Converter
	keyer     *vault.Keyer
	registry  *index.Registry
	backend   *badger.Backend
	cache     *badger.CacheStore
	collector *metrics.Collector
	logger    *slog.Logger
}

type engineOptions struct {
	logger   *slog.Logger
	store    index.CacheStore
	registry prometheus.Registerer
	handles  []index.Handle
}

// EngineOption configures NewEngine.
type EngineOption func(*engineOptions)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCacheStore injects the store used in dev mode, overriding CacheDir.
func WithCacheStore(store index.CacheStore) EngineOption {
	return func(o *engineOptions) {
		o.store = store
	}
}

// WithMetrics registers build and lookup metrics with reg.
func WithMetrics(reg prometheus.Registerer) EngineOption {
	return func(o *engineOptions) {
		o.registry = reg
	}
}

// WithHandles registers extra indices after the built-in ones.
func WithHandles(handles ...index.Handle) EngineOption {
	return func(o *engineOptions) {
		o.handles = append(o.handles, handles...)
	}
}

// NewEngine validates settings, loads the dictionary and registers the
// indices. Nothing is built until Load is called.
func NewEngine(ctx context.Context, settings *config.Settings, opts ...EngineOption) (*Engine, error) {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	s := *settings
	if err := s.Validate(); err != nil {
		return nil, err
	}

	options := &engineOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}

	e := &Engine{
		settings: s,
		logger:   options.logger,
	}

	if err := e.init(ctx, options); err != nil {
		e.release()
		return nil, err
	}
	return e, nil
}

func (e *Engine) init(ctx context.Context, options *engineOptions) error {
	var err error

	e.variant, err = dict.ParseVariant(e.settings.Variant)
	if err != nil {
		return err
	}
	e.scheme, err = e.lookupScheme(e.settings.Scheme)
	if err != nil {
		return err
	}

	convOpts := []dict.ConverterOption{
		dict.WithPoolSize(e.settings.PoolSize),
		dict.WithLogger(e.logger),
	}
	var monitor index.BuildMonitor
	if options.registry != nil {
		e.collector, err = metrics.NewCollector(options.registry)
		if err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		convOpts = append(convOpts, dict.WithMissFunc(e.collector.MissFunc()))
		monitor = e.collector
	}

	e.converter, err = dict.NewConverter(convOpts...)
	if err != nil {
		return err
	}

	e.base, err = dict.LoadTable(e.variant)
	if err != nil {
		return err
	}
	table, err := e.converter.Rekey(ctx, e.base, e.scheme)
	if err != nil {
		return err
	}
	e.table.Store(table)

	store, err := e.openStore(options.store, table)
	if err != nil {
		return err
	}

	mode := index.ModeStandard
	if e.settings.DevMode {
		mode = index.ModeCached
	}
	e.registry, err = index.NewRegistry(
		index.WithCacheStore(store),
		index.WithMode(mode),
		index.WithLogger(e.logger),
		index.WithMonitor(monitor),
	)
	if err != nil {
		return err
	}

	e.keyer, err = vault.NewKeyer(e, e.settings.MemoSize)
	if err != nil {
		return err
	}
	return e.registerHandles(options.handles)
}

// openStore picks the cache store: the injected one, a badger store under
// CacheDir namespaced by the table fingerprint, or memory.
func (e *Engine) openStore(injected index.CacheStore, table *dict.Table) (index.CacheStore, error) {
	if injected != nil {
		return injected, nil
	}
	if e.settings.CacheDir == "" {
		return index.NewMemoryStore(), nil
	}

	backend, err := badger.OpenBackend(e.settings.CacheDir, false, badger.WithLogger(e.logger))
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	e.backend = backend

	cache, err := badger.NewCacheStore(badger.NewItemRepository(backend), table.Fingerprint())
	if err != nil {
		return nil, err
	}
	e.cache = cache
	return cache, nil
}

func (e *Engine) registerHandles(extra []index.Handle) error {
	vaultOpts := []vault.Option{
		vault.WithExcludes(e.settings.Excludes...),
		vault.WithLogger(e.logger),
	}

	var handles []index.Handle
	if root := e.settings.VaultPath; root != "" {
		files, err := vault.NewFileIndex(root, e.keyer, vaultOpts...)
		if err != nil {
			return err
		}
		folders, err := vault.NewFolderIndex(root, e.keyer, vaultOpts...)
		if err != nil {
			return err
		}
		tags, err := vault.NewTagIndex(root, e.keyer, vaultOpts...)
		if err != nil {
			return err
		}
		handles = append(handles, files, folders, tags)
	}

	commands := make([]vault.Command, 0, len(e.settings.Commands))
	for _, c := range e.settings.Commands {
		commands = append(commands, vault.Command{ID: c.ID, Title: c.Title})
	}
	cmdIndex, err := vault.NewCommandIndex(commands, e.keyer, vaultOpts...)
	if err != nil {
		return err
	}
	handles = append(handles, cmdIndex)
	handles = append(handles, extra...)

	for _, h := range handles {
		if err := e.registry.Register(h); err != nil {
			return err
		}
	}
	return nil
}

// Table returns the dictionary table currently in effect.
// The value is immutable; later setting changes publish a new table.
func (e *Engine) Table() *dict.Table {
	return e.table.Load()
}

// Settings returns a copy of the settings in effect.
func (e *Engine) Settings() config.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// Registry returns the index registry.
func (e *Engine) Registry() *index.Registry {
	return e.registry
}

// Misses returns the number of syllables the converter could not encode.
func (e *Engine) Misses() int64 {
	return e.converter.Misses()
}

// Load builds every index, restoring from the cache in dev mode.
func (e *Engine) Load(ctx context.Context) ([]index.BuildReport, error) {
	if err := e.checkOpen(); err != nil {
		return nil, err
	}
	return e.registry.Load(ctx)
}

// Reload rebuilds the named indices, or every index when ids is empty.
// The cache is not consulted.
func (e *Engine) Reload(ctx context.Context, ids ...string) ([]index.BuildReport, error) {
	if err := e.checkOpen(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return e.registry.LoadAll(ctx)
	}
	return e.registry.Reload(ctx, ids...)
}

// SetVariant switches between simplified and traditional characters.
// The dictionary is reloaded; indices keep their items until Reload and are
// not written to the cache before then.
func (e *Engine) SetVariant(ctx context.Context, name string) error {
	variant, err := dict.ParseVariant(name)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if variant == e.variant {
		return nil
	}

	base, err := dict.LoadTable(variant)
	if err != nil {
		return err
	}
	table, err := e.converter.Rekey(ctx, base, e.scheme)
	if err != nil {
		return err
	}

	if err := e.publish(table); err != nil {
		return err
	}
	// Items built from the old table must not be cached under the new one.
	if err := e.registry.Invalidate(); err != nil {
		return err
	}
	e.base = base
	e.variant = variant
	e.settings.Variant = variant.String()
	e.logger.Info("dictionary variant changed", "variant", variant.String(), "syllables", table.Len())
	return nil
}

// SetScheme switches the double pinyin layout. Keys are regenerated in
// full and every index embedding them is rebuilt before returning.
func (e *Engine) SetScheme(ctx context.Context, name string) ([]index.BuildReport, error) {
	scheme, err := e.lookupScheme(name)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil, ErrClosed
	}
	if scheme.Name() == e.scheme.Name() {
		return nil, nil
	}

	table, err := e.converter.Rekey(ctx, e.base, scheme)
	if err != nil {
		return nil, err
	}
	if err := e.publish(table); err != nil {
		return nil, err
	}
	e.scheme = scheme
	e.settings.Scheme = scheme.Name()
	e.logger.Info("double pinyin scheme changed", "scheme", scheme.Name())

	var ids []string
	for _, h := range e.registry.Handles() {
		if index.DependsOnKeys(h) {
			ids = append(ids, h.ID())
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return e.registry.Reload(ctx, ids...)
}

// lookupScheme resolves name, enabling the whole-syllable table when the
// settings ask for it. ZeroInitial is fixed for the engine's lifetime.
func (e *Engine) lookupScheme(name string) (*dict.Scheme, error) {
	scheme, err := dict.LookupScheme(name)
	if err != nil {
		return nil, err
	}
	if e.settings.ZeroInitial {
		scheme = scheme.WithZeroInitial()
	}
	return scheme, nil
}

// SetDevMode turns cached loading on or off. Turning it off empties the cache.
func (e *Engine) SetDevMode(ctx context.Context, enabled bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}

	mode := index.ModeStandard
	if enabled {
		mode = index.ModeCached
	}
	if err := e.registry.SetMode(ctx, mode); err != nil {
		return err
	}
	e.settings.DevMode = enabled
	return nil
}

// publish swaps in table and moves a persistent cache to its namespace.
// Must be called with e.mu held.
func (e *Engine) publish(table *dict.Table) error {
	if e.cache != nil {
		if err := e.cache.SetNamespace(table.Fingerprint()); err != nil {
			return err
		}
	}
	e.table.Store(table)
	return nil
}

// NewSearcher creates a searcher over every searchable index.
func (e *Engine) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	var sources []search.Source
	for _, h := range e.registry.Handles() {
		if source, ok := h.(search.Source); ok {
			sources = append(sources, source)
		}
	}
	return search.NewSearcher(sources, append([]search.Option{search.WithLogger(e.logger)}, opts...)...)
}

func (e *Engine) checkOpen() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	return nil
}

// Close snapshots the indices in dev mode and releases resources.
func (e *Engine) Close(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true

	var errs []error
	if err := e.registry.Teardown(ctx); err != nil {
		e.logger.Error("error saving index cache", "err", err)
		errs = append(errs, err)
	}
	if err := e.release(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (e *Engine) release() error {
	if e.converter != nil {
		e.converter.Release()
	}
	if e.backend != nil {
		if err := e.backend.Close(); err != nil {
			e.logger.Error("error closing cache storage", "err", err)
			return err
		}
	}
	return nil
}
