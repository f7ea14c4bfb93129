package search

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"github.com/poiesic/pinyinsearch/core"
)

// Source is an index whose items can be searched.
type Source interface {
	ID() string
	Snapshot() []core.Item
}

// Result is one ranked hit.
type Result struct {
	Source string
	Item   core.Item
	Score  int
}

// Searcher ranks items from several sources.
type Searcher struct {
	sources []Source
	matcher Matcher
	logger  *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithMatcher replaces the TieredMatcher.
func WithMatcher(m Matcher) Option {
	return func(s *Searcher) error {
		if m == nil {
			return ErrMatcherRequired
		}
		s.matcher = m
		return nil
	}
}

// NewSearcher creates a searcher over sources, searched in the given order.
func NewSearcher(sources []Source, opts ...Option) (*Searcher, error) {
	if len(sources) == 0 {
		return nil, ErrSourceRequired
	}

	s := &Searcher{
		sources: slices.Clone(sources),
		matcher: TieredMatcher{},
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search returns up to maxHits results for query, best first.
// A maxHits of zero or less returns every hit.
func (s *Searcher) Search(ctx context.Context, query string, maxHits int) ([]Result, error) {
	return s.SearchWithMonitor(ctx, query, maxHits, nil)
}

// SearchWithMonitor is Search with callbacks at each stage.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, maxHits int, monitor SearchMonitor) ([]Result, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	q := ParseQuery(query)
	monitor.Start(q)
	if q.Keywords == "" {
		monitor.Finish(nil)
		return nil, nil
	}

	var results []Result
	for _, source := range s.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		items := source.Snapshot()
		hits := 0
		for i := range items {
			if !q.Accepts(&items[i]) {
				continue
			}
			if score := s.matcher.Score(q.Keywords, &items[i]); score > 0 {
				results = append(results, Result{Source: source.ID(), Item: items[i], Score: score})
				hits++
			}
		}
		monitor.Scanned(source.ID(), len(items), hits)
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := cmp.Compare(len(a.Item.Name), len(b.Item.Name)); c != 0 {
			return c
		}
		return cmp.Compare(a.Item.Path, b.Item.Path)
	})

	if maxHits > 0 && len(results) > maxHits {
		results = results[:maxHits]
	}

	s.logger.Debug("search finished", "query", q.Keywords, "hits", len(results))
	monitor.Finish(results)
	return results, nil
}
