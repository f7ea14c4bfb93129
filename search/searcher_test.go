package search

import (
	"context"
	"log/slog"
	"testing"

	"github.com/poiesic/pinyinsearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	id    string
	items []core.Item
}

func (s *staticSource) ID() string            { return s.id }
func (s *staticSource) Snapshot() []core.Item { return s.items }

type recordingMonitor struct {
	query   Query
	scanned map[string][2]int
	results []Result
}

func (m *recordingMonitor) Start(q Query) { m.query = q }

func (m *recordingMonitor) Scanned(source string, candidates, hits int) {
	if m.scanned == nil {
		m.scanned = make(map[string][2]int)
	}
	m.scanned[source] = [2]int{candidates, hits}
}

func (m *recordingMonitor) Finish(results []Result) { m.results = results }

func testSources() []Source {
	files := &staticSource{id: "files", items: []core.Item{
		*noteItem(),
		{Kind: core.ItemKindFile, Name: "读书", Path: "读书.txt", Full: "dushu", Initials: "ds", Readings: []string{"du", "shu"}},
		{Kind: core.ItemKindFile, Name: "README", Path: "README"},
	}}
	folders := &staticSource{id: "folders", items: []core.Item{
		{Kind: core.ItemKindFolder, Name: "读书会", Path: "读书会", Full: "dushuhui", Initials: "dsh", Readings: []string{"du", "shu", "hui"}},
	}}
	return []Source{files, folders}
}

func TestNewSearcher(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		s, err := NewSearcher(testSources())
		require.NoError(t, err)
		assert.NotNil(t, s)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		s, err := NewSearcher(testSources(), WithLogger(nil))
		require.NoError(t, err)
		assert.Equal(t, slog.Default(), s.logger)
	})

	t.Run("no sources", func(t *testing.T) {
		_, err := NewSearcher(nil)
		assert.Equal(t, ErrSourceRequired, err)
	})

	t.Run("nil matcher", func(t *testing.T) {
		_, err := NewSearcher(testSources(), WithMatcher(nil))
		assert.Equal(t, ErrMatcherRequired, err)
	})
}

func TestSearch_Ranking(t *testing.T) {
	s, err := NewSearcher(testSources())
	require.NoError(t, err)

	results, err := s.Search(context.Background(), "dushu", 10)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Exact full reading first, then prefixes, shorter names first.
	assert.Equal(t, "读书", results[0].Item.Name)
	assert.Equal(t, ScoreFull, results[0].Score)
	assert.Equal(t, "读书会", results[1].Item.Name)
	assert.Equal(t, "folders", results[1].Source)
	assert.Equal(t, "读书笔记", results[2].Item.Name)
	assert.Equal(t, ScoreFullPrefix, results[2].Score)
}

func TestSearch_MaxHits(t *testing.T) {
	s, err := NewSearcher(testSources())
	require.NoError(t, err)

	results, err := s.Search(context.Background(), "dushu", 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)

	results, err = s.Search(context.Background(), "dushu", 0)
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestSearch_KindFilter(t *testing.T) {
	s, err := NewSearcher(testSources())
	require.NoError(t, err)

	results, err := s.Search(context.Background(), "dushu dir", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, core.ItemKindFolder, results[0].Item.Kind)

	results, err = s.Search(context.Background(), "dushu .txt", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "读书.txt", results[0].Item.Path)
}

func TestSearch_EmptyQuery(t *testing.T) {
	s, err := NewSearcher(testSources())
	require.NoError(t, err)

	results, err := s.Search(context.Background(), "   ", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_Canceled(t *testing.T) {
	s, err := NewSearcher(testSources())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Search(ctx, "dushu", 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearchWithMonitor(t *testing.T) {
	s, err := NewSearcher(testSources())
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	results, err := s.SearchWithMonitor(context.Background(), "dsbj", 10, monitor)
	require.NoError(t, err)

	assert.Equal(t, "dsbj", monitor.query.Keywords)
	assert.Equal(t, [2]int{3, 1}, monitor.scanned["files"])
	assert.Equal(t, [2]int{1, 0}, monitor.scanned["folders"])
	assert.Equal(t, results, monitor.results)
}

func TestSearch_CustomMatcher(t *testing.T) {
	only := MatcherFunc(func(_ string, item *core.Item) int {
		if item.Kind == core.ItemKindFolder {
			return 1
		}
		return 0
	})
	s, err := NewSearcher(testSources(), WithMatcher(only))
	require.NoError(t, err)

	results, err := s.Search(context.Background(), "anything", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "读书会", results[0].Item.Name)
}
