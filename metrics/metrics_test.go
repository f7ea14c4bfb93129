package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/poiesic/pinyinsearch/index"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollector_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg)
	require.NoError(t, err)

	_, err = NewCollector(reg)
	assert.Error(t, err)
}

func TestCollector_Builds(t *testing.T) {
	c, err := NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	start := time.Now()
	c.BuildStarted("files")
	c.BuildFinished(index.BuildReport{ID: "files", Items: 12, Started: start, Finished: start.Add(time.Second)})
	c.BuildFinished(index.BuildReport{ID: "files", Err: errors.New("boom"), Started: start, Finished: start})

	assert.Equal(t, 1.0, testutil.ToFloat64(c.builds.WithLabelValues("files", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.builds.WithLabelValues("files", "error")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.items.WithLabelValues("files")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.buildDuration))
}

func TestCollector_Cache(t *testing.T) {
	c, err := NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	c.CacheHit("tags", 3)
	c.CacheMiss("files")
	c.CacheMiss("files")
	c.Snapshot("tags", 3)
	c.CacheCleared()

	assert.Equal(t, 1.0, testutil.ToFloat64(c.cacheHits.WithLabelValues("tags")))
	assert.Equal(t, 3.0, testutil.ToFloat64(c.items.WithLabelValues("tags")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.cacheMisses.WithLabelValues("files")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.snapshots.WithLabelValues("tags")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.cacheClears))
}

func TestCollector_MissFunc(t *testing.T) {
	c, err := NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	miss := c.MissFunc()
	miss("xiaohe", "ng")
	miss("xiaohe", "hm")
	miss("abc", "ng")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.lookupMisses.WithLabelValues("xiaohe")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.lookupMisses.WithLabelValues("abc")))
}
