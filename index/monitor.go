package index

import "time"

// BuildReport describes what happened to one handle during a load.
type BuildReport struct {
	ID       string
	Items    int
	CacheHit bool
	Started  time.Time
	Finished time.Time
	Err      error
}

// Elapsed returns the build duration. Cache hits report zero.
func (r BuildReport) Elapsed() time.Duration {
	if r.CacheHit {
		return 0
	}
	return r.Finished.Sub(r.Started)
}

// BuildMonitor observes registry activity.
// Implement this interface to collect metrics or record builds in tests.
type BuildMonitor interface {
	BuildStarted(id string)
	BuildFinished(report BuildReport)
	CacheHit(id string, items int)
	CacheMiss(id string)
	Snapshot(id string, items int)
	CacheCleared()
}

// noopMonitor is a no-op implementation of BuildMonitor
type noopMonitor struct{}

var _ BuildMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) BuildStarted(_ string)       {}
func (n *noopMonitor) BuildFinished(_ BuildReport) {}
func (n *noopMonitor) CacheHit(_ string, _ int)    {}
func (n *noopMonitor) CacheMiss(_ string)          {}
func (n *noopMonitor) Snapshot(_ string, _ int)    {}
func (n *noopMonitor) CacheCleared()               {}
