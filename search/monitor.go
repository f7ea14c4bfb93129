package search

// SearchMonitor observes the stages of a search.
// Implement this interface to trace how a query was answered.
type SearchMonitor interface {
	Start(query Query)
	Scanned(source string, candidates, hits int)
	Finish(results []Result)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ Query)              {}
func (n *noopMonitor) Scanned(_ string, _, _ int) {}
func (n *noopMonitor) Finish(_ []Result)          {}
