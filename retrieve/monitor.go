package retrieve

import "github.com/candorlabs/expertscope/core"

// RetrievalMonitor provides hooks to observe the expert search process.
// Implement this interface to track intermediate steps and results.
type RetrievalMonitor interface {
	Start(query string)
	AfterCriteriaExtraction(batch *core.CriteriaBatch)
	BeforeVariant(index int, criteria *core.SearchCriteria)
	AfterVariant(index int, matches []*core.ProfileMatch)
	Finish(matches []*core.ProfileMatch)
}

// noopMonitor is a no-op implementation of RetrievalMonitor
type noopMonitor struct{}

var _ RetrievalMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                                {}
func (n *noopMonitor) AfterCriteriaExtraction(_ *core.CriteriaBatch) {}
func (n *noopMonitor) BeforeVariant(_ int, _ *core.SearchCriteria)   {}
func (n *noopMonitor) AfterVariant(_ int, _ []*core.ProfileMatch)    {}
func (n *noopMonitor) Finish(_ []*core.ProfileMatch)                 {}
