package engine

import "github.com/poiesic/assessrec/core"

// RecommendMonitor provides hooks to observe the recommendation process.
// Implement this interface to track intermediate steps during retrieval
// and reranking.
type RecommendMonitor interface {
	Start(query string)
	AfterAnalyze(signals core.QuerySignals)
	AfterRetrieve(candidates []core.Candidate)
	AfterRerank(candidates []core.Candidate)
	Finish(results []core.Recommendation)
}

// noopMonitor is a no-op implementation of RecommendMonitor
type noopMonitor struct{}

var _ RecommendMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                      {}
func (n *noopMonitor) AfterAnalyze(_ core.QuerySignals)    {}
func (n *noopMonitor) AfterRetrieve(_ []core.Candidate)    {}
func (n *noopMonitor) AfterRerank(_ []core.Candidate)      {}
func (n *noopMonitor) Finish(_ []core.Recommendation)      {}
