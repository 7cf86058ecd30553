package engine

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/assessrec/core"
	"github.com/poiesic/assessrec/query"
)

// defaultPoolSize is the oversampled candidate pool fetched from the
// retriever before reranking. Larger than any sensible top_k so the
// rerank multipliers have room to reorder.
const defaultPoolSize = 50

// Engine ties query analysis, retrieval, and reranking into the
// recommendation pipeline. The retriever is fixed at construction;
// the engine never switches between semantic and lexical per request.
type Engine struct {
	analyzer  *query.Analyzer
	retriever Retriever
	poolSize  int
	weights   Weights
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithPoolSize overrides the candidate pool size fetched before reranking.
func WithPoolSize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.poolSize = size
		}
	}
}

// WithWeights overrides the rerank multipliers.
func WithWeights(weights Weights) Option {
	return func(e *Engine) {
		e.weights = weights
	}
}

// WithLogger sets the logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates a recommendation engine over the given analyzer and retriever.
func New(analyzer *query.Analyzer, retriever Retriever, opts ...Option) (*Engine, error) {
	if analyzer == nil {
		return nil, ErrAnalyzerRequired
	}
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	e := &Engine{
		analyzer:  analyzer,
		retriever: retriever,
		poolSize:  defaultPoolSize,
		weights:   DefaultWeights,
		logger:    slog.Default().With("component", "engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Recommend runs the full pipeline for a natural-language query and returns
// at most topK recommendations by descending rerank score.
func (e *Engine) Recommend(ctx context.Context, rawQuery string, topK int) ([]core.Recommendation, error) {
	return e.RecommendWithMonitor(ctx, rawQuery, topK, &noopMonitor{})
}

// RecommendWithMonitor runs the pipeline with hooks into each stage.
func (e *Engine) RecommendWithMonitor(ctx context.Context, rawQuery string, topK int, monitor RecommendMonitor) ([]core.Recommendation, error) {
	if topK < 1 {
		return nil, ErrInvalidTopK
	}
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(rawQuery)

	signals := e.analyzer.Process(rawQuery)
	monitor.AfterAnalyze(signals)

	candidates, err := e.retriever.Retrieve(ctx, signals, e.poolSize)
	if err != nil {
		e.logger.Error("error retrieving candidates", "err", err)
		return nil, err
	}
	monitor.AfterRetrieve(candidates)

	e.rerank(candidates, signals)
	monitor.AfterRerank(candidates)

	poolSize := len(candidates)
	if len(candidates) > topK {
		candidates = candidates[:topK]
	}

	results := make([]core.Recommendation, 0, len(candidates))
	for _, candidate := range candidates {
		results = append(results, candidate.Record.Project(candidate.RerankScore))
	}
	monitor.Finish(results)

	e.logger.Debug("recommendation complete",
		"pool", poolSize, "returned", len(results))
	return results, nil
}

// rerank applies the boost multipliers to each candidate's retrieval score
// and stable-sorts the slice in place by descending rerank score, so equal
// scores keep their retrieval order.
func (e *Engine) rerank(candidates []core.Candidate, signals core.QuerySignals) {
	for i := range candidates {
		candidates[i].RerankScore = e.boost(candidates[i].Record, candidates[i].RetrievalScore, signals)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].RerankScore > candidates[j].RerankScore
	})
}

// boost applies the rerank policy to a single candidate: the skill boost
// compounds per matching skill, the test-type boost fires at most once on
// exact membership in the candidate's test-type set, and the duration
// penalty fires once when a known duration exceeds the query's ceiling.
// Unknown (zero) durations are never penalized.
func (e *Engine) boost(record *core.AssessmentRecord, score float32, signals core.QuerySignals) float32 {
	name := strings.ToLower(record.Name)
	description := strings.ToLower(record.Description)

	for _, skill := range signals.Skills {
		if strings.Contains(name, skill) || strings.Contains(description, skill) {
			score *= e.weights.SkillBoost
		}
	}

	if len(signals.TestTypes) > 0 {
		recordTypes := make(map[string]bool, len(record.TestType))
		for _, recordType := range record.TestType {
			recordTypes[strings.ToLower(recordType)] = true
		}
		for _, testType := range signals.TestTypes {
			if recordTypes[testType] {
				score *= e.weights.TestTypeBoost
				break
			}
		}
	}

	if signals.MaxDurationMinutes != nil &&
		record.DurationMinutes > 0 &&
		record.DurationMinutes > *signals.MaxDurationMinutes {
		score *= e.weights.DurationPenalty
	}

	return score
}
