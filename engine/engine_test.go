package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/assessrec/core"
	"github.com/poiesic/assessrec/query"
)

// stubRetriever returns a fixed candidate pool regardless of signals.
type stubRetriever struct {
	candidates []core.Candidate
	err        error
	lastLimit  int
}

func (s *stubRetriever) Retrieve(_ context.Context, _ core.QuerySignals, limit int) ([]core.Candidate, error) {
	s.lastLimit = limit
	if s.err != nil {
		return nil, s.err
	}
	out := make([]core.Candidate, len(s.candidates))
	copy(out, s.candidates)
	return out, nil
}

func newTestAnalyzer(t *testing.T) *query.Analyzer {
	t.Helper()
	analyzer, err := query.NewAnalyzer()
	require.NoError(t, err)
	return analyzer
}

func candidate(name, description string, testTypes []string, duration int, score float32) core.Candidate {
	return core.Candidate{
		Record: &core.AssessmentRecord{
			URL:             "https://example.com/" + name,
			Name:            name,
			Description:     description,
			TestType:        testTypes,
			DurationMinutes: duration,
		},
		RetrievalScore: score,
	}
}

func TestNew(t *testing.T) {
	analyzer := newTestAnalyzer(t)

	t.Run("requires analyzer", func(t *testing.T) {
		_, err := New(nil, &stubRetriever{})
		assert.ErrorIs(t, err, ErrAnalyzerRequired)
	})

	t.Run("requires retriever", func(t *testing.T) {
		_, err := New(analyzer, nil)
		assert.ErrorIs(t, err, ErrRetrieverRequired)
	})

	t.Run("pool size option", func(t *testing.T) {
		retriever := &stubRetriever{}
		e, err := New(analyzer, retriever, WithPoolSize(7))
		require.NoError(t, err)

		_, err = e.Recommend(context.Background(), "anything", 3)
		require.NoError(t, err)
		assert.Equal(t, 7, retriever.lastLimit)
	})

	t.Run("default pool size", func(t *testing.T) {
		retriever := &stubRetriever{}
		e, err := New(analyzer, retriever)
		require.NoError(t, err)

		_, err = e.Recommend(context.Background(), "anything", 3)
		require.NoError(t, err)
		assert.Equal(t, defaultPoolSize, retriever.lastLimit)
	})
}

func TestRecommendValidation(t *testing.T) {
	e, err := New(newTestAnalyzer(t), &stubRetriever{})
	require.NoError(t, err)

	t.Run("rejects zero top_k", func(t *testing.T) {
		_, err := e.Recommend(context.Background(), "python", 0)
		assert.ErrorIs(t, err, ErrInvalidTopK)
	})

	t.Run("rejects negative top_k", func(t *testing.T) {
		_, err := e.Recommend(context.Background(), "python", -1)
		assert.ErrorIs(t, err, ErrInvalidTopK)
	})
}

func TestRecommendRetrieverError(t *testing.T) {
	boom := errors.New("embedding host unreachable")
	e, err := New(newTestAnalyzer(t), &stubRetriever{err: boom})
	require.NoError(t, err)

	_, err = e.Recommend(context.Background(), "python", 5)
	assert.ErrorIs(t, err, boom)
}

func TestRecommendSkillBoostCompounds(t *testing.T) {
	retriever := &stubRetriever{candidates: []core.Candidate{
		candidate("Plain Assessment", "general reasoning", nil, 0, 1.0),
		candidate("Python and SQL Test", "covers python and sql together", nil, 0, 1.0),
		candidate("Python Test", "covers python only", nil, 0, 1.0),
	}}
	e, err := New(newTestAnalyzer(t), retriever)
	require.NoError(t, err)

	results, err := e.Recommend(context.Background(), "looking for python and sql developers", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Two skill hits compound to 1.44x, one hit gives 1.2x, none stays 1.0.
	assert.Equal(t, "Python and SQL Test", results[0].Name)
	assert.InDelta(t, 1.44, results[0].Score, 1e-5)
	assert.Equal(t, "Python Test", results[1].Name)
	assert.InDelta(t, 1.2, results[1].Score, 1e-5)
	assert.Equal(t, "Plain Assessment", results[2].Name)
	assert.InDelta(t, 1.0, results[2].Score, 1e-5)
}

func TestRecommendTestTypeBoostFiresOnce(t *testing.T) {
	retriever := &stubRetriever{candidates: []core.Candidate{
		candidate("Multi Type", "assessment", []string{"Simulations", "Competencies"}, 0, 1.0),
		candidate("Single Type", "assessment", []string{"Simulations"}, 0, 1.0),
		candidate("No Type", "assessment", []string{"Development & 360"}, 0, 1.0),
	}}
	e, err := New(newTestAnalyzer(t), retriever)
	require.NoError(t, err)

	results, err := e.Recommend(context.Background(), "need simulations and competencies", 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Matching two test types pays the same 1.5x as matching one.
	assert.InDelta(t, 1.5, results[0].Score, 1e-5)
	assert.InDelta(t, 1.5, results[1].Score, 1e-5)
	assert.Equal(t, "Multi Type", results[0].Name)
	assert.Equal(t, "Single Type", results[1].Name)
	assert.Equal(t, "No Type", results[2].Name)
	assert.InDelta(t, 1.0, results[2].Score, 1e-5)
}

func TestRecommendDurationPenalty(t *testing.T) {
	retriever := &stubRetriever{candidates: []core.Candidate{
		candidate("Too Long", "assessment", nil, 90, 1.0),
		candidate("Fits", "assessment", nil, 30, 1.0),
		candidate("Unknown Duration", "assessment", nil, 0, 1.0),
	}}
	e, err := New(newTestAnalyzer(t), retriever)
	require.NoError(t, err)

	t.Run("over ceiling halved, unknown untouched", func(t *testing.T) {
		results, err := e.Recommend(context.Background(), "at most 45 minutes", 3)
		require.NoError(t, err)
		require.Len(t, results, 3)

		assert.Equal(t, "Fits", results[0].Name)
		assert.InDelta(t, 1.0, results[0].Score, 1e-5)
		assert.Equal(t, "Unknown Duration", results[1].Name)
		assert.InDelta(t, 1.0, results[1].Score, 1e-5)
		assert.Equal(t, "Too Long", results[2].Name)
		assert.InDelta(t, 0.5, results[2].Score, 1e-5)
	})

	t.Run("no ceiling no penalty", func(t *testing.T) {
		results, err := e.Recommend(context.Background(), "any assessment", 3)
		require.NoError(t, err)
		require.Len(t, results, 3)
		for _, result := range results {
			assert.InDelta(t, 1.0, result.Score, 1e-5)
		}
	})

	t.Run("penalized but not excluded", func(t *testing.T) {
		results, err := e.Recommend(context.Background(), "at most 45 minutes", 3)
		require.NoError(t, err)
		assert.Len(t, results, 3)
	})
}

func TestRecommendStableOrder(t *testing.T) {
	// Four candidates with identical scores: the retrieval order must survive
	// reranking untouched, on every run.
	retriever := &stubRetriever{candidates: []core.Candidate{
		candidate("First", "assessment", nil, 0, 0.9),
		candidate("Second", "assessment", nil, 0, 0.9),
		candidate("Third", "assessment", nil, 0, 0.9),
		candidate("Fourth", "assessment", nil, 0, 0.9),
	}}
	e, err := New(newTestAnalyzer(t), retriever)
	require.NoError(t, err)

	for range 10 {
		results, err := e.Recommend(context.Background(), "any assessment", 4)
		require.NoError(t, err)
		require.Len(t, results, 4)
		assert.Equal(t, "First", results[0].Name)
		assert.Equal(t, "Second", results[1].Name)
		assert.Equal(t, "Third", results[2].Name)
		assert.Equal(t, "Fourth", results[3].Name)
	}
}

func TestRecommendTruncatesToTopK(t *testing.T) {
	retriever := &stubRetriever{candidates: []core.Candidate{
		candidate("A", "assessment", nil, 0, 0.9),
		candidate("B", "assessment", nil, 0, 0.8),
		candidate("C", "assessment", nil, 0, 0.7),
	}}
	e, err := New(newTestAnalyzer(t), retriever)
	require.NoError(t, err)

	t.Run("fewer than available", func(t *testing.T) {
		results, err := e.Recommend(context.Background(), "any", 2)
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "A", results[0].Name)
		assert.Equal(t, "B", results[1].Name)
	})

	t.Run("more than available", func(t *testing.T) {
		results, err := e.Recommend(context.Background(), "any", 10)
		require.NoError(t, err)
		assert.Len(t, results, 3)
	})

	t.Run("empty pool", func(t *testing.T) {
		empty, err := New(newTestAnalyzer(t), &stubRetriever{})
		require.NoError(t, err)
		results, err := empty.Recommend(context.Background(), "any", 5)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestRecommendCustomWeights(t *testing.T) {
	retriever := &stubRetriever{candidates: []core.Candidate{
		candidate("Python Test", "covers python", nil, 0, 1.0),
	}}
	e, err := New(newTestAnalyzer(t), retriever, WithWeights(Weights{
		SkillBoost:      2.0,
		TestTypeBoost:   1.0,
		DurationPenalty: 1.0,
	}))
	require.NoError(t, err)

	results, err := e.Recommend(context.Background(), "python", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.InDelta(t, 2.0, results[0].Score, 1e-5)
}

// recordingMonitor captures every hook invocation.
type recordingMonitor struct {
	started   string
	signals   core.QuerySignals
	retrieved int
	reranked  int
	finished  int
}

func (m *recordingMonitor) Start(query string)                   { m.started = query }
func (m *recordingMonitor) AfterAnalyze(s core.QuerySignals)     { m.signals = s }
func (m *recordingMonitor) AfterRetrieve(c []core.Candidate)     { m.retrieved = len(c) }
func (m *recordingMonitor) AfterRerank(c []core.Candidate)       { m.reranked = len(c) }
func (m *recordingMonitor) Finish(r []core.Recommendation)       { m.finished = len(r) }

func TestRecommendWithMonitor(t *testing.T) {
	retriever := &stubRetriever{candidates: []core.Candidate{
		candidate("A", "python assessment", nil, 0, 0.9),
		candidate("B", "assessment", nil, 0, 0.8),
	}}
	e, err := New(newTestAnalyzer(t), retriever)
	require.NoError(t, err)

	monitor := &recordingMonitor{}
	results, err := e.RecommendWithMonitor(context.Background(), "python test", 1, monitor)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "python test", monitor.started)
	assert.Equal(t, []string{"python"}, monitor.signals.Skills)
	assert.Equal(t, 2, monitor.retrieved)
	assert.Equal(t, 2, monitor.reranked)
	assert.Equal(t, 1, monitor.finished)
}

func TestRecommendProjection(t *testing.T) {
	retriever := &stubRetriever{candidates: []core.Candidate{
		{
			Record: &core.AssessmentRecord{
				URL:             "https://example.com/verify-g",
				Name:            "Verify G+",
				Description:     "General ability",
				TestType:        []string{"Ability & Aptitude"},
				DurationMinutes: 36,
				AdaptiveSupport: true,
				RemoteSupport:   false,
			},
			RetrievalScore: 0.8,
		},
	}}
	e, err := New(newTestAnalyzer(t), retriever)
	require.NoError(t, err)

	results, err := e.Recommend(context.Background(), "general ability", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "https://example.com/verify-g", results[0].URL)
	assert.Equal(t, "Yes", results[0].AdaptiveSupport)
	assert.Equal(t, "No", results[0].RemoteSupport)
	assert.Equal(t, 36, results[0].Duration)
}
