package engine

import (
	"context"
	"log/slog"

	"github.com/poiesic/assessrec/ai"
	"github.com/poiesic/assessrec/core"
	"github.com/poiesic/assessrec/index"
)

// Retriever produces an oversampled candidate pool for a processed query.
// Two implementations exist: SemanticRetriever over the embedding index and
// LexicalRetriever as the degraded-mode fallback. Which one serves is
// decided once at construction time, never per request.
type Retriever interface {
	Retrieve(ctx context.Context, signals core.QuerySignals, limit int) ([]core.Candidate, error)
}

// SemanticRetriever embeds the enhanced query and searches the flat index.
type SemanticRetriever struct {
	embedder ai.Embedder
	idx      *index.Flat
	logger   *slog.Logger
}

var _ Retriever = (*SemanticRetriever)(nil)

// NewSemanticRetriever creates a retriever over the given index.
func NewSemanticRetriever(embedder ai.Embedder, idx *index.Flat) (*SemanticRetriever, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if idx == nil {
		return nil, ErrIndexRequired
	}
	return &SemanticRetriever{
		embedder: embedder,
		idx:      idx,
		logger:   slog.Default().With("retriever", "semantic"),
	}, nil
}

// Retrieve embeds the enhanced query, normalizes it to unit length, and
// returns up to limit candidates by descending similarity. Hits with
// positions outside the index bounds signal "no match" and are filtered,
// never projected.
func (r *SemanticRetriever) Retrieve(ctx context.Context, signals core.QuerySignals, limit int) ([]core.Candidate, error) {
	vector, err := r.embedder.EmbedText(ctx, signals.EnhancedQuery)
	if err != nil {
		r.logger.Error("error embedding query", "err", err)
		return nil, err
	}
	vector = index.Normalize(vector)

	hits, err := r.idx.Search(vector, limit)
	if err != nil {
		return nil, err
	}

	candidates := make([]core.Candidate, 0, len(hits))
	for _, hit := range hits {
		if hit.Position < 0 || hit.Position >= r.idx.Len() {
			continue
		}
		candidates = append(candidates, core.Candidate{
			Record:         r.idx.Record(hit.Position),
			RetrievalScore: hit.Score,
		})
	}
	return candidates, nil
}
