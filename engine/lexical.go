package engine

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/assessrec/core"
)

// Lexical scoring bonuses, flat additions on top of the word-overlap count.
const (
	skillMatchBonus    = 2.0
	testTypeMatchBonus = 3.0
)

// LexicalRetriever is the degraded-mode fallback used when no embedding
// model is available. It scores each catalog record by word overlap with
// the enhanced query plus flat bonuses for skill and test-type hits,
// trading semantic recall for availability.
type LexicalRetriever struct {
	records []*core.AssessmentRecord
	logger  *slog.Logger
}

var _ Retriever = (*LexicalRetriever)(nil)

// NewLexicalRetriever creates a fallback retriever over the catalog records.
func NewLexicalRetriever(records []*core.AssessmentRecord) (*LexicalRetriever, error) {
	return &LexicalRetriever{
		records: records,
		logger:  slog.Default().With("retriever", "lexical"),
	}, nil
}

// Retrieve scores every record and returns up to limit candidates by
// descending score. Records scoring exactly zero are dropped entirely;
// they never enter the candidate pool.
func (r *LexicalRetriever) Retrieve(ctx context.Context, signals core.QuerySignals, limit int) ([]core.Candidate, error) {
	queryWords := wordSet(signals.EnhancedQuery)

	candidates := make([]core.Candidate, 0, len(r.records))
	for _, record := range r.records {
		score := r.score(record, queryWords, signals)
		if score == 0 {
			continue
		}
		candidates = append(candidates, core.Candidate{
			Record:         record,
			RetrievalScore: score,
		})
	}

	// Stable: equal scores keep catalog order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].RetrievalScore > candidates[j].RetrievalScore
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	r.logger.Debug("lexical retrieval", "pool", len(candidates))
	return candidates, nil
}

// score computes word overlap (simple count, no weighting) plus flat
// bonuses: +2 per extracted skill found as substring in name/description,
// +3 per extracted test type found as substring within the record's
// test-type set.
func (r *LexicalRetriever) score(record *core.AssessmentRecord, queryWords map[string]bool, signals core.QuerySignals) float32 {
	var score float32

	recordWords := wordSet(record.Name + " " + record.Description)
	for word := range queryWords {
		if recordWords[word] {
			score++
		}
	}

	name := strings.ToLower(record.Name)
	description := strings.ToLower(record.Description)
	for _, skill := range signals.Skills {
		if strings.Contains(name, skill) || strings.Contains(description, skill) {
			score += skillMatchBonus
		}
	}

	for _, testType := range signals.TestTypes {
		for _, recordType := range record.TestType {
			if strings.Contains(strings.ToLower(recordType), testType) {
				score += testTypeMatchBonus
				break
			}
		}
	}

	return score
}

// wordSet splits text into a set of lowercased words with surrounding
// punctuation trimmed.
func wordSet(text string) map[string]bool {
	words := strings.Fields(text)
	set := make(map[string]bool, len(words))
	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))
		if cleaned != "" {
			set[cleaned] = true
		}
	}
	return set
}
