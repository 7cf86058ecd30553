package index

import (
	"fmt"
	"sort"

	"github.com/poiesic/assessrec/core"
)

// Hit is a single nearest-neighbor match: the record's position in the
// index and its similarity score. A negative position signals "no match"
// and must be filtered by callers, never projected.
type Hit struct {
	Position int
	Score    float32
}

// Flat is a flat inner-product index over unit-norm vectors with
// position-aligned record metadata: position i always addresses record i.
//
// A Flat is immutable once constructed and safe for concurrent searches.
// The zero value is unloaded; Search on it returns ErrNotLoaded.
type Flat struct {
	dim     int
	records []*core.AssessmentRecord
	loaded  bool
}

// NewFlat constructs an index over records that already carry embedding
// vectors, preserving their order. Every record must have a vector of the
// same dimension; a record without one is a build defect, not a skippable
// condition.
func NewFlat(records []*core.AssessmentRecord) (*Flat, error) {
	dim := 0
	for i, record := range records {
		if len(record.Vector) == 0 {
			return nil, fmt.Errorf("record %d (%s): %w", i, record.URL, ErrMissingVector)
		}
		if dim == 0 {
			dim = len(record.Vector)
		} else if len(record.Vector) != dim {
			return nil, fmt.Errorf("record %d (%s): %w: got %d, want %d",
				i, record.URL, ErrDimensionMismatch, len(record.Vector), dim)
		}
	}

	return &Flat{
		dim:     dim,
		records: records,
		loaded:  true,
	}, nil
}

// Len returns the number of indexed records.
func (f *Flat) Len() int {
	return len(f.records)
}

// Dim returns the vector dimensionality, or 0 for an empty index.
func (f *Flat) Dim() int {
	return f.dim
}

// Record returns the record at the given index position.
// Positions are in [0, Len()).
func (f *Flat) Record(position int) *core.AssessmentRecord {
	return f.records[position]
}

// Records returns the indexed records in index order.
// Callers must treat the returned slice as read-only.
func (f *Flat) Records() []*core.AssessmentRecord {
	return f.records
}

// Search returns up to limit hits ordered by descending inner-product
// similarity. The query vector must be unit-norm for scores to be cosine
// similarities. Ties preserve index order, so repeated searches over the
// same index are fully deterministic.
func (f *Flat) Search(vector []float32, limit int) ([]Hit, error) {
	if !f.loaded {
		return nil, ErrNotLoaded
	}
	if limit < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	if f.dim > 0 && len(vector) != f.dim {
		return nil, fmt.Errorf("query vector: %w: got %d, want %d",
			ErrDimensionMismatch, len(vector), f.dim)
	}

	hits := make([]Hit, len(f.records))
	for i, record := range f.records {
		hits[i] = Hit{Position: i, Score: dotProduct(vector, record.Vector)}
	}

	// Stable: equal scores keep insertion order.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}
