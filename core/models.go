package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated by content-based hashing of the entity's stable key.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// AssessmentRecord is one catalog item with descriptive and capability metadata.
// Records are produced in bulk by the offline build step and are immutable
// once written into the index artifact.
type AssessmentRecord struct {
	Id              ID
	URL             string // stable identifier, never empty
	Name            string
	Description     string
	TestType        []string // category labels from the catalog vocabulary
	DurationMinutes int      // 0 means unknown, never an actual zero-length assessment
	AdaptiveSupport bool
	RemoteSupport   bool
	Vector          []float32 // unit-norm embedding (populated by the index builder)
}

// QuerySignals holds the structured signals extracted from a raw query.
// One instance is created per request and discarded afterwards.
type QuerySignals struct {
	Skills             []string // vocabulary order, not query order
	TestTypes          []string // vocabulary order
	MaxDurationMinutes *int     // nil when the query carries no duration ceiling
	EnhancedQuery      string   // raw query plus signal clauses; this is what gets scored
}

// Candidate is an assessment record paired with its scores during a single
// retrieval and rerank pass.
type Candidate struct {
	Record         *AssessmentRecord
	RetrievalScore float32
	RerankScore    float32
}

// Recommendation is the public projection of a ranked assessment record.
// Field names and "Yes"/"No" rendering follow the recommendation API contract.
type Recommendation struct {
	URL             string   `json:"url"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	TestType        []string `json:"test_type"`
	Duration        int      `json:"duration"`
	AdaptiveSupport string   `json:"adaptive_support"`
	RemoteSupport   string   `json:"remote_support"`
	Score           float32  `json:"score"`
}

// YesNo renders a capability flag in the external "Yes"/"No" form.
func YesNo(flag bool) string {
	if flag {
		return "Yes"
	}
	return "No"
}

// Project converts the record into its public shape with the given score.
// Internal-only fields (Id, Vector) never leak into the projection.
func (r *AssessmentRecord) Project(score float32) Recommendation {
	return Recommendation{
		URL:             r.URL,
		Name:            r.Name,
		Description:     r.Description,
		TestType:        r.TestType,
		Duration:        r.DurationMinutes,
		AdaptiveSupport: YesNo(r.AdaptiveSupport),
		RemoteSupport:   YesNo(r.RemoteSupport),
		Score:           score,
	}
}
