package storage

import (
	"context"

	"github.com/poiesic/assessrec/core"
)

// Manifest describes a persisted artifact: how many records it holds, their
// vector dimensionality, and the embedding model that produced the vectors.
// The manifest is written last and checked first; a manifest that disagrees
// with the stored records marks the artifact as corrupt.
type Manifest struct {
	Model string
	Count int
	Dim   int
}

// Artifact is the persisted index+metadata pair, read back into memory.
// Records appear in index order: position i in the slice is index position i.
type Artifact struct {
	Manifest Manifest
	Records  []*core.AssessmentRecord
}

// ArtifactStore persists the vector index and its position-aligned metadata
// as one logical artifact. The two halves are never written or read
// independently.
type ArtifactStore interface {
	// WriteArtifact replaces any previously stored artifact with the given
	// records (which must carry embedding vectors) and manifest metadata.
	WriteArtifact(ctx context.Context, model string, records []*core.AssessmentRecord) error

	// ReadArtifact loads the stored artifact.
	// Returns ErrArtifactMissing if no artifact has been written, and
	// ErrArtifactMisaligned if the manifest and the stored records disagree.
	ReadArtifact(ctx context.Context) (*Artifact, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
