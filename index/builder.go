package index

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/assessrec/ai"
	"github.com/poiesic/assessrec/core"
)

const defaultBatchSize = 32

// Builder embeds assessment records in batches and assembles a Flat index.
// Building requires the embedding model and runs offline; it is never
// invoked from the request path.
type Builder struct {
	embedder  ai.Embedder
	pool      *ants.Pool
	batchSize int
	logger    *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder) error

// WithBatchSize sets how many records are embedded per request.
// Default is 32.
func WithBatchSize(size int) BuilderOption {
	return func(b *Builder) error {
		if size < 1 {
			return fmt.Errorf("batch size must be positive, got %d", size)
		}
		b.batchSize = size
		return nil
	}
}

// WithPoolSize sets the worker pool size for concurrent embedding batches.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) BuilderOption {
	return func(b *Builder) error {
		if size < 1 {
			size = 1
		}
		if b.pool != nil {
			b.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		b.pool = pool
		return nil
	}
}

// WithBuilderLogger sets a custom logger.
// Default is slog.Default().
func WithBuilderLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBuilder creates an index builder backed by the given embedder.
func NewBuilder(embedder ai.Embedder, opts ...BuilderOption) (*Builder, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	b := &Builder{
		embedder:  embedder,
		pool:      pool,
		batchSize: defaultBatchSize,
		logger:    slog.Default().With("component", "index-builder"),
	}

	for _, opt := range opts {
		if optErr := opt(b); optErr != nil {
			b.Release()
			return nil, optErr
		}
	}

	return b, nil
}

// Build embeds every record's canonical text, normalizes the vectors to
// unit length, and returns a Flat index over the records in their original
// order. The records are mutated in place: each gets its Vector populated.
func (b *Builder) Build(ctx context.Context, records []*core.AssessmentRecord) (*Flat, error) {
	b.logger.Info("building index", "records", len(records), "batchSize", b.batchSize)

	batches := chunk(records, b.batchSize)
	errs := make([]error, len(batches))

	var wg sync.WaitGroup
	for i, batch := range batches {
		wg.Add(1)
		submitErr := b.pool.Submit(func() {
			defer wg.Done()
			errs[i] = b.embedBatch(ctx, batch)
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = submitErr
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			b.logger.Error("embedding batch failed", "batch", i, "err", err)
			return nil, fmt.Errorf("embedding batch %d: %w", i, err)
		}
	}

	flat, err := NewFlat(records)
	if err != nil {
		return nil, err
	}

	b.logger.Info("index built", "vectors", flat.Len(), "dim", flat.Dim())
	return flat, nil
}

// embedBatch embeds one batch of records and stores unit-norm vectors on them.
func (b *Builder) embedBatch(ctx context.Context, batch []*core.AssessmentRecord) error {
	texts := make([]string, len(batch))
	for i, record := range batch {
		texts[i] = EmbeddingText(record)
	}

	vectors, err := b.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return err
	}
	if len(vectors) != len(batch) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d",
			len(batch), len(vectors))
	}

	for i := range vectors {
		batch[i].Vector = Normalize(vectors[i])
	}
	return nil
}

// Release releases the worker pool.
// The builder should not be used after calling Release.
func (b *Builder) Release() {
	if b.pool != nil {
		b.pool.Release()
	}
}

// chunk splits records into consecutive batches of at most size elements.
func chunk(records []*core.AssessmentRecord, size int) [][]*core.AssessmentRecord {
	var batches [][]*core.AssessmentRecord
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		batches = append(batches, records[start:end])
	}
	return batches
}
