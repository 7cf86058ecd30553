package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/poiesic/assessrec/core"
	"github.com/poiesic/assessrec/storage"
)

// Store is a BadgerDB-backed storage.ArtifactStore. The vector index and
// its metadata live in one database directory and are written under a
// single manifest, so the pair can never be replaced half-way.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

var _ storage.ArtifactStore = (*Store)(nil)

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenStore opens a BadgerDB artifact store at the specified path.
// Creates the directory if it doesn't exist.
func OpenStore(filePath string, inMemory bool) (*Store, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:     db,
		logger: slog.Default().With("component", "artifact-store"),
	}, nil
}

// Close closes the BadgerDB database.
func (s *Store) Close() error {
	return s.db.Close()
}

// WriteArtifact replaces the stored artifact with the given records.
// Records are written first and the manifest last, so a crash mid-write
// leaves an artifact that fails the manifest check on read instead of one
// that silently serves misaligned data.
func (s *Store) WriteArtifact(ctx context.Context, model string, records []*core.AssessmentRecord) error {
	if model == "" {
		return storage.ErrEmptyModel
	}

	dim := 0
	if len(records) > 0 {
		dim = len(records[0].Vector)
	}

	s.logger.Info("writing artifact", "records", len(records), "dim", dim, "model", model)

	// Drop any previous artifact, manifest included.
	if err := s.db.DropPrefix([]byte(recordPrefix), []byte(manifestKey)); err != nil {
		return err
	}

	// WriteBatch keeps large catalogs from tripping transaction size limits.
	batch := s.db.NewWriteBatch()
	defer batch.Cancel()

	for position, record := range records {
		if err := batch.Set(makeRecordKey(position), storage.MarshalAssessmentRecord(record)); err != nil {
			return err
		}
	}
	if err := batch.Flush(); err != nil {
		return err
	}

	manifest := &storage.Manifest{Model: model, Count: len(records), Dim: dim}
	return s.db.Update(func(tx *badger.Txn) error {
		return tx.Set([]byte(manifestKey), storage.MarshalManifest(manifest))
	})
}

// ReadArtifact loads the stored artifact and verifies its consistency.
func (s *Store) ReadArtifact(ctx context.Context) (*storage.Artifact, error) {
	var artifact storage.Artifact

	err := s.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(manifestKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrArtifactMissing
		}
		if err != nil {
			return err
		}
		err = item.Value(func(val []byte) error {
			manifest, err := storage.UnmarshalManifest(val)
			if err != nil {
				return fmt.Errorf("%w: manifest: %w", storage.ErrSerializationFailed, err)
			}
			artifact.Manifest = *manifest
			return nil
		})
		if err != nil {
			return err
		}

		artifact.Records = make([]*core.AssessmentRecord, 0, artifact.Manifest.Count)

		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(recordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()

			// Big-endian keys iterate in position order; a gap or duplicate
			// means the artifact is corrupt.
			if recordPosition(item.Key()) != len(artifact.Records) {
				return fmt.Errorf("%w: record key out of sequence at position %d",
					storage.ErrArtifactMisaligned, len(artifact.Records))
			}

			var record *core.AssessmentRecord
			err := item.Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalAssessmentRecord(val)
				return err
			})
			if err != nil {
				return fmt.Errorf("%w: record %d: %w",
					storage.ErrSerializationFailed, len(artifact.Records), err)
			}
			artifact.Records = append(artifact.Records, record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(artifact.Records) != artifact.Manifest.Count {
		return nil, fmt.Errorf("%w: manifest says %d records, found %d",
			storage.ErrArtifactMisaligned, artifact.Manifest.Count, len(artifact.Records))
	}
	for position, record := range artifact.Records {
		if len(record.Vector) != artifact.Manifest.Dim {
			return nil, fmt.Errorf("%w: record %d vector dim %d, manifest says %d",
				storage.ErrArtifactMisaligned, position, len(record.Vector), artifact.Manifest.Dim)
		}
	}

	s.logger.Info("loaded artifact",
		"records", len(artifact.Records),
		"dim", artifact.Manifest.Dim,
		"model", artifact.Manifest.Model)

	return &artifact, nil
}
