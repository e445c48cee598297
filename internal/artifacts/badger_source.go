// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package artifacts

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/folio/internal/logging"
)

// Key prefix for artifacts stored in BadgerDB.
const artifactKeyPrefix = "artifact:"

// BadgerKey returns the storage key of the named artifact.
func BadgerKey(name string) []byte {
	return []byte(artifactKeyPrefix + name)
}

// BadgerSource reads JSON artifacts stored in a BadgerDB database.
type BadgerSource struct {
	db    *badger.DB
	owned bool
}

// OpenBadgerDB opens the BadgerDB database at dir.
func OpenBadgerDB(dir string, readOnly bool) (*badger.DB, error) {
	opts := badger.DefaultOptions(dir).
		WithLogger(nil).
		WithReadOnly(readOnly)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger %s: %w", dir, err)
	}
	return db, nil
}

// OpenBadgerSource opens dir read-only. Close releases the database.
func OpenBadgerSource(dir string) (*BadgerSource, error) {
	db, err := OpenBadgerDB(dir, true)
	if err != nil {
		return nil, err
	}
	return &BadgerSource{db: db, owned: true}, nil
}

// NewBadgerSource wraps an open database. Close leaves db open.
func NewBadgerSource(db *badger.DB) *BadgerSource {
	return &BadgerSource{db: db}
}

// Backend implements Source.
func (s *BadgerSource) Backend() string { return BackendBadger }

// Close implements Source.
func (s *BadgerSource) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}

// ReadRaw returns the raw JSON document for the named artifact.
func (s *BadgerSource) ReadRaw(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(BadgerKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: key %s", ErrMissingArtifact, BadgerKey(name))
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", name, err)
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// LoadModel implements Source.
func (s *BadgerSource) LoadModel(ctx context.Context) (ModelSpec, error) {
	data, err := s.ReadRaw(ctx, ArtifactModel)
	if err != nil {
		return ModelSpec{}, err
	}
	return DecodeModel(data)
}

// LoadCatalog implements Source.
func (s *BadgerSource) LoadCatalog(ctx context.Context) (*Catalog, error) {
	data, err := s.ReadRaw(ctx, ArtifactBookNames)
	if err != nil {
		return nil, err
	}
	return DecodeCatalog(data)
}

// LoadRatings implements Source.
func (s *BadgerSource) LoadRatings(ctx context.Context) (*RatingTable, error) {
	data, err := s.ReadRaw(ctx, ArtifactFinalRating)
	if err != nil {
		return nil, err
	}
	return DecodeRatings(data)
}

// LoadPivot implements Source.
func (s *BadgerSource) LoadPivot(ctx context.Context) (*PivotMatrix, error) {
	data, err := s.ReadRaw(ctx, ArtifactBookPivot)
	if err != nil {
		return nil, err
	}
	return DecodePivot(data)
}

// ImportResult reports what Import wrote.
type ImportResult struct {
	Name  string `json:"name"`
	Bytes int    `json:"bytes"`
}

// Import copies every JSON artifact from src into db. Each document is
// decoded before it is written, so a failed import leaves previously stored
// artifacts untouched for the failing key.
func Import(ctx context.Context, db *badger.DB, src *FileSource) ([]ImportResult, error) {
	logger := logging.Ctx(ctx).With().Str("component", "artifacts").Logger()

	results := make([]ImportResult, 0, len(Names))
	for _, name := range Names {
		data, err := src.ReadRaw(ctx, name)
		if err != nil {
			return results, err
		}
		if err := validateDocument(name, data); err != nil {
			return results, err
		}

		err = db.Update(func(txn *badger.Txn) error {
			if err := txn.Set(BadgerKey(name), data); err != nil {
				return fmt.Errorf("set %s: %w", name, err)
			}
			return nil
		})
		if err != nil {
			return results, err
		}

		logger.Info().Str("artifact", name).Int("bytes", len(data)).Msg("Artifact imported")
		results = append(results, ImportResult{Name: name, Bytes: len(data)})
	}
	return results, nil
}

var _ Source = (*BadgerSource)(nil)
