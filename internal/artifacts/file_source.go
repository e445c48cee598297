// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package artifacts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileSource reads JSON artifacts from a directory.
type FileSource struct {
	dir string
}

// NewFileSource returns a FileSource rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Backend implements Source.
func (s *FileSource) Backend() string { return BackendFile }

// Close implements Source.
func (s *FileSource) Close() error { return nil }

// Dir returns the artifact directory.
func (s *FileSource) Dir() string { return s.dir }

// ReadRaw returns the raw JSON document for the named artifact.
func (s *FileSource) ReadRaw(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(s.dir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingArtifact, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// LoadModel implements Source.
func (s *FileSource) LoadModel(ctx context.Context) (ModelSpec, error) {
	data, err := s.ReadRaw(ctx, ArtifactModel)
	if err != nil {
		return ModelSpec{}, err
	}
	return DecodeModel(data)
}

// LoadCatalog implements Source.
func (s *FileSource) LoadCatalog(ctx context.Context) (*Catalog, error) {
	data, err := s.ReadRaw(ctx, ArtifactBookNames)
	if err != nil {
		return nil, err
	}
	return DecodeCatalog(data)
}

// LoadRatings implements Source.
func (s *FileSource) LoadRatings(ctx context.Context) (*RatingTable, error) {
	data, err := s.ReadRaw(ctx, ArtifactFinalRating)
	if err != nil {
		return nil, err
	}
	return DecodeRatings(data)
}

// LoadPivot implements Source.
func (s *FileSource) LoadPivot(ctx context.Context) (*PivotMatrix, error) {
	data, err := s.ReadRaw(ctx, ArtifactBookPivot)
	if err != nil {
		return nil, err
	}
	return DecodePivot(data)
}

var _ Source = (*FileSource)(nil)
