// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package artifacts

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// FlexString decodes a JSON string or number into a string. Pandas exports
// user IDs and publication years with either type depending on the column
// dtype.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	// Integral floats such as 276725.0 come from nullable integer columns.
	*f = FlexString(strings.TrimSuffix(string(data), ".0"))
	return nil
}

// String returns the value as a plain string.
func (f FlexString) String() string {
	return string(f)
}

// pivotDocument is the pandas DataFrame.to_json(orient="split") layout.
type pivotDocument struct {
	Index   []FlexString `json:"index"`
	Columns []FlexString `json:"columns"`
	Data    [][]float64  `json:"data"`
}

// DecodeModel decodes a model.json document.
func DecodeModel(data []byte) (ModelSpec, error) {
	var spec ModelSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return ModelSpec{}, fmt.Errorf("decode %s: %w", ArtifactModel, err)
	}
	return spec, nil
}

// DecodeCatalog decodes a book_names.json document.
func DecodeCatalog(data []byte) (*Catalog, error) {
	var titles []string
	if err := json.Unmarshal(data, &titles); err != nil {
		return nil, fmt.Errorf("decode %s: %w", ArtifactBookNames, err)
	}
	return NewCatalog(titles), nil
}

// DecodeRatings decodes a final_rating.json document.
func DecodeRatings(data []byte) (*RatingTable, error) {
	var records []RatingRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", ArtifactFinalRating, err)
	}
	return NewRatingTable(records), nil
}

// DecodePivot decodes a book_pivot.json document. Null cells decode as 0.
func DecodePivot(data []byte) (*PivotMatrix, error) {
	var doc pivotDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", ArtifactBookPivot, err)
	}
	m, err := NewPivotMatrix(flexStrings(doc.Index), flexStrings(doc.Columns), doc.Data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ArtifactBookPivot, err)
	}
	return m, nil
}

// validateDocument decodes data as the named artifact and discards the result.
func validateDocument(name string, data []byte) error {
	var err error
	switch name {
	case ArtifactModel:
		_, err = DecodeModel(data)
	case ArtifactBookNames:
		_, err = DecodeCatalog(data)
	case ArtifactFinalRating:
		_, err = DecodeRatings(data)
	case ArtifactBookPivot:
		_, err = DecodePivot(data)
	default:
		err = fmt.Errorf("%w: %q", ErrMissingArtifact, name)
	}
	return err
}

func flexStrings(in []FlexString) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}
