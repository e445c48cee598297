// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

package artifacts

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
)

const fixtureDir = "testdata/books"

func TestNewPivotMatrix(t *testing.T) {
	tests := []struct {
		name    string
		index   []string
		columns []string
		data    [][]float64
		wantErr bool
	}{
		{
			name:    "valid",
			index:   []string{"a", "b"},
			columns: []string{"u1", "u2"},
			data:    [][]float64{{1, 2}, {3, 4}},
		},
		{
			name:    "too few rows",
			index:   []string{"a", "b"},
			columns: []string{"u1"},
			data:    [][]float64{{1}},
			wantErr: true,
		},
		{
			name:    "ragged row",
			index:   []string{"a", "b"},
			columns: []string{"u1", "u2"},
			data:    [][]float64{{1, 2}, {3}},
			wantErr: true,
		},
		{
			name: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPivotMatrix(tt.index, tt.columns, tt.data)
			if tt.wantErr {
				if !errors.Is(err, ErrShapeMismatch) {
					t.Errorf("err = %v, want ErrShapeMismatch", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestPivotMatrix_RowIndexFirstOccurrence(t *testing.T) {
	m, err := NewPivotMatrix(
		[]string{"Dune", "Emma", "Dune"},
		[]string{"u1"},
		[][]float64{{1}, {2}, {3}},
	)
	if err != nil {
		t.Fatalf("NewPivotMatrix: %v", err)
	}

	row, ok := m.RowIndex("Dune")
	if !ok || row != 0 {
		t.Errorf("RowIndex(Dune) = %d, %v; want 0, true", row, ok)
	}
	if _, ok := m.RowIndex("dune"); ok {
		t.Error("RowIndex must match exactly")
	}
	if got := m.Title(1); got != "Emma" {
		t.Errorf("Title(1) = %q, want Emma", got)
	}
}

func TestRatingTable_FirstMatchWins(t *testing.T) {
	table := NewRatingTable([]RatingRecord{
		{Title: "Dune", ImageURL: "first.jpg"},
		{Title: "Emma", ImageURL: "emma.jpg"},
		{Title: "Dune", ImageURL: "second.jpg"},
	})

	for i := 0; i < 3; i++ {
		url, ok := table.PosterURL("Dune")
		if !ok || url != "first.jpg" {
			t.Fatalf("PosterURL(Dune) = %q, %v; want first.jpg", url, ok)
		}
	}
	if _, ok := table.PosterURL("Moby Dick"); ok {
		t.Error("PosterURL(Moby Dick) should not be found")
	}
}

func TestFlexString_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input string
		want  FlexString
	}{
		{`"276725"`, "276725"},
		{`276725`, "276725"},
		{`276725.0`, "276725"},
		{`null`, ""},
		{`"2002"`, "2002"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got FlexString
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodePivot_NullCellsAreZero(t *testing.T) {
	m, err := DecodePivot([]byte(`{"index":["a"],"columns":[1,2],"data":[[null,4.5]]}`))
	if err != nil {
		t.Fatalf("DecodePivot: %v", err)
	}
	row := m.Row(0)
	if row[0] != 0 || row[1] != 4.5 {
		t.Errorf("row = %v, want [0 4.5]", row)
	}
	if cols := m.Columns(); cols[0] != "1" || cols[1] != "2" {
		t.Errorf("columns = %v, want [1 2]", cols)
	}
}

func TestFileSource_Load(t *testing.T) {
	bundle, err := Load(context.Background(), NewFileSource(fixtureDir))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertFixtureBundle(t, bundle)
}

func TestFileSource_MissingArtifact(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(context.Background(), NewFileSource(dir))
	if !errors.Is(err, ErrMissingArtifact) {
		t.Errorf("err = %v, want ErrMissingArtifact", err)
	}
}

func TestFileSource_CorruptArtifact(t *testing.T) {
	dir := copyFixture(t)
	if err := os.WriteFile(filepath.Join(dir, "book_pivot.json"), []byte(`{"index":["a"],"columns":[],"data":[[1]]}`), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(context.Background(), NewFileSource(dir))
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("err = %v, want ErrShapeMismatch", err)
	}
}

func TestFileSource_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, NewFileSource(fixtureDir))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), "s3", fixtureDir)
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("err = %v, want ErrUnknownBackend", err)
	}
}

func TestOpen_DefaultsToFile(t *testing.T) {
	src, err := Open(context.Background(), "", fixtureDir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer src.Close()

	if src.Backend() != BackendFile {
		t.Errorf("Backend() = %q, want %q", src.Backend(), BackendFile)
	}
}

func assertFixtureBundle(t *testing.T, bundle *Bundle) {
	t.Helper()

	stats := bundle.Stats()
	if stats.Titles != 8 {
		t.Errorf("Titles = %d, want 8", stats.Titles)
	}
	if stats.PivotRows != 7 {
		t.Errorf("PivotRows = %d, want 7", stats.PivotRows)
	}
	if stats.PivotColumns != 3 {
		t.Errorf("PivotColumns = %d, want 3", stats.PivotColumns)
	}
	if stats.RatingRecords != 13 {
		t.Errorf("RatingRecords = %d, want 13", stats.RatingRecords)
	}
	if bundle.Model.Metric != "euclidean" || bundle.Model.NNeighbors != 6 {
		t.Errorf("Model = %+v", bundle.Model)
	}

	row, ok := bundle.Pivot.RowIndex("Dune")
	if !ok || row != 2 {
		t.Errorf("RowIndex(Dune) = %d, %v; want 2, true", row, ok)
	}
	want := []float64{5, 5, 0}
	got := bundle.Pivot.Row(row)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Dune row = %v, want %v", got, want)
			break
		}
	}
	if cols := bundle.Pivot.Columns(); cols[0] != "11676" || cols[2] != "153662" {
		t.Errorf("columns = %v", cols)
	}

	if _, ok := bundle.Pivot.RowIndex("Moby Dick"); ok {
		t.Error("Moby Dick should be absent from the pivot")
	}

	url, ok := bundle.Ratings.PosterURL("Dune")
	if !ok || url != "http://images.amazon.com/images/P/0441172717.01.LZZZZZZZ.jpg" {
		t.Errorf("PosterURL(Dune) = %q, %v", url, ok)
	}
	rec, _ := bundle.Ratings.First("1984")
	if rec.ISBN != "0451524934" || rec.UserID != "11676" || rec.Author != "George Orwell" {
		t.Errorf("First(1984) = %+v", rec)
	}
}

func copyFixture(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	entries, err := os.ReadDir(fixtureDir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(fixtureDir, e.Name()))
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, e.Name()), data, 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}
