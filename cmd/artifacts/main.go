// Folio - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/folio

// Package main is the folio-artifacts tool. It copies exported artifacts into
// a Badger store and prints summaries of any artifact backend.
//
// Usage:
//
//	folio-artifacts import -src ./artifacts -dst ./data/artifacts.badger
//	folio-artifacts inspect -backend badger -path ./data/artifacts.badger
//	folio-artifacts query -backend file -path ./artifacts -title "Dune"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/folio/internal/artifacts"
	"github.com/tomtom215/folio/internal/logging"
	"github.com/tomtom215/folio/internal/recommend"
)

var errUsage = errors.New("usage: folio-artifacts <import|inspect|query> [flags]")

func main() {
	logging.Init(logging.Config{Level: "info", Format: "console"})

	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "import":
		return runImport(ctx, args[1:], stdout)
	case "inspect":
		return runInspect(ctx, args[1:], stdout)
	case "query":
		return runQuery(ctx, args[1:], stdout)
	default:
		return fmt.Errorf("unknown command %q: %w", args[0], errUsage)
	}
}

func runImport(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	src := fs.String("src", "artifacts", "Directory holding the exported JSON artifacts")
	dst := fs.String("dst", "data/artifacts.badger", "Badger database directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := artifacts.OpenBadgerDB(*dst, false)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error().Err(closeErr).Msg("Error closing badger database")
		}
	}()

	results, err := artifacts.Import(ctx, db, artifacts.NewFileSource(*src))
	if err != nil {
		return fmt.Errorf("import %s: %w", *src, err)
	}
	return writeJSON(stdout, results)
}

func runInspect(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	backend := fs.String("backend", artifacts.BackendFile, "Artifact backend: file, badger or duckdb")
	path := fs.String("path", "artifacts", "Artifact directory or database directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	bundle, err := loadBundle(ctx, *backend, *path)
	if err != nil {
		return err
	}
	return writeJSON(stdout, bundle.Stats())
}

func runQuery(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	backend := fs.String("backend", artifacts.BackendFile, "Artifact backend: file, badger or duckdb")
	path := fs.String("path", "artifacts", "Artifact directory or database directory")
	title := fs.String("title", "", "Book title to look up")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *title == "" {
		return errors.New("query: -title is required")
	}

	bundle, err := loadBundle(ctx, *backend, *path)
	if err != nil {
		return err
	}
	engine, err := recommend.NewEngine(bundle, nil, logging.WithComponent("recommend"))
	if err != nil {
		return err
	}

	result, err := engine.Recommend(ctx, *title)
	if err != nil {
		return err
	}
	return writeJSON(stdout, result)
}

func loadBundle(ctx context.Context, backend, path string) (*artifacts.Bundle, error) {
	src, err := artifacts.Open(ctx, backend, path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = src.Close() // read-only
	}()

	return artifacts.Load(ctx, src)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
