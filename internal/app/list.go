package app

import (
	"context"
	"io"

	"github.com/terassyi/cargo-go/internal/printer"
)

// List implements `cargo-go list [source ...]` (spec §6.1, clarified by
// SPEC_FULL item 4): always syncs first, then prints every package, or
// just the OR'd union of the named sources' packages.
func (a *App) List(ctx context.Context, w io.Writer, sources []string, jsonOut bool) error {
	if err := a.EnsureBootstrapped(ctx); err != nil {
		return err
	}
	a.SyncAll(ctx)

	rows := printer.FilterBySources(a.Cat, sources)
	return printer.Print(w, rows, jsonOut)
}

// Search implements `cargo-go search <query|'*'> [tag ...]` (spec §6.1,
// clarified by SPEC_FULL item 5): always syncs first, then prints every
// package matching query (substring, or "*" for all) and carrying every
// listed tag.
func (a *App) Search(ctx context.Context, w io.Writer, query string, tags []string, jsonOut bool) error {
	if err := a.EnsureBootstrapped(ctx); err != nil {
		return err
	}
	a.SyncAll(ctx)

	rows := printer.Search(a.Cat, query, tags)
	if err := printer.Print(w, rows, jsonOut); err != nil {
		return err
	}
	a.Reporter.Info("found %d packages", len(rows))
	return nil
}
