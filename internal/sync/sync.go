// Package sync drives cargo-go's sync engine (spec C4): for every
// configured source, fetch its catalog files through the method's
// transport and verify-before-promote them into the source's canonical
// packages.json/source.json.
package sync

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/terassyi/cargo-go/internal/cargoerr"
	"github.com/terassyi/cargo-go/internal/catalog"
	"github.com/terassyi/cargo-go/internal/path"
	"github.com/terassyi/cargo-go/internal/transport"
	"github.com/terassyi/cargo-go/internal/verify"
)

// gitTransport is the subset of transport.Git used by the sync engine.
type gitTransport interface {
	Exists(dir string) bool
	Clone(ctx context.Context, url, dest string) error
	Pull(ctx context.Context, dir string) error
	Rollback(ctx context.Context, dir string, insecure bool) error
}

// fetcher is the subset of transport.Curl/transport.File used here.
type fetcher interface {
	Fetch(ctx context.Context, url, dest string) error
}

// verifier is the subset of verify.Verifier used here.
type verifier interface {
	ImportKey(ctx context.Context, keyPath string) error
	Verify(ctx context.Context, targetPath, sigPath, keyfp string) error
}

// Engine orchestrates the catalog, transports, and verification for
// the sync that precedes list, search, and install resolution.
type Engine struct {
	paths    *path.Paths
	git      gitTransport
	curl     fetcher
	file     fetcher
	verifier verifier
}

// NewEngine returns an Engine using the real git/curl/file/gpg subprocess
// adapters.
func NewEngine(paths *path.Paths) *Engine {
	return &Engine{
		paths:    paths,
		git:      transport.NewGit(),
		curl:     transport.NewCurl(),
		file:     transport.NewFile(),
		verifier: verify.NewVerifier(),
	}
}

// SyncAll syncs every source in cat, in a deterministic (sorted)
// iteration order, and returns a Catalog with each source's packages
// and any updated source.json fields reloaded. A single source's
// failure is logged and that source is skipped; it does not abort the
// whole sync.
func (e *Engine) SyncAll(ctx context.Context, cat *catalog.Catalog) *catalog.Catalog {
	names := make([]string, 0, len(cat.Sources))
	for name := range cat.Sources {
		names = append(names, name)
	}
	sort.Strings(names)

	next := cat
	for _, name := range names {
		src := cat.Sources[name]
		if err := e.syncSource(ctx, name, src); err != nil {
			slog.Warn("sync failed for source", "name", name, "error", err)
			continue
		}

		dir := e.paths.SourceDir(name)
		packages, err := catalog.LoadPackages(filepath.Join(dir, "packages.json"))
		if err != nil {
			slog.Warn("failed to reload packages after sync", "name", name, "error", err)
			continue
		}
		next.Packages[name] = packages

		if meta, err := catalog.LoadSourceMeta(filepath.Join(dir, "source.json")); err != nil {
			slog.Warn("failed to reload source.json after sync", "name", name, "error", err)
		} else if meta != nil {
			updated := src
			updated.Key = meta.Key
			updated.KeyFP = meta.KeyFP
			next.Sources[name] = updated
		}
	}

	return next
}

// syncSource ensures the source directory exists and dispatches to the
// method-specific sub-protocol.
func (e *Engine) syncSource(ctx context.Context, name string, src catalog.Source) error {
	dir := e.paths.SourceDir(name)
	if err := path.EnsureDir(dir); err != nil {
		return cargoerr.Wrap(cargoerr.CategoryFilesystem, "failed to create source directory", err)
	}

	switch src.Method {
	case catalog.MethodGit:
		return e.syncGit(ctx, name, dir, src)
	case catalog.MethodFile:
		return e.syncFetch(ctx, name, dir, src, e.file)
	default:
		return e.syncFetch(ctx, name, dir, src, e.curl)
	}
}
