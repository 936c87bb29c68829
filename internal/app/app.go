// Package app wires cargo-go's components (path, catalog, sync,
// resolve, walker, manifest, build) into the command handlers invoked
// by cmd/cargo-go: init, install, uninstall, list, search, and the
// sources subcommands.
package app

import (
	"context"
	"path/filepath"

	"github.com/terassyi/cargo-go/internal/catalog"
	"github.com/terassyi/cargo-go/internal/path"
	"github.com/terassyi/cargo-go/internal/sync"
	"github.com/terassyi/cargo-go/internal/ui"
)

// App is the loaded state for one invocation: resolved paths, the
// in-memory catalog, and the reporter commands print through.
type App struct {
	Paths    *path.Paths
	Reporter *ui.Reporter
	Cat      *catalog.Catalog

	engine *sync.Engine

	// bootstrapSourcesURL/bootstrapSigURL/bootstrapKeyFP default to the
	// well-known constants but are plain fields (not consts) so tests
	// can point Init at a httptest.Server instead.
	bootstrapSourcesURL string
	bootstrapSigURL     string
	bootstrapKeyFP      string
}

// Open resolves mode's Paths, materializes the directory layout, and
// loads the on-disk catalog (sources.json + local-sources.json, and
// each configured source's packages.json).
func Open(mode path.Mode, reporter *ui.Reporter) (*App, error) {
	p, err := path.New(mode)
	if err != nil {
		return nil, err
	}
	if err := p.EnsureLayout(); err != nil {
		return nil, err
	}

	cat, err := loadCatalog(p)
	if err != nil {
		return nil, err
	}

	return &App{
		Paths:               p,
		Reporter:            reporter,
		Cat:                 cat,
		engine:              sync.NewEngine(p),
		bootstrapSourcesURL: bootstrapSourcesURL,
		bootstrapSigURL:     bootstrapSigURL,
		bootstrapKeyFP:      bootstrapKeyFP,
	}, nil
}

func loadCatalog(p *path.Paths) (*catalog.Catalog, error) {
	sources, err := catalog.LoadSources(p.SourcesFile(), p.LocalSourcesFile())
	if err != nil {
		return nil, err
	}

	cat := catalog.New()
	cat.Sources = sources
	for name := range sources {
		packages, err := catalog.LoadPackages(filepath.Join(p.SourceDir(name), "packages.json"))
		if err != nil {
			return nil, err
		}
		cat.Packages[name] = packages
	}
	return cat, nil
}

// Save persists Cat's sources to sources.json, guarded by a
// cross-process lock (spec §5: "concurrency between cargo processes
// is not guarded" for everything except this write, which the teacher's
// idiom protects with gofrs/flock regardless).
func (a *App) Save() error {
	return catalog.WithLock(a.Paths.SourcesFile(), func() error {
		return catalog.DumpSources(a.Paths.SourcesFile(), a.Cat.Sources)
	})
}

// EnsureBootstrapped runs the implicit first-run init when no source is
// configured yet (the has_sources check of spec §9, sense corrected),
// and reloads the catalog afterward.
func (a *App) EnsureBootstrapped(ctx context.Context) error {
	if a.Cat.HasSources() {
		return nil
	}
	if err := a.Init(ctx); err != nil {
		return err
	}
	cat, err := loadCatalog(a.Paths)
	if err != nil {
		return err
	}
	a.Cat = cat
	return nil
}

// SyncAll syncs every configured source and replaces Cat with the
// refreshed result, per spec §4.4.
func (a *App) SyncAll(ctx context.Context) {
	a.Cat = a.engine.SyncAll(ctx, a.Cat)
}
