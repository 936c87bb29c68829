package app

import (
	"context"
	"os"

	"github.com/terassyi/cargo-go/internal/build"
	"github.com/terassyi/cargo-go/internal/cargoerr"
	"github.com/terassyi/cargo-go/internal/manifest"
	"github.com/terassyi/cargo-go/internal/resolve"
	"github.com/terassyi/cargo-go/internal/transport"
	"github.com/terassyi/cargo-go/internal/walker"
)

// crateBuilder is the subset of build.Builder the installer drives.
type crateBuilder interface {
	Build(ctx context.Context, crateFile, workdir string, test bool) error
}

// gitFetcher is the subset of transport.Git the installer drives.
type gitFetcher interface {
	Clone(ctx context.Context, url, dest string) error
	Checkout(ctx context.Context, dir, ref string) error
}

// Install implements `cargo-go install` (spec §4.6/§4.7/§4.8): with no
// targetArg it builds the current working directory directly (no fetch,
// no sync); otherwise it syncs every source (unless the target is a
// direct archive/git/tarball URL), resolves targetArg, and walks the
// dependency tree depth-first.
func (a *App) Install(ctx context.Context, targetArg, ref string, test bool) error {
	if err := a.EnsureBootstrapped(ctx); err != nil {
		return err
	}

	builder, err := build.NewBuilder(a.Paths.BinDir(), a.Paths.LibDir())
	if err != nil {
		return err
	}
	in := &installer{
		app:     a,
		builder: builder,
		test:    test,
		git:     transport.NewGit(),
		curl:    transport.NewCurl(),
		file:    transport.NewFile(),
	}

	if targetArg == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return cargoerr.Wrap(cargoerr.CategoryFilesystem, "failed to get working directory", err)
		}
		in.top = cwd
		in.topIsCWD = true
	} else {
		if resolve.RequiresSync(targetArg) {
			a.SyncAll(ctx)
		}
		in.top = targetArg
		in.topRef = ref
	}

	var w *walker.Walker
	w = walker.New(func(ctx context.Context, query string) error {
		return in.resolveAndInstall(ctx, w, query)
	})
	return w.RunTopLevel(ctx, in.top)
}

// installer threads the builder and top-level query/ref through the
// walker's recursive install callback.
type installer struct {
	app     *App
	builder crateBuilder
	test    bool

	git  gitFetcher
	curl transport.Fetcher
	file transport.Fetcher

	top      string
	topRef   string
	topIsCWD bool
}

// resolveAndInstall is the walker.InstallFunc for one query: resolve it
// to a Target (or, for a bare `cargo install` in topIsCWD mode, use the
// current directory directly), fetch it into a fresh workdir, scan its
// manifests, build each crate, and recurse into its dependency queries.
func (in *installer) resolveAndInstall(ctx context.Context, w *walker.Walker, query string) error {
	var workdir string

	if in.topIsCWD && query == in.top {
		workdir = in.top
	} else {
		ref := ""
		if query == in.top {
			ref = in.topRef
		}

		target, err := resolve.NewResolver(in.app.Cat).Resolve(query, ref)
		if err != nil {
			in.app.Reporter.Error("%s", err)
			return err
		}

		wd, err := in.app.Paths.NewWorkdir("install")
		if err != nil {
			return err
		}
		if err := in.fetchTarget(ctx, target, wd); err != nil {
			in.app.Reporter.Error("%s", err)
			return err
		}
		workdir = wd
	}

	manifests, err := manifest.ScanDir(workdir)
	if err != nil {
		in.app.Reporter.Error("%s", err)
		return err
	}

	for _, m := range manifests {
		if err := in.builder.Build(ctx, m.Path, workdir, in.test); err != nil {
			in.app.Reporter.Error("%s", err)
			return err
		}
		for _, depQuery := range m.Queries {
			if err := w.InstallQuery(ctx, depQuery); err != nil {
				return err
			}
		}
	}
	return nil
}
