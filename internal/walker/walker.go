// Package walker implements cargo-go's dependency walker (spec C7): a
// per-top-level-install cache of already-installed queries, plus an
// install-stack cycle guard that the original design left undetected
// (see the REDESIGN FLAG reading recorded in the repository's design
// notes — cycles now abort with a reported error instead of silently
// terminating on the back-edge).
package walker

import (
	"context"
	"log/slog"

	"github.com/terassyi/cargo-go/internal/cargoerr"
)

// InstallFunc resolves and installs a single dependency query. It is
// called at most once per distinct query within one top-level install.
type InstallFunc func(ctx context.Context, query string) error

// Walker tracks the dependency cache and the install-stack for one
// cargo-go process. A single Walker is reused across top-level installs;
// RunTopLevel resets its state between them.
type Walker struct {
	depCache map[string]bool
	stack    map[string]bool
	install  InstallFunc
}

// New returns a Walker that calls install to resolve+install each
// distinct query.
func New(install InstallFunc) *Walker {
	return &Walker{
		depCache: make(map[string]bool),
		stack:    make(map[string]bool),
		install:  install,
	}
}

// RunTopLevel drives one top-level `cargo install` for currentInstall:
// it clears any leftover cache, walks currentInstall, and clears the
// cache again when the top-level query returns, per spec §4.7 step 4.
func (w *Walker) RunTopLevel(ctx context.Context, currentInstall string) error {
	w.depCache = make(map[string]bool)
	w.stack = make(map[string]bool)

	err := w.InstallQuery(ctx, currentInstall)

	w.depCache = make(map[string]bool)
	w.stack = make(map[string]bool)

	return err
}

// InstallQuery enters query: a query already on the install-stack is a
// cycle and aborts with a CodeCyclicDependency error, a cached query
// short-circuits, otherwise it is cached, pushed onto the stack,
// installed, and popped. The stack is checked first because a query on
// the stack is also in the cache.
func (w *Walker) InstallQuery(ctx context.Context, query string) error {
	if w.stack[query] {
		return cargoerr.New(cargoerr.CategoryResolution, "cyclic dependency detected").
			WithCode(cargoerr.CodeCyclicDependency).
			WithDetail("query", query)
	}

	if w.depCache[query] {
		return nil
	}

	w.stack[query] = true
	defer delete(w.stack, query)

	w.depCache[query] = true

	slog.Debug("installing dependency", "query", query)
	if err := w.install(ctx, query); err != nil {
		return err
	}
	return nil
}
