package app

import (
	"context"
	"os"
	"path/filepath"

	"github.com/terassyi/cargo-go/internal/cargoerr"
	"github.com/terassyi/cargo-go/internal/transport"
	"github.com/terassyi/cargo-go/internal/verify"
)

const (
	bootstrapSourcesURL = "http://www.rust-lang.org/cargo/sources.json"
	bootstrapSigURL     = bootstrapSourcesURL + ".sig"

	// bootstrapKeyFP is the fingerprint of cargo-go's own built-in
	// signing key, compiled in rather than fetched — there is no
	// bootstrap-of-the-bootstrap.
	bootstrapKeyFP = "9F6C6BDA2DD50F0B1C2E7A3D4E5F6789AB12CD34"
)

// Init implements `cargo-go init` and the implicit first-run bootstrap
// (spec §6.4): fetch the well-known sources.json and its detached
// signature, verify against the built-in fingerprint, and promote the
// result to the root's sources.json.
func (a *App) Init(ctx context.Context) error {
	curl := transport.NewCurl()

	srcNew := filepath.Join(a.Paths.Root(), "sources.json.new")
	sigFile := filepath.Join(a.Paths.Root(), "sources.json.sig")
	dest := a.Paths.SourcesFile()

	if err := curl.Fetch(ctx, a.bootstrapSourcesURL, srcNew); err != nil {
		return cargoerr.Wrap(cargoerr.CategoryTransport, "fetch of sources.json failed", err)
	}
	defer os.Remove(srcNew)

	if err := curl.Fetch(ctx, a.bootstrapSigURL, sigFile); err != nil {
		return cargoerr.Wrap(cargoerr.CategoryTransport, "fetch of sources.json.sig failed", err)
	}
	defer os.Remove(sigFile)

	if err := verify.NewVerifier().Verify(ctx, srcNew, sigFile, a.bootstrapKeyFP); err != nil {
		return err
	}

	if err := os.Rename(srcNew, dest); err != nil {
		return cargoerr.Wrap(cargoerr.CategoryFilesystem, "failed to promote sources.json", err)
	}

	a.Reporter.Info("initialized cargo-go in %s", a.Paths.Root())
	return nil
}
