package sync

import (
	"context"
	"os"
	"path/filepath"

	"github.com/terassyi/cargo-go/internal/cargoerr"
	"github.com/terassyi/cargo-go/internal/catalog"
)

// syncGit clones or pulls src's git checkout into dir, then verifies
// packages.json/source.json directly in the working tree (no .new
// staging — the checkout itself is rolled back on verification failure).
func (e *Engine) syncGit(ctx context.Context, name, dir string, src catalog.Source) error {
	if e.git.Exists(dir) {
		if err := e.git.Pull(ctx, dir); err != nil {
			return cargoerr.Wrap(cargoerr.CategoryTransport, "git pull failed", err).WithDetail("source", name)
		}
	} else {
		if err := e.git.Clone(ctx, src.URL, dir); err != nil {
			return cargoerr.Wrap(cargoerr.CategoryTransport, "git clone failed", err).WithDetail("source", name)
		}
	}

	if src.Key != "" {
		if err := e.importKey(ctx, dir, src.Key); err != nil {
			return err
		}
	}

	if src.Key == "" || src.KeyFP == "" {
		return nil
	}

	insecure := false
	if err := e.verifyIfPresent(ctx, dir, "packages.json", src.KeyFP); err != nil {
		insecure = true
	} else if err := e.verifyIfPresent(ctx, dir, "source.json", src.KeyFP); err != nil {
		insecure = true
	} else {
		return nil
	}

	if rbErr := e.git.Rollback(ctx, dir, insecure); rbErr != nil {
		return cargoerr.Wrap(cargoerr.CategoryVerification, "verification failed and rollback failed", rbErr).
			WithDetail("source", name)
	}
	return cargoerr.New(cargoerr.CategoryVerification, "signature verification failed, rolled back").
		WithCode(cargoerr.CodeSignatureInvalid).
		WithDetail("source", name)
}

func (e *Engine) importKey(ctx context.Context, dir, keyURL string) error {
	keyPath := filepath.Join(dir, "key.gpg")
	if err := e.curl.Fetch(ctx, keyURL, keyPath); err != nil {
		return cargoerr.Wrap(cargoerr.CategoryTransport, "failed to fetch signing key", err)
	}
	defer os.Remove(keyPath)

	if err := e.verifier.ImportKey(ctx, keyPath); err != nil {
		return err
	}
	return nil
}

// verifyIfPresent verifies filename against filename+".sig" when both
// exist; a missing signature sibling is not an error (not every file
// need carry one), but an invalid signature is.
func (e *Engine) verifyIfPresent(ctx context.Context, dir, filename, keyfp string) error {
	target := filepath.Join(dir, filename)
	sig := target + ".sig"

	if _, err := os.Stat(target); err != nil {
		return nil
	}
	if _, err := os.Stat(sig); err != nil {
		return nil
	}

	return e.verifier.Verify(ctx, target, sig, keyfp)
}
