package sync

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/terassyi/cargo-go/internal/cargoerr"
	"github.com/terassyi/cargo-go/internal/catalog"
)

// syncFetch implements the curl/file sub-protocol: stage candidate
// files with a .new suffix, verify if the source carries a key/keyfp,
// then promote on success or discard the staging files on failure.
func (e *Engine) syncFetch(ctx context.Context, name, dir string, src catalog.Source, f fetcher) error {
	smart := !strings.HasSuffix(src.URL, "packages.json")

	var packagesURL, packagesSigURL, sourceURL, sourceSigURL string
	if smart {
		base := strings.TrimSuffix(src.URL, "/")
		packagesURL = base + "/packages.json"
		sourceURL = base + "/source.json"
		packagesSigURL = packagesURL + ".sig"
		sourceSigURL = sourceURL + ".sig"
	} else {
		packagesURL = src.URL
		packagesSigURL = src.URL + ".sig"
	}

	packagesNew := filepath.Join(dir, "packages.json.new")
	packagesSig := filepath.Join(dir, "packages.json.sig")
	sourceNew := filepath.Join(dir, "source.json.new")
	sourceSig := filepath.Join(dir, "source.json.sig")

	staged := []string{packagesNew, packagesSig}
	cleanup := func() {
		for _, p := range staged {
			os.Remove(p)
		}
	}

	if err := f.Fetch(ctx, packagesURL, packagesNew); err != nil {
		return cargoerr.Wrap(cargoerr.CategoryTransport, "failed to fetch packages.json", err).WithDetail("source", name)
	}
	havePackagesSig := e.fetchOptional(ctx, f, packagesSigURL, packagesSig)

	haveSourceJSON := false
	haveSourceSig := false
	if smart {
		haveSourceJSON = e.fetchOptional(ctx, f, sourceURL, sourceNew)
		if haveSourceJSON {
			staged = append(staged, sourceNew)
			haveSourceSig = e.fetchOptional(ctx, f, sourceSigURL, sourceSig)
			if haveSourceSig {
				staged = append(staged, sourceSig)
			}
		}
	}

	if src.Key != "" {
		if err := e.importKey(ctx, dir, src.Key); err != nil {
			cleanup()
			return err
		}
	}

	if src.Key != "" && src.KeyFP != "" {
		if !havePackagesSig {
			cleanup()
			return cargoerr.New(cargoerr.CategoryVerification, "source requires verification but no packages.json.sig was found").
				WithCode(cargoerr.CodeSignatureMissing).
				WithDetail("source", name)
		}
		if err := e.verifier.Verify(ctx, packagesNew, packagesSig, src.KeyFP); err != nil {
			cleanup()
			return err
		}
		if haveSourceJSON {
			if !haveSourceSig {
				cleanup()
				return cargoerr.New(cargoerr.CategoryVerification, "source requires verification but no source.json.sig was found").
					WithCode(cargoerr.CodeSignatureMissing).
					WithDetail("source", name)
			}
			if err := e.verifier.Verify(ctx, sourceNew, sourceSig, src.KeyFP); err != nil {
				cleanup()
				return err
			}
		}
	}

	if err := os.Rename(packagesNew, filepath.Join(dir, "packages.json")); err != nil {
		cleanup()
		return cargoerr.Wrap(cargoerr.CategoryFilesystem, "failed to promote packages.json", err)
	}
	if haveSourceJSON {
		if err := os.Rename(sourceNew, filepath.Join(dir, "source.json")); err != nil {
			return cargoerr.Wrap(cargoerr.CategoryFilesystem, "failed to promote source.json", err)
		}
	}

	os.Remove(packagesSig)
	os.Remove(sourceSig)
	os.Remove(filepath.Join(dir, "key.gpg"))
	return nil
}

// fetchOptional fetches url to dest, returning whether it succeeded.
// Used for signature siblings and the smart-mode source.json, neither
// of which is required to exist.
func (e *Engine) fetchOptional(ctx context.Context, f fetcher, url, dest string) bool {
	if err := f.Fetch(ctx, url, dest); err != nil {
		slog.Debug("optional fetch failed", "url", url, "error", err)
		return false
	}
	return true
}
