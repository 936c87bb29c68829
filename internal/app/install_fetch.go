package app

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/terassyi/cargo-go/internal/cargoerr"
	"github.com/terassyi/cargo-go/internal/catalog"
	"github.com/terassyi/cargo-go/internal/resolve"
	"github.com/terassyi/cargo-go/internal/transport"
)

// fetchTarget stages target's content into workdir, per the Kind
// branch resolve.Resolve dispatched to.
func (in *installer) fetchTarget(ctx context.Context, target *resolve.Target, workdir string) error {
	switch target.Kind {
	case resolve.KindArchiveFile:
		in.app.Reporter.Info("installing %s", target.ArchivePath)
		previewArchiveManifests(target.ArchivePath)
		return transport.ExtractTar(ctx, target.ArchivePath, workdir)

	case resolve.KindGitURL:
		in.app.Reporter.Info("installing %s", target.GitURL)
		if err := in.git.Clone(ctx, target.GitURL, workdir); err != nil {
			return err
		}
		if target.GitRef != "" {
			return in.git.Checkout(ctx, workdir, target.GitRef)
		}
		return nil

	case resolve.KindTarballURL:
		in.app.Reporter.Info("installing %s", target.TarballURL)
		archivePath := filepath.Join(workdir, "download.tar")
		if err := in.curl.Fetch(ctx, target.TarballURL, archivePath); err != nil {
			return err
		}
		return transport.ExtractTar(ctx, archivePath, workdir)

	case resolve.KindPackage:
		return in.fetchPackage(ctx, target, workdir)

	default:
		return cargoerr.New(cargoerr.CategoryUsage, "unknown install target kind").
			WithCode(cargoerr.CodeBadArgs)
	}
}

// fetchPackage implements install_package (spec §4.6): the adapter is
// selected from the package's method (an unrecognized method becomes
// curl), logged as "installing <src>/<name> via <method>".
func (in *installer) fetchPackage(ctx context.Context, target *resolve.Target, workdir string) error {
	method := target.Package.Method
	if method != catalog.MethodGit && method != catalog.MethodFile && method != catalog.MethodCurl {
		method = catalog.MethodCurl
	}
	in.app.Reporter.Info("installing %s/%s via %s", target.SourceName, target.Package.Name, method)

	switch method {
	case catalog.MethodGit:
		if err := in.git.Clone(ctx, target.Package.URL, workdir); err != nil {
			return err
		}
		if target.Package.Ref != nil && *target.Package.Ref != "" {
			return in.git.Checkout(ctx, workdir, *target.Package.Ref)
		}
		return nil

	case catalog.MethodFile:
		archivePath := filepath.Join(workdir, "download.tar")
		if err := in.file.Fetch(ctx, target.Package.URL, archivePath); err != nil {
			return err
		}
		return transport.ExtractTar(ctx, archivePath, workdir)

	default: // catalog.MethodCurl
		archivePath := filepath.Join(workdir, "download.tar")
		if err := in.curl.Fetch(ctx, target.Package.URL, archivePath); err != nil {
			return err
		}
		return transport.ExtractTar(ctx, archivePath, workdir)
	}
}

// previewArchiveManifests lists a .tar.xz/.txz archive's .rc manifest
// members in-process before the authoritative tar subprocess extracts
// it, the same list/search-style preview list.go's printer gives a
// synced catalog, applied instead to a single local archive. Not every
// archive extension this probe understands (plain .tar, .tgz, ...)
// supports an in-process read, so a probe failure just stays at debug
// level; ExtractTar is still the source of truth for a bad archive.
func previewArchiveManifests(archivePath string) []string {
	members, err := transport.ProbeTarXZMembers(archivePath)
	if err != nil {
		slog.Debug("archive manifest preview skipped", "archive", archivePath, "error", err)
		return nil
	}

	var manifests []string
	for _, m := range members {
		if strings.HasSuffix(m, ".rc") {
			manifests = append(manifests, m)
		}
	}
	slog.Info("archive manifest preview", "archive", archivePath, "members", len(members), "manifests", manifests)
	return manifests
}
