package transport

import (
	"archive/tar"
	"context"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/terassyi/cargo-go/internal/cargoerr"
)

// archiveExtensions is the set of recognized tarball suffixes (spec §4.6).
var archiveExtensions = []string{
	".tar", ".tar.gz", ".tar.bz2", ".tar.Z", ".tar.lz", ".tar.xz",
	".tgz", ".tbz", ".tbz2", ".tb2", ".taz", ".tlz", ".txz",
}

// ArchiveExtensions returns the recognized archive extension set.
func ArchiveExtensions() []string {
	out := make([]string, len(archiveExtensions))
	copy(out, archiveExtensions)
	return out
}

// ExtractTar extracts archive into destDir, stripping the first path
// component (the archive's top-level directory), via the tar binary.
func ExtractTar(ctx context.Context, archive, destDir string) error {
	return runCapture(ctx, cargoerr.CategoryTransport, cargoerr.CodeTransportFailed,
		"tar", "-x", "--strip-components=1", "-C", destDir, "-f", archive)
}

// ProbeTarXZMembers lists the member names of a .tar.xz/.txz archive
// in-process, without extracting it, so the install of a local archive
// can preview the archive's shape before forking the authoritative tar
// subprocess.
func ProbeTarXZMembers(path string) ([]string, error) {
	if !strings.HasSuffix(path, ".tar.xz") && !strings.HasSuffix(path, ".txz") {
		return nil, cargoerr.New(cargoerr.CategoryTransport, "not an xz archive").WithDetail("path", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, cargoerr.Wrap(cargoerr.CategoryTransport, "failed to open archive", err)
	}
	defer f.Close()

	xr, err := xz.NewReader(f)
	if err != nil {
		return nil, cargoerr.Wrap(cargoerr.CategoryTransport, "failed to read xz stream", err)
	}

	tr := tar.NewReader(xr)
	var members []string
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, cargoerr.Wrap(cargoerr.CategoryTransport, "failed to read tar stream", err)
		}
		members = append(members, hdr.Name)
	}
	return members, nil
}
