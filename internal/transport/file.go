package transport

import (
	"context"
	"io"
	"os"

	"github.com/terassyi/cargo-go/internal/cargoerr"
)

// File copies a local path to dest, treating the source "url" as a
// filesystem path (per the file adapter contract).
type File struct{}

// NewFile returns a File adapter.
func NewFile() *File { return &File{} }

// Fetch copies the file at url to dest.
func (f *File) Fetch(ctx context.Context, url, dest string) error {
	src, err := os.Open(url)
	if err != nil {
		return cargoerr.Wrap(cargoerr.CategoryTransport, "failed to open local source", err)
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return cargoerr.Wrap(cargoerr.CategoryTransport, "failed to create destination", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return cargoerr.Wrap(cargoerr.CategoryTransport, "failed to copy local source", err)
	}
	return out.Close()
}
