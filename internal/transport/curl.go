package transport

import (
	"context"

	"github.com/terassyi/cargo-go/internal/cargoerr"
)

// Curl fetches a single URL to a destination file via the curl binary.
type Curl struct{}

// NewCurl returns a Curl adapter.
func NewCurl() *Curl { return &Curl{} }

// Fetch downloads url to dest. Flags: fail-on-HTTP-error, silent,
// output-to-file, per spec's curl adapter contract.
func (c *Curl) Fetch(ctx context.Context, url, dest string) error {
	return runCapture(ctx, cargoerr.CategoryTransport, cargoerr.CodeHTTPError,
		"curl", "--fail", "--silent", "--show-error", "--location", "--output", dest, url)
}
