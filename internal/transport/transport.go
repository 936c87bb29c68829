// Package transport implements cargo-go's three fetch adapters — git,
// curl, and local file — plus tar archive extraction. The git and curl
// adapters and tar extraction shell out to the corresponding binary, and
// a missing binary on PATH is a fatal, subprocess-exit-code error; the
// file adapter copies in-process.
package transport

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/terassyi/cargo-go/internal/cargoerr"
)

// Fetcher stages a remote or local resource at dest.
type Fetcher interface {
	Fetch(ctx context.Context, url, dest string) error
}

// Method names a transport method, as stored in a Source's "method" field.
type Method string

const (
	MethodGit  Method = "git"
	MethodCurl Method = "curl"
	MethodFile Method = "file"
)

// runCapture runs name with args, returning combined stdout+stderr on
// failure wrapped as a cargoerr.Error so callers only need one error shape.
func runCapture(ctx context.Context, category cargoerr.Category, code cargoerr.Code, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if _, lookErr := exec.LookPath(name); lookErr != nil {
			return cargoerr.Wrap(category, fmt.Sprintf("%s is not installed or not on PATH", name), lookErr).WithCode(code)
		}
		return cargoerr.Wrap(category, fmt.Sprintf("%s %v failed", name, args), err).
			WithCode(code).
			WithDetail("output", string(out))
	}
	return nil
}
