package transport

import (
	"context"
	"os"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/client"

	"github.com/terassyi/cargo-go/internal/cargoerr"
)

// IsGitURL reports whether u looks like a git remote, per the spec's
// is_git_url predicate: it starts "git://", or ends ".git" or ".git/".
func IsGitURL(u string) bool {
	return strings.HasPrefix(u, "git://") || strings.HasSuffix(u, ".git") || strings.HasSuffix(u, ".git/")
}

// ValidateRemote checks that url parses as a git endpoint and that a
// transport client exists for its scheme, without shelling out to git.
// This catches a typo'd or unsupported-scheme URL before the caller
// forks a doomed `git clone` subprocess. A string with no "scheme://"
// prefix is read as a local file path and must exist.
func ValidateRemote(ctx context.Context, url string) error {
	ep, err := transport.NewEndpoint(url)
	if err != nil {
		return cargoerr.Wrap(cargoerr.CategoryTransport, "not a valid git remote", err).
			WithCode(cargoerr.CodeGitFailed).
			WithDetail("url", url)
	}

	if ep.Protocol == "file" {
		if _, err := os.Stat(ep.Path); err != nil {
			return cargoerr.Wrap(cargoerr.CategoryTransport, "not a valid git remote", err).
				WithCode(cargoerr.CodeGitFailed).
				WithDetail("url", url)
		}
	}

	if _, err := client.NewClient(ep); err != nil {
		return cargoerr.Wrap(cargoerr.CategoryTransport, "no git transport for this URL scheme", err).
			WithCode(cargoerr.CodeGitFailed).
			WithDetail("url", url).
			WithDetail("scheme", ep.Protocol)
	}

	return nil
}
