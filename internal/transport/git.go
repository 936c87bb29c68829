package transport

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/terassyi/cargo-go/internal/cargoerr"
)

// Git drives the git binary as a subprocess: clone, checkout, pull, and
// the verify-before-promote rollback used by the sync engine.
type Git struct{}

// NewGit returns a Git adapter.
func NewGit() *Git { return &Git{} }

// Clone clones url into dest. The remote is validated first so a
// typo'd or unsupported-scheme URL fails fast instead of forking a
// doomed `git clone` subprocess.
func (g *Git) Clone(ctx context.Context, url, dest string) error {
	if err := ValidateRemote(ctx, url); err != nil {
		return err
	}
	slog.Debug("git clone", "url", url, "dest", dest)
	return runCapture(ctx, cargoerr.CategoryTransport, cargoerr.CodeGitFailed, "git", "clone", url, dest)
}

// Fetch satisfies Fetcher by cloning url to dest.
func (g *Git) Fetch(ctx context.Context, url, dest string) error {
	return g.Clone(ctx, url, dest)
}

// Checkout checks out ref inside the repository at dir.
func (g *Git) Checkout(ctx context.Context, dir, ref string) error {
	slog.Debug("git checkout", "dir", dir, "ref", ref)
	cmd := exec.CommandContext(ctx, "git", "-C", dir, "checkout", ref)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return cargoerr.Wrap(cargoerr.CategoryTransport, "git checkout failed", err).
			WithCode(cargoerr.CodeGitFailed).
			WithDetail("ref", ref).
			WithDetail("output", string(out))
	}
	return nil
}

// Pull pulls the current branch inside the repository at dir.
func (g *Git) Pull(ctx context.Context, dir string) error {
	slog.Debug("git pull", "dir", dir)
	cmd := exec.CommandContext(ctx, "git", "-C", dir, "pull")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return cargoerr.Wrap(cargoerr.CategoryTransport, "git pull failed", err).
			WithCode(cargoerr.CodeGitFailed).
			WithDetail("output", string(out))
	}
	return nil
}

// Rollback resets dir hard to its previous checkout (HEAD@{1}), used
// after a failed signature verification on a git-sourced catalog.
// insecure elevates the log level of a rollback failure, since in that
// case verification had already passed once in the past.
func (g *Git) Rollback(ctx context.Context, dir string, insecure bool) error {
	if _, err := os.Stat(dir); err != nil {
		if insecure {
			slog.Warn("rollback failed: directory unreachable", "dir", dir, "error", err)
		} else {
			slog.Debug("rollback failed: directory unreachable", "dir", dir, "error", err)
		}
		return cargoerr.Wrap(cargoerr.CategoryTransport, "rollback failed", err).WithCode(cargoerr.CodeGitFailed)
	}

	cmd := exec.CommandContext(ctx, "git", "-C", dir, "reset", "--hard", "HEAD@{1}")
	out, err := cmd.CombinedOutput()
	if err != nil {
		if insecure {
			slog.Warn("rollback failed", "dir", dir, "error", err, "output", string(out))
		} else {
			slog.Debug("rollback failed", "dir", dir, "error", err, "output", string(out))
		}
		return cargoerr.Wrap(cargoerr.CategoryTransport, "git reset --hard HEAD@{1} failed", err).
			WithCode(cargoerr.CodeGitFailed).
			WithDetail("output", string(out))
	}
	return nil
}

// Exists reports whether dir looks like a git checkout.
func (g *Git) Exists(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && (info.IsDir() || info.Mode().IsRegular())
}
