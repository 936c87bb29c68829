// Package build drives the compiler subprocess over one extracted
// crate manifest (spec C8) and classifies its output into bin/ or lib/.
package build

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/terassyi/cargo-go/internal/cargoerr"
)

// execSuffix is the platform's executable filename suffix, used by the
// bin/ vs lib/ classifier.
var execSuffix = map[string]string{"windows": ".exe"}[runtime.GOOS]

// Builder invokes the compiler and places its artifacts.
type Builder struct {
	compilerPath string
	binDir       string
	libDir       string
}

// NewBuilder resolves the compiler path relative to this executable —
// "<self>/../bin/rustc" per spec §6.3 — and returns a Builder that
// places build output under binDir/libDir.
func NewBuilder(binDir, libDir string) (*Builder, error) {
	compiler, err := resolveCompilerPath()
	if err != nil {
		return nil, err
	}
	return &Builder{compilerPath: compiler, binDir: binDir, libDir: libDir}, nil
}

func resolveCompilerPath() (string, error) {
	self, err := os.Executable()
	if err != nil {
		return "", cargoerr.Wrap(cargoerr.CategoryFilesystem, "failed to resolve own executable path", err)
	}
	name := "rustc"
	if runtime.GOOS == "windows" {
		name = "rustc.exe"
	}
	return filepath.Join(filepath.Dir(self), "..", "bin", name), nil
}

// Build compiles crateFile inside workdir. In test mode it compiles
// with --test and runs every produced binary; in install mode it
// classifies build/'s contents into bin/ and lib/.
func (b *Builder) Build(ctx context.Context, crateFile, workdir string, test bool) error {
	sub := "build"
	if test {
		sub = "test"
	}
	outDir := filepath.Join(workdir, sub)
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return cargoerr.Wrap(cargoerr.CategoryFilesystem, "failed to create "+sub+" directory", err)
	}

	args := []string{"--out-dir", outDir, crateFile}
	if test {
		args = append(args, "--test")
	}

	cmd := exec.CommandContext(ctx, b.compilerPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return cargoerr.New(cargoerr.CategoryParse, fmt.Sprintf("rustc failed: %s\n%s\n%s", exitStatus(err), stderr.String(), stdout.String())).
			WithDetail("crate", crateFile)
	}

	if test {
		return b.runTests(ctx, outDir)
	}
	return b.place(outDir)
}

func exitStatus(err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.String()
	}
	return err.Error()
}

// runTests executes every binary produced under outDir.
func (b *Builder) runTests(ctx context.Context, outDir string) error {
	entries, err := os.ReadDir(outDir)
	if err != nil {
		return cargoerr.Wrap(cargoerr.CategoryFilesystem, "failed to read test directory", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		binPath := filepath.Join(outDir, entry.Name())
		cmd := exec.CommandContext(ctx, binPath)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return cargoerr.Wrap(cargoerr.CategoryParse, "test binary failed: "+entry.Name(), err)
		}
	}
	return nil
}

// place classifies every file in outDir into bin/ or lib/, per spec
// §4.8 step 4, copying with the platform's recursive copy utility.
// A copy failure is reported but does not abort the remaining files.
func (b *Builder) place(outDir string) error {
	entries, err := os.ReadDir(outDir)
	if err != nil {
		return cargoerr.Wrap(cargoerr.CategoryFilesystem, "failed to read build directory", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		destDir := b.libDir
		if isExecutableArtifact(name) {
			destDir = b.binDir
		}

		if err := os.MkdirAll(destDir, 0755); err != nil {
			slog.Warn("failed to create destination directory", "dir", destDir, "error", err)
			continue
		}

		src := filepath.Join(outDir, name)
		dst := filepath.Join(destDir, name)
		if err := recursiveCopy(src, dst); err != nil {
			slog.Warn("failed to place artifact", "src", src, "dst", dst, "error", err)
		}
	}
	return nil
}

// isExecutableArtifact applies spec's bin/ vs lib/ classifier: with a
// platform executable suffix, a matching filename is a binary; without
// one, anything not prefixed "lib" is a binary.
func isExecutableArtifact(name string) bool {
	if execSuffix != "" {
		return strings.HasSuffix(name, execSuffix)
	}
	return !strings.HasPrefix(name, "lib")
}

// recursiveCopy shells out to `cp -R`, the platform's recursive copy
// utility, per spec §4.8 step 5.
func recursiveCopy(src, dst string) error {
	cmd := exec.Command("cp", "-R", src, dst)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("cp -R %s %s: %w: %s", src, dst, err, out)
	}
	return nil
}
