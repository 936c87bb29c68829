// Package path computes and materializes the directory layout used by
// cargo-go: the root (where sources.json lives) and the install prefix
// chosen by install mode (system/user/local).
package path

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Mode selects which install prefix a command operates against.
type Mode string

const (
	ModeSystem Mode = "system"
	ModeUser   Mode = "user"
	ModeLocal  Mode = "local"
)

const (
	// envHome overrides the root directory (analogous to CARGO_HOME).
	envHome = "CARGO_HOME"
	// envSystemRoot overrides the system-wide prefix.
	envSystemRoot = "CARGO_SYSTEM_ROOT"

	defaultRootSuffix   = ".cargo"
	defaultSystemRoot   = "/usr/local/cargo"
	localAncestorMarker = ".cargo"
)

// Paths holds the resolved root and prefix directories for one invocation.
type Paths struct {
	root   string
	prefix string
	mode   Mode
}

// Option configures Paths construction.
type Option func(*resolveOptions)

type resolveOptions struct {
	cwd string
}

// WithWorkingDir overrides the working directory used to search for a
// local .cargo ancestor. Defaults to os.Getwd().
func WithWorkingDir(dir string) Option {
	return func(o *resolveOptions) {
		o.cwd = dir
	}
}

// Root returns the user's cargo root: where sources.json and the
// sources/ tree live, regardless of install mode.
func Root() (string, error) {
	if home := os.Getenv(envHome); home != "" {
		return home, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return SystemRoot(), nil
	}
	return filepath.Join(userHome, defaultRootSuffix), nil
}

// SystemRoot returns the system-wide cargo root, used as a fallback when
// no user home directory is available and as the system install prefix.
func SystemRoot() string {
	if r := os.Getenv(envSystemRoot); r != "" {
		return r
	}
	return defaultSystemRoot
}

// New resolves the root and the install prefix for the given mode.
func New(mode Mode, opts ...Option) (*Paths, error) {
	var ro resolveOptions
	for _, opt := range opts {
		opt(&ro)
	}

	root, err := Root()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}

	var prefix string
	switch mode {
	case ModeSystem:
		prefix = SystemRoot()
	case ModeUser:
		prefix = root
	case ModeLocal:
		cwd := ro.cwd
		if cwd == "" {
			cwd, err = os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get working directory: %w", err)
			}
		}
		prefix = findLocalAncestor(cwd)
		if prefix == "" {
			prefix = root
		}
	default:
		return nil, fmt.Errorf("unknown install mode: %s", mode)
	}

	return &Paths{root: root, prefix: prefix, mode: mode}, nil
}

// findLocalAncestor walks up from dir looking for a .cargo directory.
// Returns "" if none is found before reaching the filesystem root.
func findLocalAncestor(dir string) string {
	for {
		candidate := filepath.Join(dir, localAncestorMarker)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Root returns the resolved root directory (sources.json's home).
func (p *Paths) Root() string { return p.root }

// Prefix returns the resolved install prefix for this invocation's mode.
func (p *Paths) Prefix() string { return p.prefix }

// Mode returns the install mode this Paths was resolved for.
func (p *Paths) Mode() Mode { return p.mode }

// SourcesFile returns the path to the root-level sources.json.
func (p *Paths) SourcesFile() string {
	return filepath.Join(p.root, "sources.json")
}

// LocalSourcesFile returns the path to local-sources.json.
func (p *Paths) LocalSourcesFile() string {
	return filepath.Join(p.root, "local-sources.json")
}

// SourceDir returns the per-source directory under root/sources/<name>.
func (p *Paths) SourceDir(name string) string {
	return filepath.Join(p.root, "sources", name)
}

// BinDir returns the prefix's bin/ directory.
func (p *Paths) BinDir() string { return filepath.Join(p.prefix, "bin") }

// LibDir returns the prefix's lib/ directory.
func (p *Paths) LibDir() string { return filepath.Join(p.prefix, "lib") }

// WorkDir returns the prefix's work/ directory (parent of per-install workdirs).
func (p *Paths) WorkDir() string { return filepath.Join(p.prefix, "work") }

// EnsureLayout creates bin/, lib/, work/ under the prefix and sources/
// under the root, all with mode 0755, if they don't already exist.
func (p *Paths) EnsureLayout() error {
	dirs := []string{
		p.BinDir(),
		p.LibDir(),
		p.WorkDir(),
		filepath.Join(p.root, "sources"),
	}
	for _, d := range dirs {
		if err := EnsureDir(d); err != nil {
			return fmt.Errorf("failed to create %s: %w", d, err)
		}
	}
	return nil
}

// EnsureDir creates a directory (and parents) with mode 0755 if absent.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// NewWorkdir creates a fresh, uniquely-named directory under
// prefix/work/ for one install frame. The name carries a UUID rather
// than relying on MkdirTemp's random suffix, so install frames are
// identifiable from directory listings alone.
func (p *Paths) NewWorkdir(namePrefix string) (string, error) {
	if err := EnsureDir(p.WorkDir()); err != nil {
		return "", err
	}
	dir := filepath.Join(p.WorkDir(), namePrefix+"-"+uuid.NewString())
	if err := os.Mkdir(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create workdir: %w", err)
	}
	return dir, nil
}
