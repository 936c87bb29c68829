package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/terassyi/cargo-go/internal/cargoerr"
)

// LoadSources loads sources.json and merges local-sources.json on top
// (entries in local-sources.json overwrite by name). Either file may be
// absent; an absent file loads as empty.
func LoadSources(sourcesPath, localSourcesPath string) (map[string]Source, error) {
	base, err := loadSourceFile(sourcesPath)
	if err != nil {
		return nil, err
	}

	local, err := loadSourceFile(localSourcesPath)
	if err != nil {
		return nil, err
	}

	for name, src := range local {
		base[name] = src
	}

	for name := range base {
		if !ValidSourceName(name) {
			return nil, cargoerr.New(cargoerr.CategoryCatalog, "invalid source name").
				WithCode(cargoerr.CodeCatalogParse).
				WithDetail("name", name)
		}
	}

	return base, nil
}

func loadSourceFile(path string) (map[string]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]Source), nil
		}
		return nil, cargoerr.Wrap(cargoerr.CategoryFilesystem, "failed to read "+path, err)
	}

	var sources map[string]Source
	if err := json.Unmarshal(data, &sources); err != nil {
		return nil, cargoerr.Wrap(cargoerr.CategoryParse, "failed to parse "+path, err).WithCode(cargoerr.CodeCatalogParse)
	}
	return sources, nil
}

// DumpSources writes sources.json, backing up any existing file to
// sources.json.old first. Only url/method/key/keyfp are persisted.
// A nil or empty sources map is a no-op only when no sources.json exists
// yet (a catalog that was loaded but never populated); if the file
// exists, it is rewritten as an empty object so that removing the last
// source is persisted.
func DumpSources(sourcesPath string, sources map[string]Source) error {
	if len(sources) < 1 {
		if _, err := os.Stat(sourcesPath); os.IsNotExist(err) {
			return nil
		}
	}

	if _, err := os.Stat(sourcesPath); err == nil {
		if err := copyFile(sourcesPath, sourcesPath+".old"); err != nil {
			return cargoerr.Wrap(cargoerr.CategoryFilesystem, "failed to back up sources file", err)
		}
	}

	data, err := json.MarshalIndent(sources, "", "  ")
	if err != nil {
		return cargoerr.Wrap(cargoerr.CategoryParse, "failed to marshal sources", err)
	}

	return atomicWrite(sourcesPath, data)
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}

func atomicWrite(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return cargoerr.Wrap(cargoerr.CategoryFilesystem, "failed to write "+tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return cargoerr.Wrap(cargoerr.CategoryFilesystem, "failed to promote "+tmp, err)
	}
	return nil
}

// LoadPackages parses sources/<name>/packages.json. A package missing
// any required field, or with an invalid name/uuid, is skipped with a
// warning rather than failing the whole load.
func LoadPackages(packagesPath string) ([]Package, error) {
	data, err := os.ReadFile(packagesPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, cargoerr.Wrap(cargoerr.CategoryFilesystem, "failed to read "+packagesPath, err)
	}

	var raw []Package
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, cargoerr.Wrap(cargoerr.CategoryParse, "failed to parse "+packagesPath, err).WithCode(cargoerr.CodeCatalogParse)
	}

	packages := make([]Package, 0, len(raw))
	for _, p := range raw {
		if p.Name == "" || p.UUID == "" || p.URL == "" || p.Method == "" || p.Description == "" {
			slog.Warn("skipping package with missing required field", "name", p.Name, "path", packagesPath)
			continue
		}
		if !ValidSourceName(p.Name) || !ValidUUID(p.UUID) {
			slog.Warn("skipping package with invalid name or uuid", "name", p.Name, "uuid", p.UUID, "path", packagesPath)
			continue
		}
		if p.Tags == nil {
			p.Tags = []string{}
		}
		packages = append(packages, p)
	}
	return packages, nil
}

// LoadSourceMeta parses a source's source.json, used to refresh the
// in-memory source's key/keyfp after a sync.
func LoadSourceMeta(sourceJSONPath string) (*Source, error) {
	data, err := os.ReadFile(sourceJSONPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, cargoerr.Wrap(cargoerr.CategoryFilesystem, "failed to read "+sourceJSONPath, err)
	}

	var src Source
	if err := json.Unmarshal(data, &src); err != nil {
		return nil, cargoerr.Wrap(cargoerr.CategoryParse, "failed to parse "+sourceJSONPath, err).WithCode(cargoerr.CodeCatalogParse)
	}
	return &src, nil
}

// lockPath derives a .lock sibling path for a catalog file, used to
// guard concurrent writers via gofrs/flock.
func lockPath(path string) string {
	return path + ".lock"
}

// WithLock acquires an exclusive lock on path's .lock sibling for the
// duration of fn, used around DumpSources to guard against concurrent
// `cargo sources` writers.
func WithLock(path string, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return cargoerr.Wrap(cargoerr.CategoryFilesystem, "failed to create catalog directory", err)
	}

	fl := flock.New(lockPath(path))
	locked, err := fl.TryLock()
	if err != nil {
		return cargoerr.Wrap(cargoerr.CategoryCatalog, "failed to acquire catalog lock", err).WithCode(cargoerr.CodeCatalogLocked)
	}
	if !locked {
		return cargoerr.New(cargoerr.CategoryCatalog, fmt.Sprintf("another cargo-go process is updating %s", path)).
			WithCode(cargoerr.CodeCatalogLocked)
	}
	defer fl.Unlock()

	return fn()
}
