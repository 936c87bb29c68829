package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/terassyi/cargo-go/internal/cargoerr"
	"github.com/terassyi/cargo-go/internal/catalog"
)

// Uninstall implements `cargo-go uninstall <name|uuid>`. It does not
// consult the catalog: like the original cargo's uninstall, it matches against
// the filenames already placed under lib/ and bin/ — a uuid target
// matches "-<uuid>-" inside a lib/ filename; a name target first tries
// "lib<name>-" inside lib/, then a plain substring match inside bin/.
func (a *App) Uninstall(ctx context.Context, target string) error {
	if catalog.ValidUUID(target) {
		found, err := a.removeMatching(a.Paths.LibDir(), "-"+target+"-")
		if err != nil {
			return err
		}
		if found {
			return nil
		}
		return a.uninstallNotFound("uuid", target)
	}

	found, err := a.removeMatching(a.Paths.LibDir(), "lib"+target+"-")
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	found, err = a.removeMatching(a.Paths.BinDir(), target)
	if err != nil {
		return err
	}
	if found {
		return nil
	}

	return a.uninstallNotFound("name", target)
}

func (a *App) removeMatching(dir, substr string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, cargoerr.Wrap(cargoerr.CategoryFilesystem, "failed to list "+dir, err)
	}

	found := false
	for _, e := range entries {
		if !strings.Contains(e.Name(), substr) {
			continue
		}
		found = true
		p := filepath.Join(dir, e.Name())
		if err := os.RemoveAll(p); err != nil {
			a.Reporter.Error("could not uninstall: '%s'", p)
			return found, cargoerr.Wrap(cargoerr.CategoryFilesystem, "failed to uninstall "+p, err)
		}
		a.Reporter.Info("uninstalled: '%s'", p)
	}
	return found, nil
}

func (a *App) uninstallNotFound(kind, target string) error {
	err := cargoerr.New(cargoerr.CategoryResolution, fmt.Sprintf("can't find package with %s: %s", kind, target)).
		WithCode(cargoerr.CodePackageNotFound).
		WithDetail(kind, target)
	a.Reporter.Error("%s", err)
	return err
}
