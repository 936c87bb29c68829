// Package manifest reads cargo-go's crate manifests: .rc source files
// carrying a #[link(...)] attribute, optional top-level string attrs,
// and `use` view-items that each yield one dependency query.
//
// No Rust parser exists anywhere in the retrieved ecosystem, so this is
// a small hand-written attribute scanner rather than a real AST walk —
// it recognizes exactly the handful of attribute shapes the format
// uses and ignores everything else in the file.
package manifest

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/terassyi/cargo-go/internal/cargoerr"
)

// Manifest is the parsed content of one .rc file.
type Manifest struct {
	Path       string
	Name       string
	Vers       string
	UUID       string
	Desc       string
	Sigs       string
	CrateType  string
	Queries    []string // dependency queries, std/core already dropped
}

var (
	linkPattern = regexp.MustCompile(`#\[\s*link\s*\(([^)]*)\)\s*\]`)
	attrPattern = regexp.MustCompile(`#\[\s*(\w+)\s*=\s*"([^"]*)"\s*\]`)
	usePattern  = regexp.MustCompile(`^\s*use\s+([A-Za-z_][A-Za-z0-9_:]*)\s*(?:\(([^)]*)\))?\s*;`)
	kvPattern   = regexp.MustCompile(`(\w+)\s*=\s*"([^"]*)"`)
)

// ScanDir walks dir recursively (a source tree extracted by the install
// resolver) looking for .rc files at any depth, mirroring the original
// install_source's walk of the whole extracted tree rather than just
// its top level. A tree with zero .rc files is fatal, per spec.
func ScanDir(dir string) ([]*Manifest, error) {
	var manifests []*Manifest
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".rc") {
			return nil
		}
		m, err := ParseFile(path)
		if err != nil {
			return err
		}
		if m != nil {
			manifests = append(manifests, m)
		}
		return nil
	})
	if err != nil {
		return nil, cargoerr.Wrap(cargoerr.CategoryFilesystem, "failed to read source tree", err)
	}

	if len(manifests) == 0 {
		return nil, cargoerr.New(cargoerr.CategoryParse, "doesn't look like a package").
			WithCode(cargoerr.CodeManifestParse).
			WithDetail("dir", dir)
	}

	return manifests, nil
}

// ParseFile parses a single .rc file. It returns (nil, nil) when the
// file carries no usable #[link(...)] attribute (missing name/vers/uuid),
// per spec: such a manifest is skipped, not fatal on its own.
func ParseFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, cargoerr.Wrap(cargoerr.CategoryFilesystem, "failed to open manifest", err)
	}
	defer f.Close()

	m := &Manifest{Path: path}
	haveLink := false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()

		if lm := linkPattern.FindStringSubmatch(line); lm != nil {
			attrs := parseKV(lm[1])
			name, hasName := attrs["name"]
			vers, hasVers := attrs["vers"]
			uuid, hasUUID := attrs["uuid"]
			if hasName && hasVers && hasUUID {
				m.Name, m.Vers, m.UUID = name, vers, uuid
				haveLink = true
			}
			continue
		}

		if am := attrPattern.FindStringSubmatch(line); am != nil {
			switch am[1] {
			case "desc":
				m.Desc = am[2]
			case "sigs":
				m.Sigs = am[2]
			case "crate_type":
				m.CrateType = am[2]
			}
			continue
		}

		if um := usePattern.FindStringSubmatch(line); um != nil {
			query := queryFor(um[1], parseKV(um[2]))
			if query != "" && baseName(query) != "std" && baseName(query) != "core" {
				m.Queries = append(m.Queries, query)
			}
			continue
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, cargoerr.Wrap(cargoerr.CategoryFilesystem, "failed to scan manifest", err)
	}

	if !haveLink {
		return nil, nil
	}
	return m, nil
}

// queryFor builds a dependency query string from a use item's imported
// identifier and its vers/from meta arguments, per spec §4.5:
// from (if set) wins, else name@vers (if vers set), else bare name.
func queryFor(name string, attrs map[string]string) string {
	if from, ok := attrs["from"]; ok && from != "" {
		return from
	}
	if vers, ok := attrs["vers"]; ok && vers != "" {
		return name + "@" + vers
	}
	return name
}

// baseName strips a "@version" or "source/" qualifier, leaving the
// bare crate identifier, for the std/core drop check.
func baseName(query string) string {
	if i := strings.IndexByte(query, '@'); i >= 0 {
		query = query[:i]
	}
	if i := strings.LastIndexByte(query, '/'); i >= 0 {
		query = query[i+1:]
	}
	return query
}

func parseKV(s string) map[string]string {
	out := make(map[string]string)
	for _, m := range kvPattern.FindAllStringSubmatch(s, -1) {
		out[m[1]] = m[2]
	}
	return out
}
