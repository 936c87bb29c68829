// Package printer renders cargo-go's `list` and `search` output as a
// tab-aligned table or, with --json, as indented JSON.
package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/terassyi/cargo-go/internal/catalog"
)

// Row pairs a package with the source it came from, for display.
type Row struct {
	Source  string         `json:"source"`
	Package catalog.Package `json:"package"`
}

var headers = []string{"SOURCE", "NAME", "UUID", "DESCRIPTION", "TAGS"}

// Print renders rows as a table (sorted by source then name) or, with
// jsonOut, as an indented JSON array. "No packages found." is printed
// for an empty result set in table mode.
func Print(w io.Writer, rows []Row, jsonOut bool) error {
	if jsonOut {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal packages: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	if len(rows) == 0 {
		fmt.Fprintln(w, "No packages found.")
		return nil
	}

	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Source != sorted[j].Source {
			return sorted[i].Source < sorted[j].Source
		}
		return sorted[i].Package.Name < sorted[j].Package.Name
	})

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, r := range sorted {
		fmt.Fprintln(tw, strings.Join([]string{
			r.Source,
			r.Package.Name,
			r.Package.UUID,
			r.Package.Description,
			strings.Join(r.Package.Tags, ","),
		}, "\t"))
	}
	return tw.Flush()
}

// FilterBySources builds the row set for `cargo list [source ...]`:
// with no names, every source's packages; with names, the union
// (OR'd) of just those sources' packages.
func FilterBySources(cat *catalog.Catalog, names []string) []Row {
	var rows []Row
	if len(names) == 0 {
		for source, packages := range cat.Packages {
			for _, p := range packages {
				rows = append(rows, Row{Source: source, Package: p})
			}
		}
		return rows
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	for source, packages := range cat.Packages {
		if !wanted[source] {
			continue
		}
		for _, p := range packages {
			rows = append(rows, Row{Source: source, Package: p})
		}
	}
	return rows
}

// Search builds the row set for `cargo search <query|'*'> [tag ...]`:
// query matches by substring against the package name, unless query is
// the literal wildcard "*", which matches every package; tags (if any)
// are AND'd — every listed tag must be present on the package.
func Search(cat *catalog.Catalog, query string, tags []string) []Row {
	var rows []Row
	for source, packages := range cat.Packages {
		for _, p := range packages {
			if query != "*" && !strings.Contains(p.Name, query) {
				continue
			}
			if !hasAllTags(p.Tags, tags) {
				continue
			}
			rows = append(rows, Row{Source: source, Package: p})
		}
	}
	return rows
}

func hasAllTags(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	set := make(map[string]bool, len(have))
	for _, t := range have {
		set[t] = true
	}
	for _, w := range want {
		if !set[w] {
			return false
		}
	}
	return true
}
