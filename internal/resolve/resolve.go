// Package resolve implements cargo-go's install target dispatch (spec
// C6): deciding, from a single CLI argument, whether the caller meant
// an archive path, a git URL, a tarball URL, a qualified source/name
// (or source/uuid), or a bare name/uuid searched across every source.
package resolve

import (
	"os"
	"strings"

	"github.com/terassyi/cargo-go/internal/cargoerr"
	"github.com/terassyi/cargo-go/internal/catalog"
	"github.com/terassyi/cargo-go/internal/transport"
)

// Kind identifies which branch of the target grammar matched.
type Kind string

const (
	KindArchiveFile Kind = "archive_file"
	KindGitURL      Kind = "git_url"
	KindTarballURL  Kind = "tarball_url"
	KindPackage     Kind = "package"
)

// Target is the result of resolving one install argument.
type Target struct {
	Kind Kind

	ArchivePath string
	GitURL      string
	GitRef      string
	TarballURL  string

	SourceName string
	Package    catalog.Package
}

// Resolver dispatches install targets against an in-memory Catalog.
type Resolver struct {
	cat *catalog.Catalog
}

// NewResolver returns a Resolver searching cat's sources and packages.
func NewResolver(cat *catalog.Catalog) *Resolver {
	return &Resolver{cat: cat}
}

// Resolve dispatches targetArg per spec §4.6, first match wins. ref is
// the optional git ref reserved at opts.free[3], used only when the
// target resolves to a git URL.
func (r *Resolver) Resolve(targetArg, ref string) (*Target, error) {
	if isArchivePath(targetArg) {
		return &Target{Kind: KindArchiveFile, ArchivePath: targetArg}, nil
	}

	if transport.IsGitURL(targetArg) {
		return &Target{Kind: KindGitURL, GitURL: targetArg, GitRef: ref}, nil
	}

	if isTarballURL(targetArg) {
		return &Target{Kind: KindTarballURL, TarballURL: targetArg}, nil
	}

	if i := strings.IndexByte(targetArg, '/'); i >= 0 {
		source, rest := targetArg[:i], targetArg[i+1:]
		if catalog.ValidUUID(rest) {
			return r.resolveUUIDInSource(source, rest)
		}
		return r.resolveNameInSource(source, rest)
	}

	if catalog.ValidUUID(targetArg) {
		return r.resolveUUIDAcrossSources(targetArg)
	}
	return r.resolveNameAcrossSources(targetArg)
}

// RequiresSync reports whether resolving target needs a synced catalog.
// It is false for a direct archive path, git URL, or tarball URL — the
// three target shapes spec §2 exempts from the pre-install sync.
func RequiresSync(target string) bool {
	if isArchivePath(target) {
		return false
	}
	if transport.IsGitURL(target) {
		return false
	}
	return !isTarballURL(target)
}

func isArchivePath(target string) bool {
	if !hasArchiveExtension(target) {
		return false
	}
	info, err := os.Stat(target)
	return err == nil && !info.IsDir()
}

// isTarballURL reports whether target is a URL (contains "://") with a
// recognized archive extension — spec's "does NOT look like a package
// name AND has an archive extension" is satisfied by any URL, since a
// bare package name never contains a scheme separator.
func isTarballURL(target string) bool {
	return strings.Contains(target, "://") && hasArchiveExtension(target)
}

func hasArchiveExtension(target string) bool {
	for _, ext := range transport.ArchiveExtensions() {
		if strings.HasSuffix(target, ext) {
			return true
		}
	}
	return false
}

func (r *Resolver) resolveUUIDInSource(sourceName, uuid string) (*Target, error) {
	packages, ok := r.cat.Packages[sourceName]
	if !ok {
		return nil, cargoerr.New(cargoerr.CategoryResolution, "unknown source").
			WithCode(cargoerr.CodeSourceNotFound).
			WithDetail("source", sourceName)
	}
	for _, p := range packages {
		if strings.EqualFold(p.UUID, uuid) {
			return &Target{Kind: KindPackage, SourceName: sourceName, Package: p}, nil
		}
	}
	return nil, cargoerr.New(cargoerr.CategoryResolution, "can't find package").
		WithCode(cargoerr.CodePackageNotFound).
		WithDetail("source", sourceName).
		WithDetail("uuid", uuid)
}

// resolveNameInSource returns the unique package named name within
// sourceName. name may carry a "@version" suffix (built by
// internal/manifest's queryFor), in which case MatchVersion picks the
// best-satisfying candidate instead of requiring a single bare-name
// match. Per the REDESIGN FLAG guidance, an unqualified ambiguity
// (more than one match, no version given) is a reported ambiguity
// (listing every match) rather than silently picking the first.
func (r *Resolver) resolveNameInSource(sourceName, name string) (*Target, error) {
	packages, ok := r.cat.Packages[sourceName]
	if !ok {
		return nil, cargoerr.New(cargoerr.CategoryResolution, "unknown source").
			WithCode(cargoerr.CodeSourceNotFound).
			WithDetail("source", sourceName)
	}

	base, version := splitQuery(name)
	var matches []catalog.Package
	for _, p := range packages {
		if p.Name == base {
			matches = append(matches, p)
		}
	}

	if version == "" {
		switch len(matches) {
		case 0:
			return nil, cargoerr.New(cargoerr.CategoryResolution, "can't find package").
				WithCode(cargoerr.CodePackageNotFound).
				WithDetail("source", sourceName).
				WithDetail("name", base)
		case 1:
			return &Target{Kind: KindPackage, SourceName: sourceName, Package: matches[0]}, nil
		default:
			return nil, ambiguousError(base, namedMatches(sourceName, matches))
		}
	}

	if len(matches) == 0 {
		return nil, cargoerr.New(cargoerr.CategoryResolution, "can't find package").
			WithCode(cargoerr.CodePackageNotFound).
			WithDetail("source", sourceName).
			WithDetail("name", base)
	}
	best, ok := MatchVersion(matches, name)
	if !ok {
		return nil, cargoerr.New(cargoerr.CategoryResolution, "no package version satisfies query").
			WithCode(cargoerr.CodeNoVersionMatch).
			WithDetail("source", sourceName).
			WithDetail("name", base).
			WithDetail("version", version)
	}
	return &Target{Kind: KindPackage, SourceName: sourceName, Package: *best}, nil
}

func (r *Resolver) resolveUUIDAcrossSources(uuid string) (*Target, error) {
	type hit struct {
		source string
		pkg    catalog.Package
	}
	var hits []hit
	for source, packages := range r.cat.Packages {
		for _, p := range packages {
			if strings.EqualFold(p.UUID, uuid) {
				hits = append(hits, hit{source, p})
			}
		}
	}

	switch len(hits) {
	case 0:
		return nil, cargoerr.New(cargoerr.CategoryResolution, "can't find package").
			WithCode(cargoerr.CodePackageNotFound).
			WithDetail("uuid", uuid)
	case 1:
		return &Target{Kind: KindPackage, SourceName: hits[0].source, Package: hits[0].pkg}, nil
	default:
		matches := make([]string, len(hits))
		for i, h := range hits {
			matches[i] = h.source + "/" + h.pkg.UUID
		}
		return nil, cargoerr.New(cargoerr.CategoryResolution, "found multiple packages").
			WithDetail("uuid", uuid).
			WithDetail("matches", matches)
	}
}

func (r *Resolver) resolveNameAcrossSources(name string) (*Target, error) {
	type hit struct {
		source string
		pkg    catalog.Package
	}

	base, version := splitQuery(name)
	var hits []hit
	for source, packages := range r.cat.Packages {
		for _, p := range packages {
			if p.Name == base {
				hits = append(hits, hit{source, p})
			}
		}
	}

	if version == "" {
		switch len(hits) {
		case 0:
			return nil, cargoerr.New(cargoerr.CategoryResolution, "can't find package").
				WithCode(cargoerr.CodePackageNotFound).
				WithDetail("name", base)
		case 1:
			return &Target{Kind: KindPackage, SourceName: hits[0].source, Package: hits[0].pkg}, nil
		default:
			matches := make([]string, len(hits))
			for i, h := range hits {
				matches[i] = h.source + "/" + h.pkg.Name
			}
			return nil, cargoerr.New(cargoerr.CategoryResolution, "found multiple packages").
				WithDetail("name", base).
				WithDetail("matches", matches)
		}
	}

	if len(hits) == 0 {
		return nil, cargoerr.New(cargoerr.CategoryResolution, "can't find package").
			WithCode(cargoerr.CodePackageNotFound).
			WithDetail("name", base)
	}

	candidates := make([]catalog.Package, len(hits))
	for i, h := range hits {
		candidates[i] = h.pkg
	}
	best, ok := MatchVersion(candidates, name)
	if !ok {
		return nil, cargoerr.New(cargoerr.CategoryResolution, "no package version satisfies query").
			WithCode(cargoerr.CodeNoVersionMatch).
			WithDetail("name", base).
			WithDetail("version", version)
	}
	for _, h := range hits {
		if h.pkg.UUID == best.UUID {
			return &Target{Kind: KindPackage, SourceName: h.source, Package: h.pkg}, nil
		}
	}
	return &Target{Kind: KindPackage, SourceName: hits[0].source, Package: *best}, nil
}

func namedMatches(sourceName string, packages []catalog.Package) []string {
	out := make([]string, len(packages))
	for i, p := range packages {
		out[i] = sourceName + "/" + p.UUID
	}
	return out
}

func ambiguousError(name string, matches []string) error {
	return cargoerr.New(cargoerr.CategoryResolution, "ambiguous package name within source").
		WithCode(cargoerr.CodeAmbiguousName).
		WithDetail("name", name).
		WithDetail("matches", matches)
}
