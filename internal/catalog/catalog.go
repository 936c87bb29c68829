// Package catalog models cargo-go's on-disk source/package catalog:
// sources.json, local-sources.json, and each source's packages.json and
// source.json, plus the in-memory Catalog built from them.
package catalog

import (
	"regexp"
	"strings"

	"github.com/terassyi/cargo-go/internal/transport"
)

// Method names how a source or package is fetched.
type Method string

const (
	MethodGit  Method = "git"
	MethodCurl Method = "curl"
	MethodFile Method = "file"
)

// Source is one entry of sources.json/local-sources.json.
type Source struct {
	URL    string `json:"url"`
	Method Method `json:"method,omitempty"`
	Key    string `json:"key,omitempty"`
	KeyFP  string `json:"keyfp,omitempty"`
}

// Package is one entry of a source's packages.json.
type Package struct {
	Name        string   `json:"name"`
	UUID        string   `json:"uuid"`
	URL         string   `json:"url"`
	Method      Method   `json:"method"`
	Description string   `json:"description"`
	Ref         *string  `json:"ref,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Catalog is the full in-memory model for one invocation: every source
// keyed by name, and every source's loaded package list.
type Catalog struct {
	Sources  map[string]Source
	Packages map[string][]Package
}

// New returns an empty Catalog.
func New() *Catalog {
	return &Catalog{
		Sources:  make(map[string]Source),
		Packages: make(map[string][]Package),
	}
}

// HasSources reports whether any source is configured. This replaces
// the teacher-adjacent "first_time" flag with its sense corrected: it
// is true once at least one source exists, not on the first run only.
func (c *Catalog) HasSources() bool {
	return len(c.Sources) > 0
}

var sourceNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidSourceName reports whether name is an acceptable source name.
func ValidSourceName(name string) bool {
	return name != "" && sourceNamePattern.MatchString(name)
}

var uuidGroupLengths = [5]int{8, 4, 4, 4, 12}

// ValidUUID reports whether s is a canonical-form UUID: five
// hyphen-separated hex groups of lengths 8, 4, 4, 4, 12 (case-insensitive).
func ValidUUID(s string) bool {
	groups := strings.Split(s, "-")
	if len(groups) != len(uuidGroupLengths) {
		return false
	}
	for i, g := range groups {
		if len(g) != uuidGroupLengths[i] || !isHex(g) {
			return false
		}
	}
	return true
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// AssumeMethod infers a source's method from its URL when "method" is
// absent: is_git_url → git, file:// or an existing local path → file,
// else curl.
func AssumeMethod(url string, pathExists func(string) bool) Method {
	if transport.IsGitURL(url) {
		return MethodGit
	}
	if strings.HasPrefix(url, "file://") {
		return MethodFile
	}
	if pathExists != nil && pathExists(url) {
		return MethodFile
	}
	return MethodCurl
}
