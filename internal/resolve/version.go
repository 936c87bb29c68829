package resolve

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/terassyi/cargo-go/internal/catalog"
)

// MatchVersion selects the package among candidates (all sharing the
// same name) whose version best satisfies query's "@version" suffix.
// Package version is read from a "v<semver>" tag; candidates without a
// parseable version tag are only chosen when no constraint was given.
// This is matching only — no SAT-style dependency solving.
func MatchVersion(candidates []catalog.Package, query string) (*catalog.Package, bool) {
	name, constraintStr := splitQuery(query)
	_ = name

	if constraintStr == "" {
		if len(candidates) == 0 {
			return nil, false
		}
		return &candidates[0], true
	}

	constraint, err := semver.NewConstraint(constraintStr)
	if err != nil {
		return nil, false
	}

	var best *catalog.Package
	var bestVer *semver.Version
	for i := range candidates {
		v := versionTag(candidates[i].Tags)
		if v == "" {
			continue
		}
		sv, err := semver.NewVersion(v)
		if err != nil || !constraint.Check(sv) {
			continue
		}
		if bestVer == nil || sv.GreaterThan(bestVer) {
			best = &candidates[i]
			bestVer = sv
		}
	}
	if best == nil {
		return nil, false
	}
	return best, true
}

// splitQuery splits a dependency query of the form "name@version" into
// its two parts; a bare name returns an empty version.
func splitQuery(query string) (name, version string) {
	if i := strings.IndexByte(query, '@'); i >= 0 {
		return query[:i], query[i+1:]
	}
	return query, ""
}

func versionTag(tags []string) string {
	for _, t := range tags {
		if strings.HasPrefix(t, "v") {
			return strings.TrimPrefix(t, "v")
		}
	}
	return ""
}
