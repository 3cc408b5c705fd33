// Package pkgspec parses package identifiers of the form name[@version], as
// accepted by npm install. Scoped names keep their leading "@".
package pkgspec

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Spec is a parsed package identifier.
type Spec struct {
	Name    string // e.g. "miles-prototype" or "@miles/prototype"
	Version string // version or range after "@", empty when unpinned
}

// Parse splits raw into name and optional version. A version must be a valid
// semver version or range; dist-tags such as "latest" are also accepted.
func Parse(raw string) (Spec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Spec{}, fmt.Errorf("package identifier is empty")
	}

	// Skip a scope marker so "@scope/pkg@1.0.0" splits on the second "@".
	searchFrom := 0
	if strings.HasPrefix(raw, "@") {
		searchFrom = 1
	}

	name, version := raw, ""
	if i := strings.Index(raw[searchFrom:], "@"); i >= 0 {
		name = raw[:searchFrom+i]
		version = raw[searchFrom+i+1:]
		if version == "" {
			return Spec{}, fmt.Errorf("package identifier %q has an empty version", raw)
		}
	}

	if name == "" || name == "@" || strings.HasSuffix(name, "/") {
		return Spec{}, fmt.Errorf("package identifier %q has no name", raw)
	}
	if strings.HasPrefix(name, "@") && !strings.Contains(name, "/") {
		return Spec{}, fmt.Errorf("scoped package identifier %q must have the form @scope/name", raw)
	}

	if version != "" && !isDistTag(version) {
		if _, err := semver.NewConstraint(version); err != nil {
			return Spec{}, fmt.Errorf("package identifier %q has an invalid version: %w", raw, err)
		}
	}

	return Spec{Name: name, Version: version}, nil
}

// String returns the identifier in name[@version] form.
func (s Spec) String() string {
	if s.Version == "" {
		return s.Name
	}
	return s.Name + "@" + s.Version
}

// Pinned reports whether the version names exactly one release.
func (s Spec) Pinned() bool {
	if s.Version == "" {
		return false
	}
	_, err := semver.StrictNewVersion(strings.TrimPrefix(s.Version, "v"))
	return err == nil
}

// isDistTag reports whether v looks like an npm dist-tag (e.g. "latest",
// "next") rather than a version or range.
func isDistTag(v string) bool {
	if v == "" {
		return false
	}
	first := v[0]
	if first >= '0' && first <= '9' {
		return false
	}
	return !strings.ContainsAny(v, "<>=~^*|, ") && !strings.HasPrefix(v, "v") && v != "x" && v != "X"
}
