package naming

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf16"
)

// MaxLength is the longest name npm accepts for new packages.
const MaxLength = 214

// Result holds the outcome of validating a name.
type Result struct {
	// ValidForNewPackages is true when there are no errors and no warnings.
	ValidForNewPackages bool
	// ValidForOldPackages is true when there are no errors. Warnings cover
	// rules npm introduced after some existing packages were published.
	ValidForOldPackages bool
	Errors              []string
	Warnings            []string
}

// blacklist holds names npm never allows, compared case-insensitively.
var blacklist = []string{
	"node_modules",
	"favicon.ico",
}

// builtins holds Node.js core module names, which npm no longer allows for
// new packages.
var builtins = []string{
	"assert", "async_hooks", "buffer", "child_process", "cluster", "console",
	"constants", "crypto", "dgram", "dns", "domain", "events", "fs", "http",
	"http2", "https", "inspector", "module", "net", "os", "path", "perf_hooks",
	"process", "punycode", "querystring", "readline", "repl", "stream",
	"string_decoder", "sys", "timers", "tls", "trace_events", "tty", "url",
	"util", "v8", "vm", "worker_threads", "zlib",
}

var (
	scopedPackagePattern = regexp.MustCompile(`^(?:@([^/]+?)/)?([^/]+?)$`)
	specialCharPattern   = regexp.MustCompile(`[~'!()*]`)
)

// Validate checks name against npm's package naming rules.
func Validate(name string) Result {
	var errs, warnings []string

	if name == "" {
		errs = append(errs, "name length must be greater than zero")
	}
	if strings.HasPrefix(name, ".") {
		errs = append(errs, "name cannot start with a period")
	}
	if strings.HasPrefix(name, "_") {
		errs = append(errs, "name cannot start with an underscore")
	}
	if strings.TrimSpace(name) != name {
		errs = append(errs, "name cannot contain leading or trailing spaces")
	}

	lower := strings.ToLower(name)
	for _, b := range blacklist {
		if lower == b {
			errs = append(errs, b+" is a blacklisted name")
		}
	}

	for _, b := range builtins {
		if lower == b {
			warnings = append(warnings, b+" is a core module name")
		}
	}

	if jsLength(name) > MaxLength {
		warnings = append(warnings, fmt.Sprintf("name can no longer contain more than %d characters", MaxLength))
	}
	if lower != name {
		warnings = append(warnings, "name can no longer contain capital letters")
	}

	segments := strings.Split(name, "/")
	if specialCharPattern.MatchString(segments[len(segments)-1]) {
		warnings = append(warnings, `name can no longer contain special characters ("~'!()*")`)
	}

	if !isURLSafe(name) && !isScopedURLSafe(name) {
		errs = append(errs, "name can only contain URL-friendly characters")
	}

	return newResult(errs, warnings)
}

// ValidateProject checks name for use as a new project that will depend on
// the given packages. On top of npm's rules, the project may not share a name
// with any of its dependencies because npm refuses to install a package into
// a project of the same name.
func ValidateProject(name string, dependencies ...string) Result {
	r := Validate(name)
	if slices.Contains(dependencies, name) {
		r.Errors = append(r.Errors, fmt.Sprintf("name conflicts with the template package %q", name))
		r = newResult(r.Errors, r.Warnings)
	}
	return r
}

func newResult(errs, warnings []string) Result {
	return Result{
		ValidForNewPackages: len(errs) == 0 && len(warnings) == 0,
		ValidForOldPackages: len(errs) == 0,
		Errors:              errs,
		Warnings:            warnings,
	}
}

// isScopedURLSafe reports whether name has the form @scope/pkg with both
// parts URL-safe on their own.
func isScopedURLSafe(name string) bool {
	m := scopedPackagePattern.FindStringSubmatch(name)
	if m == nil || m[1] == "" {
		return false
	}
	return isURLSafe(m[1]) && isURLSafe(m[2])
}

// isURLSafe reports whether s survives URI component encoding unchanged.
func isURLSafe(s string) bool {
	for _, r := range s {
		if !isUnreserved(r) {
			return false
		}
	}
	return true
}

// isUnreserved matches the characters a URI component encoder leaves alone.
func isUnreserved(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("-_.!~*'()", r)
}

// jsLength counts UTF-16 code units, which is how npm measures name length.
func jsLength(s string) int {
	return len(utf16.Encode([]rune(s)))
}
