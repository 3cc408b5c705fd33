// Package manifest models the package.json written into a new project,
// serializes it the way npm does (2-space indentation, trailing newline) and
// validates it against an embedded JSON Schema.
package manifest
