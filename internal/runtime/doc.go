// Package runtime runs external processes for the pipeline. A Runner blocks
// until the process exits and reports a structured Result; a non-zero exit is
// data, not an error, so callers decide what failure means.
package runtime
