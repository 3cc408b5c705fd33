// Package naming checks project names against npm's package naming rules.
// A name that produces any error or warning cannot be used for a new project.
package naming
