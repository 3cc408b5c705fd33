// Package create drives a project creation run through its steps in order:
// validate the name, create the directory and manifest, install the template
// package, then hand off to the package's init script. Each step must succeed
// before the next starts; the first failure ends the run.
package create
