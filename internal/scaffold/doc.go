// Package scaffold lays down the skeleton of a new project: it resolves the
// project root, refuses to reuse an existing path, creates the directory and
// seeds it with a package.json. Nothing is rolled back on failure.
package scaffold
