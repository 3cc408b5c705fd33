// Package cli defines the cobra command for create-miles. The command only
// loads configuration, wires the pipeline to real processes, and reports
// errors; the steps themselves live in internal/create and the packages it
// drives.
package cli
