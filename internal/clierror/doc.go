// Package clierror defines the failures a project creation run can end in and
// renders them for the terminal. Every Kind is terminal for the run: nothing
// is retried and nothing created so far is cleaned up.
package clierror
