// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed, so a fork can rename the tool or point it at a
// different template package without touching code.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName         string `yaml:"cli_name"`
	DisplayName     string `yaml:"display_name"`
	Description     string `yaml:"description"`
	HomeDir         string `yaml:"home_dir"`
	EnvPrefix       string `yaml:"env_prefix"`
	TemplatePackage string `yaml:"template_package"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:         "create-miles",
			DisplayName:     "Miles",
			Description:     "Create a new Miles app",
			HomeDir:         ".create-miles",
			EnvPrefix:       "CREATE_MILES",
			TemplatePackage: "miles-prototype",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "create-miles").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "Miles").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".create-miles").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "CREATE_MILES").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// TemplatePackage returns the package installed into every new project and
// whose scripts/init.js performs the actual scaffolding.
func TemplatePackage() string { load(); return defaults.TemplatePackage }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("package") → "CREATE_MILES_PACKAGE".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
