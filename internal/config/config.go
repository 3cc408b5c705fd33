package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/miles-labs/create-miles/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys. Each maps to an environment variable via branding.EnvVar.
const (
	KeyPackage        = "package"
	KeyPackageManager = "package_manager"
	KeyRuntime        = "runtime"
	KeyLogLevel       = "log_level"
	KeyVerbose        = "verbose"
)

// Settings holds the resolved configuration for a single run.
type Settings struct {
	Package        string // template package identifier, name[@version]
	PackageManager string // package manager executable, e.g. "npm"
	Runtime        string // runtime executable for the delegate script, e.g. "node"
	LogLevel       string // value passed to the package manager's --loglevel
	Verbose        bool   // enable debug logging
}

// Dir returns the path to the config directory (~/.create-miles/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.create-miles/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// Load reads settings from the default config file and the environment.
func Load() (*Settings, error) {
	return LoadFrom(FilePath())
}

// LoadFrom reads settings from the given config file and the environment.
// A missing file is not an error; a malformed one is.
func LoadFrom(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType(fileType)
		if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	s := &Settings{
		Package:        v.GetString(KeyPackage),
		PackageManager: v.GetString(KeyPackageManager),
		Runtime:        v.GetString(KeyRuntime),
		LogLevel:       v.GetString(KeyLogLevel),
		Verbose:        v.GetBool(KeyVerbose),
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyPackage, branding.TemplatePackage())
	v.SetDefault(KeyPackageManager, "npm")
	v.SetDefault(KeyRuntime, "node")
	v.SetDefault(KeyLogLevel, "error")
	v.SetDefault(KeyVerbose, false)
}

func (s *Settings) validate() error {
	required := map[string]string{
		KeyPackage:        s.Package,
		KeyPackageManager: s.PackageManager,
		KeyRuntime:        s.Runtime,
	}
	for key, value := range required {
		if value == "" {
			return fmt.Errorf("config key %q must not be empty (set it in %s or %s)", key, FilePath(), branding.EnvVar(key))
		}
	}
	return nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
