package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// FileName is the manifest file written into every new project.
const FileName = "package.json"

// InitialVersion is the version every new project starts at.
const InitialVersion = "0.1.0"

// Manifest is the subset of package.json this tool writes and reads back.
// Field order matches the serialized key order.
type Manifest struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Private      bool              `json:"private"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// New returns the seed manifest for a project called name.
func New(name string) *Manifest {
	return &Manifest{
		Name:    name,
		Version: InitialVersion,
		Private: true,
	}
}

// EOL returns the platform line ending appended to the serialized manifest.
func EOL() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// Marshal serializes m with 2-space indentation and a trailing platform
// newline. HTML characters are not escaped.
func Marshal(m *Manifest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}

	// Encode terminates with "\n"; swap it for the platform line ending.
	out := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return append(out, EOL()...), nil
}

// Write validates m and writes it to dir/package.json, returning the path.
func Write(dir string, m *Manifest) (string, error) {
	data, err := Marshal(m)
	if err != nil {
		return "", err
	}

	result, err := Validate(data)
	if err != nil {
		return "", err
	}
	if !result.Valid {
		return "", fmt.Errorf("manifest for %q is invalid: %s", m.Name, result.Summary())
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// Read parses dir/package.json.
func Read(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
