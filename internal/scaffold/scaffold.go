package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/miles-labs/create-miles/internal/clierror"
	"github.com/miles-labs/create-miles/internal/manifest"
)

// Request identifies the project to create. It is built once from the
// command line and never modified.
type Request struct {
	AppName string // project name as given, also used as the manifest name
	Root    string // absolute path of the project directory
}

// NewRequest resolves name against baseDir. An empty baseDir means the
// current working directory.
func NewRequest(name, baseDir string) (*Request, error) {
	if baseDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
		baseDir = cwd
	}

	root := name
	if !filepath.IsAbs(root) {
		root = filepath.Join(baseDir, name)
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project path for %q: %w", name, err)
	}

	return &Request{AppName: name, Root: root}, nil
}

// CreateRoot creates the project directory. It fails with DirectoryExists
// if anything is already present at the path, leaving it untouched.
func CreateRoot(req *Request) error {
	if _, err := os.Lstat(req.Root); err == nil {
		return clierror.NewDirectoryExists(req.Root)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return clierror.Wrap(err, clierror.Internal, fmt.Sprintf("checking %s", req.Root))
	}

	if err := os.Mkdir(req.Root, 0755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return clierror.NewDirectoryExists(req.Root)
		}
		return clierror.Wrap(err, clierror.Internal, "creating project directory")
	}
	return nil
}

// WriteManifest writes the seed package.json into the project root and
// returns its path.
func WriteManifest(req *Request) (string, error) {
	path, err := manifest.Write(req.Root, manifest.New(req.AppName))
	if err != nil {
		return "", clierror.Wrap(err, clierror.Internal, "writing "+manifest.FileName)
	}
	return path, nil
}
