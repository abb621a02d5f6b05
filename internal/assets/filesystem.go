package assets

import (
	"fmt"
	"os"
	"path/filepath"
)

// FilesystemLoader serves assets from a theme directory on disk. Reads go
// through os.Root, so neither a name nor a symlink can leave the directory.
type FilesystemLoader struct {
	dir string
}

// NewFilesystemLoader checks that dir is a readable directory.
func NewFilesystemLoader(dir string) (*FilesystemLoader, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	info, err := os.Stat(abs)
	switch {
	case os.IsNotExist(err):
		return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, abs)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, abs)
	}
	if _, err := os.ReadDir(abs); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{dir: abs}, nil
}

func (f *FilesystemLoader) LoadStyle(name string) (string, error) {
	return readAsset(styleKind, name, f.readFile)
}

func (f *FilesystemLoader) LoadScript(name string) (string, error) {
	return readAsset(scriptKind, name, f.readFile)
}

func (f *FilesystemLoader) LoadTemplate(name string) (string, error) {
	return readAsset(templateKind, name, f.readFile)
}

// readFile opens the root per call: the dev server keeps a loader for its
// whole life and theme files may be replaced meanwhile.
func (f *FilesystemLoader) readFile(name string) ([]byte, error) {
	root, err := os.OpenRoot(f.dir)
	if err != nil {
		return nil, err
	}
	defer func() { _ = root.Close() }()

	data, err := root.ReadFile(filepath.FromSlash(name))
	if err == nil || !escapesRoot(err) {
		return data, err
	}
	// os.Root refuses every absolute symlink. One that resolves inside the
	// theme is read again through its relative path.
	rel, ok := f.resolveInside(name)
	if !ok {
		return nil, err
	}
	return root.ReadFile(rel)
}

// resolveInside follows the symlinks of name and returns its path relative
// to the theme directory, or false when it lands outside.
func (f *FilesystemLoader) resolveInside(name string) (string, bool) {
	base, err := filepath.EvalSymlinks(f.dir)
	if err != nil {
		return "", false
	}
	target, err := filepath.EvalSymlinks(filepath.Join(f.dir, filepath.FromSlash(name)))
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(base, target)
	if err != nil || !filepath.IsLocal(rel) {
		return "", false
	}
	return rel, true
}

var _ AssetLoader = (*FilesystemLoader)(nil)
