package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"strings"
)

// AssetLoader loads site assets by bare name: no extension, no directory.
type AssetLoader interface {
	// LoadStyle returns styles/{name}.css or ErrStyleNotFound.
	LoadStyle(name string) (string, error)

	// LoadScript returns scripts/{name}.js or ErrScriptNotFound.
	LoadScript(name string) (string, error)

	// LoadTemplate returns templates/{name}.html or ErrTemplateNotFound.
	LoadTemplate(name string) (string, error)
}

var assetNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateAssetName accepts letters, digits, '-' and '_' only, so a name
// can never carry a separator, a dot or a second extension.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if !assetNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// readAsset validates name, reads it through read and maps failures onto
// the package errors.
func readAsset(kind assetKind, name string, read func(string) ([]byte, error)) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	data, err := read(path.Join(kind.dir, name+kind.ext))
	switch {
	case err == nil:
		return string(data), nil
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", kind.errNotFound, name)
	case escapesRoot(err):
		return "", fmt.Errorf("%w: %s/%s%s", ErrPathTraversal, kind.dir, name, kind.ext)
	default:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
}

// escapesRoot reports an os.Root refusing a path that leaves its directory,
// typically through a symlink. The os package does not export that error.
func escapesRoot(err error) bool {
	return strings.Contains(err.Error(), "path escapes from parent")
}
