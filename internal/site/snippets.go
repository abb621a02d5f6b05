package site

import (
	"fmt"
	"os"

	"github.com/alnah/go-docsite/internal/fileutil"
)

// maxSnippetSize bounds code imports; larger files are not documentation.
const maxSnippetSize = 1 << 20

// dirSnippets resolves code imports against the source directory.
type dirSnippets struct {
	root string
}

// ReadSnippet reads a file below the source directory.
// Paths escaping the directory are rejected.
func (s dirSnippets) ReadSnippet(rel string) (string, error) {
	p, err := fileutil.JoinWithin(s.root, rel)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(p)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", rel)
	}
	if info.Size() > maxSnippetSize {
		return "", fmt.Errorf("%s is larger than %d bytes", rel, maxSnippetSize)
	}
	content, err := os.ReadFile(p) // #nosec G304 -- confined to the source dir
	if err != nil {
		return "", err
	}
	return string(content), nil
}
