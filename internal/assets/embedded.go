package assets

import "embed"

//go:embed styles/*.css scripts/*.js templates/*.html
var embedded embed.FS

// EmbeddedLoader serves the assets compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader returns the built-in asset loader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return readAsset(styleKind, name, embedded.ReadFile)
}

func (e *EmbeddedLoader) LoadScript(name string) (string, error) {
	return readAsset(scriptKind, name, embedded.ReadFile)
}

func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return readAsset(templateKind, name, embedded.ReadFile)
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
