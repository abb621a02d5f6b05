package assets

import (
	"errors"
	"html/template"
	"testing"
)

func TestPackageLoaders(t *testing.T) {
	t.Parallel()

	if _, err := LoadStyle(DefaultStyleName); err != nil {
		t.Errorf("LoadStyle(%q) error = %v", DefaultStyleName, err)
	}
	if _, err := LoadScript(DefaultScriptName); err != nil {
		t.Errorf("LoadScript(%q) error = %v", DefaultScriptName, err)
	}
	if _, err := LoadTemplate("missing"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate(missing) error = %v, want ErrTemplateNotFound", err)
	}
}

// Embedded templates must parse, otherwise every build fails at render time.
func TestEmbeddedTemplatesParse(t *testing.T) {
	t.Parallel()

	for _, name := range []string{PageTemplateName, CardTemplateName} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			content, err := LoadTemplate(name)
			if err != nil {
				t.Fatalf("LoadTemplate(%q) error = %v", name, err)
			}
			if _, err := template.New(name).Parse(content); err != nil {
				t.Errorf("template %q does not parse: %v", name, err)
			}
		})
	}
}
