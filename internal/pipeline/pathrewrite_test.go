package pipeline

// Notes:
// - Tests RewriteMarkdownLinks through its public API and LinkProcessor
// - Error branches in parseHTML/renderHTML are not covered: the html
//   package rarely fails on valid input

import (
	"strings"
	"testing"
)

func TestRewriteMarkdownLinks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		html         string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "relative markdown link",
			html:         `<a href="guide/setup.md">Setup</a>`,
			wantContains: []string{`href="guide/setup.html"`},
		},
		{
			name:         "fragment kept",
			html:         `<a href="../api.md#errors">Errors</a>`,
			wantContains: []string{`href="../api.html#errors"`},
		},
		{
			name:         "site absolute path",
			html:         `<a href="/reference/config.md">Config</a>`,
			wantContains: []string{`href="/reference/config.html"`},
		},
		{
			name:         "upper case extension",
			html:         `<a href="README.MD">Readme</a>`,
			wantContains: []string{`href="README.html"`},
		},
		{
			name:         "external markdown url unchanged",
			html:         `<a href="https://example.com/doc.md">x</a>`,
			wantContains: []string{`href="https://example.com/doc.md"`},
		},
		{
			name:         "anchor unchanged",
			html:         `<a href="#usage.md">x</a>`,
			wantContains: []string{`href="#usage.md"`},
		},
		{
			name:         "non markdown target unchanged",
			html:         `<a href="files/report.pdf">x</a>`,
			wantContains: []string{`href="files/report.pdf"`},
		},
		{
			name:         "image source unchanged",
			html:         `<img src="diagram.md"/>`,
			wantContains: []string{`src="diagram.md"`},
			wantExcludes: []string{`diagram.html`},
		},
		{
			name:         "mailto unchanged",
			html:         `<a href="mailto:docs@example.md">mail</a>`,
			wantContains: []string{`href="mailto:docs@example.md"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteMarkdownLinks(tt.html)
			if err != nil {
				t.Fatalf("RewriteMarkdownLinks() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q: %s", want, got)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("output should not contain %q: %s", exclude, got)
				}
			}
		})
	}
}

func TestRewriteMarkdownLinks_UnchangedInputReturnedVerbatim(t *testing.T) {
	t.Parallel()

	in := `<p>Use <code>a.md</code> <br /></p>`
	got, err := RewriteMarkdownLinks(in)
	if err != nil {
		t.Fatalf("RewriteMarkdownLinks() error = %v", err)
	}
	if got != in {
		t.Errorf("got %q, want input unchanged", got)
	}
}

func TestRewriteMarkdownLinks_FullDocument(t *testing.T) {
	t.Parallel()

	in := `<!DOCTYPE html><html><head></head><body><a href="b.md">b</a></body></html>`
	got, err := RewriteMarkdownLinks(in)
	if err != nil {
		t.Fatalf("RewriteMarkdownLinks() error = %v", err)
	}
	if !strings.Contains(got, `href="b.html"`) || !strings.Contains(got, "<html>") {
		t.Errorf("unexpected output: %s", got)
	}
}

func TestLinkProcessor_SkipsWithoutMarkdownLinks(t *testing.T) {
	t.Parallel()

	in := `<p><a href="x.html">x</a></p>`
	if got := (LinkProcessor{}).Postprocess(in, NewRenderContext(nil)); got != in {
		t.Errorf("Postprocess changed html without .md links: %q", got)
	}
}
