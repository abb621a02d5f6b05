package pipeline

import (
	"errors"
	"strings"
	"testing"
)

// mapSource serves snippets from memory.
type mapSource map[string]string

func (m mapSource) ReadSnippet(path string) (string, error) {
	if s, ok := m[path]; ok {
		return s, nil
	}
	return "", errors.New("not found")
}

func TestCodeImportProcessor(t *testing.T) {
	t.Parallel()

	src := mapSource{
		"snippets/hello.go": "package main\r\n\r\nfunc main() {}\r\n",
		"snippets/config.ts": "const a = 1\n// #region options\nexport const options = {}\n// #endregion\nconst b = 2\n",
		"snippets/fence.md":  "```js\nx\n```\n",
	}

	tests := []struct {
		name         string
		in           string
		want         string
		wantWarnings int
	}{
		{
			name: "whole file with highlights",
			in:   "<<< @/snippets/hello.go{3}\n",
			want: "```go [hello.go] {3}\npackage main\n\nfunc main() {}\n```\n",
		},
		{
			name: "region with title",
			in:   "<<< @/snippets/config.ts#options [Options]\n",
			want: "```typescript [Options]\nexport const options = {}\n```\n",
		},
		{
			name: "body with fences gets a longer token",
			in:   "<<< snippets/fence.md",
			want: "````markdown [fence.md]\n```js\nx\n```\n````",
		},
		{
			name:         "missing file is kept and reported",
			in:           "<<< @/missing.go\n",
			want:         "<<< @/missing.go\n",
			wantWarnings: 1,
		},
		{
			name:         "missing region is kept and reported",
			in:           "<<< @/snippets/config.ts#nope\n",
			want:         "<<< @/snippets/config.ts#nope\n",
			wantWarnings: 1,
		},
		{
			name: "import syntax inside a fence is literal",
			in:   "```md\n<<< @/snippets/hello.go\n```\n",
			want: "```md\n<<< @/snippets/hello.go\n```\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rc := NewRenderContext(nil)
			rc.Snippets = src
			got := CodeImportProcessor{}.Preprocess(tt.in, rc)
			if got != tt.want {
				t.Errorf("Preprocess =\n%q\nwant\n%q", got, tt.want)
			}
			if n := len(rc.Warnings()); n != tt.wantWarnings {
				t.Errorf("got %d warnings, want %d: %v", n, tt.wantWarnings, rc.Warnings())
			}
		})
	}
}

func TestCodeImportProcessor_NoSource(t *testing.T) {
	t.Parallel()

	rc := NewRenderContext(nil)
	in := "<<< @/a.go\n"
	if got := (CodeImportProcessor{}).Preprocess(in, rc); got != in {
		t.Errorf("Preprocess = %q, want unchanged", got)
	}
	if len(rc.Warnings()) != 1 || !strings.Contains(rc.Warnings()[0], "no snippet source") {
		t.Errorf("warnings = %v", rc.Warnings())
	}
}

func TestExtractRegion_Nested(t *testing.T) {
	t.Parallel()

	body := "# region outer\na\n# region inner\nb\n# endregion\nc\n# endregion\nd"
	got, ok := extractRegion(body, "outer")
	if !ok {
		t.Fatal("region not found")
	}
	if got != "a\n# region inner\nb\n# endregion\nc" {
		t.Errorf("extractRegion = %q", got)
	}
}

func TestSnippetLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file string
		want string
	}{
		{"main.go", "go"},
		{"docs/guide.md", "markdown"},
		{"src/app.ts", "typescript"},
		{"Makefile", "makefile"},
		{"notes.zzz", "zzz"},
		{"LICENSE", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()

			if got := SnippetLanguage(tt.file); got != tt.want {
				t.Errorf("SnippetLanguage(%q) = %q, want %q", tt.file, got, tt.want)
			}
		})
	}
}

func TestFenceTokenFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		body string
		want string
	}{
		{"plain", "```"},
		{"a `code` span", "```"},
		{"```go\nx\n```", "````"},
		{"`````", "``````"},
	}

	for _, tt := range tests {
		if got := fenceTokenFor(tt.body); got != tt.want {
			t.Errorf("fenceTokenFor(%q) = %q, want %q", tt.body, got, tt.want)
		}
	}
}
