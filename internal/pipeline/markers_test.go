package pipeline

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestExtractMarkers - Per-family extraction
// ---------------------------------------------------------------------------

func TestExtractMarkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		family    MarkerFamily
		body      string
		wantBody  string
		wantFound map[int]string
	}{
		{
			name:      "diff add with slash comment",
			family:    FamilyDiff,
			body:      "a\nb // [!code ++]\nc",
			wantBody:  "a\nb\nc",
			wantFound: map[int]string{2: "++"},
		},
		{
			name:      "diff remove with hash comment",
			family:    FamilyDiff,
			body:      "x = 1 # [!code --]\ny = 2",
			wantBody:  "x = 1\ny = 2",
			wantFound: map[int]string{1: "--"},
		},
		{
			name:      "html comment",
			family:    FamilyFocus,
			body:      "<div></div> <!-- [!code focus] -->",
			wantBody:  "<div></div>",
			wantFound: map[int]string{1: "focus"},
		},
		{
			name:      "block comment",
			family:    FamilyError,
			body:      "int x; /* [!code error] */",
			wantBody:  "int x;",
			wantFound: map[int]string{1: "error"},
		},
		{
			name:      "sql comment",
			family:    FamilyWarning,
			body:      "SELECT 1 -- [!code warning]",
			wantBody:  "SELECT 1",
			wantFound: map[int]string{1: "warning"},
		},
		{
			name:      "semicolon comment",
			family:    FamilyFocus,
			body:      "(car xs) ; [!code focus]",
			wantBody:  "(car xs)",
			wantFound: map[int]string{1: "focus"},
		},
		{
			name:      "whitespace insensitive",
			family:    FamilyDiff,
			body:      "a   //[!code ++]   ",
			wantBody:  "a",
			wantFound: map[int]string{1: "++"},
		},
		{
			name:      "annotation number",
			family:    FamilyAnnotation,
			body:      "port: 8080 # (1)\nhost: localhost # (2)",
			wantBody:  "port: 8080\nhost: localhost",
			wantFound: map[int]string{1: "1", 2: "2"},
		},
		{
			name:      "other family left in place",
			family:    FamilyDiff,
			body:      "a // [!code focus]",
			wantBody:  "a // [!code focus]",
			wantFound: map[int]string{},
		},
		{
			name:      "marker not at end of line is ignored",
			family:    FamilyDiff,
			body:      `s := "// [!code ++]" + x`,
			wantBody:  `s := "// [!code ++]" + x`,
			wantFound: map[int]string{},
		},
		{
			name:      "empty body",
			family:    FamilyDiff,
			body:      "",
			wantBody:  "",
			wantFound: map[int]string{},
		},
		{
			name:      "line holding only a marker becomes empty",
			family:    FamilyDiff,
			body:      "a\n// [!code ++]\nb",
			wantBody:  "a\n\nb",
			wantFound: map[int]string{2: "++"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gotBody, gotFound := ExtractMarkers(tt.family, tt.body)
			if gotBody != tt.wantBody {
				t.Errorf("body = %q, want %q", gotBody, tt.wantBody)
			}
			if diff := cmp.Diff(tt.wantFound, gotFound); diff != "" {
				t.Errorf("found mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractMarkers_SeveralOnOneLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		afterDiff string
		want      string
	}{
		{"same style", "x := 1 // [!code ++] // [!code focus]", "x := 1 // [!code focus]", "x := 1"},
		{"hash then slashes", "x = 1 # [!code ++] // [!code focus]", "x = 1 // [!code focus]", "x = 1"},
		{"slashes then hash", "x = 1 // [!code focus] # [!code ++]", "x = 1 // [!code focus]", "x = 1"},
		{"block comment then line comment", "a(); /* [!code ++] */ ; [!code focus]", "a(); ; [!code focus]", "a();"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			afterDiff, diffs := ExtractMarkers(FamilyDiff, tt.body)
			if afterDiff != tt.afterDiff {
				t.Fatalf("after diff = %q, want %q", afterDiff, tt.afterDiff)
			}
			if diffs[1] != "++" {
				t.Errorf("diff payload = %q, want %q", diffs[1], "++")
			}

			afterFocus, focus := ExtractMarkers(FamilyFocus, afterDiff)
			if afterFocus != tt.want {
				t.Errorf("after focus = %q, want %q", afterFocus, tt.want)
			}
			if focus[1] != "focus" {
				t.Errorf("focus payload = %q", focus[1])
			}
		})
	}
}

func TestExtractMarkers_LineCountInvariant(t *testing.T) {
	t.Parallel()

	bodies := []string{
		"",
		"\n",
		"a\nb // [!code ++]\nc",
		"// [!code --]\n// [!code ++]\n",
		"one # [!code focus]\ntwo # (1)\nthree /* [!code error] */\n\n",
		"<p/> <!-- [!code warning] -->\n-- [!code ++]\n; [!code --]",
		"trailing\n\n\n",
		strings.Repeat("line // [!code ++] // (3)\n", 50),
	}
	families := []MarkerFamily{FamilyDiff, FamilyFocus, FamilyError, FamilyWarning, FamilyAnnotation}

	for _, body := range bodies {
		want := strings.Count(body, "\n")
		current := body
		for _, fam := range families {
			out, _ := ExtractMarkers(fam, current)
			if got := strings.Count(out, "\n"); got != want {
				t.Fatalf("%s on %q: %d newlines, want %d", fam, current, got, want)
			}
			current = out
		}
	}
}

// ---------------------------------------------------------------------------
// TestMarkerProcessor - Descriptor recording
// ---------------------------------------------------------------------------

func TestMarkerProcessor_RecordsOnDescriptor(t *testing.T) {
	t.Parallel()

	doc := "text\n\n```go\na\nb // [!code ++]\nc // [!code --]\n```\n\n```py\nx # [!code focus]\n```\n"
	rc := NewRenderContext(nil)

	out := (&MarkerProcessor{Family: FamilyDiff}).Preprocess(doc, rc)
	out = (&MarkerProcessor{Family: FamilyFocus}).Preprocess(out, rc)

	want := "text\n\n```go\na\nb\nc\n```\n\n```py\nx\n```\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
	if diff := cmp.Diff(map[int]DiffKind{2: DiffAdd, 3: DiffRemove}, rc.Fence(0).Diff); diff != "" {
		t.Errorf("fence 0 diff mismatch (-want +got):\n%s", diff)
	}
	if !rc.Fence(1).Focus[1] {
		t.Error("fence 1 line 1 should be focused")
	}
}

func TestMarkerProcessor_Name(t *testing.T) {
	t.Parallel()

	if got := (&MarkerProcessor{Family: FamilyWarning}).Name(); got != "markers/warning" {
		t.Errorf("Name() = %q", got)
	}
}
