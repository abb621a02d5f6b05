//go:build bench

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// Run with: go test -tags bench -bench . ./internal/pipeline

// section kinds understood by benchDoc.
const (
	secProse = 1 << iota
	secList
	secTable
	secCode
	secAnnotated
	secTabs
)

// benchDoc builds a page of n sections, each containing the given kinds.
func benchDoc(n, kinds int) string {
	var sb strings.Builder
	sb.WriteString("# Benchmark page\n\nIntro with **bold**, *italic* and `code`.\n\n")
	for i := range n {
		fmt.Fprintf(&sb, "## Part %d\n\n", i+1)
		if kinds&secProse != 0 {
			sb.WriteString("A sentence with a [link](https://example.com) and ==marked== text.\n\n")
		}
		if kinds&secList != 0 {
			sb.WriteString("- first\n- second\n  - nested\n\n")
		}
		if kinds&secTable != 0 {
			sb.WriteString("| Key | Value |\n|-----|-------|\n")
			for r := range 8 {
				fmt.Fprintf(&sb, "| k%d | v%d |\n", r, r)
			}
			sb.WriteString("\n")
		}
		if kinds&secCode != 0 {
			sb.WriteString("```go\nfor i := range 10 {\n\tfmt.Println(i)\n}\n```\n\n")
		}
		if kinds&secAnnotated != 0 {
			sb.WriteString("```go [job.go] {1,3} :line-numbers\nfunc run() { // [!code focus]\n\tbefore() // [!code --]\n\tafter() // [!code ++]\n\tdone() // (1)\n}\n```\n\n1. Marks completion.\n\n")
		}
		if kinds&secTabs != 0 {
			sb.WriteString(":::tabs\n== macOS\nbrew install x\n== Linux\napt install x\n:::\n\n")
		}
	}
	return sb.String()
}

const mixed = secProse | secList | secTable | secCode

func BenchmarkConverter(b *testing.B) {
	conv := NewGoldmarkConverter()
	ctx := context.Background()

	for _, bc := range []struct {
		name string
		doc  string
	}{
		{"prose", benchDoc(20, secProse)},
		{"tables", benchDoc(10, secTable)},
		{"code", benchDoc(10, secCode)},
		{"mixed", benchDoc(50, mixed)},
	} {
		b.Run(bc.name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := conv.ToHTML(ctx, bc.doc); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkEngine(b *testing.B) {
	engine := NewEngine(nil)
	ctx := context.Background()

	for _, bc := range []struct {
		name string
		doc  string
	}{
		{"mixed_10", benchDoc(10, mixed)},
		{"mixed_100", benchDoc(100, mixed)},
		{"mixed_500", benchDoc(500, mixed)},
		{"annotated", benchDoc(10, secAnnotated)},
		{"tabs", benchDoc(10, secTabs)},
	} {
		b.Run(bc.name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := engine.Render(ctx, bc.doc, NewRenderContext(nil)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}

	b.Run("parallel", func(b *testing.B) {
		doc := benchDoc(20, mixed)
		b.ReportAllocs()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				if _, err := engine.Render(ctx, doc, NewRenderContext(nil)); err != nil {
					b.Error(err)
					return
				}
			}
		})
	})
}

func BenchmarkHighlightLanguages(b *testing.B) {
	engine := NewEngine(nil)
	ctx := context.Background()

	for _, lang := range []string{"go", "python", "typescript", "rust", "sql"} {
		doc := "```" + lang + "\n" + strings.Repeat("x = compute(1, \"two\") # note\n", 100) + "```\n"
		b.Run(lang, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := engine.Render(ctx, doc, NewRenderContext(nil)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkWrapLines(b *testing.B) {
	const line = `<span class="nx">v</span> <span class="o">:=</span> <span class="nf">load</span>(<span class="nx">k</span>)` + "\n"

	for _, n := range []int{10, 100, 1000} {
		highlighted := strings.Repeat(line, n)
		fd := newFenceDescriptor()
		fd.Highlights = []int{1, 3}
		fd.Diff[2] = DiffAdd
		fd.Focus[4] = true

		b.Run(fmt.Sprintf("lines_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_ = WrapLines(highlighted, fd, n, true)
			}
		})
	}
}
