//go:build bench

package pipeline

import (
	"fmt"
	"strings"
	"testing"
)

// BenchmarkAnchorProcessor benchmarks heading id and anchor injection.
// It runs on every page, so its cost scales with heading count.
func BenchmarkAnchorProcessor(b *testing.B) {
	inputs := []struct {
		name    string
		content string
	}{
		{"few_headings", generateHTMLWithHeadings(10, false)},
		{"many_headings", generateHTMLWithHeadings(100, false)},
		{"existing_ids", generateHTMLWithHeadings(50, true)},
		{"no_headings", strings.Repeat("<p>Paragraph content here.</p>\n", 500)},
	}

	for _, input := range inputs {
		b.Run(input.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = AnchorProcessor{}.Postprocess(input.content, NewRenderContext(nil))
			}
		})
	}
}

// BenchmarkGenerateTOC benchmarks TOC HTML generation.
func BenchmarkGenerateTOC(b *testing.B) {
	for _, count := range []int{5, 20, 50, 100} {
		entries := generateTOCEntries(count)
		for _, numbered := range []bool{false, true} {
			opts := DefaultTOCOptions
			opts.Numbered = numbered
			b.Run(fmt.Sprintf("headings_%d_numbered_%t", count, numbered), func(b *testing.B) {
				b.ReportAllocs()
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					_ = GenerateTOC(entries, opts)
				}
			})
		}
	}
}

// BenchmarkSlugify benchmarks heading text to id conversion.
func BenchmarkSlugify(b *testing.B) {
	inputs := []struct {
		name  string
		value string
	}{
		{"ascii", "Getting Started With The API"},
		{"accents", "Café & Crème brûlée à la carte"},
		{"punctuation", "API: v2 (beta) -- what's new?"},
		{"long", strings.Repeat("word ", 50)},
	}

	for _, input := range inputs {
		b.Run(input.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = Slugify(input.value)
			}
		})
	}
}

// BenchmarkStripHTMLTags benchmarks HTML tag stripping.
func BenchmarkStripHTMLTags(b *testing.B) {
	inputs := []struct {
		name  string
		value string
	}{
		{"no_tags", "Plain text content"},
		{"simple_tags", "<strong>Bold</strong> and <em>italic</em>"},
		{"nested_tags", "<div><span><a href='#'>Link</a></span></div>"},
		{"many_tags", strings.Repeat("<span>text</span>", 50)},
	}

	for _, input := range inputs {
		b.Run(input.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				_ = stripHTMLTags(input.value)
			}
		})
	}
}

// BenchmarkRewriteMarkdownLinks benchmarks .md link rewriting.
func BenchmarkRewriteMarkdownLinks(b *testing.B) {
	var sb strings.Builder
	for i := 0; i < 100; i++ {
		fmt.Fprintf(&sb, `<p>See <a href="guide/page-%d.md#top">page %d</a>.</p>`+"\n", i, i)
	}
	content := sb.String()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := RewriteMarkdownLinks(content); err != nil {
			b.Fatal(err)
		}
	}
}

// Helper functions

func generateHTMLWithHeadings(count int, withIDs bool) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		level := (i % 6) + 1
		attrs := ""
		if withIDs {
			attrs = fmt.Sprintf(` id="heading-%d"`, i)
		}
		fmt.Fprintf(&sb, `<h%d%s>Heading <code>%d</code></h%d>`, level, attrs, i+1, level)
		sb.WriteString("\n<p>Some content under this heading.</p>\n")
	}
	return sb.String()
}

func generateTOCEntries(count int) []TOCEntry {
	entries := make([]TOCEntry, count)
	for i := 0; i < count; i++ {
		entries[i] = TOCEntry{
			Level: (i % 3) + 1,
			ID:    fmt.Sprintf("heading-%d", i),
			Text:  fmt.Sprintf("Heading Number %d", i+1),
		}
	}
	return entries
}
