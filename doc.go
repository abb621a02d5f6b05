// Package docsite renders documentation pages written in extended markdown.
//
// # Quick Start
//
// Create a renderer once and reuse it for every page:
//
//	r, err := docsite.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := r.Render(ctx, docsite.Input{
//	    Markdown: "# Hello\n\n```go\nfmt.Println(1) // [!code ++]\n```",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.HTML)
//
// The result holds the body fragment, the "On this page" outline, the page
// title and any non-fatal warnings. Wrapping the fragment into a full page
// is the job of the site builder (cmd/docsite build).
//
// # Authoring Syntax
//
// On top of GitHub flavored markdown, pages support:
//
//   - fence headers: ```lang [title] :line-numbers=N {1,3-5}
//   - trailing code markers: // [!code ++], # [!code --], [!code focus],
//     [!code error], [!code warning] and annotations // (1)
//   - :::tabs containers with == name sections
//   - :::code-group containers with one panel per labelled fence
//   - <<< @/path/to/file.go#region{2} code imports
//   - ==highlighted text== and :icon-name: icons
//
// Malformed syntax is left as literal text and never fails a render.
//
// # Front Matter
//
// A page may start with a YAML block:
//
//	---
//	title: Install
//	description: Get started in minutes
//	order: 1
//	search: false
//	---
//
// # Concurrency
//
// A Renderer is safe for concurrent use. Each Render call works on its own
// state, so a site can be rendered with one Renderer shared by many
// goroutines.
package docsite
