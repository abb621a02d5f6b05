// Package pipeline implements the markdown extension pipeline.
//
// A Pipeline is an immutable, priority-ordered list of processors built
// once with New or Default. Rendering one document runs three stages:
//   - preprocessors rewrite the raw markdown (line endings, code imports,
//     code markers, fence options, tabs and code-group containers)
//   - goldmark converts the result to HTML, highlighting fences with chroma
//   - postprocessors rewrite the HTML (per-line code spans, icons, heading
//     anchors, table wrappers, page links, container placeholders)
//
// Per-document state lives in a RenderContext, so one Engine can render
// many documents concurrently.
//
// Fence-level preprocessors number fences in document order and skip any
// fence inside a :::tabs or :::code-group container; those bodies are
// rendered later by the container in a child context with its own
// numbering. Marker stripping never changes the number of lines in a fence
// body, so line maps recorded before highlighting stay aligned with the
// highlighted output.
package pipeline
