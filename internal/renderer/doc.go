// Package renderer turns buffer text into styled lines on a backend.
//
// A Document owns the state of one buffer:
//
//	lines ──▶ grid.Grid ──▶ highlight.Pipeline writes face ids
//	                │
//	                ▼
//	       segment.Coalesce ──▶ runs (cached per row)
//	                │
//	                ▼
//	       segment.Resolve + face.Registry ──▶ []segment.Segment ──▶ backend
//
// Faces are resolved from ids when a line is drawn, so reloading a theme
// recolours the buffer without another highlight pass.
//
// Usage:
//
//	reg := face.NewRegistry()
//	doc := renderer.NewDocument(reg, pipeline, renderer.DefaultOptions())
//	doc.Load(lines)
//	doc.Highlight(ctx)
//	doc.Render(term)
package renderer
