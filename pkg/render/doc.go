// Package render converts rendered SVG documents into other output formats.
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] shell out to rsvg-convert (from librsvg). Both the
// timeline document produced by [sink.RenderSVG] and the node-link diagram
// from the [nodelink] subpackage go through them:
//
//	svg := sink.RenderSVG(mount, sink.WithSize(1200, 600))
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage lays the case network out with Graphviz instead
// of on a date axis, which is useful when dates are sparse.
//
// [sink.RenderSVG]: github.com/matzehuels/casegraph/pkg/sink
// [nodelink]: github.com/matzehuels/casegraph/pkg/render/nodelink
package render
