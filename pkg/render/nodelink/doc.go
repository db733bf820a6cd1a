// Package nodelink renders the case network as a traditional node-link
// diagram laid out by Graphviz.
//
// # Usage
//
// Convert a graph to DOT, then render it to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output, use [RenderPDF] and [RenderPNG].
//
// # Layout
//
// The generated DOT flows left to right like the timeline. Nodes sharing a
// date are pinned to the same rank, and links are colored per category from
// a fixed palette, so the diagram stays readable next to the timeline view.
// Links whose endpoints are not in the graph are left out.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
