// Package sink turns a rendered scene into a standalone SVG document.
//
// The timeline renders into a mount element it owns; [RenderSVG] wraps the
// mount's children in a sized <svg> root so the result can be written to a
// file, served over HTTP, or converted with [render.ToPDF]:
//
//	mount := scene.New("svg")
//	chart, err := timeline.New(mount, g, nil, graph.NewIndex(g), cfg)
//	svg := sink.RenderSVG(mount,
//	    sink.WithSize(cfg.Width, cfg.Height),
//	    sink.WithInteraction(),
//	)
//
// # SVG Options
//
//   - [WithSize]: Document width and height, also used for the viewBox
//   - [WithInteraction]: Embed a stylesheet and script that highlight a
//     case's outgoing links while the pointer rests on its circle
//   - [WithBackground]: Paint a background rectangle behind the chart
//
// [render.ToPDF]: github.com/matzehuels/casegraph/pkg/render
package sink
