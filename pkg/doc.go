// Package pkg provides the core libraries for casegraph case-network timelines.
//
// # Overview
//
// casegraph places each case of a network at its date on the horizontal axis
// and its order within that day on the vertical axis, then connects linked
// cases with directed arcs. The pkg directory is organized into three areas:
//
//  1. [graph] - The case network and its JSON wire format
//  2. [timeline] - The chart: scales, axes, markers, links and nodes
//  3. Output - [scene], [sink], [render] and [render/nodelink]
//
// # Architecture
//
// The typical data flow:
//
//	graph.json
//	     ↓
//	[graph] package (decode, index, date window)
//	     ↓
//	[timeline] package (update the retained [scene] tree)
//	     ↓
//	[sink] package (standalone SVG document)
//	     ↓
//	[render] package (optional PDF/PNG conversion)
//
// # Quick Start
//
//	g, _ := graph.ImportGraph("cases.json")
//	mount := scene.New("svg")
//	chart, _ := timeline.New(mount, g, nil, graph.NewIndex(g), timeline.DefaultConfig())
//
//	// Swap in a new dataset later; the scene is reconciled in place.
//	chart.SetData(g.Filter(graph.Between(from, to)), graph.NewIndex(g))
//
//	svg := sink.RenderSVG(mount, sink.WithSize(1200, 600), sink.WithInteraction())
//
// # Main Packages
//
// [scale] - Linear and time scales with nice domains, tick generation and
// multi-resolution date labels.
//
// [timeline] - The update controller. Each update recomputes both domains,
// animates the axes, upserts one arrowhead per link category and reconciles
// links and nodes by key.
//
// [render/nodelink] - Traditional directed graph diagrams using Graphviz.
//
// [render] - Format conversion (SVG to PDF/PNG).
//
// ## Infrastructure
//
// [cache] - File and null caches for rendered outputs, keyed by content hash.
//
// [observability] - Hook registry the CLI fills with Prometheus collectors.
//
// [errors] - Coded errors shared by the CLI and the HTTP server.
//
// # Testing
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/timeline/...   # Specific package
//	go test -run Example ./...   # Examples only
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/casegraph/pkg/graph
// [timeline]: https://pkg.go.dev/github.com/matzehuels/casegraph/pkg/timeline
// [scene]: https://pkg.go.dev/github.com/matzehuels/casegraph/pkg/scene
// [sink]: https://pkg.go.dev/github.com/matzehuels/casegraph/pkg/sink
// [scale]: https://pkg.go.dev/github.com/matzehuels/casegraph/pkg/scale
// [render]: https://pkg.go.dev/github.com/matzehuels/casegraph/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/casegraph/pkg/render/nodelink
// [cache]: https://pkg.go.dev/github.com/matzehuels/casegraph/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/casegraph/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/casegraph/pkg/errors
package pkg
