// Package timeline renders a temporal case network onto a scene graph.
//
// The horizontal axis encodes calendar date and the vertical axis encodes
// the order of a case within its day. Each link is drawn as a circular arc
// from source to target with an arrowhead marker matching its category.
//
// # Usage
//
//	root := scene.New("svg")
//	chart, err := timeline.New(root, g, cases, graph.NewIndex(g), timeline.DefaultConfig(),
//	    timeline.WithHighlight(func(n *graph.Node, cases any) { ... }))
//	if err != nil {
//	    return err
//	}
//	// later, after the active dataset changed:
//	chart.SetData(filtered, graph.NewIndex(filtered))
//
// # Update pass
//
// [Chart.Update] re-derives the whole visual state from the whole dataset:
// it recomputes both scale domains, redraws the axes with a 1000ms
// transition request, upserts one marker per link category, then reconciles
// link and node elements by key (create new keys, update existing keys in
// place, remove stale keys). There is no partial-update path.
//
// # Degradation
//
// Data problems never abort an update. A link endpoint that does not
// resolve through the [graph.NodeIndex] is drawn at x=0 on the baseline; a
// node without a date is placed at x=-100; a node without properties simply
// gets no derived id or class. An empty dataset renders axes over a default
// domain and no marks.
//
// A Chart is not safe for concurrent use. Event handlers fire on the
// goroutine that dispatches them and must not run during an update.
package timeline
