package timeline

import (
	"github.com/matzehuels/casegraph/pkg/graph"
	"github.com/matzehuels/casegraph/pkg/scene"
)

const (
	markerPrefix = "arrow-"
	markerFill   = "#999"
	markerPath   = "M0,-5L10,0L0,5"
)

// MarkerID returns the id of the arrowhead marker for a link category.
func MarkerID(category graph.Key) string {
	return markerPrefix + string(category)
}

// markerRef returns the marker-end reference for a category.
func (c *Chart) markerRef(category graph.Key) string {
	return "url(" + c.cfg.MarkerBaseURL + "#" + MarkerID(category) + ")"
}

// updateMarkers upserts one marker per distinct link category into the
// chart's single <defs> and drops markers of categories no longer linked.
func (c *Chart) updateMarkers() int {
	categories := c.graph.Categories()
	reconcile(c.defs, scene.WithTag("marker"), categories, MarkerID,
		func(cat graph.Key) *scene.Element {
			m := c.defs.Append("marker")
			m.Append("path").SetAttr("fill", markerFill).SetAttr("d", markerPath)
			return m
		},
		func(m *scene.Element, cat graph.Key) {
			m.SetAttr("id", MarkerID(cat)).
				SetAttr("viewBox", "0 -5 10 10").
				SetNum("refX", 15).
				SetNum("refY", -0.5).
				SetNum("markerWidth", 6).
				SetNum("markerHeight", 6).
				SetAttr("orient", "auto")
		},
		nil,
	)
	return len(categories)
}
