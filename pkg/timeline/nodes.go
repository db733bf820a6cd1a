package timeline

import (
	"github.com/matzehuels/casegraph/pkg/graph"
	"github.com/matzehuels/casegraph/pkg/scene"
)

// FallbackNodeX is the x coordinate of a node without a date, left of the
// plotting area.
const FallbackNodeX = -100

// Pointer events that trigger the highlight collaborator.
const (
	EventMouseOver  = "mouseover"
	EventTouchStart = "touchstart"
)

// NodeDataAttr holds a circle's node id, the same id that names the
// CO-links-<id> class of the node's outgoing links.
const NodeDataAttr = "data-node"

// HighlightFunc is the external highlight collaborator. It receives the
// node under the pointer and the opaque case list given at construction.
type HighlightFunc func(node *graph.Node, cases any)

// NodeElementID returns the circle id derived from a node's case number, or
// "" when the node carries none.
func NodeElementID(n *graph.Node) string {
	if n.Properties == nil || n.Properties.CaseNo == "" {
		return ""
	}
	return "CO-" + string(n.Properties.CaseNo)
}

// nodeClasses returns the circle classes: the source-number class when
// known, then "nodes".
func nodeClasses(n *graph.Node) []string {
	if n.Properties == nil || n.Properties.SourceNo == "" {
		return []string{"nodes"}
	}
	return []string{"CO-nodes-" + string(n.Properties.SourceNo), "nodes"}
}

func (c *Chart) nodePosition(n *graph.Node) (x, y float64) {
	x = FallbackNodeX
	if n.HasDate() {
		x = c.x.Map(n.Date)
	}
	return x, c.y.Map(n.DayOrder)
}

// updateNodes reconciles one <g class="node"> per node, keyed by node id.
func (c *Chart) updateNodes() int {
	reconcile(c.nodeLayer, scene.WithClass("node"), c.graph.Nodes,
		func(n *graph.Node) string { return string(n.ID) },
		func(*graph.Node) *scene.Element {
			g := c.nodeLayer.Append("g").SetClass("node")
			circle := g.Append("circle").SetNum("cx", 0).SetNum("cy", 0)
			circle.On(EventMouseOver, c.onPointer).On(EventTouchStart, c.onPointer)
			return g
		},
		func(g *scene.Element, n *graph.Node) {
			g.SetAttr("transform", scene.Translate(c.nodePosition(n)))

			circle := g.Find(scene.WithTag("circle"))
			circle.Datum = n
			circle.SetClass(nodeClasses(n)...).SetNum("r", n.R).SetAttr(NodeDataAttr, string(n.ID))
			if id := NodeElementID(n); id != "" {
				circle.SetAttr("id", id)
			} else {
				circle.RemoveAttr("id")
			}
		},
		nil,
	)
	return len(c.graph.Nodes)
}

func (c *Chart) onPointer(ev scene.Event) {
	n, ok := ev.Target.Datum.(*graph.Node)
	if !ok || c.highlight == nil {
		return
	}
	c.highlight(n, c.cases)
}
