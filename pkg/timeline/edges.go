package timeline

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/casegraph/pkg/graph"
	"github.com/matzehuels/casegraph/pkg/observability"
	"github.com/matzehuels/casegraph/pkg/scene"
)

// FallbackLinkX is the x coordinate of a link endpoint whose node or date
// cannot be resolved.
const FallbackLinkX = 0

// keyedLink pairs a link with its reconciliation key.
type keyedLink struct {
	key  string
	link graph.Link
}

// linkKeys assigns each link a stable key; repeated source/target/type
// triples get an occurrence suffix so none collapse into one element.
func linkKeys(links []graph.Link) []keyedLink {
	seen := make(map[string]int, len(links))
	out := make([]keyedLink, len(links))
	for i, l := range links {
		k := fmt.Sprintf("%s→%s:%s", l.Source, l.Target, l.Type)
		if n := seen[k]; n > 0 {
			seen[k] = n + 1
			k = fmt.Sprintf("%s#%d", k, n)
		} else {
			seen[k] = 1
		}
		out[i] = keyedLink{key: k, link: l}
	}
	return out
}

// endpoint resolves a link endpoint to pixel coordinates. ok is false when
// the node is unknown or undated and a fallback was used.
func (c *Chart) endpoint(id graph.Key) (x, y float64, ok bool) {
	n := c.index.Lookup(id)
	if n == nil {
		base, _ := c.y.Range()
		return FallbackLinkX, base, false
	}
	y = c.y.Map(n.DayOrder)
	if !n.HasDate() {
		return FallbackLinkX, y, false
	}
	return c.x.Map(n.Date), y, true
}

// ArcPath returns the path of a circular arc from (x1, y1) to (x2, y2). The
// radius is half the horizontal distance, and the sweep flag is 1 when the
// arc runs left to right, so arcs sharing an endpoint bow apart instead of
// overlapping.
func ArcPath(x1, y1, x2, y2 float64) string {
	r := math.Abs(x1-x2) / 2
	sweep := "0"
	if x1 < x2 {
		sweep = "1"
	}
	f := scene.FormatNum
	var b strings.Builder
	b.WriteString("M" + f(x1) + "," + f(y1))
	b.WriteString("A" + f(r) + "," + f(r) + " 0 0," + sweep + " ")
	b.WriteString(f(x2) + "," + f(y2))
	return b.String()
}

// updateLinks reconciles one <g class="link"> per link and returns the link
// count and the number of endpoints drawn at a fallback position.
func (c *Chart) updateLinks() (links, unresolved int) {
	hooks := observability.Chart()
	items := linkKeys(c.graph.Links)

	reconcile(c.linkLayer, scene.WithClass("link"), items,
		func(kl keyedLink) string { return kl.key },
		func(keyedLink) *scene.Element {
			g := c.linkLayer.Append("g").SetClass("link")
			g.Append("path")
			return g
		},
		func(g *scene.Element, kl keyedLink) {
			l := kl.link
			x1, y1, okS := c.endpoint(l.Source)
			x2, y2, okT := c.endpoint(l.Target)
			if !okS || !okT {
				if !okS {
					unresolved++
				}
				if !okT {
					unresolved++
				}
				hooks.OnUnresolvedLink(string(l.Source), string(l.Target))
				c.logger.Debug("link endpoint unresolved", "source", l.Source, "target", l.Target)
			}

			path := g.Find(scene.WithTag("path"))
			path.Datum = l
			path.SetClass("CO-links-"+string(l.Source), "links", "links-"+string(l.Type)).
				SetAttr("marker-end", c.markerRef(l.Type)).
				SetAttr("d", ArcPath(x1, y1, x2, y2))
		},
		nil,
	)
	return len(items), unresolved
}
