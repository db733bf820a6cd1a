package timeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/casegraph/pkg/errors"
	"github.com/matzehuels/casegraph/pkg/graph"
	"github.com/matzehuels/casegraph/pkg/observability"
	"github.com/matzehuels/casegraph/pkg/scale"
	"github.com/matzehuels/casegraph/pkg/scene"
)

// UpdateStats summarizes one update pass.
type UpdateStats = observability.UpdateStats

// Chart is the timeline renderer bound to one mount point.
type Chart struct {
	cfg       Config
	root      *scene.Element // <g class="time-graph"> under the mount point
	graph     *graph.Graph
	index     graph.NodeIndex
	cases     any
	highlight HighlightFunc
	logger    *log.Logger

	x *scale.Time
	y *scale.Linear

	xAxis, yAxis *axis
	defs         *scene.Element
	linkLayer    *scene.Element
	nodeLayer    *scene.Element

	lastX, lastY *scene.Transition
	stats        UpdateStats
}

// Option configures a Chart.
type Option func(*Chart)

// WithHighlight sets the collaborator invoked on pointer and touch events.
func WithHighlight(h HighlightFunc) Option {
	return func(c *Chart) { c.highlight = h }
}

// WithLogger sets the logger for update summaries and degraded links.
func WithLogger(l *log.Logger) Option {
	return func(c *Chart) {
		if l != nil {
			c.logger = l
		}
	}
}

// New builds the chart under mount and runs the first update. The mount
// point is owned by the chart from then on. cases is passed through to the
// highlight collaborator untouched; g and index are only ever read.
func New(mount *scene.Element, g *graph.Graph, cases any, index graph.NodeIndex, cfg Config, opts ...Option) (*Chart, error) {
	if mount == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "chart needs a mount point")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	c := &Chart{
		cfg:    cfg,
		cases:  cases,
		logger: log.New(io.Discard),
		x:      scale.NewTime(0, cfg.InnerWidth()),
		y:      scale.NewLinear(cfg.InnerHeight(), 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.setData(g, index)
	c.build(mount)
	c.Update()
	return c, nil
}

// build lays out the static structure: axes, captions, defs and the layers
// holding links below nodes.
func (c *Chart) build(mount *scene.Element) {
	w, h := c.cfg.InnerWidth(), c.cfg.InnerHeight()

	c.root = mount.Append("g").SetClass("time-graph").
		SetAttr("transform", scene.Translate(c.cfg.Margin.Left, c.cfg.Margin.Top))

	c.xAxis = newAxis(c.root, bottom, "time-graph-x")
	c.xAxis.group.SetAttr("transform", scene.Translate(0, h))
	c.yAxis = newAxis(c.root, left, "time-graph-y")

	caps := captionsFor(c.cfg.Language)
	c.root.Append("text").SetClass("time-graph-x-label").
		SetNum("y", h+70).
		SetNum("x", w/2).
		SetAttr("font-size", "16px").
		SetAttr("text-anchor", "middle").
		SetText(caps.x)
	c.root.Append("text").SetClass("time-graph-y-label").
		SetAttr("transform", "rotate(-90)").
		SetNum("y", -50).
		SetNum("x", -h/2).
		SetAttr("font-size", "20px").
		SetAttr("text-anchor", "middle").
		SetText(caps.y)

	c.defs = c.root.Append("defs")
	c.linkLayer = c.root.Append("g").SetClass("links-layer")
	c.nodeLayer = c.root.Append("g").SetClass("nodes-layer")
}

func (c *Chart) setData(g *graph.Graph, index graph.NodeIndex) {
	if g == nil {
		g = &graph.Graph{}
	}
	if index == nil {
		index = graph.NodeIndex{}
	}
	c.graph, c.index = g, index
}

// SetData replaces the active dataset and updates the chart.
func (c *Chart) SetData(g *graph.Graph, index graph.NodeIndex) UpdateStats {
	c.setData(g, index)
	return c.Update()
}

// Update re-derives the full visual state from the active dataset: scales,
// axes, markers, links, then nodes.
func (c *Chart) Update() UpdateStats {
	start := time.Now()
	hooks := observability.Chart()
	hooks.OnUpdateStart(len(c.graph.Nodes), len(c.graph.Links))

	c.updateScales()
	c.updateAxes()

	var stats UpdateStats
	stats.Markers = c.updateMarkers()
	stats.Links, stats.Unresolved = c.updateLinks()
	stats.Nodes = c.updateNodes()

	c.stats = stats
	elapsed := time.Since(start)
	hooks.OnUpdateComplete(stats, elapsed)
	c.logger.Debug("timeline updated",
		"nodes", stats.Nodes, "links", stats.Links,
		"markers", stats.Markers, "unresolved", stats.Unresolved,
		"took", elapsed)
	return stats
}

// updateScales recomputes both domains from the full dataset. Without data
// the scales fall back to their default domains.
func (c *Chart) updateScales() {
	if lo, hi, ok := c.graph.DateRange(); ok {
		c.x.SetDomain(lo, hi).Nice(10)
	} else {
		c.x.SetDomain(scale.DefaultTimeDomain[0], scale.DefaultTimeDomain[1])
	}

	if len(c.graph.Nodes) == 0 {
		c.y.SetDomain(0, 1)
		return
	}
	lo, hi := c.graph.Nodes[0].DayOrder, c.graph.Nodes[0].DayOrder
	for _, n := range c.graph.Nodes[1:] {
		lo = min(lo, n.DayOrder)
		hi = max(hi, n.DayOrder)
	}
	c.y.SetDomain(lo, hi).Nice(10)
}

func (c *Chart) updateAxes() {
	xr0, xr1 := c.x.Range()
	ticks, pos := timeTicks(c.x, c.cfg.DateTickFormatter)
	c.lastX = c.xAxis.render(ticks, pos, xr0, xr1)
	for _, text := range c.xAxis.labels() {
		text.SetAttr("font-weight", "bold").
			SetStyle("text-anchor", "end").
			SetAttr("dx", "-.8em").
			SetAttr("transform", "rotate(-65)")
	}

	yr0, yr1 := c.y.Range()
	ticks, pos = linearTicks(c.y)
	c.lastY = c.yAxis.render(ticks, pos, yr0, yr1)
	for _, text := range c.yAxis.labels() {
		text.SetAttr("font-weight", "bold")
	}
}

// Highlight dispatches a pointer event on the circle of node id, as a host
// would when the pointer enters it. It reports whether the node is rendered.
func (c *Chart) Highlight(id graph.Key) bool {
	for _, g := range c.nodeLayer.ChildrenWithClass("node") {
		if g.Key() == string(id) {
			return g.Find(scene.WithTag("circle")).Dispatch(EventMouseOver)
		}
	}
	return false
}

// Stats returns the summary of the latest update.
func (c *Chart) Stats() UpdateStats { return c.stats }

// Root returns the chart group under the mount point.
func (c *Chart) Root() *scene.Element { return c.root }

// Config returns the layout in use, defaults applied.
func (c *Chart) Config() Config { return c.cfg }

// XScale returns the date scale of the latest update.
func (c *Chart) XScale() *scale.Time { return c.x }

// YScale returns the day-order scale of the latest update.
func (c *Chart) YScale() *scale.Linear { return c.y }

// AxisTransitions returns the transitions requested by the latest update
// for the x and y axes.
func (c *Chart) AxisTransitions() (x, y *scene.Transition) { return c.lastX, c.lastY }
