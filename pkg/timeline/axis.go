package timeline

import (
	"math"
	"strconv"
	"time"

	"github.com/matzehuels/casegraph/pkg/scale"
	"github.com/matzehuels/casegraph/pkg/scene"
)

// Axis geometry, matching the usual SVG axis conventions.
const (
	tickSizeInner = 6
	tickSizeOuter = 6
	tickPadding   = 3
	pixelOffset   = 0.5 // crisp 1px lines

	// AxisTransition is the duration of the tick transition requested on
	// every update.
	AxisTransition = 1000 * time.Millisecond

	axisTransitionName = "axis"
	xTickCount         = 30
	yTickCount         = 10
	enteringOpacity    = "0.000001"
)

type orientation int

const (
	bottom orientation = iota
	left
)

// tick is one axis tick in scale-independent terms.
type tick struct {
	value float64 // numeric value, Unix milliseconds for dates
	label string
}

// axis draws ticks for one scale into its group.
type axis struct {
	orient orientation
	group  *scene.Element
	// position maps a tick value through the scale of the latest render;
	// nil before the first render.
	position func(float64) float64
}

func newAxis(parent *scene.Element, orient orientation, class string) *axis {
	g := parent.Append("g").SetClass(class)
	g.SetAttr("fill", "none").
		SetAttr("font-size", "10").
		SetAttr("font-family", "sans-serif")
	if orient == bottom {
		g.SetAttr("text-anchor", "middle")
	} else {
		g.SetAttr("text-anchor", "end")
	}
	return &axis{orient: orient, group: g}
}

// render reconciles the ticks against a new scale and requests the
// transition from the previous scale. It returns the transition, which the
// caller never waits on.
func (a *axis) render(ticks []tick, position func(float64) float64, r0, r1 float64) *scene.Transition {
	prev := a.position
	a.position = position
	tr := a.group.StartTransition(axisTransitionName, AxisTransition)

	domain := a.group.Find(scene.WithClass("domain"))
	if domain == nil {
		domain = a.group.Insert("path").SetClass("domain").SetAttr("stroke", "currentColor")
	}
	tr.Attr(domain, "d", a.domainPath(r0, r1))

	isTick := scene.WithClass("tick")
	_, _ = reconcile(a.group, isTick, ticks, tickKey,
		func(t tick) *scene.Element {
			el := a.enterTick()
			from := a.transform(position(t.value))
			if prev != nil {
				if p := prev(t.value); isFinite(p) {
					from = a.transform(p)
				}
			}
			return el.SetAttr("transform", from).SetAttr("opacity", enteringOpacity)
		},
		func(el *scene.Element, t tick) {
			tr.Attr(el, "transform", a.transform(position(t.value)))
			tr.Attr(el, "opacity", "1")
			el.Find(scene.WithTag("text")).SetText(t.label)
		},
		func(el *scene.Element) {
			// Stale ticks slide toward their place under the new scale
			// while fading out.
			if t, ok := el.Datum.(tick); ok {
				if p := position(t.value); isFinite(p) {
					tr.Attr(el, "transform", a.transform(p))
				}
			}
			tr.Exit(el, "opacity", enteringOpacity)
		},
	)
	return tr
}

func tickKey(t tick) string {
	return strconv.FormatFloat(t.value, 'g', -1, 64)
}

func (a *axis) enterTick() *scene.Element {
	g := a.group.Append("g").SetClass("tick")
	line := g.Append("line").SetAttr("stroke", "currentColor")
	text := g.Append("text").SetAttr("fill", "currentColor")
	spacing := math.Max(tickSizeInner, 0) + tickPadding
	if a.orient == bottom {
		line.SetNum("y2", tickSizeInner)
		text.SetNum("y", spacing).SetAttr("dy", "0.71em")
	} else {
		line.SetNum("x2", -tickSizeInner)
		text.SetNum("x", -spacing).SetAttr("dy", "0.32em")
	}
	return g
}

func (a *axis) transform(p float64) string {
	if a.orient == bottom {
		return scene.Translate(p+pixelOffset, 0)
	}
	return scene.Translate(0, p+pixelOffset)
}

func (a *axis) domainPath(r0, r1 float64) string {
	f := scene.FormatNum
	if a.orient == bottom {
		return "M" + f(r0+pixelOffset) + "," + f(tickSizeOuter) +
			"V" + f(pixelOffset) + "H" + f(r1+pixelOffset) + "V" + f(tickSizeOuter)
	}
	return "M" + f(-tickSizeOuter) + "," + f(r0+pixelOffset) +
		"H" + f(pixelOffset) + "V" + f(r1+pixelOffset) + "H" + f(-tickSizeOuter)
}

// labels returns the tick text elements currently in the axis.
func (a *axis) labels() []*scene.Element {
	var out []*scene.Element
	for _, t := range a.group.ChildrenWithClass("tick") {
		if text := t.Find(scene.WithTag("text")); text != nil {
			out = append(out, text)
		}
	}
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// =============================================================================
// Scale adapters
// =============================================================================

func timeTicks(s *scale.Time, format func(time.Time) string) ([]tick, func(float64) float64) {
	snap := *s
	values := snap.Ticks(xTickCount)
	out := make([]tick, len(values))
	for i, v := range values {
		out[i] = tick{value: float64(v.UnixMilli()), label: format(v)}
	}
	position := func(ms float64) float64 {
		return snap.Map(time.UnixMilli(int64(ms)).UTC())
	}
	return out, position
}

func linearTicks(s *scale.Linear) ([]tick, func(float64) float64) {
	snap := *s
	values := snap.Ticks(yTickCount)
	format := snap.TickFormat(yTickCount)
	out := make([]tick, len(values))
	for i, v := range values {
		out[i] = tick{value: v, label: format(v)}
	}
	return out, snap.Map
}
