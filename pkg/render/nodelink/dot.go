package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/casegraph/pkg/errors"
	"github.com/matzehuels/casegraph/pkg/graph"
	"github.com/matzehuels/casegraph/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the date and day order to node labels and the category
	// to edge labels. When false, only the case number is shown.
	Detailed bool
}

// palette colors link categories in sorted category order.
var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// ToDOT converts a case graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
func ToDOT(g *graph.Graph, opts Options) string {
	if g == nil {
		g = &graph.Graph{}
	}
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12];\n")
	buf.WriteString("  edge [color=\"#999\", arrowsize=0.6];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "  %s [label=%s];\n", dotQuote(string(n.ID)), dotQuote(fmtLabel(n, opts.Detailed)))
	}

	ranks := sameDayRanks(g.Nodes)
	if len(ranks) > 0 {
		buf.WriteString("\n")
	}
	for _, ids := range ranks {
		quoted := make([]string, len(ids))
		for i, id := range ids {
			quoted[i] = dotQuote(string(id))
		}
		fmt.Fprintf(&buf, "  { rank=same; %s; }\n", strings.Join(quoted, "; "))
	}

	index := graph.NewIndex(g)
	colors := categoryColors(g.Categories())
	buf.WriteString("\n")
	for _, l := range g.Links {
		if index.Lookup(l.Source) == nil || index.Lookup(l.Target) == nil {
			continue
		}
		attrs := []string{"color=" + dotQuote(colors[l.Type])}
		if opts.Detailed && l.Type != "" {
			attrs = append(attrs, "label="+dotQuote(string(l.Type)))
		}
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", dotQuote(string(l.Source)), dotQuote(string(l.Target)), strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// dotEscaper escapes a DOT double-quoted string. Line breaks become the
// centered-line escape; every other character is passed through.
var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\r\n", `\n`, "\n", `\n`, "\r", `\n`)

func dotQuote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

func fmtLabel(n *graph.Node, detailed bool) string {
	label := string(n.ID)
	if n.Properties != nil && n.Properties.CaseNo != "" {
		label = string(n.Properties.CaseNo)
	}
	if !detailed {
		return label
	}
	parts := []string{label}
	if n.HasDate() {
		parts = append(parts, n.Date.Format("2006-01-02"))
	}
	parts = append(parts, fmt.Sprintf("order: %s", strconv.FormatFloat(n.DayOrder, 'f', -1, 64)))
	return strings.Join(parts, "\n")
}

// sameDayRanks groups dated node ids by day, in order of first appearance.
// Days with a single node are skipped.
func sameDayRanks(nodes []*graph.Node) [][]graph.Key {
	var order []string
	byDay := make(map[string][]graph.Key)
	for _, n := range nodes {
		if !n.HasDate() {
			continue
		}
		d := n.Date.UTC().Format("2006-01-02")
		if _, ok := byDay[d]; !ok {
			order = append(order, d)
		}
		byDay[d] = append(byDay[d], n.ID)
	}
	var out [][]graph.Key
	for _, d := range order {
		if len(byDay[d]) > 1 {
			out = append(out, byDay[d])
		}
	}
	return out
}

func categoryColors(categories []graph.Key) map[graph.Key]string {
	out := make(map[graph.Key]string, len(categories))
	for i, c := range categories {
		out[c] = palette[i%len(palette)]
	}
	return out
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based <svg> header with one
// whose viewBox starts at the origin and whose size is unitless.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image suitable for high-DPI displays.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
