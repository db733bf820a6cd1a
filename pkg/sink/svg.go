package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/casegraph/pkg/scene"
)

const linkInteractionCSS = `
    .links { stroke: #999; stroke-opacity: 0.6; fill: none; transition: stroke-opacity 0.2s ease; }
    .links.highlight { stroke: #d62728; stroke-opacity: 1; stroke-width: 2; }
    .nodes { fill: #4682b4; stroke: #fff; cursor: pointer; }
    .nodes.highlight { fill: #d62728; }`

// linkInteractionJS highlights the links leaving a hovered node. Link paths
// carry CO-links-<node id>, and each circle carries its node id in data-node.
const linkInteractionJS = `
    function highlight(node) {
      const cls = 'CO-links-' + node.dataset.node;
      document.querySelectorAll('.links').forEach(l => l.classList.toggle('highlight', l.classList.contains(cls)));
      document.querySelectorAll('.nodes').forEach(n => n.classList.toggle('highlight', n === node));
    }
    function clearHighlight() {
      document.querySelectorAll('.links, .nodes').forEach(el => el.classList.remove('highlight'));
    }
    document.querySelectorAll('.nodes[data-node]').forEach(el => {
      el.addEventListener('mouseenter', () => highlight(el));
      el.addEventListener('touchstart', () => highlight(el), {passive: true});
      el.addEventListener('mouseleave', clearHighlight);
    });`

// SVGOption configures RenderSVG.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width, height float64
	interaction   bool
	background    string
}

// WithSize sets the document size and viewBox.
func WithSize(width, height float64) SVGOption {
	return func(r *svgRenderer) { r.width, r.height = width, height }
}

// WithInteraction embeds the hover highlight stylesheet and script.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interaction = true } }

// WithBackground fills the document with color behind the chart.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// RenderSVG serializes the children of mount into an SVG document.
func RenderSVG(mount *scene.Element, opts ...SVGOption) []byte {
	r := svgRenderer{width: 1200, height: 600}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		scene.FormatNum(r.width), scene.FormatNum(r.height), scene.FormatNum(r.width), scene.FormatNum(r.height))

	if r.background != "" {
		bg := scene.New("rect").SetAttr("width", "100%").SetAttr("height", "100%").SetAttr("fill", r.background)
		_ = bg.WriteSVG(&buf)
	}
	if mount != nil {
		for _, c := range mount.Children() {
			_ = c.WriteSVG(&buf)
		}
	}
	if r.interaction {
		renderLinkInteraction(&buf)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderLinkInteraction(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", linkInteractionCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", linkInteractionJS)
}
