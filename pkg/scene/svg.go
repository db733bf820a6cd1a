package scene

import (
	"bufio"
	"encoding/xml"
	"io"
	"maps"
	"slices"
	"strings"
)

// WriteSVG serializes e and its descendants as indented SVG markup.
// Attributes are written in sorted order so equal trees produce equal bytes.
func (e *Element) WriteSVG(w io.Writer) error {
	bw := bufio.NewWriter(w)
	e.write(bw, 0)
	return bw.Flush()
}

// String returns the SVG markup of e.
func (e *Element) String() string {
	var b strings.Builder
	_ = e.WriteSVG(&b)
	return b.String()
}

func (e *Element) write(w *bufio.Writer, depth int) {
	indent := strings.Repeat("  ", depth)
	w.WriteString(indent)
	w.WriteByte('<')
	w.WriteString(e.tag)
	for _, kv := range e.serialAttrs() {
		w.WriteByte(' ')
		w.WriteString(kv[0])
		w.WriteString(`="`)
		_ = xml.EscapeText(w, []byte(kv[1]))
		w.WriteByte('"')
	}
	if len(e.children) == 0 && e.text == "" {
		w.WriteString("/>\n")
		return
	}
	w.WriteByte('>')
	if e.text != "" {
		_ = xml.EscapeText(w, []byte(e.text))
	}
	if len(e.children) > 0 {
		w.WriteByte('\n')
		for _, c := range e.children {
			c.write(w, depth+1)
		}
		w.WriteString(indent)
	}
	w.WriteString("</")
	w.WriteString(e.tag)
	w.WriteString(">\n")
}

func (e *Element) serialAttrs() [][2]string {
	out := make([][2]string, 0, len(e.attrs)+2)
	for _, k := range slices.Sorted(maps.Keys(e.attrs)) {
		out = append(out, [2]string{k, e.attrs[k]})
	}
	if len(e.classes) > 0 {
		out = append(out, [2]string{"class", strings.Join(e.classes, " ")})
	}
	if len(e.styles) > 0 {
		parts := make([]string, 0, len(e.styles))
		for _, k := range slices.Sorted(maps.Keys(e.styles)) {
			parts = append(parts, k+": "+e.styles[k])
		}
		out = append(out, [2]string{"style", strings.Join(parts, "; ")})
	}
	return out
}
