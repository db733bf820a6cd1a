package scene

import (
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Event is delivered to handlers bound with [Element.On].
type Event struct {
	Type   string
	Target *Element
}

// Handler reacts to a dispatched event.
type Handler func(Event)

// Element is a node of the scene graph.
type Element struct {
	tag         string
	attrs       map[string]string
	styles      map[string]string
	classes     []string
	text        string
	key         string
	parent      *Element
	children    []*Element
	handlers    map[string]Handler
	transitions map[string]*Transition

	// Datum is the data value bound to the element by its renderer.
	Datum any
}

// New creates a detached element.
func New(tag string) *Element {
	return &Element{tag: tag, attrs: map[string]string{}}
}

// Tag returns the element name.
func (e *Element) Tag() string { return e.tag }

// Parent returns the parent element, or nil for a root or removed element.
func (e *Element) Parent() *Element { return e.parent }

// Append creates a child element at the end of e's children.
func (e *Element) Append(tag string) *Element {
	c := New(tag)
	c.parent = e
	e.children = append(e.children, c)
	return c
}

// Insert creates a child element before the first existing child. It is used
// for containers such as <defs> that must precede the content referencing them.
func (e *Element) Insert(tag string) *Element {
	c := New(tag)
	c.parent = e
	e.children = slices.Insert(e.children, 0, c)
	return c
}

// Remove detaches e from its parent and interrupts its transitions.
func (e *Element) Remove() {
	for _, t := range e.transitions {
		t.interrupted = true
	}
	if e.parent == nil {
		return
	}
	p := e.parent
	if i := slices.Index(p.children, e); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	e.parent = nil
}

// Children returns a copy of e's child list.
func (e *Element) Children() []*Element {
	return slices.Clone(e.children)
}

// =============================================================================
// Attributes, classes, styles
// =============================================================================

// SetAttr sets an attribute. Use SetClass and SetStyle for class and style.
func (e *Element) SetAttr(name, value string) *Element {
	e.attrs[name] = value
	return e
}

// SetNum sets a numeric attribute formatted with [FormatNum].
func (e *Element) SetNum(name string, v float64) *Element {
	return e.SetAttr(name, FormatNum(v))
}

// Attr returns an attribute value.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// RemoveAttr deletes an attribute.
func (e *Element) RemoveAttr(name string) *Element {
	delete(e.attrs, name)
	return e
}

// ID returns the id attribute, or "".
func (e *Element) ID() string { return e.attrs["id"] }

// SetStyle sets an inline style property.
func (e *Element) SetStyle(name, value string) *Element {
	if e.styles == nil {
		e.styles = map[string]string{}
	}
	e.styles[name] = value
	return e
}

// Style returns an inline style property.
func (e *Element) Style(name string) string { return e.styles[name] }

// SetClass replaces the class list. Empty names are skipped.
func (e *Element) SetClass(names ...string) *Element {
	e.classes = e.classes[:0]
	for _, n := range names {
		e.AddClass(n)
	}
	return e
}

// AddClass appends a class if it is not already present.
func (e *Element) AddClass(name string) *Element {
	if name != "" && !e.HasClass(name) {
		e.classes = append(e.classes, name)
	}
	return e
}

// HasClass reports whether the class list contains name.
func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.classes, name)
}

// Classes returns a copy of the class list.
func (e *Element) Classes() []string { return slices.Clone(e.classes) }

// SetText sets the element's text content.
func (e *Element) SetText(s string) *Element {
	e.text = s
	return e
}

// Text returns the element's text content.
func (e *Element) Text() string { return e.text }

// SetKey records the data key the element was created for.
func (e *Element) SetKey(k string) *Element {
	e.key = k
	return e
}

// Key returns the data key set with SetKey.
func (e *Element) Key() string { return e.key }

// =============================================================================
// Events
// =============================================================================

// On binds h to event, replacing any previous handler. A nil h unbinds.
func (e *Element) On(event string, h Handler) *Element {
	if h == nil {
		delete(e.handlers, event)
		return e
	}
	if e.handlers == nil {
		e.handlers = map[string]Handler{}
	}
	e.handlers[event] = h
	return e
}

// Dispatch runs the handler bound to event, reporting whether one ran.
func (e *Element) Dispatch(event string) bool {
	h, ok := e.handlers[event]
	if !ok {
		return false
	}
	h(Event{Type: event, Target: e})
	return true
}

// Events returns the bound event names in sorted order.
func (e *Element) Events() []string {
	return slices.Sorted(maps.Keys(e.handlers))
}

// =============================================================================
// Queries
// =============================================================================

// Find returns the first descendant (depth-first, excluding e) matching pred.
func (e *Element) Find(pred func(*Element) bool) *Element {
	for _, c := range e.children {
		if pred(c) {
			return c
		}
		if m := c.Find(pred); m != nil {
			return m
		}
	}
	return nil
}

// FindAll returns every descendant matching pred in document order.
func (e *Element) FindAll(pred func(*Element) bool) []*Element {
	var out []*Element
	for _, c := range e.children {
		if pred(c) {
			out = append(out, c)
		}
		out = append(out, c.FindAll(pred)...)
	}
	return out
}

// ByID returns the descendant with the given id attribute.
func (e *Element) ByID(id string) *Element {
	return e.Find(func(x *Element) bool { return x.ID() == id })
}

// WithClass is a predicate for Find and FindAll.
func WithClass(name string) func(*Element) bool {
	return func(x *Element) bool { return x.HasClass(name) }
}

// WithTag is a predicate for Find and FindAll.
func WithTag(tag string) func(*Element) bool {
	return func(x *Element) bool { return x.tag == tag }
}

// ChildrenWithClass returns the direct children carrying class name.
func (e *Element) ChildrenWithClass(name string) []*Element {
	var out []*Element
	for _, c := range e.children {
		if c.HasClass(name) {
			out = append(out, c)
		}
	}
	return out
}

// FormatNum formats v for SVG attributes: rounded to three decimals, no
// trailing zeros, and never "-0".
func FormatNum(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// Translate formats an SVG translate transform.
func Translate(x, y float64) string {
	var b strings.Builder
	b.WriteString("translate(")
	b.WriteString(FormatNum(x))
	b.WriteString(",")
	b.WriteString(FormatNum(y))
	b.WriteString(")")
	return b.String()
}
