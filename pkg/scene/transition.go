package scene

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Transition is a cancellable attribute animation request.
type Transition struct {
	name        string
	duration    time.Duration
	tweens      []Tween
	interrupted bool
}

// Tween interpolates one attribute of one element.
type Tween struct {
	Target  *Element
	Attr    string
	From    string
	To      string
	Exiting bool // target was removed from the tree when the tween was recorded
}

// StartTransition begins a named transition owned by e, interrupting any
// active transition of the same name.
func (e *Element) StartTransition(name string, d time.Duration) *Transition {
	if e.transitions == nil {
		e.transitions = map[string]*Transition{}
	}
	if prev := e.transitions[name]; prev != nil {
		prev.interrupted = true
	}
	t := &Transition{name: name, duration: d}
	e.transitions[name] = t
	return t
}

// Transition returns the most recent transition started under name, or nil.
func (e *Element) Transition(name string) *Transition {
	return e.transitions[name]
}

// Name returns the transition name.
func (t *Transition) Name() string { return t.name }

// Duration returns the requested duration.
func (t *Transition) Duration() time.Duration { return t.duration }

// Interrupted reports whether a newer transition or a removal cancelled t.
func (t *Transition) Interrupted() bool { return t.interrupted }

// Tweens returns the recorded tweens.
func (t *Transition) Tweens() []Tween { return t.tweens }

// Attr records a tween of target's attribute toward to and applies to.
func (t *Transition) Attr(target *Element, name, to string) *Transition {
	from, _ := target.Attr(name)
	t.tweens = append(t.tweens, Tween{Target: target, Attr: name, From: from, To: to})
	target.SetAttr(name, to)
	return t
}

// AttrFrom is Attr with an explicit start value, used for entering elements
// that should animate from a position they never held.
func (t *Transition) AttrFrom(target *Element, name, from, to string) *Transition {
	t.tweens = append(t.tweens, Tween{Target: target, Attr: name, From: from, To: to})
	target.SetAttr(name, to)
	return t
}

// Exit records a final tween for target and removes it from the tree.
func (t *Transition) Exit(target *Element, name, to string) *Transition {
	from, _ := target.Attr(name)
	t.tweens = append(t.tweens, Tween{Target: target, Attr: name, From: from, To: to, Exiting: true})
	target.Remove()
	return t
}

// At returns the attribute value at progress p in [0, 1].
func (tw Tween) At(p float64) string {
	return Interpolate(tw.From, tw.To, p)
}

var numberRe = regexp.MustCompile(`[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`)

// Interpolate blends the numbers embedded in two attribute strings, keeping
// the structure of to. Numbers without a counterpart in from snap to their
// final value.
func Interpolate(from, to string, p float64) string {
	if p <= 0 && from != "" {
		return from
	}
	if p >= 1 || from == "" {
		return to
	}
	fromNums := numberRe.FindAllString(from, -1)
	locs := numberRe.FindAllStringIndex(to, -1)
	if len(locs) == 0 {
		return to
	}

	var b strings.Builder
	last := 0
	for i, loc := range locs {
		b.WriteString(to[last:loc[0]])
		end, _ := strconv.ParseFloat(to[loc[0]:loc[1]], 64)
		v := end
		if i < len(fromNums) {
			if start, err := strconv.ParseFloat(fromNums[i], 64); err == nil {
				v = start + (end-start)*p
			}
		}
		b.WriteString(FormatNum(v))
		last = loc[1]
	}
	b.WriteString(to[last:])
	return b.String()
}
