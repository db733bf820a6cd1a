// Package scene is a small retained scene graph that serializes to SVG.
//
// An [Element] tree stands in for the document a browser chart would mutate:
// renderers append, update and remove elements, bind event handlers, and
// request attribute transitions. The tree is owned by a single renderer and
// is not safe for concurrent use.
//
// # Transitions
//
// [Element.StartTransition] returns a [Transition] that records tweens from
// the current attribute values to new ones. The new values are applied to
// the tree immediately, so the tree always holds the final state; the tweens
// are a schedule a host may sample with [Tween.At]. Starting a transition
// with the same name on the same element interrupts the previous one (last
// write wins, nothing is queued).
//
// # Events
//
// [Element.On] binds a handler and [Element.Dispatch] fires it synchronously
// on the calling goroutine, the way a host environment would deliver a
// pointer event.
package scene
