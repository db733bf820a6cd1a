package timeline

import "github.com/matzehuels/casegraph/pkg/scene"

// reconcile syncs the children of parent selected by match to items.
// Children are matched by key: items with a new key get an element from
// enter, every desired element is passed to update with its item bound as
// Datum, and matched children whose key is no longer desired go to exit, or
// are removed when exit is nil. It returns the number of elements created
// and removed.
func reconcile[T any](
	parent *scene.Element,
	match func(*scene.Element) bool,
	items []T,
	key func(T) string,
	enter func(T) *scene.Element,
	update func(*scene.Element, T),
	exit func(*scene.Element),
) (entered, exited int) {
	current := make(map[string]*scene.Element)
	for _, el := range parent.Children() {
		if match(el) {
			current[el.Key()] = el
		}
	}

	desired := make(map[string]struct{}, len(items))
	for _, item := range items {
		k := key(item)
		desired[k] = struct{}{}
		el, ok := current[k]
		if !ok {
			el = enter(item).SetKey(k)
			current[k] = el
			entered++
		}
		el.Datum = item
		update(el, item)
	}

	for k, el := range current {
		if _, keep := desired[k]; keep {
			continue
		}
		if exit != nil {
			exit(el)
		} else {
			el.Remove()
		}
		exited++
	}
	return entered, exited
}
