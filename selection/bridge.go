package selection

import (
	"log/slog"

	"github.com/openpit/blast"
)

// Listener receives the new selection whenever it changes.
type Listener func(State)

// Bridge owns the selection and fans changes out to subscribers.
// Renderers and the tree view both subscribe here, so a pick in one
// view is reflected in the other without either knowing the other
// exists. All methods are main-thread only, like the rest of the
// scene state.
type Bridge struct {
	state     State
	listeners map[int]Listener
	nextID    int
}

// NewBridge returns a bridge with the empty selection.
func NewBridge() *Bridge {
	return &Bridge{listeners: make(map[int]Listener)}
}

// Get returns the current selection.
func (b *Bridge) Get() State { return b.state }

// Set replaces the selection and notifies every subscriber.
// Setting an identical empty selection over an empty one is a no-op.
func (b *Bridge) Set(s State) {
	if s.IsEmpty() && b.state.IsEmpty() {
		return
	}
	b.state = s
	blast.Logger().Debug("selection changed", slog.String("kind", s.Kind().String()))
	for _, fn := range b.listeners {
		fn(s)
	}
}

// Clear empties the selection.
func (b *Bridge) Clear() { b.Set(None()) }

// Subscribe registers a listener and returns a handle for Unsubscribe.
func (b *Bridge) Subscribe(fn Listener) int {
	id := b.nextID
	b.nextID++
	b.listeners[id] = fn
	return id
}

// Unsubscribe removes a previously registered listener.
func (b *Bridge) Unsubscribe(id int) {
	delete(b.listeners, id)
}

// PruneHole drops the given hole from the selection after it is
// deleted. A hole-only selection that empties out becomes None.
func (b *Bridge) PruneHole(ref blast.HoleRef) {
	if !b.state.ContainsHole(ref) {
		return
	}
	kept := make([]blast.HoleRef, 0, len(b.state.holes))
	for _, r := range b.state.holes {
		if r != ref {
			kept = append(kept, r)
		}
	}
	b.Set(rebuild(b.state.kind, kept, b.state.entities))
}

// PruneEntity drops the named KAD entity from the selection after it
// is deleted, including a vertex selection on it.
func (b *Bridge) PruneEntity(name string) {
	if !b.state.ContainsEntity(name) {
		return
	}
	if b.state.kind == KindVertex {
		b.Clear()
		return
	}
	kept := make([]string, 0, len(b.state.entities))
	for _, n := range b.state.entities {
		if n != name {
			kept = append(kept, n)
		}
	}
	b.Set(rebuild(b.state.kind, b.state.holes, kept))
}

func rebuild(kind Kind, holes []blast.HoleRef, entities []string) State {
	switch kind {
	case KindHole:
		return Holes(holes...)
	case KindEntity:
		return Entities(entities...)
	case KindMultiple:
		return Multiple(holes, entities)
	}
	return None()
}
