// Package selection holds the canonical selection model and broadcasts
// it to both renderers and the tree view.
//
// Selection state is a closed tagged-variant set. Selecting a KAD
// vertex requires both the owning entity name and the vertex pointID
// in one variant; the historical defect where one half of that pair
// was silently null is structurally unrepresentable here, and an
// attempt to build the variant with a missing half produces an empty
// selection instead of a partial one.
package selection

import (
	"log/slog"

	"github.com/openpit/blast"
)

// Kind is the closed set of selection variants.
type Kind int

const (
	// KindNone is the empty selection.
	KindNone Kind = iota
	// KindHole selects one or more holes.
	KindHole
	// KindEntity selects whole KAD entities.
	KindEntity
	// KindVertex selects a single KAD vertex (entity + pointID pair).
	KindVertex
	// KindMultiple mixes holes and entities (marquee selection).
	KindMultiple
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindHole:
		return "hole"
	case KindEntity:
		return "kadEntity"
	case KindVertex:
		return "kadVertex"
	case KindMultiple:
		return "multiple"
	}
	return "unknown"
}

// VertexRef carries both halves of a vertex selection. Constructed
// only through the State constructors, which refuse incomplete pairs.
type VertexRef struct {
	EntityName string
	PointID    string
}

// State is an immutable selection snapshot.
type State struct {
	kind     Kind
	holes    []blast.HoleRef
	entities []string
	vertex   VertexRef
}

// None is the empty selection.
func None() State { return State{kind: KindNone} }

// Holes selects the given holes. An empty list is the empty selection.
func Holes(refs ...blast.HoleRef) State {
	if len(refs) == 0 {
		return None()
	}
	return State{kind: KindHole, holes: refs}
}

// Entities selects whole KAD entities by name.
func Entities(names ...string) State {
	if len(names) == 0 {
		return None()
	}
	return State{kind: KindEntity, entities: names}
}

// Vertex selects a single KAD vertex. Both halves of the pair are
// required; if either is missing the result is the empty selection,
// so no highlight is ever drawn from half a reference.
func Vertex(entityName, pointID string) State {
	if entityName == "" || pointID == "" {
		blast.Logger().Debug("vertex selection dropped: incomplete pair",
			slog.String("entity", entityName),
			slog.String("pointID", pointID))
		return None()
	}
	return State{kind: KindVertex, vertex: VertexRef{EntityName: entityName, PointID: pointID}}
}

// Multiple selects a mix of holes and entities.
func Multiple(holes []blast.HoleRef, entities []string) State {
	if len(holes) == 0 && len(entities) == 0 {
		return None()
	}
	return State{kind: KindMultiple, holes: holes, entities: entities}
}

// Kind returns the selection variant.
func (s State) Kind() Kind { return s.kind }

// IsEmpty reports whether nothing is selected.
func (s State) IsEmpty() bool { return s.kind == KindNone }

// Holes returns the selected hole references, if any.
func (s State) Holes() []blast.HoleRef { return s.holes }

// Entities returns the selected entity names, if any.
func (s State) Entities() []string { return s.entities }

// Vertex returns the selected vertex pair. ok is false unless the
// state is a vertex selection, in which case both halves are present
// by construction.
func (s State) Vertex() (VertexRef, bool) {
	if s.kind != KindVertex {
		return VertexRef{}, false
	}
	return s.vertex, true
}

// ContainsHole reports whether the given hole is in the selection.
func (s State) ContainsHole(ref blast.HoleRef) bool {
	for _, r := range s.holes {
		if r == ref {
			return true
		}
	}
	return false
}

// ContainsEntity reports whether the named KAD entity is selected,
// including via a vertex selection on it.
func (s State) ContainsEntity(name string) bool {
	if s.kind == KindVertex {
		return s.vertex.EntityName == name
	}
	for _, n := range s.entities {
		if n == name {
			return true
		}
	}
	return false
}
