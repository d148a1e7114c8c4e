package selection

import (
	"testing"

	"github.com/openpit/blast"
)

func ref(entity, id string) blast.HoleRef {
	return blast.HoleRef{EntityName: entity, ID: id}
}

func TestVertexRequiresBothHalves(t *testing.T) {
	tests := []struct {
		name    string
		entity  string
		pointID string
		want    Kind
	}{
		{"complete pair", "boundary", "p7", KindVertex},
		{"missing entity", "", "p7", KindNone},
		{"missing pointID", "boundary", "", KindNone},
		{"both missing", "", "", KindNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Vertex(tt.entity, tt.pointID)
			if s.Kind() != tt.want {
				t.Fatalf("Kind() = %v, want %v", s.Kind(), tt.want)
			}
			v, ok := s.Vertex()
			if tt.want == KindVertex {
				if !ok || v.EntityName != tt.entity || v.PointID != tt.pointID {
					t.Fatalf("Vertex() = %+v, %v", v, ok)
				}
			} else if ok {
				t.Fatalf("incomplete pair yielded a vertex: %+v", v)
			}
		})
	}
}

func TestIncompleteVertexDrawsNoHighlight(t *testing.T) {
	b := NewBridge()

	highlighted := 0
	b.Subscribe(func(s State) {
		if _, ok := s.Vertex(); ok {
			highlighted++
		}
	})

	b.Set(Vertex("boundary", ""))
	b.Set(Vertex("", "p3"))
	if highlighted != 0 {
		t.Fatalf("highlighted %d times from incomplete pairs", highlighted)
	}
	if !b.Get().IsEmpty() {
		t.Fatalf("selection not empty: %v", b.Get().Kind())
	}

	b.Set(Vertex("boundary", "p3"))
	if highlighted != 1 {
		t.Fatalf("complete pair highlighted %d times, want 1", highlighted)
	}
}

func TestEmptyConstructors(t *testing.T) {
	if !Holes().IsEmpty() {
		t.Error("Holes() not empty")
	}
	if !Entities().IsEmpty() {
		t.Error("Entities() not empty")
	}
	if !Multiple(nil, nil).IsEmpty() {
		t.Error("Multiple(nil, nil) not empty")
	}
}

func TestBridgeFanOut(t *testing.T) {
	b := NewBridge()

	var got []State
	id := b.Subscribe(func(s State) { got = append(got, s) })
	other := 0
	b.Subscribe(func(State) { other++ })

	b.Set(Holes(ref("A", "1")))
	b.Set(Entities("boundary"))
	if len(got) != 2 || other != 2 {
		t.Fatalf("listener calls = %d, %d, want 2, 2", len(got), other)
	}
	if got[0].Kind() != KindHole || got[1].Kind() != KindEntity {
		t.Fatalf("kinds = %v, %v", got[0].Kind(), got[1].Kind())
	}

	b.Unsubscribe(id)
	b.Clear()
	if len(got) != 2 {
		t.Fatalf("unsubscribed listener still called: %d", len(got))
	}
	if other != 3 {
		t.Fatalf("remaining listener calls = %d, want 3", other)
	}
}

func TestClearOnEmptyIsNoOp(t *testing.T) {
	b := NewBridge()
	calls := 0
	b.Subscribe(func(State) { calls++ })
	b.Clear()
	b.Set(None())
	if calls != 0 {
		t.Fatalf("empty-over-empty notified %d times", calls)
	}
}

func TestPruneHole(t *testing.T) {
	b := NewBridge()
	b.Set(Holes(ref("A", "1"), ref("A", "2")))

	b.PruneHole(ref("A", "9")) // not selected
	if len(b.Get().Holes()) != 2 {
		t.Fatalf("prune of unselected hole changed state")
	}

	b.PruneHole(ref("A", "1"))
	if got := b.Get().Holes(); len(got) != 1 || got[0] != ref("A", "2") {
		t.Fatalf("Holes() = %v", got)
	}

	b.PruneHole(ref("A", "2"))
	if !b.Get().IsEmpty() {
		t.Fatalf("last prune did not empty selection: %v", b.Get().Kind())
	}
}

func TestPruneEntity(t *testing.T) {
	b := NewBridge()
	b.Set(Entities("boundary", "crest"))
	b.PruneEntity("boundary")
	if got := b.Get().Entities(); len(got) != 1 || got[0] != "crest" {
		t.Fatalf("Entities() = %v", got)
	}
}

func TestPruneEntityClearsVertexSelection(t *testing.T) {
	b := NewBridge()
	b.Set(Vertex("boundary", "p3"))
	b.PruneEntity("boundary")
	if !b.Get().IsEmpty() {
		t.Fatalf("vertex selection survived owner deletion: %v", b.Get().Kind())
	}
}

func TestMultipleContains(t *testing.T) {
	s := Multiple([]blast.HoleRef{ref("A", "1")}, []string{"boundary"})
	if s.Kind() != KindMultiple {
		t.Fatalf("Kind() = %v", s.Kind())
	}
	if !s.ContainsHole(ref("A", "1")) || s.ContainsHole(ref("A", "2")) {
		t.Error("ContainsHole wrong")
	}
	if !s.ContainsEntity("boundary") || s.ContainsEntity("crest") {
		t.Error("ContainsEntity wrong")
	}
}
