package blast

import (
	"errors"
	"math"
	"testing"
)

func addTestHole(t *testing.T, s *Site, pattern, id, from string) *Hole {
	t.Helper()
	h, err := s.AddHole(pattern, HoleParams{
		ID:          id,
		Collar:      V3(476900, 6764200, 276),
		BenchHeight: 10,
		Subdrill:    1.2,
		FromHoleID:  from,
	})
	if err != nil {
		t.Fatalf("AddHole(%s, %s): %v", pattern, id, err)
	}
	return h
}

func TestSite_AddHole(t *testing.T) {
	s := NewSite()
	h := addTestHole(t, s, "A", "101", "")

	if h.Key() != "A:::101" {
		t.Errorf("key = %q, want A:::101", h.Key())
	}
	if !h.IsOrphan() {
		t.Error("hole with no timing source should reference itself")
	}
	if math.Abs(h.Length-11.2) > 1e-9 {
		t.Errorf("length = %v, want 11.2", h.Length)
	}
	if _, err := s.AddHole("A", HoleParams{ID: "101", BenchHeight: 10}); !errors.Is(err, ErrDuplicateHole) {
		t.Errorf("duplicate add err = %v, want ErrDuplicateHole", err)
	}
}

func TestSite_AddHoleRejectsBadBench(t *testing.T) {
	s := NewSite()
	if _, err := s.AddHole("A", HoleParams{ID: "1", BenchHeight: 0}); !errors.Is(err, ErrInvariant) {
		t.Errorf("err = %v, want ErrInvariant", err)
	}
}

func TestSite_SameHoleIDInTwoPatterns(t *testing.T) {
	// (entityName, holeID) is the unique key; two patterns may reuse
	// the same hole ID.
	s := NewSite()
	addTestHole(t, s, "A", "9999", "")
	addTestHole(t, s, "B", "9999", "")

	if s.NumHoles() != 2 {
		t.Fatalf("NumHoles = %d, want 2", s.NumHoles())
	}
	if _, ok := s.Hole("A", "9999"); !ok {
		t.Error("hole (A, 9999) missing")
	}
	if _, ok := s.Hole("B", "9999"); !ok {
		t.Error("hole (B, 9999) missing")
	}
}

func TestSite_DeleteHoleRepointsTimingReferences(t *testing.T) {
	s := NewSite()
	addTestHole(t, s, "A", "9999", "")
	addTestHole(t, s, "B", "9999", "")
	timed := addTestHole(t, s, "A", "1", "A:::9999")
	unrelated := addTestHole(t, s, "B", "2", "B:::9999")

	if err := s.DeleteHole("A", "9999"); err != nil {
		t.Fatalf("DeleteHole: %v", err)
	}

	// (B, 9999) shares the hole ID but not the identity; untouched.
	b, ok := s.Hole("B", "9999")
	if !ok {
		t.Fatal("hole (B, 9999) was deleted alongside (A, 9999)")
	}
	if b.EntityName != "B" || b.ID != "9999" {
		t.Errorf("identity of (B, 9999) changed: %+v", b)
	}

	// The hole that timed from the deleted one is repointed to itself.
	got, _ := s.Hole(timed.EntityName, timed.ID)
	if got.FromHoleID != got.Key() {
		t.Errorf("FromHoleID = %q, want self-reference %q", got.FromHoleID, got.Key())
	}

	// A hole timing from (B, 9999) keeps its reference.
	got, _ = s.Hole(unrelated.EntityName, unrelated.ID)
	if got.FromHoleID != "B:::9999" {
		t.Errorf("FromHoleID = %q, want untouched B:::9999", got.FromHoleID)
	}
}

func TestSite_DeleteMissingHole(t *testing.T) {
	s := NewSite()
	if err := s.DeleteHole("A", "1"); !errors.Is(err, ErrHoleNotFound) {
		t.Errorf("err = %v, want ErrHoleNotFound", err)
	}
}

func TestSite_CommitRequiresExistingHole(t *testing.T) {
	s := NewSite()
	h := addTestHole(t, s, "A", "1", "")

	edited, err := Recompute(*h, EditSubdrill, 2)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if err := s.Commit(edited); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	got, _ := s.Hole("A", "1")
	if math.Abs(got.Subdrill-2) > 1e-12 {
		t.Errorf("committed subdrill = %v, want 2", got.Subdrill)
	}

	ghost := edited
	ghost.ID = "404"
	if err := s.Commit(ghost); !errors.Is(err, ErrHoleNotFound) {
		t.Errorf("commit of unknown hole err = %v, want ErrHoleNotFound", err)
	}
}

func TestSite_MutationHooksFire(t *testing.T) {
	s := NewSite()
	fired := 0
	s.OnMutate(func() { fired++ })

	h := addTestHole(t, s, "A", "1", "")
	if fired != 1 {
		t.Errorf("after add: %d hook calls, want 1", fired)
	}
	edited, _ := Recompute(*h, EditDiameter, 0.2)
	if err := s.Commit(edited); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if fired != 2 {
		t.Errorf("after commit: %d hook calls, want 2", fired)
	}
	if err := s.DeleteHole("A", "1"); err != nil {
		t.Fatalf("DeleteHole: %v", err)
	}
	if fired != 3 {
		t.Errorf("after delete: %d hook calls, want 3", fired)
	}
}

func TestSite_AddPattern(t *testing.T) {
	s := NewSite()
	holes, err := s.AddPattern(PatternParams{
		Name:        "P1",
		Origin:      V3(476900, 6764200, 276),
		Rows:        3,
		HolesPerRow: 4,
		Burden:      3.5,
		Spacing:     4,
		BenchHeight: 10,
		Subdrill:    1.2,
		Bearing:     0,
		Diameter:    0.115,
	})
	if err != nil {
		t.Fatalf("AddPattern: %v", err)
	}
	if len(holes) != 12 {
		t.Fatalf("got %d holes, want 12", len(holes))
	}
	if s.NumHoles() != 12 {
		t.Fatalf("site has %d holes, want 12", s.NumHoles())
	}

	// Bearing 0: rows advance north, holes advance east.
	if d := holes[1].Collar.X - holes[0].Collar.X; math.Abs(d-4) > 1e-9 {
		t.Errorf("spacing delta = %v, want 4", d)
	}
	if d := holes[4].Collar.Y - holes[0].Collar.Y; math.Abs(d-3.5) > 1e-9 {
		t.Errorf("burden delta = %v, want 3.5", d)
	}

	// First hole initiates; the rest chain back to it.
	if !holes[0].IsOrphan() {
		t.Error("first hole should time from itself")
	}
	if holes[1].FromHoleID != holes[0].Key() {
		t.Errorf("second hole times from %q, want %q", holes[1].FromHoleID, holes[0].Key())
	}
}

func TestSite_Centroid(t *testing.T) {
	s := NewSite()
	if c := s.Centroid(); c != (Vec3{}) {
		t.Errorf("empty centroid = %v, want zero", c)
	}
	for i, x := range []float64{476900, 476910, 476920} {
		if _, err := s.AddHole("A", HoleParams{
			ID: string(rune('a' + i)), Collar: V3(x, 6764200, 276), BenchHeight: 10,
		}); err != nil {
			t.Fatalf("AddHole: %v", err)
		}
	}
	c := s.Centroid()
	if math.Abs(c.X-476910) > 1e-9 || math.Abs(c.Y-6764200) > 1e-9 {
		t.Errorf("centroid = %v, want (476910, 6764200, 276)", c)
	}
}

func TestSite_KADEntities(t *testing.T) {
	s := NewSite()
	e := KADEntity{
		Name: "crest-1",
		Kind: KADLine,
		Vertices: []KADVertex{
			{PointID: "1", Pos: V3(476900, 6764200, 276)},
			{PointID: "2", Pos: V3(476950, 6764230, 276)},
		},
		ColorName: "red",
		LineWidth: 2,
	}
	if err := s.AddKAD(e); err != nil {
		t.Fatalf("AddKAD: %v", err)
	}
	if err := s.AddKAD(e); !errors.Is(err, ErrDuplicateEntity) {
		t.Errorf("duplicate err = %v, want ErrDuplicateEntity", err)
	}
	got, ok := s.KAD("crest-1")
	if !ok {
		t.Fatal("KAD lookup failed")
	}
	if v, ok := got.Vertex("2"); !ok || v.Pos.X != 476950 {
		t.Errorf("vertex 2 = %+v, ok=%v", v, ok)
	}
	if _, ok := got.Vertex("404"); ok {
		t.Error("lookup of missing pointID succeeded")
	}
	if err := s.DeleteKAD("crest-1"); err != nil {
		t.Fatalf("DeleteKAD: %v", err)
	}
	if err := s.DeleteKAD("crest-1"); !errors.Is(err, ErrEntityNotFound) {
		t.Errorf("second delete err = %v, want ErrEntityNotFound", err)
	}
}

func TestChainDepth(t *testing.T) {
	s := NewSite()
	addTestHole(t, s, "A", "1", "")
	addTestHole(t, s, "A", "2", "A:::1")
	addTestHole(t, s, "A", "3", "A:::2")

	tests := []struct {
		id   string
		want int
	}{
		{"1", 0},
		{"2", 1},
		{"3", 2},
	}
	for _, tt := range tests {
		got, err := s.ChainDepth("A", tt.id)
		if err != nil {
			t.Fatalf("ChainDepth(A, %s): %v", tt.id, err)
		}
		if got != tt.want {
			t.Errorf("ChainDepth(A, %s) = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestChainDepth_Cycle(t *testing.T) {
	s := NewSite()
	a := addTestHole(t, s, "A", "1", "A:::2")
	addTestHole(t, s, "A", "2", "A:::1")

	if _, err := s.ChainDepth(a.EntityName, a.ID); !errors.Is(err, ErrTimingCycle) {
		t.Errorf("err = %v, want ErrTimingCycle", err)
	}
}

func TestFirstMovementOrder(t *testing.T) {
	s := NewSite()
	addTestHole(t, s, "A", "late", "A:::mid")
	addTestHole(t, s, "A", "mid", "A:::init")
	addTestHole(t, s, "A", "init", "")

	order, err := s.FirstMovementOrder()
	if err != nil {
		t.Fatalf("FirstMovementOrder: %v", err)
	}
	want := []string{"init", "mid", "late"}
	for i, ref := range order {
		if ref.ID != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, ref.ID, want[i])
		}
	}
}
