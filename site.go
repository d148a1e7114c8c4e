package blast

import (
	"fmt"
	"log/slog"
)

// Site is the working set of a design session: every hole and KAD
// entity currently loaded, in stable insertion order. All mutation is
// single-threaded (the UI/render thread); Site does no locking.
//
// Mutations that change geometry or structure fire the registered
// mutation hooks, which is where the persistence layer's debounced
// save trigger attaches.
type Site struct {
	holes     map[string]*Hole
	holeOrder []string

	kad      map[string]*KADEntity
	kadOrder []string

	onMutate []func()
}

// NewSite creates an empty working set.
func NewSite() *Site {
	return &Site{
		holes: make(map[string]*Hole),
		kad:   make(map[string]*KADEntity),
	}
}

// OnMutate registers a hook fired after every committed mutation.
func (s *Site) OnMutate(fn func()) {
	s.onMutate = append(s.onMutate, fn)
}

func (s *Site) mutated() {
	for _, fn := range s.onMutate {
		fn()
	}
}

// HoleParams are the drilling parameters for a new hole. Angle,
// Bearing, Subdrill and Diameter may be zero; BenchHeight must be
// positive. FromHoleID may be empty, in which case the hole times
// from itself.
type HoleParams struct {
	ID          string
	Collar      Vec3
	BenchHeight float64
	Subdrill    float64
	Angle       float64
	Bearing     float64
	Diameter    float64
	FromHoleID  string
}

// AddHole creates a hole in the named pattern, derives its full
// geometry from the parameters, and adds it to the working set.
// The returned hole is a snapshot; edit it through Recompute and
// Commit, never in place.
func (s *Site) AddHole(pattern string, p HoleParams) (*Hole, error) {
	if p.BenchHeight <= 0 {
		return nil, fmt.Errorf("add hole %s:%s: bench height %v: %w",
			pattern, p.ID, p.BenchHeight, ErrInvariant)
	}
	h := &Hole{
		EntityName:  pattern,
		ID:          p.ID,
		Collar:      p.Collar,
		Angle:       p.Angle,
		Bearing:     p.Bearing,
		BenchHeight: p.BenchHeight,
		Subdrill:    p.Subdrill,
		Diameter:    p.Diameter,
		FromHoleID:  p.FromHoleID,
	}
	if h.FromHoleID == "" {
		h.FromHoleID = h.Key()
	}
	if err := h.rederiveLength(); err != nil {
		return nil, fmt.Errorf("add hole %s: %w", h.Key(), err)
	}
	key := h.Key()
	if _, exists := s.holes[key]; exists {
		return nil, fmt.Errorf("add hole %s: %w", key, ErrDuplicateHole)
	}
	s.holes[key] = h
	s.holeOrder = append(s.holeOrder, key)
	s.mutated()
	snap := *h
	return &snap, nil
}

// PatternParams describe a rows-by-columns staggered grid of holes.
// Spacing is the distance between holes along a row, Burden the
// distance between rows. Rows advance along Bearing; holes along a row
// advance perpendicular to it.
type PatternParams struct {
	Name        string
	Origin      Vec3
	Rows        int
	HolesPerRow int
	Burden      float64
	Spacing     float64
	Stagger     bool

	BenchHeight float64
	Subdrill    float64
	Angle       float64
	Bearing     float64
	Diameter    float64
}

// AddPattern lays out a full grid of holes. Hole IDs are sequential
// from 1; each hole times from the previous hole in the row, and each
// row's first hole times from the first hole of the previous row.
func (s *Site) AddPattern(p PatternParams) ([]Hole, error) {
	if p.Rows <= 0 || p.HolesPerRow <= 0 {
		return nil, fmt.Errorf("add pattern %s: %dx%d grid: %w",
			p.Name, p.Rows, p.HolesPerRow, ErrInvariant)
	}
	rowDir := HoleDirection(90, p.Bearing)    // across the bench
	colDir := HoleDirection(90, p.Bearing+90) // along a row
	holes := make([]Hole, 0, p.Rows*p.HolesPerRow)

	n := 1
	var prevRowFirst string
	for r := 0; r < p.Rows; r++ {
		rowOrigin := p.Origin.Add(rowDir.Mul(float64(r) * p.Burden))
		if p.Stagger && r%2 == 1 {
			rowOrigin = rowOrigin.Add(colDir.Mul(p.Spacing / 2))
		}
		var prevInRow string
		for c := 0; c < p.HolesPerRow; c++ {
			from := prevInRow
			if c == 0 {
				from = prevRowFirst
			}
			h, err := s.AddHole(p.Name, HoleParams{
				ID:          fmt.Sprintf("%d", n),
				Collar:      rowOrigin.Add(colDir.Mul(float64(c) * p.Spacing)),
				BenchHeight: p.BenchHeight,
				Subdrill:    p.Subdrill,
				Angle:       p.Angle,
				Bearing:     p.Bearing,
				Diameter:    p.Diameter,
				FromHoleID:  from,
			})
			if err != nil {
				return holes, err
			}
			if c == 0 {
				prevRowFirst = h.Key()
			}
			prevInRow = h.Key()
			holes = append(holes, *h)
			n++
		}
	}
	Logger().Debug("pattern added",
		slog.String("name", p.Name), slog.Int("holes", len(holes)))
	return holes, nil
}

// Hole returns a snapshot of the hole with the given identity.
func (s *Site) Hole(entityName, id string) (Hole, bool) {
	h, ok := s.holes[HoleRef{entityName, id}.Key()]
	if !ok {
		return Hole{}, false
	}
	return *h, true
}

// Holes returns snapshots of every hole in insertion order.
func (s *Site) Holes() []Hole {
	out := make([]Hole, 0, len(s.holeOrder))
	for _, key := range s.holeOrder {
		out = append(out, *s.holes[key])
	}
	return out
}

// NumHoles returns the number of holes in the working set.
func (s *Site) NumHoles() int { return len(s.holes) }

// Commit installs an edited hole snapshot, typically the result of
// Recompute. The hole's identity must already exist in the working
// set; Commit never creates holes.
func (s *Site) Commit(h Hole) error {
	key := h.Key()
	if _, ok := s.holes[key]; !ok {
		return fmt.Errorf("commit %s: %w", key, ErrHoleNotFound)
	}
	stored := h
	s.holes[key] = &stored
	s.mutated()
	return nil
}

// DeleteHole removes a hole and repoints every hole that timed from it
// to time from itself. A dangling or nulled reference would break
// timing-chain traversal, so the repoint happens in the same mutation.
func (s *Site) DeleteHole(entityName, id string) error {
	key := HoleRef{entityName, id}.Key()
	if _, ok := s.holes[key]; !ok {
		return fmt.Errorf("delete %s: %w", key, ErrHoleNotFound)
	}
	delete(s.holes, key)
	for i, k := range s.holeOrder {
		if k == key {
			s.holeOrder = append(s.holeOrder[:i], s.holeOrder[i+1:]...)
			break
		}
	}
	repointed := 0
	for _, h := range s.holes {
		if h.FromHoleID == key {
			h.FromHoleID = h.Key()
			repointed++
		}
	}
	if repointed > 0 {
		Logger().Debug("timing references repointed",
			slog.String("deleted", key), slog.Int("count", repointed))
	}
	s.mutated()
	return nil
}

// Centroid returns the mean collar position of the working set, or the
// zero vector for an empty set. The frame package watches it for
// drift.
func (s *Site) Centroid() Vec3 {
	if len(s.holeOrder) == 0 {
		return Vec3{}
	}
	var sum Vec3
	for _, key := range s.holeOrder {
		sum = sum.Add(s.holes[key].Collar)
	}
	return sum.Mul(1 / float64(len(s.holeOrder)))
}

// AddKAD adds an annotation entity to the drawing map.
func (s *Site) AddKAD(e KADEntity) error {
	if _, exists := s.kad[e.Name]; exists {
		return fmt.Errorf("add KAD %q: %w", e.Name, ErrDuplicateEntity)
	}
	stored := e
	s.kad[e.Name] = &stored
	s.kadOrder = append(s.kadOrder, e.Name)
	s.mutated()
	return nil
}

// KAD returns a snapshot of the named annotation entity.
func (s *Site) KAD(name string) (KADEntity, bool) {
	e, ok := s.kad[name]
	if !ok {
		return KADEntity{}, false
	}
	return *e, true
}

// KADEntities returns snapshots of every annotation entity in
// insertion order.
func (s *Site) KADEntities() []KADEntity {
	out := make([]KADEntity, 0, len(s.kadOrder))
	for _, name := range s.kadOrder {
		out = append(out, *s.kad[name])
	}
	return out
}

// DeleteKAD removes an annotation entity from the drawing map.
func (s *Site) DeleteKAD(name string) error {
	if _, ok := s.kad[name]; !ok {
		return fmt.Errorf("delete KAD %q: %w", name, ErrEntityNotFound)
	}
	delete(s.kad, name)
	for i, n := range s.kadOrder {
		if n == name {
			s.kadOrder = append(s.kadOrder[:i], s.kadOrder[i+1:]...)
			break
		}
	}
	s.mutated()
	return nil
}
