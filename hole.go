package blast

import "strings"

// keySep separates the entity name from the hole ID in a combined key.
// Hole IDs are free-form strings, so the separator has to be something
// no sane pattern name contains.
const keySep = ":::"

// HoleRef identifies a hole within the working set. Two different
// patterns may reuse the same hole ID, so the (EntityName, ID) pair is
// the unique key, never the ID alone.
type HoleRef struct {
	EntityName string
	ID         string
}

// Key returns the combined identity "entityName:::holeID".
func (r HoleRef) Key() string {
	return r.EntityName + keySep + r.ID
}

// ParseHoleKey splits a combined identity back into a HoleRef.
// ok is false if the key does not contain the separator.
func ParseHoleKey(key string) (ref HoleRef, ok bool) {
	i := strings.Index(key, keySep)
	if i < 0 {
		return HoleRef{}, false
	}
	return HoleRef{EntityName: key[:i], ID: key[i+len(keySep):]}, true
}

// Hole is a single blast hole. Collar, Grade and Toe are world
// positions; the remaining attributes are the drilling parameters they
// are derived from. All mutation goes through Recompute so the
// geometry invariant (grade and toe on the (Angle, Bearing) ray from
// the collar) is never broken by a partial update.
type Hole struct {
	EntityName string
	ID         string

	Collar Vec3
	Grade  Vec3
	Toe    Vec3

	// Angle is degrees from vertical; Bearing is degrees clockwise
	// from grid north.
	Angle   float64
	Bearing float64

	// Length is the collar-to-toe distance along the hole vector.
	// BenchHeight and Subdrill are both measured vertically;
	// Length = (BenchHeight + Subdrill) / cos(Angle).
	Length      float64
	BenchHeight float64
	Subdrill    float64

	Diameter float64

	// FromHoleID is the combined key of the hole this one times from.
	// An orphaned hole references itself; the field is never empty and
	// never left pointing at a deleted hole.
	FromHoleID string
}

// Ref returns the hole's identity pair.
func (h *Hole) Ref() HoleRef {
	return HoleRef{EntityName: h.EntityName, ID: h.ID}
}

// Key returns the combined identity "entityName:::holeID".
func (h *Hole) Key() string {
	return h.Ref().Key()
}

// IsOrphan reports whether the hole times from itself.
func (h *Hole) IsOrphan() bool {
	return h.FromHoleID == h.Key()
}

// DeriveGeometry positions Grade and Toe on the (Angle, Bearing) ray
// from Collar, at benchHeight/cos(angle) and Length respectively.
// It is the single place geometry is projected; every edit mode and
// every loader funnels through here so XY and Z can never go out of
// step.
func (h *Hole) DeriveGeometry() {
	dir := HoleDirection(h.Angle, h.Bearing)
	cosA := SafeCos(h.Angle)
	gradeDist := h.BenchHeight / cosA
	h.Grade = h.Collar.Add(dir.Mul(gradeDist))
	h.Toe = h.Collar.Add(dir.Mul(h.Length))
}
