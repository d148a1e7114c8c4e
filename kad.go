package blast

// KADKind is the closed set of KAD annotation entity kinds. Consumers
// (geometry builder, selection highlighter) switch exhaustively over
// it, so adding or removing a kind is a compile-visible change at
// every consumer.
type KADKind int

const (
	// KADPoint is a single marker vertex.
	KADPoint KADKind = iota
	// KADLine is an open polyline.
	KADLine
	// KADPolygon is a closed polyline.
	KADPolygon
	// KADCircle is a center vertex plus radius.
	KADCircle
	// KADText is an anchor vertex plus a text string.
	KADText
)

// String returns the kind name.
func (k KADKind) String() string {
	switch k {
	case KADPoint:
		return "point"
	case KADLine:
		return "line"
	case KADPolygon:
		return "polygon"
	case KADCircle:
		return "circle"
	case KADText:
		return "text"
	}
	return "unknown"
}

// KADVertex is one vertex of a KAD entity. PointID makes individual
// vertices addressable for selection; it is unique within the owning
// entity.
type KADVertex struct {
	PointID string
	Pos     Vec3
}

// KADEntity is a user-drawn annotation independent of hole data.
// Name is unique within the drawing map.
//
// ColorName and LineWidth are visual properties consumed by the
// render package when it derives a material; Radius applies to
// KADCircle and Text to KADText only.
type KADEntity struct {
	Name     string
	Kind     KADKind
	Vertices []KADVertex

	ColorName   string
	LineWidth   float64
	Transparent float64

	Radius float64
	Text   string
}

// Vertex returns the vertex with the given pointID, or false if the
// entity has no such vertex.
func (e *KADEntity) Vertex(pointID string) (KADVertex, bool) {
	for _, v := range e.Vertices {
		if v.PointID == pointID {
			return v, true
		}
	}
	return KADVertex{}, false
}

// Closed reports whether the entity's outline joins back to its first
// vertex when rendered.
func (e *KADEntity) Closed() bool {
	switch e.Kind {
	case KADPolygon, KADCircle:
		return true
	case KADPoint, KADLine, KADText:
		return false
	}
	return false
}
