package blast

// EditMode identifies which single attribute an edit changes. The
// engine re-derives every dependent attribute for the mode, holding
// the ray direction fixed except when the direction itself is edited.
type EditMode int

const (
	// EditLength changes the collar-to-toe distance along the ray.
	EditLength EditMode = iota + 1
	// EditAngle changes degrees from vertical.
	EditAngle
	// EditBearing changes degrees from north.
	EditBearing
	// EditCollarX rigidly translates the hole in X.
	EditCollarX
	// EditCollarY rigidly translates the hole in Y.
	EditCollarY
	// EditCollarZ rigidly translates the hole in Z.
	EditCollarZ
	// EditDiameter is a value-only update with no geometric effect.
	EditDiameter
	// EditSubdrill changes the vertical overdrill past grade.
	EditSubdrill
	// EditGradeZ changes the bench floor elevation (bench height).
	EditGradeZ
)

// String returns the attribute name for an edit mode.
func (m EditMode) String() string {
	switch m {
	case EditLength:
		return "length"
	case EditAngle:
		return "angle"
	case EditBearing:
		return "bearing"
	case EditCollarX:
		return "collarX"
	case EditCollarY:
		return "collarY"
	case EditCollarZ:
		return "collarZ"
	case EditDiameter:
		return "diameter"
	case EditSubdrill:
		return "subdrill"
	case EditGradeZ:
		return "gradeZ"
	}
	return "unknown"
}

// Recompute applies a single-attribute edit to a snapshot of a hole
// and returns the fully re-derived result. It is a pure function: the
// input hole is never modified, and on error the caller's hole is
// exactly as it was. The caller commits the returned hole.
//
// Every mode that changes depth or length re-derives the grade and toe
// XY from the trigonometric projection rather than patching Z alone;
// trajectory and elevation are coupled, and a Z-only patch produces a
// bent, non-physical hole.
func Recompute(h Hole, mode EditMode, value float64) (Hole, error) {
	orig := h
	switch mode {
	case EditLength:
		if value <= 0 {
			return orig, ErrInvariant
		}
		h.Length = value
		// Subdrill is the derived attribute here: the vertical
		// distance from grade depth to the new toe depth.
		h.Subdrill = value*SafeCos(h.Angle) - h.BenchHeight
		h.DeriveGeometry()

	case EditAngle:
		// The along-ray distances are held fixed; tilting the ray
		// re-derives the vertical measures from the new projection.
		gradeDist := h.BenchHeight / SafeCos(h.Angle)
		h.Angle = value
		cosA := SafeCos(h.Angle)
		h.BenchHeight = gradeDist * cosA
		h.Subdrill = h.Length*cosA - h.BenchHeight
		h.DeriveGeometry()

	case EditBearing:
		h.Bearing = value
		h.DeriveGeometry()

	case EditCollarX:
		h.translate(Vec3{X: value - h.Collar.X})

	case EditCollarY:
		h.translate(Vec3{Y: value - h.Collar.Y})

	case EditCollarZ:
		h.translate(Vec3{Z: value - h.Collar.Z})

	case EditDiameter:
		h.Diameter = value

	case EditSubdrill:
		h.Subdrill = value
		if err := h.rederiveLength(); err != nil {
			return orig, err
		}

	case EditGradeZ:
		bench := h.Collar.Z - value
		if bench < 0 {
			// Grade above the collar is non-physical.
			return orig, ErrInvariant
		}
		h.BenchHeight = bench
		if err := h.rederiveLength(); err != nil {
			return orig, err
		}

	default:
		return orig, ErrUnknownMode
	}
	return h, nil
}

// rederiveLength recomputes Length from the vertical bench height and
// subdrill, then repositions grade and toe on the current ray. Used by
// every mode where the vertical measures are authoritative.
func (h *Hole) rederiveLength() error {
	length := (h.BenchHeight + h.Subdrill) / SafeCos(h.Angle)
	if length <= 0 {
		return ErrInvariant
	}
	h.Length = length
	h.DeriveGeometry()
	return nil
}

// translate rigidly shifts collar, grade and toe by the same delta.
// Angle, bearing and all length attributes are untouched; a rigid
// translation preserves the ray invariant exactly.
func (h *Hole) translate(delta Vec3) {
	h.Collar = h.Collar.Add(delta)
	h.Grade = h.Grade.Add(delta)
	h.Toe = h.Toe.Add(delta)
}
