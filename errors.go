package blast

import "errors"

// Package errors for the blast domain core.
var (
	// ErrInvariant is returned when an edit would produce a non-physical
	// hole (zero or negative length, grade above collar). The original
	// hole is left unchanged.
	ErrInvariant = errors.New("blast: edit would violate hole geometry invariant")

	// ErrUnknownMode is returned when Recompute is called with an edit
	// mode it does not recognize.
	ErrUnknownMode = errors.New("blast: unknown edit mode")

	// ErrHoleNotFound is returned when a lookup or delete names a hole
	// that is not in the working set.
	ErrHoleNotFound = errors.New("blast: hole not found")

	// ErrDuplicateHole is returned when adding a hole whose
	// (entityName, holeID) pair is already present.
	ErrDuplicateHole = errors.New("blast: duplicate hole identity")

	// ErrDuplicateEntity is returned when adding a KAD entity whose
	// name is already present in the drawing map.
	ErrDuplicateEntity = errors.New("blast: duplicate KAD entity name")

	// ErrEntityNotFound is returned when a lookup or delete names a KAD
	// entity that is not in the drawing map.
	ErrEntityNotFound = errors.New("blast: KAD entity not found")

	// ErrTimingCycle is returned when timing-chain traversal detects a
	// cycle in fromHoleID references.
	ErrTimingCycle = errors.New("blast: cycle in timing chain")
)
