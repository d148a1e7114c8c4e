// Package blast is the geometry and rendering core for blast-hole
// pattern design over real-world (UTM) coordinates.
//
// # Overview
//
// blast keeps a working set of drill holes and KAD annotation entities
// (points, lines, polygons, circles, text) mathematically consistent
// while they are edited, and keeps a 2D canvas view and a 3D view of
// the same data in lock-step. The root package holds the domain model
// and the hole geometry engine; infrastructure lives in subpackages:
//
//   - frame: precision-safe local coordinate frame over large world
//     coordinates, with drift-triggered origin resets
//   - view: the shared camera state and the synchronizer that derives
//     both the 2D screen transform and the 3D projection from it
//   - render: GPU resource management (geometry chunking, material
//     dedup, device-loss recovery) behind a host-provided device
//   - selection: the canonical selection model broadcast to both
//     renderers and the tree view
//   - contour: off-thread derived-field recomputation
//   - store: debounced persistence triggering, with a SQLite-backed
//     reference store in store/sqlite
//
// # Quick Start
//
//	site := blast.NewSite()
//	hole, _ := site.AddHole("PATTERN-1", blast.HoleParams{
//	    ID:          "101",
//	    Collar:      blast.V3(476912.4, 6764210.8, 276.2),
//	    BenchHeight: 10, Subdrill: 1.2, Diameter: 0.115,
//	})
//
//	// Edit one attribute; all dependent geometry is re-derived.
//	edited, err := blast.Recompute(*hole, blast.EditSubdrill, 1.5)
//	if err == nil {
//	    site.Commit(edited)
//	}
//
// Persistence attaches to the mutation hooks: register the debounced
// save trigger with Site.OnMutate, and with the selection bridge's
// Subscribe if selection state is saved too. Every committed mutation
// then coalesces into an occasional background save.
//
// # Geometry Invariant
//
// For every hole, the grade and toe points lie exactly on the ray
// defined by (angle, bearing) from the collar, at distances
// benchHeight/cos(angle) and length respectively, with
//
//	length = benchHeight/cos(angle) + subdrill/cos(angle)
//
// Every edit mode in the engine re-derives the dependent XY components
// from the trigonometric projection. An edit that would break the
// invariant (for example a zero or negative length) is rejected and
// the original hole is left unchanged.
//
// # Coordinate System
//
// World coordinates are UTM-style: X easting, Y northing, Z elevation.
// Angle is degrees from vertical, bearing is degrees clockwise from
// grid north. Holes are drilled downward, so the hole ray has a
// negative Z component for any angle below horizontal.
package blast

// Version is the current version of the library.
const Version = "0.2.0"
