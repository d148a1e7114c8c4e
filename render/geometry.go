package render

import (
	"fmt"
	"math"

	"cogentcore.org/core/math32"

	"github.com/openpit/blast"
	"github.com/openpit/blast/frame"
)

// circleSegments is the tessellation of a KAD circle outline.
const circleSegments = 64

// markerRadius is the world-space half-size of point and text anchor
// markers, in metres.
const markerRadius = 0.25

// Renderable is anything the manager can build geometry for:
// *blast.Hole or *blast.KADEntity. The build switch is exhaustive and
// rejects anything else, so a new entity kind cannot silently render
// as nothing.
type Renderable any

// renderKey returns the handle-table identity for an entity.
func renderKey(e Renderable) (string, error) {
	switch v := e.(type) {
	case *blast.Hole:
		return "hole/" + v.Key(), nil
	case *blast.KADEntity:
		return "kad/" + v.Name, nil
	case nil:
		return "", ErrNilEntity
	}
	return "", fmt.Errorf("render: unsupported entity %T", e)
}

// buildVertices produces the local-space line-strip for an entity.
// Every world coordinate goes through the frame before it gets
// anywhere near a float32 buffer; raw UTM values in GPU geometry are
// exactly the jitter bug the frame exists to prevent.
func buildVertices(f *frame.Frame, e Renderable) ([]math32.Vector3, error) {
	switch v := e.(type) {
	case *blast.Hole:
		return holeVertices(f, v), nil
	case *blast.KADEntity:
		return kadVertices(f, v)
	case nil:
		return nil, ErrNilEntity
	}
	return nil, fmt.Errorf("render: unsupported entity %T", e)
}

// holeVertices is the hole track: collar to grade to toe.
func holeVertices(f *frame.Frame, h *blast.Hole) []math32.Vector3 {
	return []math32.Vector3{
		f.LocalPoint(h.Collar),
		f.LocalPoint(h.Grade),
		f.LocalPoint(h.Toe),
	}
}

// kadVertices builds the outline for each KAD entity kind. The switch
// is exhaustive over the closed kind set.
func kadVertices(f *frame.Frame, e *blast.KADEntity) ([]math32.Vector3, error) {
	if len(e.Vertices) == 0 {
		return nil, fmt.Errorf("render: KAD %q: %w", e.Name, ErrEmptyGeometry)
	}
	switch e.Kind {
	case blast.KADPoint, blast.KADText:
		// A diamond marker around the anchor; text glyphs themselves
		// are the host renderer's concern.
		return markerVertices(f, e.Vertices[0].Pos), nil

	case blast.KADLine:
		out := make([]math32.Vector3, len(e.Vertices))
		for i, v := range e.Vertices {
			out[i] = f.LocalPoint(v.Pos)
		}
		return out, nil

	case blast.KADPolygon:
		out := make([]math32.Vector3, 0, len(e.Vertices)+1)
		for _, v := range e.Vertices {
			out = append(out, f.LocalPoint(v.Pos))
		}
		out = append(out, out[0]) // close the outline
		return out, nil

	case blast.KADCircle:
		center := e.Vertices[0].Pos
		r := e.Radius
		if r <= 0 {
			return nil, fmt.Errorf("render: KAD circle %q radius %v: %w",
				e.Name, r, ErrEmptyGeometry)
		}
		out := make([]math32.Vector3, 0, circleSegments+1)
		for i := 0; i <= circleSegments; i++ {
			a := 2 * math.Pi * float64(i) / circleSegments
			p := blast.V3(center.X+r*math.Cos(a), center.Y+r*math.Sin(a), center.Z)
			out = append(out, f.LocalPoint(p))
		}
		return out, nil
	}
	return nil, fmt.Errorf("render: KAD %q: unknown kind %v", e.Name, e.Kind)
}

func markerVertices(f *frame.Frame, p blast.Vec3) []math32.Vector3 {
	return []math32.Vector3{
		f.LocalPoint(blast.V3(p.X-markerRadius, p.Y, p.Z)),
		f.LocalPoint(blast.V3(p.X, p.Y+markerRadius, p.Z)),
		f.LocalPoint(blast.V3(p.X+markerRadius, p.Y, p.Z)),
		f.LocalPoint(blast.V3(p.X, p.Y-markerRadius, p.Z)),
		f.LocalPoint(blast.V3(p.X-markerRadius, p.Y, p.Z)),
	}
}
