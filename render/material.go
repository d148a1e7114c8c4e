package render

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/openpit/blast"
	"github.com/openpit/blast/cache"
)

// Material is the shared visual description for a set of line
// geometry. Materials are deduplicated by value: two entities with the
// same color, width and transparency share one instance, even when the
// values were produced independently.
type Material struct {
	Color        color.RGBA
	Width        float32
	Transparency float32
}

// MaterialKey is the value tuple materials are cached on. It is a
// plain comparable struct, not an identity: equality of the fields is
// equality of the material.
type MaterialKey struct {
	R, G, B, A   uint8
	Width        float32
	Transparency float32
}

// Key returns the cache key for a material's values.
func (m Material) Key() MaterialKey {
	return MaterialKey{
		R: m.Color.R, G: m.Color.G, B: m.Color.B, A: m.Color.A,
		Width:        m.Width,
		Transparency: m.Transparency,
	}
}

// defaultMaterialCapacity bounds the material cache. Real drawings use
// a handful of colors; the bound only matters for pathological imports.
const defaultMaterialCapacity = 512

// materialCache deduplicates materials by value tuple.
type materialCache struct {
	lru *cache.LRU[MaterialKey, *Material]
}

func newMaterialCache() *materialCache {
	return &materialCache{lru: cache.New[MaterialKey, *Material](defaultMaterialCapacity)}
}

// get returns the shared instance for the given values.
func (mc *materialCache) get(m Material) *Material {
	return mc.lru.GetOrCreate(m.Key(), func() *Material {
		inst := m
		return &inst
	})
}

func (mc *materialCache) clear() { mc.lru.Clear() }

func (mc *materialCache) stats() cache.Stats { return mc.lru.Stats() }

// holeColor is the default material color for hole track geometry.
var holeColor = colornames.Darkorange

// ParseColor resolves a KAD color specification: an SVG 1.1 color name
// ("red", "steelblue") or a #rgb/#rrggbb hex triplet. Unknown or empty
// specs fall back to white; an annotation with a bad color should
// still draw.
func ParseColor(spec string) color.RGBA {
	if c, ok := colornames.Map[strings.ToLower(spec)]; ok {
		return c
	}
	if c, ok := parseHex(spec); ok {
		return c
	}
	return colornames.White
}

func parseHex(spec string) (color.RGBA, bool) {
	s := strings.TrimPrefix(spec, "#")
	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, true
}

// materialFor derives the material values for an entity. Hole tracks
// share one palette entry; KAD entities carry their own visual
// properties.
func materialFor(e Renderable) Material {
	switch v := e.(type) {
	case *blast.Hole:
		return Material{Color: holeColor, Width: 1}
	case *blast.KADEntity:
		w := float32(v.LineWidth)
		if w <= 0 {
			w = 1
		}
		return Material{
			Color:        ParseColor(v.ColorName),
			Width:        w,
			Transparency: float32(v.Transparent),
		}
	}
	return Material{Color: colornames.White, Width: 1}
}
