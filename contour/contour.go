// Package contour computes first-movement time contours over a hole
// set. The computation is grid-based and can take long enough on large
// patterns to stall a frame, so it runs through a Worker goroutine and
// hands back an immutable Result the caller applies between frames.
package contour

import (
	"context"
	"math"

	"github.com/openpit/blast"
)

// Defaults for Config fields left zero.
const (
	DefaultCellSize = 1.0
	DefaultInterval = 100.0
	DefaultDelayMS  = 25.0
)

// Config controls the contour grid and timing model.
type Config struct {
	// CellSize is the interpolation grid spacing in metres.
	CellSize float64
	// Interval is the time spacing between contour levels, in ms.
	Interval float64
	// DelayMS is the inter-hole delay applied per timing-chain link.
	DelayMS float64
}

// DefaultConfig returns the default contour configuration.
func DefaultConfig() Config {
	return Config{CellSize: DefaultCellSize, Interval: DefaultInterval, DelayMS: DefaultDelayMS}
}

func (c Config) withDefaults() Config {
	if c.CellSize <= 0 {
		c.CellSize = DefaultCellSize
	}
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.DelayMS <= 0 {
		c.DelayMS = DefaultDelayMS
	}
	return c
}

// Segment is one contour line piece at a given time level.
// Endpoints are world XY with Z zeroed.
type Segment struct {
	Level float64
	A, B  blast.Vec3
}

// Result is an immutable contour computation output. The caller reads
// it on the main thread; nothing retains it after delivery.
type Result struct {
	// Times maps hole key to its first-movement time in ms.
	Times map[string]float64
	// Levels are the contour levels present in Segments.
	Levels []float64
	// Segments are the contour line pieces across all levels.
	Segments []Segment
}

// Compute runs the full contour computation synchronously. It honors
// ctx between grid rows, returning ctx.Err() on cancellation. Fewer
// than three holes yields times but no segments.
func Compute(ctx context.Context, holes []blast.Hole, cfg Config) (*Result, error) {
	cfg = cfg.withDefaults()

	times, err := firstMovementTimes(holes, cfg.DelayMS)
	if err != nil {
		return nil, err
	}
	res := &Result{Times: times}
	if len(holes) < 3 {
		return res, nil
	}

	g, err := interpolate(ctx, holes, times, cfg.CellSize)
	if err != nil {
		return nil, err
	}
	res.Levels, res.Segments = trace(g, cfg.Interval)
	return res, nil
}

// firstMovementTimes resolves each hole's time as chain depth times
// the per-link delay, using the same traversal rules as the timing
// helpers: self-reference is depth zero, cycles are an error.
func firstMovementTimes(holes []blast.Hole, delay float64) (map[string]float64, error) {
	byKey := make(map[string]blast.Hole, len(holes))
	for _, h := range holes {
		byKey[h.Key()] = h
	}
	times := make(map[string]float64, len(holes))
	for _, h := range holes {
		depth, err := chainDepth(byKey, h)
		if err != nil {
			return nil, err
		}
		times[h.Key()] = float64(depth) * delay
	}
	return times, nil
}

func chainDepth(byKey map[string]blast.Hole, h blast.Hole) (int, error) {
	depth := 0
	seen := map[string]bool{h.Key(): true}
	cur := h
	for !cur.IsOrphan() {
		next, ok := byKey[cur.FromHoleID]
		if !ok {
			return 0, blast.ErrHoleNotFound
		}
		if seen[next.Key()] {
			return 0, blast.ErrTimingCycle
		}
		seen[next.Key()] = true
		depth++
		cur = next
	}
	return depth, nil
}

// grid holds interpolated times at regular XY nodes.
type grid struct {
	originX, originY float64
	cell             float64
	cols, rows       int
	values           []float64
}

func (g *grid) at(col, row int) float64 { return g.values[row*g.cols+col] }

func (g *grid) nodeX(col int) float64 { return g.originX + float64(col)*g.cell }
func (g *grid) nodeY(row int) float64 { return g.originY + float64(row)*g.cell }

// interpolate fills a grid over the collar bounding box with
// inverse-distance-squared weighted times. One cancellation check per
// row keeps abandoned recomputes from running to completion.
func interpolate(ctx context.Context, holes []blast.Hole, times map[string]float64, cell float64) (*grid, error) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, h := range holes {
		minX = math.Min(minX, h.Collar.X)
		minY = math.Min(minY, h.Collar.Y)
		maxX = math.Max(maxX, h.Collar.X)
		maxY = math.Max(maxY, h.Collar.Y)
	}
	// One cell of margin so edge holes sit inside the grid.
	minX -= cell
	minY -= cell
	maxX += cell
	maxY += cell

	g := &grid{
		originX: minX,
		originY: minY,
		cell:    cell,
		cols:    int(math.Ceil((maxX-minX)/cell)) + 1,
		rows:    int(math.Ceil((maxY-minY)/cell)) + 1,
	}
	g.values = make([]float64, g.cols*g.rows)

	for row := 0; row < g.rows; row++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		y := g.nodeY(row)
		for col := 0; col < g.cols; col++ {
			x := g.nodeX(col)
			g.values[row*g.cols+col] = idw(holes, times, x, y)
		}
	}
	return g, nil
}

func idw(holes []blast.Hole, times map[string]float64, x, y float64) float64 {
	var num, den float64
	for _, h := range holes {
		dx := h.Collar.X - x
		dy := h.Collar.Y - y
		d2 := dx*dx + dy*dy
		if d2 < 1e-12 {
			return times[h.Key()]
		}
		w := 1 / d2
		num += w * times[h.Key()]
		den += w
	}
	return num / den
}

// trace runs marching squares over the grid at each level between the
// value extremes, at Interval spacing.
func trace(g *grid, interval float64) ([]float64, []Segment) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range g.values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	var levels []float64
	var segs []Segment
	for level := math.Ceil(lo/interval) * interval; level <= hi; level += interval {
		n := len(segs)
		for row := 0; row < g.rows-1; row++ {
			for col := 0; col < g.cols-1; col++ {
				segs = append(segs, cellSegments(g, col, row, level)...)
			}
		}
		if len(segs) > n {
			levels = append(levels, level)
		}
	}
	return levels, segs
}

// cellSegments emits 0, 1, or 2 segments for one grid cell. Corner
// order is bottom-left, bottom-right, top-right, top-left.
func cellSegments(g *grid, col, row int, level float64) []Segment {
	v := [4]float64{
		g.at(col, row),
		g.at(col+1, row),
		g.at(col+1, row+1),
		g.at(col, row+1),
	}
	x0, y0 := g.nodeX(col), g.nodeY(row)
	x1, y1 := g.nodeX(col+1), g.nodeY(row+1)
	corner := [4]blast.Vec3{
		{X: x0, Y: y0},
		{X: x1, Y: y0},
		{X: x1, Y: y1},
		{X: x0, Y: y1},
	}

	idx := 0
	for i := 0; i < 4; i++ {
		if v[i] >= level {
			idx |= 1 << i
		}
	}
	if idx == 0 || idx == 15 {
		return nil
	}

	// Crossing point on the edge between corners a and b.
	cross := func(a, b int) blast.Vec3 {
		t := (level - v[a]) / (v[b] - v[a])
		return blast.Vec3{
			X: corner[a].X + t*(corner[b].X-corner[a].X),
			Y: corner[a].Y + t*(corner[b].Y-corner[a].Y),
		}
	}
	seg := func(ea, eb [2]int) Segment {
		return Segment{Level: level, A: cross(ea[0], ea[1]), B: cross(eb[0], eb[1])}
	}

	bottom := [2]int{0, 1}
	right := [2]int{1, 2}
	top := [2]int{2, 3}
	left := [2]int{3, 0}

	switch idx {
	case 1, 14:
		return []Segment{seg(left, bottom)}
	case 2, 13:
		return []Segment{seg(bottom, right)}
	case 3, 12:
		return []Segment{seg(left, right)}
	case 4, 11:
		return []Segment{seg(right, top)}
	case 6, 9:
		return []Segment{seg(bottom, top)}
	case 7, 8:
		return []Segment{seg(left, top)}
	case 5:
		return []Segment{seg(left, bottom), seg(right, top)}
	case 10:
		return []Segment{seg(bottom, right), seg(left, top)}
	}
	return nil
}
