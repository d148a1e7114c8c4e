package frame

import (
	"math"
	"testing"

	"github.com/openpit/blast"
)

func TestFrame_RoundTrip(t *testing.T) {
	f := New(DefaultConfig())
	f.Reset(476912.4, 6764210.8)

	tests := []struct {
		name string
		x, y float64
	}{
		{"origin", 476912.4, 6764210.8},
		{"nearby", 476950.1, 6764180.2},
		{"bounds edge", 481912.4, 6769210.8},
		{"negative offset", 471912.4, 6759210.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, ly := f.ToLocal(tt.x, tt.y)
			wx, wy := f.ToWorld(lx, ly)
			if math.Abs(wx-tt.x) > 1e-9 || math.Abs(wy-tt.y) > 1e-9 {
				t.Errorf("round trip (%v, %v) -> (%v, %v)", tt.x, tt.y, wx, wy)
			}
		})
	}
}

func TestFrame_LocalMagnitudeIsSmall(t *testing.T) {
	f := New(DefaultConfig())
	f.Reset(476912.4, 6764210.8)

	lx, ly := f.ToLocal(476950.0, 6764300.0)
	if math.Abs(lx) > 1000 || math.Abs(ly) > 1000 {
		t.Errorf("local coords (%v, %v) not small-magnitude", lx, ly)
	}
}

func TestFrame_FirstObservationInitializes(t *testing.T) {
	f := New(DefaultConfig())
	if f.Initialized() {
		t.Fatal("new frame should be uninitialized")
	}
	if !f.ObserveCentroid(476912.4, 6764210.8) {
		t.Error("first observation must reset")
	}
	if !f.Initialized() {
		t.Error("frame not initialized after first observation")
	}
	if g := f.Generation(); g != 1 {
		t.Errorf("generation = %d, want 1", g)
	}
}

func TestFrame_DriftReset(t *testing.T) {
	tests := []struct {
		name      string
		dx, dy    float64
		wantReset bool
	}{
		{"no drift", 0, 0, false},
		{"small drift", 500, 200, false},
		{"at threshold", DefaultDriftThreshold, 0, false},
		{"past threshold", DefaultDriftThreshold + 1, 0, true},
		{"diagonal past threshold", 8000, 8000, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(DefaultConfig())
			f.Reset(476912.4, 6764210.8)
			gen := f.Generation()

			got := f.ObserveCentroid(476912.4+tt.dx, 6764210.8+tt.dy)
			if got != tt.wantReset {
				t.Errorf("ObserveCentroid(+%v, +%v) reset = %v, want %v",
					tt.dx, tt.dy, got, tt.wantReset)
			}
			wantGen := gen
			if tt.wantReset {
				wantGen++
			}
			if f.Generation() != wantGen {
				t.Errorf("generation = %d, want %d", f.Generation(), wantGen)
			}
		})
	}
}

func TestFrame_CustomDriftThreshold(t *testing.T) {
	f := New(Config{DriftThreshold: 100})
	f.Reset(0, 0)
	if f.ObserveCentroid(50, 0) {
		t.Error("reset below custom threshold")
	}
	if !f.ObserveCentroid(150, 0) {
		t.Error("no reset past custom threshold")
	}
}

func TestFrame_ZPassesThrough(t *testing.T) {
	f := New(DefaultConfig())
	f.Reset(476912.4, 6764210.8)

	p := blast.V3(476950, 6764300, 276.2)
	v := f.LocalPoint(p)
	if v.Z != 276.2 {
		t.Errorf("Z = %v, want pass-through 276.2", v.Z)
	}

	back := f.WorldPoint(v)
	if math.Abs(back.X-p.X) > 0.01 || math.Abs(back.Y-p.Y) > 0.01 {
		t.Errorf("world round trip = %v, want %v", back, p)
	}
}

func TestFrame_ResetChangesLocalCoords(t *testing.T) {
	f := New(DefaultConfig())
	f.Reset(476912.4, 6764210.8)
	lx1, _ := f.ToLocal(476950, 6764300)

	f.Reset(500000, 6800000)
	lx2, _ := f.ToLocal(476950, 6764300)
	if lx1 == lx2 {
		t.Error("reset did not change local mapping")
	}
	if f.Generation() != 2 {
		t.Errorf("generation = %d, want 2", f.Generation())
	}
}
