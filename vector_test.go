package blast

import (
	"math"
	"testing"
)

func TestHoleVector(t *testing.T) {
	tests := []struct {
		name    string
		angle   float64
		bearing float64
		length  float64
		expect  Vec3
	}{
		{"vertical", 0, 0, 10, V3(0, 0, -10)},
		{"vertical any bearing", 0, 135, 10, V3(0, 0, -10)},
		{"north 45", 45, 0, math.Sqrt2, V3(0, 1, -1)},
		{"east 45", 45, 90, math.Sqrt2, V3(1, 0, -1)},
		{"south 30", 30, 180, 2, V3(0, -1, -math.Sqrt(3))},
		{"west 90 horizontal", 90, 270, 5, V3(-5, 0, 0)},
		{"zero length", 45, 45, 0, V3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HoleVector(tt.angle, tt.bearing, tt.length)
			if !got.Approx(tt.expect, 1e-9) {
				t.Errorf("HoleVector(%v, %v, %v) = %v, want %v",
					tt.angle, tt.bearing, tt.length, got, tt.expect)
			}
		})
	}
}

func TestVectorAttributes_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		angle   float64
		bearing float64
		length  float64
	}{
		{"vertical", 0, 0, 12},
		{"shallow north", 10, 0, 11.5},
		{"steep east", 75, 90, 20},
		{"southwest", 30, 225, 8},
		{"just under horizontal", 89.9, 10, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := HoleVector(tt.angle, tt.bearing, tt.length)
			angle, bearing, length := VectorAttributes(d)
			if math.Abs(angle-tt.angle) > 1e-9 {
				t.Errorf("angle = %v, want %v", angle, tt.angle)
			}
			if length > 0 && tt.angle > 0 && math.Abs(bearing-tt.bearing) > 1e-9 {
				t.Errorf("bearing = %v, want %v", bearing, tt.bearing)
			}
			if math.Abs(length-tt.length) > 1e-9 {
				t.Errorf("length = %v, want %v", length, tt.length)
			}
		})
	}
}

func TestVectorAttributes_Zero(t *testing.T) {
	angle, bearing, length := VectorAttributes(Vec3{})
	if angle != 0 || bearing != 0 || length != 0 {
		t.Errorf("VectorAttributes(zero) = (%v, %v, %v), want zeros",
			angle, bearing, length)
	}
}

func TestSafeCos(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
	}{
		{"vertical", 0},
		{"typical", 15},
		{"steep", 85},
		{"horizontal", 90},
		{"past horizontal", 95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := SafeCos(tt.angle)
			if c == 0 {
				t.Fatal("SafeCos returned exact zero")
			}
			if math.Abs(c) < minCos {
				t.Errorf("SafeCos(%v) = %v, below guard %v", tt.angle, c, minCos)
			}
			// Away from the guard band the clamp must not alter the value.
			raw := math.Cos(DegToRad(tt.angle))
			if math.Abs(raw) >= minCos && c != raw {
				t.Errorf("SafeCos(%v) = %v, want raw cos %v", tt.angle, c, raw)
			}
		})
	}
}

func TestSafeCos_SignPreserved(t *testing.T) {
	if c := SafeCos(90.0000001); c >= 0 {
		t.Errorf("SafeCos just past horizontal = %v, want negative guard", c)
	}
	if c := SafeCos(89.9999999); c <= 0 {
		t.Errorf("SafeCos just before horizontal = %v, want positive guard", c)
	}
}
