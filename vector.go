package blast

import "math"

// minCos is the guarded divisor substituted when cos(angle) is within
// machine epsilon of zero (a horizontal hole). Dividing by the guard
// yields a very long but finite hole instead of an Inf/NaN blow-up.
const minCos = 1e-7

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 { return deg * math.Pi / 180 }

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 { return rad * 180 / math.Pi }

// SafeCos returns cos of an angle given in degrees from vertical,
// clamped away from zero. The sign of the original cosine is preserved
// so holes angled past horizontal still project the right way.
func SafeCos(angleDeg float64) float64 {
	c := math.Cos(DegToRad(angleDeg))
	if math.Abs(c) < minCos {
		if math.Signbit(c) {
			return -minCos
		}
		return minCos
	}
	return c
}

// HoleVector converts (angle, bearing, length) to a displacement.
// Angle is degrees from vertical, bearing is degrees clockwise from
// grid north (+Y), length is the distance along the ray. The result
// points down the hole: dz is negative for any angle below horizontal.
func HoleVector(angleDeg, bearingDeg, length float64) Vec3 {
	a := DegToRad(angleDeg)
	b := DegToRad(bearingDeg)
	sinA := math.Sin(a)
	return Vec3{
		X: length * sinA * math.Sin(b),
		Y: length * sinA * math.Cos(b),
		Z: -length * math.Cos(a),
	}
}

// HoleDirection returns the unit vector for (angle, bearing).
func HoleDirection(angleDeg, bearingDeg float64) Vec3 {
	return HoleVector(angleDeg, bearingDeg, 1)
}

// VectorAttributes converts a collar-to-toe displacement back to
// (angle, bearing, length). A zero displacement yields a vertical,
// north-facing, zero-length result. Bearing is normalized to [0, 360).
func VectorAttributes(d Vec3) (angleDeg, bearingDeg, length float64) {
	length = d.Length()
	if length == 0 {
		return 0, 0, 0
	}
	horiz := math.Hypot(d.X, d.Y)
	angleDeg = RadToDeg(math.Atan2(horiz, -d.Z))
	if horiz > 0 {
		bearingDeg = RadToDeg(math.Atan2(d.X, d.Y))
		if bearingDeg < 0 {
			bearingDeg += 360
		}
	}
	return angleDeg, bearingDeg, length
}
