package landmark

import "math"

// Distance calculates the Euclidean distance between two 3D points.
func Distance(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// HorizontalGap is |a.X - b.X|.
func HorizontalGap(a, b Point3D) float64 {
	return math.Abs(a.X - b.X)
}

// VerticalGap is |a.Y - b.Y|.
func VerticalGap(a, b Point3D) float64 {
	return math.Abs(a.Y - b.Y)
}

// Ratio divides num by den, returning 0 when den is not positive.
func Ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

// Clamp01 limits v to [0,1]. NaN maps to 0.
func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
