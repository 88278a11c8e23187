package fit

import "math"

// PolarPoint is one vertex of a radar polygon.
type PolarPoint struct {
	Angle  float64 `json:"angle"` // radians
	Radius float64 `json:"radius"`
}

// RadarOptions control angular direction and rotation of the chart. Purely a
// rendering preference, but the same options must be applied to every vector
// drawn on one chart or visual comparison is meaningless.
type RadarOptions struct {
	Clockwise   bool    `json:"clockwise" yaml:"clockwise"`
	RotationDeg float64 `json:"rotation_deg" yaml:"rotation_deg"`
}

// DefaultRadarOptions matches the original chart layout: clockwise axes,
// first axis rotated to twelve o'clock.
func DefaultRadarOptions() RadarOptions {
	return RadarOptions{Clockwise: true, RotationDeg: 90}
}

// BuildPolygon converts an ordered vector of N values into N angularly
// evenly-spaced polar points plus a closing point equal to the first, so the
// result always has length N+1. The radius is the raw value on the canonical
// scale. Axis order follows the input order and is never reordered here.
func BuildPolygon(values Vector, opts RadarOptions) ([]PolarPoint, error) {
	n := len(values)
	if n == 0 {
		return nil, &ShapeError{Want: 1, Got: 0}
	}

	offset := opts.RotationDeg * math.Pi / 180
	points := make([]PolarPoint, 0, n+1)
	for i, v := range values {
		theta := 2 * math.Pi * float64(i) / float64(n)
		if opts.Clockwise {
			theta = -theta
		}
		points = append(points, PolarPoint{Angle: theta + offset, Radius: float64(v)})
	}
	points = append(points, points[0])

	return points, nil
}
