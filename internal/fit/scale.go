package fit

import "math"

// Scale is an inclusive integer range with step 1. Every vector compared on
// one chart must be expressed on the same scale.
type Scale struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// CanonicalScale is the 1-10 display scale all default profiles are mapped
// into.
var CanonicalScale = Scale{Min: 1, Max: 10}

// Width returns the span of the scale.
func (s Scale) Width() int { return s.Max - s.Min }

// Contains reports whether v lies within the scale bounds.
func (s Scale) Contains(v int) bool { return v >= s.Min && v <= s.Max }

// Midpoint returns the default slider position for a fresh task vector.
func (s Scale) Midpoint() int { return (s.Min + s.Max) / 2 }

// MapToScale linearly rescales value from src to dst, rounding half to even
// for determinism. A value outside src, or a zero-width src, yields a
// RangeError.
func MapToScale(value int, src, dst Scale) (int, error) {
	if src.Width() == 0 {
		return 0, &RangeError{Value: value, Min: src.Min, Max: src.Max}
	}
	if !src.Contains(value) {
		return 0, &RangeError{Value: value, Min: src.Min, Max: src.Max}
	}

	scaled := float64(dst.Min) + float64(value-src.Min)/float64(src.Width())*float64(dst.Width())
	return int(math.RoundToEven(scaled)), nil
}
