package fit

import "fmt"

// RangeError reports a value outside its declared scale bounds, or a
// zero-width source scale. Both indicate inconsistent authored data rather
// than a runtime condition.
type RangeError struct {
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	if e.Min == e.Max {
		return fmt.Sprintf("fit: degenerate scale [%d,%d], cannot map value %d", e.Min, e.Max, e.Value)
	}
	return fmt.Sprintf("fit: value %d outside scale [%d,%d]", e.Value, e.Min, e.Max)
}

// ShapeError reports a vector-length mismatch between compared entities, or
// an empty dimension/profile set. This is a wiring bug, fatal at
// initialization time.
type ShapeError struct {
	Want int
	Got  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("fit: expected %d values, got %d", e.Want, e.Got)
}
