package fit

// Vector is an ordered sequence of integer ratings, one per dimension.
type Vector []int

// Validate checks the vector length against want and every component against
// the scale bounds.
func (v Vector) Validate(scale Scale, want int) error {
	if len(v) != want {
		return &ShapeError{Want: want, Got: len(v)}
	}
	for _, x := range v {
		if !scale.Contains(x) {
			return &RangeError{Value: x, Min: scale.Min, Max: scale.Max}
		}
	}
	return nil
}

// Clone returns an independent copy of the vector.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// DefaultTask returns a task vector with every dimension at the scale
// midpoint, the starting position of the sliders.
func DefaultTask(scale Scale, n int) Vector {
	task := make(Vector, n)
	mid := scale.Midpoint()
	for i := range task {
		task[i] = mid
	}
	return task
}
