package fit

import "fmt"

// RawProfile is an authored reference profile before scale mapping. Scores
// may be authored on a different scale than the canonical one; the registry
// maps them through MapToScale at construction.
type RawProfile struct {
	Name   string `json:"name" yaml:"name"`
	Scores []int  `json:"scores" yaml:"scores"`
	Scale  Scale  `json:"scale" yaml:"scale"`
}

// Profile is a named reference vector on the canonical scale.
type Profile struct {
	Name   string `json:"name"`
	Vector Vector `json:"vector"`
}

// Registry holds the process-wide dimension set, canonical scale and
// reference profiles. Built once at startup, read-only afterward; the only
// state safe to share across sessions.
type Registry struct {
	dimensions []Dimension
	scale      Scale
	profiles   []Profile
	index      map[string]int
}

// NewRegistry builds the registry by mapping each authored raw score into
// the canonical scale. Profile insertion order is preserved; it decides
// tie-break order during ranking.
func NewRegistry(dims []Dimension, scale Scale, raw []RawProfile) (*Registry, error) {
	if len(dims) == 0 {
		return nil, &ShapeError{Want: 1, Got: 0}
	}

	reg := &Registry{
		dimensions: append([]Dimension(nil), dims...),
		scale:      scale,
		profiles:   make([]Profile, 0, len(raw)),
		index:      make(map[string]int, len(raw)),
	}

	for _, rp := range raw {
		if _, exists := reg.index[rp.Name]; exists {
			return nil, fmt.Errorf("fit: duplicate profile %q", rp.Name)
		}
		if len(rp.Scores) != len(dims) {
			return nil, &ShapeError{Want: len(dims), Got: len(rp.Scores)}
		}

		vec := make(Vector, len(rp.Scores))
		for i, score := range rp.Scores {
			mapped, err := MapToScale(score, rp.Scale, scale)
			if err != nil {
				return nil, fmt.Errorf("fit: profile %q dimension %q: %w", rp.Name, dims[i].Name, err)
			}
			vec[i] = mapped
		}

		reg.index[rp.Name] = len(reg.profiles)
		reg.profiles = append(reg.profiles, Profile{Name: rp.Name, Vector: vec})
	}

	return reg, nil
}

// Dimensions returns a copy of the dimension set, in axis order.
func (r *Registry) Dimensions() []Dimension {
	return append([]Dimension(nil), r.dimensions...)
}

// NumDimensions returns the number of axes.
func (r *Registry) NumDimensions() int { return len(r.dimensions) }

// Scale returns the canonical scale.
func (r *Registry) Scale() Scale { return r.scale }

// Profiles returns copies of every profile, in insertion order.
func (r *Registry) Profiles() []Profile {
	out := make([]Profile, len(r.profiles))
	for i, p := range r.profiles {
		out[i] = Profile{Name: p.Name, Vector: p.Vector.Clone()}
	}
	return out
}

// Profile looks up a single profile by name.
func (r *Registry) Profile(name string) (Profile, bool) {
	i, ok := r.index[name]
	if !ok {
		return Profile{}, false
	}
	return Profile{Name: r.profiles[i].Name, Vector: r.profiles[i].Vector.Clone()}, true
}

// DefaultRawProfiles returns the three authored reference archetypes. Scores
// are authored directly on the canonical 1-10 scale, so mapping is the
// identity for the defaults.
func DefaultRawProfiles() []RawProfile {
	return []RawProfile{
		{Name: "Human", Scores: []int{9, 4, 3, 2, 1, 5, 8, 7, 7, 1}, Scale: CanonicalScale},
		{Name: "System", Scores: []int{1, 1, 3, 8, 9, 1, 1, 4, 9, 9}, Scale: CanonicalScale},
		{Name: "AI", Scores: []int{6, 8, 4, 4, 5, 6, 5, 3, 2, 6}, Scale: CanonicalScale},
	}
}
