package sim

import (
	"fmt"
	"math"
)

// Skyline is an ordered piecewise-constant rate schedule: models[i] governs
// the interval ending at times[i], and the last model stays in force for all
// time beyond the last boundary. Which model governs at time t is a pure
// function of t, independent of lineage identity.
type Skyline struct {
	models []Model
	times  []float64
}

// NewSkyline validates and builds a schedule. The model and time lists must
// have equal non-zero length and the times must be strictly increasing and
// positive.
func NewSkyline(models []Model, times []float64) (*Skyline, error) {
	if len(models) == 0 {
		return nil, fmt.Errorf("skyline needs at least one model: %w", ErrConfigurationMismatch)
	}
	if len(models) != len(times) {
		return nil, fmt.Errorf("skyline has %d models but %d interval times: %w",
			len(models), len(times), ErrConfigurationMismatch)
	}
	prev := 0.0
	for i, t := range times {
		if math.IsNaN(t) || t <= prev {
			return nil, fmt.Errorf("skyline times must be positive and strictly increasing, got %v at index %d: %w",
				t, i, ErrConfigurationMismatch)
		}
		prev = t
	}
	for i, m := range models {
		if m == nil {
			return nil, fmt.Errorf("skyline model at index %d is nil: %w", i, ErrConfigurationMismatch)
		}
	}
	return &Skyline{models: models, times: times}, nil
}

// Len returns the number of intervals.
func (s *Skyline) Len() int { return len(s.models) }

// Model returns the model governing interval i.
func (s *Skyline) Model(i int) Model { return s.models[i] }

// SwitchTime returns the end of interval i, or +Inf for the last interval:
// the final model's rates apply for all time beyond the last boundary.
func (s *Skyline) SwitchTime(i int) float64 {
	if i >= len(s.times)-1 {
		return math.Inf(1)
	}
	return s.times[i]
}

// IndexAt returns the index of the interval containing absolute time t.
func (s *Skyline) IndexAt(t float64) int {
	for i := 0; i < len(s.times)-1; i++ {
		if t < s.times[i] {
			return i
		}
	}
	return len(s.times) - 1
}

// ModelAt returns the model governing absolute time t.
func (s *Skyline) ModelAt(t float64) Model {
	return s.models[s.IndexAt(t)]
}

// NextSwitch returns the next interval boundary strictly after t, or +Inf
// if t falls in the final interval.
func (s *Skyline) NextSwitch(t float64) float64 {
	return s.SwitchTime(s.IndexAt(t))
}
