package sim

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// RecipientSampler generates the number of recipients of a transmission event.
type RecipientSampler interface {
	// SampleRecipients returns a recipient count (>= 1).
	SampleRecipients(rng *rand.Rand) int
}

// SingleRecipient is the default one-to-one transmission: always 1 recipient.
type SingleRecipient struct{}

func (SingleRecipient) SampleRecipients(_ *rand.Rand) int { return 1 }

// GeometricRecipients draws shifted-geometric recipient counts with the given
// mean, making one-to-many transmissions possible: P(K=k) = q(1-q)^(k-1) with
// q = 1/mean, so E[K] = mean.
type GeometricRecipients struct {
	mean float64
}

// NewGeometricRecipients creates a sampler with the given average recipient
// count. The mean must be >= 1.
func NewGeometricRecipients(mean float64) (*GeometricRecipients, error) {
	if math.IsNaN(mean) || mean < 1 {
		return nil, fmt.Errorf("average recipient count %v must be >= 1: %w", mean, ErrInvalidParameter)
	}
	return &GeometricRecipients{mean: mean}, nil
}

func (s *GeometricRecipients) SampleRecipients(rng *rand.Rand) int {
	q := 1.0 / s.mean
	if q >= 1 {
		return 1
	}
	u := rng.Float64()
	if u == 0 {
		u = math.SmallestNonzeroFloat64 // prevent log(0) = -Inf
	}
	// Inverse CDF of the shifted geometric distribution.
	k := 1 + int(math.Floor(math.Log(u)/math.Log(1.0-q)))
	if k < 1 {
		return 1
	}
	return k
}

// EmpiricalRecipients samples recipient counts from explicit weights using
// inverse CDF via binary search. weights[i] is the relative weight of
// drawing i+1 recipients.
type EmpiricalRecipients struct {
	counts []int
	cdf    []float64 // cumulative probabilities (same length as counts)
}

// NewEmpiricalRecipients creates a sampler from a weight list. Weights are
// normalized automatically; zero-weight counts are skipped.
func NewEmpiricalRecipients(weights []float64) (*EmpiricalRecipients, error) {
	total := 0.0
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, fmt.Errorf("recipient weight %v at index %d: %w", w, i, ErrInvalidParameter)
		}
		total += w
	}
	if total <= 0 {
		return nil, fmt.Errorf("recipient weights sum to zero: %w", ErrInvalidParameter)
	}

	counts := make([]int, 0, len(weights))
	cdf := make([]float64, 0, len(weights))
	cumulative := 0.0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cumulative += w / total
		counts = append(counts, i+1)
		cdf = append(cdf, cumulative)
	}
	// Ensure last CDF entry is exactly 1.0
	cdf[len(cdf)-1] = 1.0

	return &EmpiricalRecipients{counts: counts, cdf: cdf}, nil
}

func (s *EmpiricalRecipients) SampleRecipients(rng *rand.Rand) int {
	if len(s.counts) == 1 {
		return s.counts[0]
	}
	u := rng.Float64()
	idx := sort.SearchFloat64s(s.cdf, u)
	if idx >= len(s.counts) {
		idx = len(s.counts) - 1
	}
	return s.counts[idx]
}
