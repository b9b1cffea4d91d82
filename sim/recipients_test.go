package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestSingleRecipient_AlwaysOne(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := SingleRecipient{}
	for i := 0; i < 100; i++ {
		if got := s.SampleRecipients(rng); got != 1 {
			t.Fatalf("SampleRecipients() = %d, want 1", got)
		}
	}
}

func TestGeometricRecipients_MeanMatchesTarget(t *testing.T) {
	// GIVEN a shifted-geometric sampler with mean 3
	rng := rand.New(rand.NewSource(42))
	s, err := NewGeometricRecipients(3.0)
	require.NoError(t, err)

	// WHEN 100000 counts are sampled
	n := 100000
	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		k := s.SampleRecipients(rng)
		if k < 1 {
			t.Fatalf("SampleRecipients() = %d, want >= 1", k)
		}
		vals[i] = float64(k)
	}

	// THEN the sample mean is ~3 (within 3%)
	mean := stat.Mean(vals, nil)
	if math.Abs(mean-3.0)/3.0 > 0.03 {
		t.Errorf("sample mean = %.3f, want ~3.0 (within 3%%)", mean)
	}
}

func TestGeometricRecipients_MeanOneDegeneratesToSingle(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s, err := NewGeometricRecipients(1.0)
	require.NoError(t, err)
	for i := 0; i < 1000; i++ {
		assert.Equal(t, 1, s.SampleRecipients(rng))
	}
}

func TestGeometricRecipients_InvalidMean(t *testing.T) {
	for _, mean := range []float64{0, 0.5, -1, math.NaN()} {
		_, err := NewGeometricRecipients(mean)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidParameter)
	}
}

func TestEmpiricalRecipients_RespectsWeights(t *testing.T) {
	// GIVEN weights selecting 1 or 3 recipients with equal probability
	rng := rand.New(rand.NewSource(42))
	s, err := NewEmpiricalRecipients([]float64{1, 0, 1})
	require.NoError(t, err)

	// WHEN 50000 counts are sampled
	n := 50000
	counts := map[int]int{}
	for i := 0; i < n; i++ {
		counts[s.SampleRecipients(rng)]++
	}

	// THEN only 1 and 3 occur, each ~50%
	assert.Zero(t, counts[2], "zero-weight count must never be drawn")
	for _, k := range []int{1, 3} {
		frac := float64(counts[k]) / float64(n)
		if math.Abs(frac-0.5) > 0.02 {
			t.Errorf("count %d drawn with frequency %.3f, want ~0.5", k, frac)
		}
	}
}

func TestEmpiricalRecipients_SingleBin(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s, err := NewEmpiricalRecipients([]float64{0, 5})
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		assert.Equal(t, 2, s.SampleRecipients(rng))
	}
}

func TestEmpiricalRecipients_InvalidWeights(t *testing.T) {
	tests := []struct {
		name    string
		weights []float64
	}{
		{"empty", nil},
		{"all zero", []float64{0, 0}},
		{"negative", []float64{0.5, -0.5}},
		{"NaN", []float64{math.NaN()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEmpiricalRecipients(tt.weights)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}
