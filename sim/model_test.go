package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBirthDeathModel_ValidParameters(t *testing.T) {
	m, err := NewBirthDeathModel(0.5, 0.2, 0.6, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.5, m.BirthRate())
	assert.Equal(t, 0.2, m.RemovalRate())
	assert.Equal(t, 0.6, m.SamplingProb())
	assert.IsType(t, SingleRecipient{}, m.Recipients())
}

func TestNewBirthDeathModel_InvalidParameters(t *testing.T) {
	tests := []struct {
		name       string
		la, psi, p float64
	}{
		{"negative la", -0.1, 0.2, 0.5},
		{"negative psi", 0.4, -0.2, 0.5},
		{"negative p", 0.4, 0.2, -0.1},
		{"p above one", 0.4, 0.2, 1.1},
		{"infinite la", math.Inf(1), 0.2, 0.5},
		{"NaN psi", 0.4, math.NaN(), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBirthDeathModel(tt.la, tt.psi, tt.p, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestNewBirthDeathModel_ZeroRatesAreValid(t *testing.T) {
	// Rate 0 means that event type never fires - a legal model.
	_, err := NewBirthDeathModel(0, 0, 0, nil)
	assert.NoError(t, err)
}

func TestNewContactModel_ValidParameters(t *testing.T) {
	base, err := NewBirthDeathModel(0.4, 0.1, 0.5, nil)
	require.NoError(t, err)

	cm, err := NewContactModel(base, 0.8, 0.05)
	require.NoError(t, err)

	// The decorator changes no base property
	assert.Equal(t, base.BirthRate(), cm.BirthRate())
	assert.Equal(t, base.RemovalRate(), cm.RemovalRate())
	assert.Equal(t, base.SamplingProb(), cm.SamplingProb())

	assert.Equal(t, 0.8, cm.NotificationProb())
	assert.Equal(t, 0.05, cm.NotifiedRemovalRate())
}

func TestNewContactModel_InvalidParameters(t *testing.T) {
	base, err := NewBirthDeathModel(0.4, 0.1, 0.5, nil)
	require.NoError(t, err)

	tests := []struct {
		name         string
		base         Model
		upsilon, phi float64
	}{
		{"nil base", nil, 0.5, 0.1},
		{"negative upsilon", base, -0.1, 0.1},
		{"upsilon above one", base, 1.1, 0.1},
		{"negative phi", base, 0.5, -0.1},
		{"infinite phi", base, 0.5, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewContactModel(tt.base, tt.upsilon, tt.phi)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestNotifier_DiscoveredByTypeAssertion(t *testing.T) {
	base, _ := NewBirthDeathModel(0.4, 0.1, 0.5, nil)
	cm, _ := NewContactModel(base, 0.8, 0.05)

	var plain Model = base
	var notified Model = cm

	_, ok := plain.(Notifier)
	assert.False(t, ok, "plain model must not expose the notification capability")

	n, ok := notified.(Notifier)
	require.True(t, ok)
	assert.Equal(t, 0.8, n.NotificationProb())
}
