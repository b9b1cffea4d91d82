package sim

import (
	"fmt"
	"math"
)

// Model exposes the per-interval parameters the engine needs to draw the
// next event for a lineage. Implementations are immutable values.
type Model interface {
	// BirthRate is the transmission rate λ (>= 0).
	BirthRate() float64
	// RemovalRate is the removal rate ψ (>= 0).
	RemovalRate() float64
	// SamplingProb is the probability p that a removal is observed.
	SamplingProb() float64
	// Recipients is the recipient-count distribution for birth events.
	Recipients() RecipientSampler
}

// Notifier is the optional contact-notification capability. The engine
// discovers it by type assertion; plain models never trigger notification.
type Notifier interface {
	// NotificationProb is the probability υ that a sampled individual
	// notifies its contacts.
	NotificationProb() float64
	// NotifiedRemovalRate is the removal rate φ applied to notified
	// lineages instead of ψ.
	NotifiedRemovalRate() float64
}

// BirthDeathModel is a plain birth-death-sampling rate model.
type BirthDeathModel struct {
	la         float64
	psi        float64
	p          float64
	recipients RecipientSampler
}

// NewBirthDeathModel validates the parameter domains and builds a model.
// A nil recipients sampler defaults to one-to-one transmission.
func NewBirthDeathModel(la, psi, p float64, recipients RecipientSampler) (*BirthDeathModel, error) {
	if math.IsNaN(la) || math.IsInf(la, 0) || la < 0 {
		return nil, fmt.Errorf("transmission rate la=%v must be finite and >= 0: %w", la, ErrInvalidParameter)
	}
	if math.IsNaN(psi) || math.IsInf(psi, 0) || psi < 0 {
		return nil, fmt.Errorf("removal rate psi=%v must be finite and >= 0: %w", psi, ErrInvalidParameter)
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return nil, fmt.Errorf("sampling probability p=%v must be in [0,1]: %w", p, ErrInvalidParameter)
	}
	if recipients == nil {
		recipients = SingleRecipient{}
	}
	return &BirthDeathModel{la: la, psi: psi, p: p, recipients: recipients}, nil
}

func (m *BirthDeathModel) BirthRate() float64           { return m.la }
func (m *BirthDeathModel) RemovalRate() float64         { return m.psi }
func (m *BirthDeathModel) SamplingProb() float64        { return m.p }
func (m *BirthDeathModel) Recipients() RecipientSampler { return m.recipients }

// ContactModel decorates a base model with contact notification.
// With υ=0 it behaves exactly like the base model: no notification event
// is ever drawn and the RNG stream is untouched.
type ContactModel struct {
	Model
	upsilon float64
	phi     float64
}

// NewContactModel validates the notification parameters and wraps base.
func NewContactModel(base Model, upsilon, phi float64) (*ContactModel, error) {
	if base == nil {
		return nil, fmt.Errorf("contact model needs a base model: %w", ErrInvalidParameter)
	}
	if math.IsNaN(upsilon) || upsilon < 0 || upsilon > 1 {
		return nil, fmt.Errorf("notification probability upsilon=%v must be in [0,1]: %w", upsilon, ErrInvalidParameter)
	}
	if math.IsNaN(phi) || math.IsInf(phi, 0) || phi < 0 {
		return nil, fmt.Errorf("notified removal rate phi=%v must be finite and >= 0: %w", phi, ErrInvalidParameter)
	}
	return &ContactModel{Model: base, upsilon: upsilon, phi: phi}, nil
}

func (m *ContactModel) NotificationProb() float64    { return m.upsilon }
func (m *ContactModel) NotifiedRemovalRate() float64 { return m.phi }
