package srs

import "math"

// DefaultDecay is the forgetting-curve exponent of FSRS-4.5. With it the
// derived factor is 19/81.
const DefaultDecay = -0.5

// TargetRetention is the retrievability a card has when the elapsed time equals
// its stability. It fixes the curve's factor for a given decay.
const TargetRetention = 0.9

// Params defines all configurable parameters for the recall model
type Params struct {
	// Decay is the power-law exponent of the forgetting curve. Must be negative.
	Decay float64
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance
type ParamsConfig struct {
	Decay float64
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		Decay: DefaultDecay,
	}
}

// NewParams creates a new Params instance with custom configuration.
// Zero-valued fields keep their defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.Decay != 0 {
		params.Decay = config.Decay
	}

	return params
}

// Factor returns the curve factor implied by the decay, chosen so that
// recall(S, S) == TargetRetention.
func (p *Params) Factor() float64 {
	return math.Pow(TargetRetention, 1.0/p.Decay) - 1.0
}
