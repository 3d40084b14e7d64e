package srs

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDecay is returned when the forgetting-curve decay is not negative.
var ErrInvalidDecay = errors.New("srs: decay must be negative")

// RecallModel computes retrievability: the probability that a card is still
// recalled after some days have passed since its last review.
//
// It is a pure function of its inputs. The decay and factor are computed once
// at construction.
type RecallModel struct {
	decay  float64
	factor float64
}

// NewDefaultRecallModel creates a RecallModel with default parameters.
func NewDefaultRecallModel() *RecallModel {
	m, _ := NewRecallModel(NewDefaultParams())
	return m
}

// NewRecallModel creates a RecallModel from params.
func NewRecallModel(params *Params) (*RecallModel, error) {
	if params == nil {
		params = NewDefaultParams()
	}
	if !(params.Decay < 0) || math.IsInf(params.Decay, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidDecay, params.Decay)
	}
	return &RecallModel{
		decay:  params.Decay,
		factor: params.Factor(),
	}, nil
}

// Recall returns R(t, S) = (1 + factor*t/S)^decay, which is 1 at t = 0,
// TargetRetention at t = S, and decreases toward 0 as t grows.
//
// Negative elapsed time is treated as 0. Stability must be positive; for
// non-positive stability Recall returns 0 instead of dividing by zero.
func (m *RecallModel) Recall(elapsedDays, stability float64) float64 {
	if !(stability > 0) {
		return 0
	}
	if !(elapsedDays > 0) {
		elapsedDays = 0
	}

	r := math.Pow(1+m.factor*elapsedDays/stability, m.decay)
	return math.Max(0, math.Min(1, r))
}

// Decay returns the curve exponent.
func (m *RecallModel) Decay() float64 { return m.decay }

// Factor returns the curve factor.
func (m *RecallModel) Factor() float64 { return m.factor }
