package srs

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func assertFloat(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %.9f, want %.9f", name, got, want)
	}
}

func TestNewRecallModel(t *testing.T) {
	t.Parallel() // Enable parallel execution

	testCases := []struct {
		name    string
		params  *Params
		wantErr bool
	}{
		{name: "nil params use defaults", params: nil},
		{name: "negative decay", params: &Params{Decay: -0.2}},
		{name: "zero decay", params: &Params{Decay: 0}, wantErr: true},
		{name: "positive decay", params: &Params{Decay: 0.5}, wantErr: true},
		{name: "NaN decay", params: &Params{Decay: math.NaN()}, wantErr: true},
		{name: "infinite decay", params: &Params{Decay: math.Inf(-1)}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := NewRecallModel(tc.params)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidDecay) {
					t.Errorf("Expected ErrInvalidDecay, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if m.Decay() >= 0 {
				t.Errorf("Expected negative decay, got %f", m.Decay())
			}
		})
	}
}

func TestRecallAtZero(t *testing.T) {
	t.Parallel() // Enable parallel execution
	m := NewDefaultRecallModel()

	for _, s := range []float64{0.01, 1, 5, 365, 36500} {
		assertFloat(t, "R(0, S)", m.Recall(0, s), 1.0)
	}
}

func TestRecallAtStability(t *testing.T) {
	t.Parallel() // Enable parallel execution
	m := NewDefaultRecallModel()

	// By definition of stability, R(S, S) is the target retention.
	for _, s := range []float64{0.5, 3, 42} {
		assertFloat(t, "R(S, S)", m.Recall(s, s), TargetRetention)
	}
}

func TestRecallKnownValue(t *testing.T) {
	t.Parallel() // Enable parallel execution
	m := NewDefaultRecallModel()

	// (1 + 19/81 * 10/5)^-0.5 = (119/81)^-0.5
	assertFloat(t, "R(10, 5)", m.Recall(10, 5), math.Sqrt(81.0/119.0))
}

func TestRecallStrictlyDecreasingInElapsed(t *testing.T) {
	t.Parallel() // Enable parallel execution
	m := NewDefaultRecallModel()

	prev := m.Recall(0, 7)
	for _, elapsed := range []float64{0.001, 0.5, 1, 2, 7, 30, 365, 10000} {
		r := m.Recall(elapsed, 7)
		if r >= prev {
			t.Errorf("R(%v, 7) = %f should be < %f", elapsed, r, prev)
		}
		if r < 0 || r > 1 {
			t.Errorf("R(%v, 7) = %f outside [0, 1]", elapsed, r)
		}
		prev = r
	}
}

func TestRecallIncreasingInStability(t *testing.T) {
	t.Parallel() // Enable parallel execution
	m := NewDefaultRecallModel()

	prev := m.Recall(10, 0.1)
	for _, s := range []float64{1, 5, 20, 100} {
		r := m.Recall(10, s)
		if r <= prev {
			t.Errorf("R(10, %v) = %f should be > %f", s, r, prev)
		}
		prev = r
	}
}

func TestRecallEdgeInputs(t *testing.T) {
	t.Parallel() // Enable parallel execution
	m := NewDefaultRecallModel()

	assertFloat(t, "negative elapsed", m.Recall(-3, 5), 1.0)
	assertFloat(t, "zero stability", m.Recall(1, 0), 0)
	assertFloat(t, "negative stability", m.Recall(1, -2), 0)
	assertFloat(t, "infinite elapsed", m.Recall(math.Inf(1), 5), 0)
}
