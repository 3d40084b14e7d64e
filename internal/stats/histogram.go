package stats

import (
	"errors"
	"fmt"
	"math"
)

// ErrBinMismatch is returned when merging histograms with different bin counts.
var ErrBinMismatch = errors.New("histogram bin counts differ")

// Histogram is a fixed-bin distribution over [0, 1]. Bins have equal width;
// the value 1 falls into the last bin.
//
// Besides the bins it keeps a running count and sum of the inserted values, so
// Mean is exact rather than reconstructed from bin midpoints.
type Histogram struct {
	bins  []uint64
	count uint64
	sum   float64
}

// NewHistogram creates an empty histogram with n bins. n below 1 is treated as 1.
func NewHistogram(n int) Histogram {
	if n < 1 {
		n = 1
	}
	return Histogram{bins: make([]uint64, n)}
}

// Update records one value. The bin is chosen from the value clamped to
// [0, 1]; the sum takes the value as given. NaN is recorded as 0.
func (h *Histogram) Update(value float64) {
	if len(h.bins) == 0 {
		h.bins = make([]uint64, DefaultHistogramBins)
	}
	if math.IsNaN(value) {
		value = 0
	}

	n := len(h.bins)
	v := math.Max(0, math.Min(1, value))
	idx := int(v * float64(n))
	if idx > n-1 {
		idx = n - 1
	}

	h.bins[idx]++
	h.count++
	h.sum += value
}

// Bins returns a copy of the bin counts.
func (h Histogram) Bins() []uint64 {
	out := make([]uint64, len(h.bins))
	copy(out, h.bins)
	return out
}

// Count returns the number of recorded values.
func (h Histogram) Count() uint64 {
	return h.count
}

// Sum returns the sum of the recorded values.
func (h Histogram) Sum() float64 {
	return h.sum
}

// Mean returns the average of all recorded values, or 0 when nothing has been
// recorded.
func (h Histogram) Mean() float64 {
	if h.count == 0 {
		return 0
	}
	return h.sum / float64(h.count)
}

// Merge adds other's bins, count and sum into h.
func (h *Histogram) Merge(other Histogram) error {
	if len(other.bins) == 0 {
		return nil
	}
	if len(h.bins) == 0 {
		h.bins = make([]uint64, len(other.bins))
	}
	if len(h.bins) != len(other.bins) {
		return fmt.Errorf("%w: %d and %d", ErrBinMismatch, len(h.bins), len(other.bins))
	}

	for i, c := range other.bins {
		h.bins[i] += c
	}
	h.count += other.count
	h.sum += other.sum
	return nil
}
