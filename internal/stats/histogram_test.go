package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistogramUpdateBins(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		value   float64
		wantBin int
		wantSum float64
	}{
		{name: "zero", value: 0, wantBin: 0, wantSum: 0},
		{name: "inside first bin", value: 0.19, wantBin: 0, wantSum: 0.19},
		{name: "inside second bin", value: 0.21, wantBin: 1, wantSum: 0.21},
		{name: "middle", value: 0.5, wantBin: 2, wantSum: 0.5},
		{name: "one goes to last bin", value: 1, wantBin: 4, wantSum: 1},
		{name: "above range is clamped", value: 1.7, wantBin: 4, wantSum: 1.7},
		{name: "below range is clamped", value: -0.3, wantBin: 0, wantSum: -0.3},
		{name: "NaN counts as zero", value: math.NaN(), wantBin: 0, wantSum: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHistogram(5)
			h.Update(tc.value)

			want := make([]uint64, 5)
			want[tc.wantBin] = 1
			assert.Equal(t, want, h.Bins())
			assert.Equal(t, uint64(1), h.Count())
			assert.InDelta(t, tc.wantSum, h.Sum(), 1e-12)
		})
	}
}

func TestHistogramMean(t *testing.T) {
	t.Parallel()

	h := NewHistogram(5)
	assert.Zero(t, h.Mean(), "empty histogram has mean 0")

	for _, v := range []float64{0.1, 0.3, 0.95, 0.45} {
		h.Update(v)
	}
	assert.InDelta(t, 0.45, h.Mean(), 1e-12)
	assert.Equal(t, []uint64{1, 1, 1, 0, 1}, h.Bins())
}

func TestHistogramZeroValue(t *testing.T) {
	t.Parallel()

	var h Histogram
	h.Update(0.99)
	assert.Len(t, h.Bins(), DefaultHistogramBins)
	assert.Equal(t, uint64(1), h.Bins()[DefaultHistogramBins-1])
}

func TestNewHistogramMinimumOneBin(t *testing.T) {
	t.Parallel()

	h := NewHistogram(0)
	h.Update(0.7)
	assert.Equal(t, []uint64{1}, h.Bins())
}

func TestHistogramMerge(t *testing.T) {
	t.Parallel()

	a := NewHistogram(5)
	b := NewHistogram(5)
	all := NewHistogram(5)
	for i, v := range []float64{0.05, 0.5, 0.5, 0.75, 1, 0.25} {
		if i%2 == 0 {
			a.Update(v)
		} else {
			b.Update(v)
		}
		all.Update(v)
	}

	require.NoError(t, a.Merge(b))
	assert.Equal(t, all.Bins(), a.Bins())
	assert.Equal(t, all.Count(), a.Count())
	assert.InDelta(t, all.Sum(), a.Sum(), 1e-12)

	var empty Histogram
	require.NoError(t, empty.Merge(all))
	assert.Equal(t, all.Bins(), empty.Bins())

	require.NoError(t, a.Merge(Histogram{}), "merging an empty histogram is a no-op")

	err := a.Merge(NewHistogram(10))
	assert.ErrorIs(t, err, ErrBinMismatch)
}

func TestHistogramBinsIsCopy(t *testing.T) {
	t.Parallel()

	h := NewHistogram(5)
	h.Update(0.1)
	bins := h.Bins()
	bins[0] = 99
	assert.Equal(t, uint64(1), h.Bins()[0])
}
