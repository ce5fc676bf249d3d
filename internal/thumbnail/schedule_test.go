package thumbnail

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maauso/clipthumb/internal/media"
)

func TestSchedule(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		count    int
		want     []float64
	}{
		{"single frame", 10, 1, []float64{0}},
		{"even split", 10, 4, []float64{0, 2.5, 5, 7.5}},
		{"ten frames", 100, 10, []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90}},
		{"zero duration", 0, 3, []float64{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Schedule(tt.duration, tt.count)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.want, got, 1e-9)
		})
	}
}

func TestSchedule_Properties(t *testing.T) {
	durations := []float64{0.04, 0.5, 1, 3.3333, 59.99, 600, 7200.123}
	for _, d := range durations {
		for n := 1; n <= 60; n++ {
			ts, err := Schedule(d, n)
			require.NoError(t, err)
			require.Len(t, ts, n)
			assert.Zero(t, ts[0])
			assert.Less(t, ts[n-1], d, "duration=%v count=%d", d, n)
			for i := 1; i < n; i++ {
				assert.Greater(t, ts[i], ts[i-1], "duration=%v count=%d i=%d", d, n, i)
			}
		}
	}
}

func TestSchedule_InvalidArguments(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := Schedule(10, n)
		assert.ErrorIs(t, err, media.ErrInvalidArgument)
	}
	for _, d := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := Schedule(d, 3)
		assert.ErrorIs(t, err, media.ErrInvalidArgument)
	}
}
