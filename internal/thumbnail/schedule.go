package thumbnail

import (
	"fmt"
	"math"

	"github.com/maauso/clipthumb/internal/media"
)

// Schedule returns count evenly spaced timestamps covering [0, duration).
// The i-th timestamp is i*duration/count, so the first is always 0 and the
// last is strictly below duration when duration is positive. A zero
// duration yields count zeros.
func Schedule(duration float64, count int) ([]float64, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: thumbnail count must be at least 1, got %d", media.ErrInvalidArgument, count)
	}
	if duration < 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return nil, fmt.Errorf("%w: duration must be a finite non-negative number, got %v", media.ErrInvalidArgument, duration)
	}

	interval := duration / float64(count)
	timestamps := make([]float64, count)
	for i := range timestamps {
		timestamps[i] = float64(i) * interval
	}
	return timestamps, nil
}
