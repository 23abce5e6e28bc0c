package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClock_Advance(t *testing.T) {
	c := New()
	assert.False(t, c.Started())

	steps := []struct {
		name      string
		timestamp float64
		wantDelta float64
		wantNow   float64
	}{
		{"first_frame_has_zero_delta", 100, 0, 100},
		{"regular_frame", 100.5, 0.5, 100.5},
		{"repeated_timestamp", 100.5, 0, 100.5},
		{"backwards_timestamp_ignored", 99, 0, 100.5},
		{"resumes_from_latest", 101, 0.5, 101},
	}

	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			assert.InDelta(t, step.wantDelta, c.Advance(step.timestamp), 1e-12)
			assert.InDelta(t, step.wantNow, c.Now(), 1e-12)
			assert.True(t, c.Started())
		})
	}
}
