package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_FiresInDeadlineOrder(t *testing.T) {
	s := NewScheduler()
	var order []string

	s.Schedule(3, func() { order = append(order, "c") })
	s.Schedule(1, func() { order = append(order, "a") })
	s.Schedule(2, func() { order = append(order, "b1") })
	s.Schedule(2, func() { order = append(order, "b2") })

	assert.Equal(t, 0, s.Advance(0.5))
	assert.Equal(t, 3, s.Advance(2))
	assert.Equal(t, []string{"a", "b1", "b2"}, order)

	assert.Equal(t, 1, s.Advance(10))
	assert.Equal(t, []string{"a", "b1", "b2", "c"}, order)
	assert.Zero(t, s.Len())
}

func TestScheduler_FiresExactlyOnceAtDeadline(t *testing.T) {
	s := NewScheduler()
	calls := 0
	token := s.Schedule(10, func() { calls++ })

	s.Advance(9.999)
	assert.Equal(t, 0, calls)
	assert.True(t, s.Pending(token))

	s.Advance(10)
	s.Advance(11)
	assert.Equal(t, 1, calls)
	assert.False(t, s.Pending(token))
	assert.False(t, s.Cancel(token), "fired token can't be canceled")
}

func TestScheduler_Cancel(t *testing.T) {
	s := NewScheduler()
	var fired []int

	tokens := make([]Token, 5)
	for i := range tokens {
		i := i
		tokens[i] = s.Schedule(float64(i), func() { fired = append(fired, i) })
	}

	require.True(t, s.Cancel(tokens[2]))
	assert.False(t, s.Cancel(tokens[2]))
	assert.False(t, s.Cancel(Token(999)))

	at, ok := s.Deadline(tokens[4])
	assert.True(t, ok)
	assert.Equal(t, 4.0, at)
	_, ok = s.Deadline(tokens[2])
	assert.False(t, ok)

	s.Advance(100)
	assert.Equal(t, []int{0, 1, 3, 4}, fired)
}

func TestScheduler_CallbackCancelsSibling(t *testing.T) {
	s := NewScheduler()
	var fired []string
	var restart Token

	s.Schedule(5, func() {
		fired = append(fired, "shoot")
		s.Cancel(restart)
	})
	restart = s.Schedule(5, func() { fired = append(fired, "timer") })

	s.Advance(5)
	assert.Equal(t, []string{"shoot"}, fired)
}

func TestScheduler_CallbackSchedulesDueWork(t *testing.T) {
	s := NewScheduler()
	var fired []string

	s.Schedule(1, func() {
		fired = append(fired, "outer")
		s.Schedule(1, func() { fired = append(fired, "inner") })
		s.Schedule(50, func() { fired = append(fired, "later") })
	})

	assert.Equal(t, 2, s.Advance(1))
	assert.Equal(t, []string{"outer", "inner"}, fired)
	assert.Equal(t, 1, s.Len())
}

func TestScheduler_Clear(t *testing.T) {
	s := NewScheduler()
	token := s.Schedule(1, func() { t.Fatal("cleared callback ran") })
	s.Schedule(2, func() { t.Fatal("cleared callback ran") })

	s.Clear()

	assert.Zero(t, s.Len())
	assert.False(t, s.Pending(token))
	assert.Zero(t, s.Advance(100))
}
