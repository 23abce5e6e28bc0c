package clock

import (
	"container/heap"
)

// Token identifies a scheduled callback. The zero Token is never issued.
type Token uint64

type timer struct {
	at    float64
	seq   uint64
	token Token
	fn    func()
	index int
}

type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].at != h[j].at {
		return h[i].at < h[j].at
	}
	return h[i].seq < h[j].seq
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// Scheduler runs one-shot callbacks once the session clock reaches their
// deadline. Callbacks with equal deadlines run in scheduling order.
// A Scheduler is not safe for concurrent use.
type Scheduler struct {
	queue  timerHeap
	timers map[Token]*timer
	seq    uint64
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{timers: make(map[Token]*timer)}
}

// Schedule arranges for fn to run at the first Advance whose time is at or
// after at.
func (s *Scheduler) Schedule(at float64, fn func()) Token {
	s.seq++
	t := &timer{at: at, seq: s.seq, token: Token(s.seq), fn: fn}
	heap.Push(&s.queue, t)
	s.timers[t.token] = t
	return t.token
}

// Cancel removes a pending callback. It reports false if the token already
// fired, was already canceled or was never issued.
func (s *Scheduler) Cancel(token Token) bool {
	t, ok := s.timers[token]
	if !ok {
		return false
	}
	delete(s.timers, token)
	heap.Remove(&s.queue, t.index)
	return true
}

// Pending reports whether token is still waiting to fire
func (s *Scheduler) Pending(token Token) bool {
	_, ok := s.timers[token]
	return ok
}

// Deadline returns the time a pending token fires at
func (s *Scheduler) Deadline(token Token) (float64, bool) {
	t, ok := s.timers[token]
	if !ok {
		return 0, false
	}
	return t.at, true
}

// Len returns the number of pending callbacks
func (s *Scheduler) Len() int {
	return len(s.queue)
}

// Advance fires every callback due at or before now and returns how many
// ran. Callbacks may schedule or cancel other callbacks; newly scheduled
// ones that are already due run in the same call.
func (s *Scheduler) Advance(now float64) int {
	fired := 0
	for len(s.queue) > 0 && s.queue[0].at <= now {
		t := heap.Pop(&s.queue).(*timer)
		delete(s.timers, t.token)
		t.fn()
		fired++
	}
	return fired
}

// Clear cancels every pending callback
func (s *Scheduler) Clear() {
	s.queue = nil
	clear(s.timers)
}
