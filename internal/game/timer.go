package game

import "time"

// phaseTimer owns at most one pending callback. Scheduling replaces and
// cancels the previous one, and a generation counter lets a fire that lost
// the race with a cancel detect it is stale. All methods are called with
// the room lock held; the fire callback must re-acquire it and then check
// consume before touching room state.
type phaseTimer struct {
	timer *time.Timer
	gen   uint64
}

// schedule arms the timer, replacing any pending one. fire runs on its own
// goroutine after d with the generation it was armed under.
func (t *phaseTimer) schedule(d time.Duration, fire func(gen uint64)) {
	t.cancel()
	gen := t.gen
	t.timer = time.AfterFunc(d, func() { fire(gen) })
}

// cancel stops any pending timer and invalidates outstanding fires.
// Idempotent.
func (t *phaseTimer) cancel() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++
}

// consume reports whether a fire with the given generation is still the
// live one, and if so marks the timer spent.
func (t *phaseTimer) consume(gen uint64) bool {
	if t.timer == nil || t.gen != gen {
		return false
	}
	t.timer = nil
	t.gen++
	return true
}
