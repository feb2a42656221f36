package retry

import (
	"math/rand"
	"time"
)

const (
	// backoffBase seeds the exponential curve: delay = backoffBase * 2^attempt,
	// so the first retry waits 4s, then 8s, 16s, ...
	backoffBase = 2 * time.Second

	// maxDefaultWait caps backoff growth unless Wait is configured higher,
	// in which case the configured Wait becomes both floor and ceiling.
	maxDefaultWait = 10 * time.Second
)

// waiter computes the delay before the next attempt, given the 1-based number
// of the attempt that just completed.
type waiter interface {
	delay(attempt int) time.Duration
}

// newWaiter picks the scheduler for the options: exponential backoff by
// default, uniform random sampling when jitter is enabled. Both are clamped
// to the inclusive range [wait, max(wait, 10s)].
func newWaiter(wait time.Duration, jitter bool) waiter {
	max := wait
	if max < maxDefaultWait {
		max = maxDefaultWait
	}
	if jitter {
		return randomWait{min: wait, max: max}
	}
	return exponentialWait{min: wait, max: max}
}

// exponentialWait doubles the delay after every attempt, clamped to [min, max].
// The floor only binds once the exponential term would fall below it.
type exponentialWait struct {
	min, max time.Duration
}

var _ waiter = exponentialWait{}

func (w exponentialWait) delay(attempt int) time.Duration {
	d := backoffBase
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= w.max {
			d = w.max
			break
		}
	}
	if d < w.min {
		d = w.min
	}
	return d
}

// randomWait samples a delay uniformly from [min, max], independently per
// attempt. There is no growth between attempts; the randomness is the point,
// de-synchronizing retry storms across callers.
type randomWait struct {
	min, max time.Duration
}

var _ waiter = randomWait{}

func (w randomWait) delay(attempt int) time.Duration {
	if w.max <= w.min {
		return w.min
	}
	return w.min + time.Duration(rand.Int63n(int64(w.max-w.min)+1))
}
