package retry

import (
	"fmt"
	"runtime/debug"
	"time"

	"github.com/FrenchMajesty/turbo-retry/utils/logger"
	"github.com/google/uuid"
)

const (
	defaultRetries = 3
	defaultWait    = 3 * time.Second
)

// Attempt is a single execution of a wrapped operation: a value and an error,
// consumed immediately by the predicate and the logging sink.
type Attempt func() (any, error)

// Options configures a Retry controller. The zero value of a field means
// "use the default"; New fills defaults in and the controller is immutable
// afterwards.
type Options struct {
	// Retry is the condition deciding whether an outcome warrants another
	// attempt. Defaults to retrying on any error.
	Retry Predicate
	// Retries is the attempt cap, including the first attempt. Defaults to 3.
	// With Retries of 1 no retry ever occurs.
	Retries int
	// Wait is the base wait between attempts. Defaults to 3s. It acts as the
	// floor of the backoff range; the ceiling is max(Wait, 10s).
	Wait time.Duration
	// WaitBefore is slept once before the very first attempt. Defaults to 0.
	WaitBefore time.Duration
	// Jitter replaces exponential backoff with uniform random delays.
	Jitter bool
	// Name identifies the default logging sink when Logger is nil, mirroring
	// named-logger conventions. Empty means the root sink.
	Name string
	// Logger is the sink attempt outcomes are written to. When nil, the
	// process-wide default sink is resolved at construction time.
	Logger logger.Logger
	// Verbose additionally logs scheduling decisions (chosen delays, per-call
	// invocation ids) through the sink.
	Verbose bool
}

// Retry orchestrates the attempt loop: it invokes the wrapped operation,
// consults the predicate, sleeps per the wait scheduler, logs each outcome,
// and surfaces an *ExhaustedError once attempts run out.
//
// A controller is immutable after New and safe for concurrent use; one
// controller may wrap many targets and every call owns its own attempt
// counter, so concurrent calls through the same wrapped function never share
// state.
type Retry struct {
	predicate  Predicate
	retries    int
	waitBefore time.Duration
	waiter     waiter
	logger     logger.Logger
	verbose    bool

	// sleep is time.Sleep, swappable in tests
	sleep func(time.Duration)
}

// New builds a Retry controller from the options, filling in defaults for
// zero-valued fields and resolving the logging sink.
func New(opts Options) *Retry {
	predicate := opts.Retry
	if predicate == nil {
		predicate = onAnyError
	}

	retries := opts.Retries
	if retries < 1 {
		retries = defaultRetries
	}

	wait := opts.Wait
	if wait == 0 {
		wait = defaultWait
	} else if wait < 0 {
		wait = 0
	}

	sink := opts.Logger
	if sink == nil {
		sink = logger.Named(opts.Name)
	}

	return &Retry{
		predicate:  predicate,
		retries:    retries,
		waitBefore: opts.WaitBefore,
		waiter:     newWaiter(wait, opts.Jitter),
		logger:     sink,
		verbose:    opts.Verbose,
		sleep:      time.Sleep,
	}
}

// Call runs fn under the retry policy and returns the final outcome: the
// operation's own value/error when the predicate accepts it, or an
// *ExhaustedError once the attempt cap is reached. A nil fn is a misuse and
// fails immediately with a *ConfigError.
func (r *Retry) Call(name string, fn Attempt) (any, error) {
	if fn == nil {
		return nil, &ConfigError{Reason: "Call invoked with no target; did you mean to pass the attempt function?"}
	}
	if name == "" {
		name = funcName(fn)
	}
	return r.run(name, fn)
}

// Func returns a wrapper around fn that applies the retry policy on every
// invocation. The wrapper keeps fn's name for logging; pass an explicit name
// for anonymous functions.
func (r *Retry) Func(name string, fn Attempt) (Attempt, error) {
	if fn == nil {
		return nil, &ConfigError{Reason: "Func invoked with no target; did you mean to pass the function itself?"}
	}
	if name == "" {
		name = funcName(fn)
	}
	return func() (any, error) {
		return r.run(name, fn)
	}, nil
}

// Do runs a typed operation under the controller's policy. It is a generic
// convenience over Call that spares callers the type assertion.
func Do[T any](r *Retry, name string, fn func() (T, error)) (T, error) {
	var zero T
	if fn == nil {
		return zero, &ConfigError{Reason: "Do invoked with no target; did you mean to pass the function itself?"}
	}
	if name == "" {
		name = funcName(fn)
	}
	value, err := r.run(name, func() (any, error) {
		return fn()
	})
	typed, _ := value.(T)
	return typed, err
}

// run is the attempt loop. Every call gets its own attempt counter and
// invocation id; nothing is shared with concurrent calls.
func (r *Retry) run(name string, fn Attempt) (any, error) {
	id := shortID()

	if r.waitBefore > 0 {
		if r.verbose {
			r.logger.Warningf("Retry %s [%s]: waiting %v before first attempt", name, id, r.waitBefore)
		}
		r.sleep(r.waitBefore)
	}

	for attempt := 1; ; attempt++ {
		value, err := fn()

		again := r.predicate.ShouldRetry(value, err)
		exhausted := again && attempt >= r.retries
		r.logAttempt(name, attempt, value, err, exhausted)

		if !again {
			// Accepted outcome: the value on success, the original error
			// unmodified when it isn't retryable.
			return value, err
		}

		if exhausted {
			exhaustErr := &ExhaustedError{Name: name, Attempts: attempt}
			r.logger.Errorf("%s", exhaustErr.Error())
			return nil, exhaustErr
		}

		delay := r.waiter.delay(attempt)
		if r.verbose {
			r.logger.Warningf("Retry %s [%s]: sleeping %v before attempt %d/%d", name, id, delay, attempt+1, r.retries)
		}
		r.sleep(delay)
	}
}

// logAttempt writes the per-attempt outcome line. The final exhausting
// failure additionally carries the goroutine stack for post-mortem context.
func (r *Retry) logAttempt(name string, attempt int, value any, err error, exhausted bool) {
	if err != nil {
		result := fmt.Sprintf("%T", err)
		if exhausted {
			result = fmt.Sprintf("%T: %v\n%s", err, err, debug.Stack())
		}
		r.logger.Warningf("Retry %s #%d/%d, raised: %s", name, attempt, r.retries, result)
		return
	}
	r.logger.Warningf("Retry %s #%d/%d, returned: %v", name, attempt, r.retries, value)
}

// shortID returns a compact per-invocation identifier for verbose log lines
func shortID() string {
	return uuid.New().String()[:6]
}
