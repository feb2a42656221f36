package retry

import (
	"errors"
	"net"
	"os"
	"syscall"
)

// Predicate decides, given an attempt outcome, whether another attempt is
// warranted. Implementations must be pure functions of the outcome: no side
// effects, safe to reuse across concurrent invocations of the same controller.
type Predicate interface {
	// ShouldRetry returns true if the outcome warrants another attempt.
	// value is the attempt's returned value, err its returned error (nil on success).
	ShouldRetry(value any, err error) bool
}

// PredicateFunc adapts a plain function to the Predicate interface
type PredicateFunc func(value any, err error) bool

func (f PredicateFunc) ShouldRetry(value any, err error) bool {
	return f(value, err)
}

// onAnyError is the default predicate: retry whenever the attempt failed.
var onAnyError = PredicateFunc(func(value any, err error) bool {
	return err != nil
})

// transientErrors returns the error kinds permitted for retry when OnErrors
// is given no targets: operation timeouts, broken pipes, connection resets.
func transientErrors() []error {
	return []error{
		os.ErrDeadlineExceeded,
		syscall.EPIPE,
		syscall.ECONNRESET,
	}
}

type errorsPredicate struct {
	targets []error
	// timeouts additionally matches any net.Error that reports Timeout(),
	// which covers dial and read deadline failures that don't unwrap to
	// os.ErrDeadlineExceeded.
	timeouts bool
}

var _ Predicate = (*errorsPredicate)(nil)

// OnErrors builds a predicate that retries when the attempt's error matches
// one of the given targets via errors.Is. With no targets it falls back to
// the transient network set: timeouts, broken pipe, connection reset. Any
// error outside the set is never retried and propagates as-is.
func OnErrors(targets ...error) Predicate {
	if len(targets) == 0 {
		return &errorsPredicate{targets: transientErrors(), timeouts: true}
	}
	return &errorsPredicate{targets: targets}
}

func (p *errorsPredicate) ShouldRetry(value any, err error) bool {
	if err == nil {
		return false
	}
	for _, target := range p.targets {
		if errors.Is(err, target) {
			return true
		}
	}
	if p.timeouts {
		var nerr net.Error
		if errors.As(err, &nerr) && nerr.Timeout() {
			return true
		}
	}
	return false
}

// OnFalse builds a predicate that retries when the attempt returned the
// boolean false. Only a literal false triggers a retry; zero values, empty
// strings, empty containers and nil do not.
func OnFalse() Predicate {
	return PredicateFunc(func(value any, err error) bool {
		b, ok := value.(bool)
		return ok && !b
	})
}
