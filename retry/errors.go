package retry

import "fmt"

// ExhaustedError is surfaced when the attempt cap is reached while the
// predicate still calls for a retry. It replaces the final attempt's own
// outcome: callers never see the last underlying error, only this one.
type ExhaustedError struct {
	Name     string // name of the wrapped function
	Attempts int    // attempts reached before giving up
}

var _ error = (*ExhaustedError)(nil)

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("function '%s' failed; exceeded '%d' retries", e.Name, e.Attempts)
}

// ConfigError reports a misused wrap call: a nil target, a non-function, or a
// function whose signature cannot carry a retry outcome. It is always raised
// at decoration time, never deferred to call time.
type ConfigError struct {
	Reason string
}

var _ error = (*ConfigError)(nil)

func (e *ConfigError) Error() string {
	return "retry: " + e.Reason
}
