// Package retry provides a flexible and configurable retry mechanism with exponential backoff
// for handling transient failures in network requests and other operations.
//
// The package supports:
//   - Configurable retry attempts with exponential backoff or random jitter
//   - Predicate-based retry decisions on errors or returned values
//   - Decorating plain functions, arbitrary function signatures, and structs of functions
//   - Logging of every attempt through a pluggable warning/error sink
//
// Basic Usage:
//
//	r := retry.New(retry.Options{
//	    Retry:   retry.OnErrors(), // transient network errors
//	    Retries: 5,
//	    Wait:    3 * time.Second,
//	})
//
//	value, err := retry.Do(r, "FetchUser", func() (*User, error) {
//	    return client.FetchUser(id)
//	})
//
// Configuration:
//
// The Options struct allows fine-tuning of retry behavior:
//   - Retry: predicate deciding whether an outcome warrants another attempt
//     (default: retry on any error)
//   - Retries: maximum number of attempts, including the first (default: 3)
//   - Wait: base wait between attempts (default: 3s)
//   - WaitBefore: one-time wait before the first attempt (default: 0)
//   - Jitter: replace exponential backoff with uniform random delays
//   - Name/Logger: where attempt outcomes are logged
//
// The exponential backoff is 2s * 2^attempt, clamped to [Wait, max(Wait, 10s)].
// With the default Wait of 3s the delays come out as 4s, 8s, 10s, 10s, ...
// With Jitter enabled each delay is instead sampled uniformly from the same range.
//
// Retry Decisions:
//
// A Predicate classifies each attempt outcome. OnErrors matches error kinds
// with errors.Is (defaulting to timeouts, broken pipes and connection resets),
// OnFalse retries only when the returned value is the boolean false, and
// PredicateFunc adapts any caller-supplied condition. An outcome the predicate
// rejects passes through to the caller unmodified; once attempts are exhausted
// the caller receives an *ExhaustedError instead.
//
// Cancellation:
//
// There is none. Waits are plain blocking time.Sleep calls and an attempt that
// has started runs to completion; the engine deliberately does not take a
// context and cannot abort an in-progress sleep or attempt. Callers that need
// cancellation should implement it inside the wrapped operation.
package retry
