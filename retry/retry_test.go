package retry

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/FrenchMajesty/turbo-retry/utils/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newTestRetry builds a controller with a silent sink and a recording sleep
// so tests never actually block.
func newTestRetry(opts Options) (*Retry, *[]time.Duration) {
	if opts.Logger == nil {
		opts.Logger = logger.NewNoopLogger()
	}
	r := New(opts)
	slept := &[]time.Duration{}
	r.sleep = func(d time.Duration) {
		*slept = append(*slept, d)
	}
	return r, slept
}

func TestCallExhaustionRaisesExhaustedError(t *testing.T) {
	r, slept := newTestRetry(Options{Retries: 4})

	calls := 0
	value, err := r.Call("flaky", func() (any, error) {
		calls++
		return nil, errors.New("boom")
	})

	assert.Equal(t, 4, calls, "Callable should be invoked exactly Retries times")
	assert.Nil(t, value)

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, "flaky", exhausted.Name)
	assert.Equal(t, 4, exhausted.Attempts)
	assert.Equal(t, "function 'flaky' failed; exceeded '4' retries", exhausted.Error())

	// Exponential backoff with default Wait of 3s: 4s, 8s, then clamped to 10s
	assert.Equal(t, []time.Duration{4 * time.Second, 8 * time.Second, 10 * time.Second}, *slept)
}

func TestCallSingleAttemptNeverRetries(t *testing.T) {
	r, slept := newTestRetry(Options{Retries: 1})

	calls := 0
	_, err := r.Call("once", func() (any, error) {
		calls++
		return nil, errors.New("boom")
	})

	assert.Equal(t, 1, calls)
	assert.Empty(t, *slept, "No sleep should occur with a single attempt")

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 1, exhausted.Attempts)
}

func TestCallSuccessReturnsValue(t *testing.T) {
	r, slept := newTestRetry(Options{})

	calls := 0
	value, err := r.Call("ok", func() (any, error) {
		calls++
		return 42, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 42, value)
	assert.Equal(t, 1, calls)
	assert.Empty(t, *slept)
}

func TestNonRetryableErrorPropagatesUnmodified(t *testing.T) {
	sentinel := errors.New("value error")
	r, slept := newTestRetry(Options{Retry: OnErrors()})

	calls := 0
	_, err := r.Call("strict", func() (any, error) {
		calls++
		return nil, sentinel
	})

	assert.Equal(t, 1, calls, "Non-retryable failures bypass the retry loop")
	assert.Same(t, sentinel, err, "The exact error value must cross the boundary")
	assert.Empty(t, *slept)
}

func TestRetryableThenSuccess(t *testing.T) {
	r, slept := newTestRetry(Options{Retries: 5})

	calls := 0
	value, err := r.Call("recovers", func() (any, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("transient")
		}
		return "done", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "done", value)
	assert.Equal(t, 3, calls)
	assert.Len(t, *slept, 2)
}

func TestOnFalseReturnsNonFalseUnchanged(t *testing.T) {
	r, _ := newTestRetry(Options{Retry: OnFalse()})

	calls := 0
	value, err := r.Call("lookup", func() (any, error) {
		calls++
		return "hello", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "hello", value)
	assert.Equal(t, 1, calls)
}

func TestOnFalseRetriesUntilTrue(t *testing.T) {
	r, _ := newTestRetry(Options{Retry: OnFalse(), Retries: 5})

	calls := 0
	value, err := r.Call("poll", func() (any, error) {
		calls++
		return calls >= 3, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, true, value)
	assert.Equal(t, 3, calls)
}

func TestOnFalseExhaustion(t *testing.T) {
	r, _ := newTestRetry(Options{Retry: OnFalse(), Retries: 2})

	_, err := r.Call("never", func() (any, error) {
		return false, nil
	})

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 2, exhausted.Attempts)
}

func TestWaitBeforeSleptOncePerCall(t *testing.T) {
	r, slept := newTestRetry(Options{WaitBefore: 50 * time.Millisecond})

	_, err := r.Call("warmup", func() (any, error) {
		return nil, nil
	})

	assert.NoError(t, err)
	require.Len(t, *slept, 1)
	assert.Equal(t, 50*time.Millisecond, (*slept)[0])
}

func TestCallWithNilTargetFailsFast(t *testing.T) {
	r, _ := newTestRetry(Options{})

	_, err := r.Call("missing", nil)
	var confErr *ConfigError
	require.ErrorAs(t, err, &confErr)
	assert.Contains(t, confErr.Error(), "no target")

	_, err = r.Func("missing", nil)
	require.ErrorAs(t, err, &confErr)

	_, err = Do[int](r, "missing", nil)
	require.ErrorAs(t, err, &confErr)
}

func TestFuncWrapperAppliesPolicyPerCall(t *testing.T) {
	r, _ := newTestRetry(Options{Retries: 3})

	var calls atomic.Int32
	wrapped, err := r.Func("wrapped", func() (any, error) {
		calls.Add(1)
		return nil, errors.New("boom")
	})
	require.NoError(t, err)

	_, err1 := wrapped()
	_, err2 := wrapped()

	var exhausted *ExhaustedError
	require.ErrorAs(t, err1, &exhausted)
	require.ErrorAs(t, err2, &exhausted)
	assert.Equal(t, int32(6), calls.Load(), "Each call through the wrapper owns its own attempt loop")
}

func TestDoReturnsTypedValue(t *testing.T) {
	r, _ := newTestRetry(Options{})

	value, err := Do(r, "typed", func() ([]string, error) {
		return []string{"a", "b"}, nil
	})

	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, value)
}

func TestDoZeroValueOnExhaustion(t *testing.T) {
	r, _ := newTestRetry(Options{Retries: 2})

	value, err := Do(r, "typed", func() (int, error) {
		return 7, errors.New("boom")
	})

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 0, value)
}

func TestConcurrentCallsKeepIndependentState(t *testing.T) {
	r, _ := newTestRetry(Options{Retries: 3})

	var calls atomic.Int32
	attempt := func() (any, error) {
		calls.Add(1)
		return nil, errors.New("boom")
	}

	const workers = 8
	var wg sync.WaitGroup
	results := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			_, err := r.Call("shared", attempt)
			results[slot] = err
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(workers*3), calls.Load())
	for _, err := range results {
		var exhausted *ExhaustedError
		require.ErrorAs(t, err, &exhausted)
		assert.Equal(t, 3, exhausted.Attempts, "No call should observe another call's attempt count")
	}
}

func TestLoggingPerAttempt(t *testing.T) {
	mockLog := logger.NewMockLogger()
	mockLog.On("Warningf", mock.Anything).Return()
	mockLog.On("Errorf", mock.Anything).Return()

	r, _ := newTestRetry(Options{Retries: 2, Logger: mockLog})

	_, err := r.Call("doomed", func() (any, error) {
		return nil, errors.New("boom")
	})
	require.Error(t, err)

	mockLog.AssertNumberOfCalls(t, "Warningf", 2)
	mockLog.AssertNumberOfCalls(t, "Errorf", 1)

	first := mockLog.Calls[0].Arguments.String(0)
	assert.Contains(t, first, "Retry doomed #1/2, raised: *errors.errorString")
	assert.NotContains(t, first, "goroutine", "Only the exhausting attempt carries the stack")

	last := mockLog.Calls[1].Arguments.String(0)
	assert.Contains(t, last, "Retry doomed #2/2, raised: *errors.errorString")
	assert.Contains(t, last, "goroutine", "The exhausting attempt logs the stack trace")

	errLine := mockLog.Calls[2].Arguments.String(0)
	assert.Contains(t, errLine, "function 'doomed' failed; exceeded '2' retries")
}

func TestLoggingSuccessLine(t *testing.T) {
	mockLog := logger.NewMockLogger()
	mockLog.On("Warningf", mock.Anything).Return()

	r, _ := newTestRetry(Options{Logger: mockLog})

	_, err := r.Call("fine", func() (any, error) {
		return 99, nil
	})
	require.NoError(t, err)

	mockLog.AssertNumberOfCalls(t, "Warningf", 1)
	assert.Contains(t, mockLog.Calls[0].Arguments.String(0), "Retry fine #1/3, returned: 99")
}

func TestVerboseLogsScheduling(t *testing.T) {
	mockLog := logger.NewMockLogger()
	mockLog.On("Warningf", mock.Anything).Return()

	r, _ := newTestRetry(Options{Retries: 2, Logger: mockLog, Verbose: true, WaitBefore: time.Millisecond})

	calls := 0
	_, err := r.Call("chatty", func() (any, error) {
		calls++
		if calls < 2 {
			return nil, errors.New("transient")
		}
		return true, nil
	})
	require.NoError(t, err)

	var sawBefore, sawSleeping bool
	for _, call := range mockLog.Calls {
		line := call.Arguments.String(0)
		if strings.Contains(line, "before first attempt") {
			sawBefore = true
		}
		if strings.Contains(line, "sleeping") {
			sawSleeping = true
		}
	}
	assert.True(t, sawBefore, "Verbose mode should log the pre-execution wait")
	assert.True(t, sawSleeping, "Verbose mode should log the chosen delay")
}

func TestDefaultsAppliedByNew(t *testing.T) {
	r := New(Options{Logger: logger.NewNoopLogger()})

	assert.Equal(t, 3, r.retries)
	assert.NotNil(t, r.predicate)
	assert.NotNil(t, r.waiter)
	assert.True(t, r.predicate.ShouldRetry(nil, errors.New("anything")), "Default predicate retries on any error")
	assert.False(t, r.predicate.ShouldRetry(false, nil), "Default predicate ignores values")
}
