package generator

import (
	"fmt"
	"strconv"
	"time"
)

// RateLimitError means the generation provider throttled the analysis
// attempt with HTTP 429. It is not a transport failure: the attempt still
// resolves, and the upload surface maps it to its own 429 so the client
// knows to wait rather than shrink the input.
type RateLimitError struct {
	Err        error
	RetryAfter time.Duration
	Provider   string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError wraps a provider 429 for the given provider name.
// When the provider gave no usable Retry-After, retryAfterSecs is 0 and
// a 60s wait is reported instead.
func NewRateLimitError(provider string, err error, retryAfterSecs int) *RateLimitError {
	if retryAfterSecs <= 0 {
		retryAfterSecs = 60
	}
	return &RateLimitError{
		Err:        err,
		RetryAfter: time.Duration(retryAfterSecs) * time.Second,
		Provider:   provider,
	}
}

// ParseRetryAfterHeader parses a Retry-After header value into seconds.
// Empty or non-integer values (including HTTP-date form) yield 0, which
// selects the default wait.
func ParseRetryAfterHeader(val string) int {
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return secs
}
