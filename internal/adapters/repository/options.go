package repository

import "time"

// Default remote fetch settings.
const (
	defaultFetchTimeout = 10 * time.Second
	defaultRetryWait    = 500 * time.Millisecond
	defaultRetries      = 2
)

type fetchOptions struct {
	timeout   time.Duration
	retries   int
	retryWait time.Duration
}

func defaultFetchOptions() fetchOptions {
	return fetchOptions{
		timeout:   defaultFetchTimeout,
		retries:   defaultRetries,
		retryWait: defaultRetryWait,
	}
}

// FetchOption configures remote catalog fetching.
type FetchOption func(*fetchOptions)

// WithFetchTimeout bounds a single fetch attempt.
func WithFetchTimeout(d time.Duration) FetchOption {
	return func(o *fetchOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithRetries sets how many times a failed fetch is retried.
func WithRetries(n int) FetchOption {
	return func(o *fetchOptions) {
		if n >= 0 {
			o.retries = n
		}
	}
}

// WithRetryWait sets the initial back-off between attempts.
func WithRetryWait(d time.Duration) FetchOption {
	return func(o *fetchOptions) {
		if d > 0 {
			o.retryWait = d
		}
	}
}
