package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// Operation is a function that performs an action and returns an error if it fails.
type Operation func() error

// IsRetryable is a function that decides whether an error is worth retrying.
type IsRetryable func(err error) bool

const DefaultMaxRetries = 3

// Try executes a read operation with default retry settings for transient errors.
// It uses DefaultMaxRetries and IsTransientError.
func Try(op Operation) error {
	return WithRetries(op, DefaultMaxRetries, IsTransientError)
}

// WithRetries executes an operation with a retry mechanism for transient errors.
// It attempts the operation up to maxRetries times beyond the initial attempt,
// with a simple incremental backoff between attempts.
func WithRetries(op Operation, maxRetries int, isRetryable IsRetryable) error {
	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		err = op()
		if err == nil {
			return nil // Success
		}

		// If this was the last attempt, break out of the loop to return the error.
		if attempt == maxRetries {
			break
		}

		if isRetryable(err) {
			time.Sleep(time.Duration(50*(attempt+1)) * time.Millisecond)
		} else {
			return err // Not retryable, return immediately
		}
	}
	return err
}

// IsTransientError reports whether a MongoDB error is a timeout or network
// failure that a fresh attempt may clear. Command errors (bad query, auth)
// are never transient.
func IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) {
		return true
	}
	return false
}
