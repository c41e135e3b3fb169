package sink

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

const (
	backoffMultiply     = 1.2
	startBackoffTimeout = 500 * time.Millisecond
	backoffAttemptCount = 4
)

var ErrBackoffTimeout = errors.New("sink: backoff attempts exhausted")

// writeWithBackoff retries fn with a growing per-attempt timeout. It gives
// up after backoffAttemptCount attempts or when ctx is canceled.
func writeWithBackoff(ctx context.Context, fn func(ctx context.Context) error) error {
	timeout := startBackoffTimeout

	for i := 0; i < backoffAttemptCount; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		ctxT, cancel := context.WithTimeout(ctx, timeout)
		err := fn(ctxT)
		cancel()
		if err != nil {
			zap.L().Error(err.Error())
			timeout = time.Duration(float64(timeout) * backoffMultiply)
			continue
		}

		return nil
	}

	return ErrBackoffTimeout
}
