package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"affiliate-service/pkg/logger"

	"go.uber.org/zap"
)

const (
	maxAttempts  = 3
	retryBackoff = 50 * time.Millisecond
)

// withRetry runs fn up to maxAttempts times, retrying only transient store
// failures. Used only for operations that are idempotent under retry.
func (s *Store) withRetry(ctx context.Context, operation string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, ErrTransientStore) {
			return err
		}
		if attempt == maxAttempts {
			break
		}
		// request-scoped logger when the caller came through the middleware
		logger.FromContext(ctx).Warn("Retrying store operation after transient failure",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Error(err))
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrTransientStore, ctx.Err())
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}
	}
	return err
}
