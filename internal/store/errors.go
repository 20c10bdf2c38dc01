package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"gorm.io/gorm"
)

var (
	// ErrNotFound reports that a referenced entity is absent.
	ErrNotFound = errors.New("not found")

	// ErrConflict reports a uniqueness or referential constraint violation
	// that upsert/idempotent semantics should have prevented. Not retryable.
	ErrConflict = errors.New("conflict")

	// ErrTransientStore reports a connectivity, timeout or pool-exhaustion
	// failure. Safe to retry with backoff.
	ErrTransientStore = errors.New("transient store failure")
)

// ValidationError rejects a malformed record before it reaches storage.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsRetryable reports whether the caller may retry the operation.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTransientStore)
}

// classify maps database errors onto the store taxonomy. Constraint
// violations must never be conflated with connectivity failures: the former
// are client-correctable, the latter retryable.
func classify(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		errors.Is(err, sql.ErrConnDone),
		errors.Is(err, driver.ErrBadConn):
		return fmt.Errorf("%w: %v", ErrTransientStore, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", ErrTransientStore, err)
	}

	return err
}

// classifyAttach maps insert failures on rows that reference a product. The
// referenced product can vanish between the existence pre-check and the
// insert; its constraint violation means the referent is gone, not a
// conflict on the inserted row itself.
func classifyAttach(productID string, err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("product %q: %w", productID, ErrNotFound)
	}
	return classify(err)
}
