// ABOUTME: Typed error kinds for the storage layer.
// ABOUTME: ValidationError, ConflictError, and StorageError; not-found is a no-op.
package storage

import "fmt"

// ValidationError reports malformed input: empty names, missing foreign keys,
// unknown import modes, measurement-mode mismatches.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError reports an operation blocked by a business invariant.
// SetCount carries the number of sets blocking a timed/reps conversion so
// callers can explain the block to the user.
type ConflictError struct {
	Reason   string
	SetCount int
}

func (e *ConflictError) Error() string {
	if e.SetCount > 0 {
		return fmt.Sprintf("%s (%d sets exist)", e.Reason, e.SetCount)
	}
	return e.Reason
}

// StorageError wraps failures of the underlying SQLite engine: a database
// that cannot be opened or a transaction that aborts. It propagates to the
// caller unmodified; there is no automatic retry or repair.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// storageErr wraps err unless it is already one of the typed kinds above,
// so validation and conflict errors pass through transactions untouched.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	switch err.(type) {
	case *ValidationError, *ConflictError, *StorageError:
		return err
	}
	return &StorageError{Op: op, Err: err}
}
