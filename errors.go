package typeorm

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for common operations.
var (
	// ErrMissingValues is returned when an insert is built without any
	// value source. An empty value-set sequence is not an error; providing
	// something that is neither a record nor a sequence of records is.
	ErrMissingValues = errors.New("typeorm: missing values to insert")

	// ErrTxStarted is returned when attempting to start a new transaction
	// within an existing transaction.
	ErrTxStarted = errors.New("typeorm: cannot start a transaction within a transaction")
)

// MissingValuesError is returned when an insert request carries no usable
// value source. It is a configuration error and is surfaced immediately.
type MissingValuesError struct {
	Table string
}

// Error returns the error string.
func (e *MissingValuesError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("typeorm: no values provided for insert into %q", e.Table)
	}
	return "typeorm: no values provided for insert"
}

// Is reports whether the target error matches MissingValuesError.
func (e *MissingValuesError) Is(err error) bool {
	return err == ErrMissingValues
}

// NewMissingValuesError returns a new MissingValuesError for the given table.
func NewMissingValuesError(table string) *MissingValuesError {
	return &MissingValuesError{Table: table}
}

// IsMissingValues returns true if the error is a MissingValuesError.
func IsMissingValues(err error) bool {
	if err == nil {
		return false
	}
	var e *MissingValuesError
	return errors.As(err, &e) || errors.Is(err, ErrMissingValues)
}

// ReturningNotSupportedError is returned at configuration time when a
// RETURNING/OUTPUT clause is requested on a dialect without support for it.
type ReturningNotSupportedError struct {
	Dialect string
}

// Error returns the error string.
func (e *ReturningNotSupportedError) Error() string {
	return fmt.Sprintf("typeorm: dialect %q does not support a RETURNING or OUTPUT clause", e.Dialect)
}

// NewReturningNotSupportedError returns a new ReturningNotSupportedError.
func NewReturningNotSupportedError(dialect string) *ReturningNotSupportedError {
	return &ReturningNotSupportedError{Dialect: dialect}
}

// IsReturningNotSupported returns true if the error is a ReturningNotSupportedError.
func IsReturningNotSupported(err error) bool {
	if err == nil {
		return false
	}
	var e *ReturningNotSupportedError
	return errors.As(err, &e)
}

// UnsupportedUpsertError is returned when a conflict policy other than a
// plain insert is requested on a dialect without upsert support.
type UnsupportedUpsertError struct {
	Dialect string
}

// Error returns the error string.
func (e *UnsupportedUpsertError) Error() string {
	return fmt.Sprintf("typeorm: dialect %q does not support insert-or-update on conflict", e.Dialect)
}

// NewUnsupportedUpsertError returns a new UnsupportedUpsertError.
func NewUnsupportedUpsertError(dialect string) *UnsupportedUpsertError {
	return &UnsupportedUpsertError{Dialect: dialect}
}

// IsUnsupportedUpsert returns true if the error is an UnsupportedUpsertError.
func IsUnsupportedUpsert(err error) bool {
	if err == nil {
		return false
	}
	var e *UnsupportedUpsertError
	return errors.As(err, &e)
}

// ConstraintError represents a database constraint violation error.
type ConstraintError struct {
	msg  string
	wrap error
}

// Error returns the error string.
func (e ConstraintError) Error() string {
	return fmt.Sprintf("typeorm: constraint failed: %s", e.msg)
}

// Unwrap returns the underlying error.
func (e ConstraintError) Unwrap() error {
	return e.wrap
}

// NewConstraintError returns a new ConstraintError with the given message.
func NewConstraintError(msg string, wrap error) error {
	return ConstraintError{msg: msg, wrap: wrap}
}

// IsConstraintError returns true if the error is a ConstraintError.
func IsConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var e ConstraintError
	return errors.As(err, &e)
}

// RollbackError wraps an error that occurred during a transaction rollback.
type RollbackError struct {
	Err error // Original error that triggered rollback
}

// Error returns the error string.
func (e *RollbackError) Error() string {
	return fmt.Sprintf("typeorm: rollback failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *RollbackError) Unwrap() error {
	return e.Err
}

// NewRollbackError returns a new RollbackError wrapping err.
func NewRollbackError(err error) *RollbackError {
	return &RollbackError{Err: err}
}

// AggregateError represents multiple errors collected during an operation.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "typeorm: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("typeorm: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// Unwrap returns the collected errors for errors.Is / errors.As traversal.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// NewAggregateError returns a new AggregateError if there are errors,
// otherwise returns nil.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}

// MutationError wraps a mutation error with additional context.
type MutationError struct {
	Table string // Table being mutated
	Op    string // Operation (e.g., "insert")
	Err   error  // Underlying error
}

// Error returns the error string.
func (e *MutationError) Error() string {
	return fmt.Sprintf("typeorm: %s %s: %v", e.Op, e.Table, e.Err)
}

// Unwrap returns the underlying error.
func (e *MutationError) Unwrap() error {
	return e.Err
}

// NewMutationError returns a new MutationError.
func NewMutationError(table, op string, err error) *MutationError {
	return &MutationError{Table: table, Op: op, Err: err}
}

// IsMutationError returns true if the error is a MutationError.
func IsMutationError(err error) bool {
	if err == nil {
		return false
	}
	var e *MutationError
	return errors.As(err, &e)
}
