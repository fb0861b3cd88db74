package query

import (
	"errors"
	"fmt"
)

// Op names the step of an execution that failed.
type Op string

const (
	// OpQuery is the Client.Query call itself.
	OpQuery Op = "query"

	// OpScan is a row mapper failing on a returned row.
	OpScan Op = "scan"

	// OpRows is an error surfaced by the row iterator.
	OpRows Op = "rows"
)

var (
	// ErrNotFound matches any *NotFoundError via errors.Is.
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous matches any *AmbiguousError via errors.Is.
	ErrAmbiguous = errors.New("more than one row")
)

// ExecutionError is any failure to execute a query or map its rows:
// connection, syntax, constraint, timeout or scan errors.
// No results accompany it.
type ExecutionError struct {
	Op       Op
	DataType string
	Err      error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.DataType, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// NotFoundError reports that a get-by-key lookup returned zero rows.
type NotFoundError struct {
	DataType string
	Message  string
	Params   []any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s (params=%v)", e.DataType, e.Message, e.Params)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AmbiguousError reports that a strict lookup returned more than one row.
type AmbiguousError struct {
	DataType string
	Params   []any
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%s: lookup returned more than one row (params=%v)", e.DataType, e.Params)
}

func (e *AmbiguousError) Is(target error) bool {
	return target == ErrAmbiguous
}

// IsNotFound returns true if err is or wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsExecutionError returns true if err is or wraps an *ExecutionError.
func IsExecutionError(err error) bool {
	var ee *ExecutionError
	return errors.As(err, &ee)
}

func newExecutionError(op Op, dataType string, err error) *ExecutionError {
	return &ExecutionError{Op: op, DataType: dataType, Err: err}
}
