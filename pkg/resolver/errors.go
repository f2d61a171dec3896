package resolver

import (
	"errors"
	"fmt"
)

// ErrNotFound is the only failure Resolve reports. Missing files, permission
// errors, directories, oversized files and escaping paths all collapse to it;
// the underlying cause stays in the wrapped chain for logging.
var ErrNotFound = errors.New("not found")

// NotFoundError records why a request path could not be served.
type NotFoundError struct {
	RequestPath string
	Reason      string
	Err         error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.RequestPath, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.RequestPath, e.Reason)
}

// Is makes errors.Is(err, ErrNotFound) true for every NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a resolution failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
