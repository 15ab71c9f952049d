package errdefs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Errors reserved for callers layering richer behavior on the catalog.
// Nothing in the core raises these today.
var (
	ErrInvalidPackage  = errors.New("invalid package format")
	ErrVersionMismatch = errors.New("version mismatch")
	ErrDependency      = errors.New("dependency error")
	ErrDatabase        = errors.New("database error")
	ErrSecurity        = errors.New("security error")
)

// NotFoundError indicates a package name with no catalog entry.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("package not found: %s", e.Name)
}

func NotFound(name string) error {
	return errors.WithStack(&NotFoundError{Name: name})
}

func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// NetworkError wraps any transport failure from a remote operation,
// carrying the failing transport's message.
type NetworkError struct {
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Message
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func Network(err error) error {
	if err == nil {
		return nil
	}

	return errors.WithStack(&NetworkError{Message: err.Error(), Err: err})
}

func Networkf(format string, args ...interface{}) error {
	return errors.WithStack(&NetworkError{Message: fmt.Sprintf(format, args...)})
}

func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// FormatError indicates a structural record that failed to parse.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return "invalid format: " + e.Err.Error()
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func Format(err error) error {
	if err == nil {
		return nil
	}

	return errors.WithStack(&FormatError{Err: err})
}

func IsFormat(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// HashMismatchError reports a downloaded artifact whose content hash does
// not match the hash declared in its catalog entry.
type HashMismatchError struct {
	Expected string
	Actual   string
}

func (e *HashMismatchError) Error() string {
	return fmt.Sprintf("hash verification failed: %s != %s", e.Expected, e.Actual)
}

func IsHashMismatch(err error) bool {
	var hme *HashMismatchError
	return errors.As(err, &hme)
}
