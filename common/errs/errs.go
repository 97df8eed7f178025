package errs

import (
	"fmt"

	cr "github.com/cockroachdb/errors"
)

type HttpError struct {
	Code    int
	Message string
	Data    any
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("code %d: %s, data: %v", e.Code, e.Message, e.Data)
}

// MalformedInputError is a record that can never succeed as delivered: the
// body does not parse or a field the consumer needs is missing.
type MalformedInputError struct {
	Field string
	Err   error
}

func (e *MalformedInputError) Error() string {
	switch {
	case e.Field == "":
		return fmt.Sprintf("malformed input: %v", e.Err)
	case e.Err == nil:
		return fmt.Sprintf("malformed input: %s is missing", e.Field)
	default:
		return fmt.Sprintf("malformed input: %s: %v", e.Field, e.Err)
	}
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// DependencyError is a failed call to a store or the bus.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

func Malformed(field string, err error) error {
	return cr.WithStack(&MalformedInputError{Field: field, Err: err})
}

func MissingField(field string) error {
	return Malformed(field, nil)
}

func Dependency(op string, err error) error {
	if err == nil {
		return nil
	}
	return cr.WithStack(&DependencyError{Op: op, Err: err})
}

func IsMalformed(err error) bool {
	var target *MalformedInputError
	return cr.As(err, &target)
}

func IsDependency(err error) bool {
	var target *DependencyError
	return cr.As(err, &target)
}
