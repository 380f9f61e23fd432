package main

import (
	"github.com/pkg/errors"
)

// Error kinds. Wrapped errors keep their kind reachable through errors.Cause.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnsupported  = errors.New("unsupported operation")
	ErrPrecondition = errors.New("precondition failed")
	ErrResource     = errors.New("resource error")
)

func notFound(format string, args ...interface{}) error {
	return errors.Wrapf(ErrNotFound, format, args...)
}

func unsupported(format string, args ...interface{}) error {
	return errors.Wrapf(ErrUnsupported, format, args...)
}

func precondition(format string, args ...interface{}) error {
	return errors.Wrapf(ErrPrecondition, format, args...)
}

func resourceErr(err error, format string, args ...interface{}) error {
	if err == nil {
		return errors.Wrapf(ErrResource, format, args...)
	}
	return errors.Wrapf(ErrResource, format+": %v", append(args, err)...)
}

// isKind reports whether err was built from the given kind.
func isKind(err, kind error) bool {
	return err != nil && errors.Cause(err) == kind
}

// Error builds a plain error from a message.
func Error(s string) error {
	return errors.New(s)
}
