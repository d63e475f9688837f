// Package errors extends the standard library errors:
// each error is created with a stack trace,
// errors can be composed to multi and nested errors,
// and the Format function renders them as a readable bullet list.
package errors

import (
	"errors"
	"fmt"
	"runtime"
)

// StackTrace is a stack of program counters, the first frame is the error origin.
type StackTrace []uintptr

type stackTracer interface {
	StackTrace() StackTrace
}

func New(text string) error {
	return &baseError{err: errors.New(text), trace: callers()}
}

func Errorf(format string, a ...any) error {
	return &baseError{err: fmt.Errorf(format, a...), trace: callers()}
}

// Wrap returns an error with the new message, the original error is available via Unwrap.
func Wrap(err error, msg string) error {
	if err == nil {
		panic("error cannot be nil")
	}
	return &wrappedError{msg: msg, err: err, trace: callers()}
}

func Wrapf(err error, format string, a ...any) error {
	if err == nil {
		panic("error cannot be nil")
	}
	return &wrappedError{msg: fmt.Sprintf(format, a...), err: err, trace: callers()}
}

// WithStack attaches the caller stack trace to the error, the message is unchanged.
func WithStack(err error) error {
	if err == nil {
		panic("error cannot be nil")
	}
	return &withStack{err: err, trace: callers()}
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Unwrap(err error) error {
	return errors.Unwrap(err)
}

type baseError struct {
	err   error
	trace StackTrace
}

func (e *baseError) Error() string {
	return e.err.Error()
}

func (e *baseError) Unwrap() error {
	return errors.Unwrap(e.err)
}

func (e *baseError) StackTrace() StackTrace {
	return e.trace
}

type wrappedError struct {
	msg   string
	err   error
	trace StackTrace
}

func (e *wrappedError) Error() string {
	return e.msg
}

func (e *wrappedError) Unwrap() error {
	return e.err
}

func (e *wrappedError) StackTrace() StackTrace {
	return e.trace
}

type withStack struct {
	err   error
	trace StackTrace
}

func (e *withStack) Error() string {
	return e.err.Error()
}

func (e *withStack) Unwrap() error {
	return e.err
}

func (e *withStack) StackTrace() StackTrace {
	return e.trace
}

// chain connects the main error and sub errors for errors.Is/As traversal.
type chain []error

func (e chain) Error() string {
	return Format(e)
}

func (e chain) WrappedErrors() []error {
	return e
}

func (e chain) Unwrap() []error {
	return e
}

func callers() StackTrace {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	return StackTrace(pcs[0:n])
}
