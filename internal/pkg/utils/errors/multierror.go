package errors

import (
	"sync"
)

// MultiError is a list of errors, it can be appended from multiple goroutines.
type MultiError interface {
	error
	// ErrorOrNil returns the error only if it contains at least one error.
	ErrorOrNil() error
	Len() int
	Unwrap() error
	StackTrace() StackTrace
	WrappedErrors() []error
	// Append adds errors to the list, a MultiError is flattened.
	Append(errs ...error)
	// AppendNested adds and returns a nested error, so sub errors can be added to it.
	AppendNested(err error) NestedError
	// AppendWithPrefix adds the error wrapped with the prefix message.
	AppendWithPrefix(err error, prefix string)
	AppendWithPrefixf(err error, format string, a ...any)
}

type multiErrorGetter interface {
	WrappedErrors() []error
}

type multiError struct {
	lock   sync.Mutex
	errors []error
	trace  StackTrace
}

func NewMultiError() MultiError {
	return &multiError{trace: callers()}
}

func (e *multiError) Error() string {
	return Format(e)
}

func (e *multiError) ErrorOrNil() error {
	if e.Len() == 0 {
		return nil
	}
	return e
}

func (e *multiError) Len() int {
	e.lock.Lock()
	defer e.lock.Unlock()
	return len(e.errors)
}

func (e *multiError) Unwrap() error {
	return chain(e.WrappedErrors())
}

func (e *multiError) StackTrace() StackTrace {
	return e.trace
}

func (e *multiError) WrappedErrors() []error {
	e.lock.Lock()
	defer e.lock.Unlock()
	out := make([]error, len(e.errors))
	copy(out, e.errors)
	return out
}

func (e *multiError) Append(errs ...error) {
	e.lock.Lock()
	defer e.lock.Unlock()
	for _, err := range errs {
		if err == nil {
			panic("error cannot be nil")
		}
		// nolint: errorlint
		if v, ok := err.(MultiError); ok {
			e.errors = append(e.errors, v.WrappedErrors()...)
		} else {
			e.errors = append(e.errors, err)
		}
	}
}

func (e *multiError) AppendNested(err error) NestedError {
	nested := NewNestedError(err)
	e.Append(nested)
	return nested
}

func (e *multiError) AppendWithPrefix(err error, prefix string) {
	e.Append(PrefixError(err, prefix))
}

func (e *multiError) AppendWithPrefixf(err error, format string, a ...any) {
	e.Append(PrefixErrorf(err, format, a...))
}
