package apperrors

import (
	"errors"
	"maps"
	"strings"
)

type appError struct {
	msg           string
	base          error
	wrappedErrors []error
	statuscode    int
	expandError   bool
	payload       map[string]any
}

func (e *appError) Error() string {
	return e.msg
}

// ErrorAll returns the message followed by the messages of wrapped errors when
// expansion is enabled. Otherwise it is the same as Error.
func (e *appError) ErrorAll() string {
	if !e.expandError {
		return e.Error()
	}
	var b strings.Builder
	b.WriteString(e.Error())
	for _, err := range e.wrappedErrors {
		if err == e.base {
			continue
		}
		b.WriteString("; ")
		b.WriteString(err.Error())
	}
	return b.String()
}

func (e *appError) Unwrap() error {
	return e.base
}

func (e *appError) UnwrapAll() []error {
	return e.wrappedErrors
}

func (e *appError) derive(msg string, errs []error) *appError {
	return &appError{
		msg:           msg,
		base:          e,
		wrappedErrors: append([]error{e}, errs...),
		statuscode:    e.statuscode,
		expandError:   e.expandError,
		payload:       e.payload,
	}
}

func (e *appError) Msg(msg string) Error {
	return e.derive(msg, nil)
}

func (e *appError) New(msg string) Error {
	return &appError{
		msg:        msg,
		base:       e,
		statuscode: e.statuscode,
	}
}

func (e *appError) MsgErr(msg string, errs ...error) Error {
	return e.derive(msg, errs)
}

func (e *appError) Err(errs ...error) Error {
	return e.derive(e.msg, errs)
}

func (e *appError) SetExpandError(flag bool) Error {
	cp := *e
	cp.expandError = flag
	return &cp
}

func (e *appError) SetStatusCode(code int) Error {
	cp := *e
	cp.statuscode = code
	return &cp
}

func (e *appError) StatusCode() int {
	return e.statuscode
}

// WithPayload returns a copy whose payload is the union of the current payload and
// the given fields. Later keys win.
func (e *appError) WithPayload(payload map[string]any) Error {
	cp := *e
	cp.payload = make(map[string]any, len(e.payload)+len(payload))
	maps.Copy(cp.payload, e.payload)
	maps.Copy(cp.payload, payload)
	return &cp
}

func (e *appError) Payload() map[string]any {
	return e.payload
}

// Is reports whether target is the base of e or any error wrapped by it.
func (e *appError) Is(target error) bool {
	if target == nil {
		return false
	}
	if errors.Is(e.base, target) {
		return true
	}
	for _, err := range e.wrappedErrors {
		if err == e.base {
			continue
		}
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// New creates a root error with the given message.
func New(msg string) Error {
	return &appError{
		msg: msg,
	}
}

// StatusCodeOf returns the status code carried by err, or fallback when err does
// not carry one.
func StatusCodeOf(err error, fallback int) int {
	var appErr Error
	if errors.As(err, &appErr) && appErr.StatusCode() != 0 {
		return appErr.StatusCode()
	}
	return fallback
}
