// Package apperrors provides the application error type used across Tyko. An Error carries
// a message, an HTTP status code, an optional payload that is returned to API clients, and
// any number of wrapped causes. All modifiers return a new Error so that package-level
// sentinels can be specialized without being mutated.
package apperrors

// Error defines the interface for application errors. Errors created from a sentinel
// through New, Msg, MsgErr or Err match that sentinel with errors.Is.
type Error interface {
	error
	Unwrap() error // support for errors.Is / errors.As

	New(msg string) Error                  // new error with the receiver as its base
	Msg(msg string) Error                  // new message, receiver is wrapped
	MsgErr(msg string, err ...error) Error // new message, receiver and err are wrapped
	Err(err ...error) Error                // same message, err are wrapped
	SetExpandError(bool) Error             // ErrorAll includes wrapped messages
	SetStatusCode(int) Error
	StatusCode() int
	WithPayload(payload map[string]any) Error // extra fields sent with the error response
	Payload() map[string]any
	ErrorAll() string
	UnwrapAll() []error
}
