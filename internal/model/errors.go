package model

import "fmt"

type ErrorKind string

const (
	KindNotFound         ErrorKind = "not_found"
	KindInvalidName      ErrorKind = "invalid_name"
	KindAlreadyCompleted ErrorKind = "already_completed"
	KindIO               ErrorKind = "io"
	KindCorrupt          ErrorKind = "corrupt"
)

// Error is the single error type surfaced by the habit core. Value carries the
// identifier or name for NotFound, InvalidName and AlreadyCompleted; Err carries
// the underlying cause for IO and Corrupt.
type Error struct {
	Kind  ErrorKind
	Value string
	Err   error
}

// Kind-only values for errors.Is.
var (
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrInvalidName      = &Error{Kind: KindInvalidName}
	ErrAlreadyCompleted = &Error{Kind: KindAlreadyCompleted}
	ErrIO               = &Error{Kind: KindIO}
	ErrCorrupt          = &Error{Kind: KindCorrupt}
)

func NotFound(ident string) error {
	return &Error{Kind: KindNotFound, Value: ident}
}

func InvalidName(value string) error {
	return &Error{Kind: KindInvalidName, Value: value}
}

func AlreadyCompleted(name string) error {
	return &Error{Kind: KindAlreadyCompleted, Value: name}
}

func IOError(err error) error {
	return &Error{Kind: KindIO, Err: err}
}

func Corrupt(err error) error {
	return &Error{Kind: KindCorrupt, Err: err}
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("habit not found: %s", e.Value)
	case KindInvalidName:
		return fmt.Sprintf("invalid habit name: %s", e.Value)
	case KindAlreadyCompleted:
		return fmt.Sprintf("habit already completed for date: %s", e.Value)
	case KindIO:
		if e.Err == nil {
			return "habit storage i/o error"
		}
		return e.Err.Error()
	case KindCorrupt:
		if e.Err == nil {
			return "corrupt habit file"
		}
		return fmt.Sprintf("corrupt habit file: %v", e.Err)
	default:
		return fmt.Sprintf("habit error: %s", e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) holds
// regardless of payload.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}
