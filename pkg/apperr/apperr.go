package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so handlers can pick the right page and status
// without inspecting driver errors.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindDuplicateUser
	KindUserNotFound
	KindInvalidCredentials
	KindInvalidID
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDuplicateUser:
		return "duplicate_user"
	case KindUserNotFound:
		return "user_not_found"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindInvalidID:
		return "invalid_id"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Error carries a kind tag, a user-presentable message, and an optional
// wrapped cause. Flows return these instead of raw store errors.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Message returns the user-presentable message without the kind prefix.
func (e *Error) Message() string { return e.Msg }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// KindOf returns the kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
