package wallet

import (
	"errors"
	"fmt"
)

// Kind classifies the failures a wallet operation can report
type Kind int

// Error kinds
const (
	InvalidKey Kind = iota + 1
	InvalidAmount
	InvalidAddress
	ChainQueryFailed
	SubmissionRejected
	ConnectionFailed
)

func (k Kind) String() string {
	switch k {
	case InvalidKey:
		return "invalid key"
	case InvalidAmount:
		return "invalid amount"
	case InvalidAddress:
		return "invalid address"
	case ChainQueryFailed:
		return "chain query failed"
	case SubmissionRejected:
		return "submission rejected"
	case ConnectionFailed:
		return "connection failed"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error carries the kind of a failure along with the underlying cause.
// The cause's message, such as a node's rejection reason, is kept verbatim
type Error struct {
	Kind Kind
	Err  error
}

// Sentinels for use with errors.Is
var (
	ErrInvalidKey         = &Error{Kind: InvalidKey}
	ErrInvalidAmount      = &Error{Kind: InvalidAmount}
	ErrInvalidAddress     = &Error{Kind: InvalidAddress}
	ErrChainQueryFailed   = &Error{Kind: ChainQueryFailed}
	ErrSubmissionRejected = &Error{Kind: SubmissionRejected}
	ErrConnectionFailed   = &Error{Kind: ConnectionFailed}
)

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Wrap annotates err with the given kind. Errors that already carry a kind
// are returned unchanged
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	var kinded *Error
	if errors.As(err, &kinded) {
		return err
	}
	return &Error{Kind: kind, Err: err}
}

func errorf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}
