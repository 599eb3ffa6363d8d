package backend

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
)

// The three failure categories every adapter folds its transport errors into.
// ErrUnavailable covers setup/connection failures, ErrTimeout deadline and
// cancellation, ErrQuery everything that went wrong executing a single query.
var (
	ErrUnavailable = errors.New("backend unavailable")
	ErrTimeout     = errors.New("backend timeout")
	ErrQuery       = errors.New("backend query error")
)

// Error wraps a transport-level failure with its category and the backend
// that produced it.
type Error struct {
	Backend string
	Kind    error // one of ErrUnavailable, ErrTimeout, ErrQuery
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Backend, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// Classify folds an arbitrary adapter error into the uniform taxonomy.
// Already-classified errors pass through unchanged.
func Classify(name string, err error) error {
	if err == nil {
		return nil
	}

	var be *Error
	if errors.As(err, &be) {
		return err
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || errors.Is(err, os.ErrDeadlineExceeded) || isNetTimeout(err):
		return &Error{Backend: name, Kind: ErrTimeout, Err: err}
	case isConnError(err):
		return &Error{Backend: name, Kind: ErrUnavailable, Err: err}
	default:
		return &Error{Backend: name, Kind: ErrQuery, Err: err}
	}
}

// Unavailable marks a setup/connection failure.
func Unavailable(name string, err error) error {
	return &Error{Backend: name, Kind: ErrUnavailable, Err: err}
}

// QueryError marks a per-query failure.
func QueryError(name string, err error) error {
	return &Error{Backend: name, Kind: ErrQuery, Err: err}
}

func isNetTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isConnError(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
