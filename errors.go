package oneping

import (
	"errors"
	"os"
)

// Kinds of ProbeError, to be matched with errors.Is.
var (
	// ErrDecode means the outer IPv4 header of a received datagram is corrupt.
	ErrDecode = errors.New("decode error")
	// ErrTransport is any socket fault other than a timeout.
	ErrTransport = errors.New("transport fault")
	// ErrTimedOut means no matching reply arrived within the timeout.
	ErrTimedOut = errors.New("timed out")
	// ErrInternal is a broken invariant, e.g. a request that does not fit its buffer.
	ErrInternal = errors.New("internal error")
)

// ProbeError describes why a probe failed. Err, when set, is the underlying cause.
type ProbeError struct {
	Kind error
	Op   string
	Err  error
}

func (e *ProbeError) Error() string {
	s := "ping " + e.Op + ": " + e.Kind.Error()
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *ProbeError) Unwrap() error { return e.Err }

func (e *ProbeError) Is(target error) bool { return target == e.Kind }

// Timeout lets ProbeError satisfy net.Error style checks.
func (e *ProbeError) Timeout() bool { return e.Kind == ErrTimedOut }

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var terr interface{ Timeout() bool }
	return errors.As(err, &terr) && terr.Timeout()
}

// transportError classifies a transport failure: timeouts become ErrTimedOut,
// everything else is fatal.
func transportError(op string, err error) error {
	if isTimeout(err) {
		return &ProbeError{Kind: ErrTimedOut, Op: op, Err: err}
	}
	return &ProbeError{Kind: ErrTransport, Op: op, Err: err}
}
