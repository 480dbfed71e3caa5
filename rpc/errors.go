package rpc

import (
	"errors"
	"fmt"
)

var (
	// ErrPrematureEOF is delivered to every outstanding call when the
	// privileged side closes the stream.
	ErrPrematureEOF = errors.New("rpc: premature EOF waiting for privileged process")

	// ErrClosed is returned by calls made after the client's reader has
	// stopped. It wraps the reason the reader stopped.
	ErrClosed = errors.New("rpc: channel closed")
)

// ProtocolError reports a peer that broke the envelope protocol, such as a
// reply for a call id nobody is waiting on. The channel cannot be trusted
// after one of these and is shut down.
type ProtocolError struct {
	ID     CallID
	Reason string
	Err    error
}

func (e *ProtocolError) Error() string {
	msg := fmt.Sprintf("rpc: protocol violation: %s", e.Reason)
	if e.ID != 0 {
		msg = fmt.Sprintf("%s (call id %d)", msg, e.ID)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err)
	}
	return msg
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}
