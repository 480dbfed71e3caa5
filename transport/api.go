// Package transport provides the duplex byte streams privsep channels run on.
//
// Setting up the helper process and its socket is the caller's business;
// these are thin helpers for the usual shapes: a socketpair split across a
// fork/exec, an inherited descriptor, a unix socket path, or a pair of pipes.
package transport

import "io"

// Conn is an ordered, reliable, duplex byte stream whose write direction can
// be shut down on its own.
type Conn interface {
	// Read reads up to len(data) bytes from the stream.
	Read(data []byte) (int, error)

	// Write writes len(data) bytes to the stream.
	Write(data []byte) (int, error)

	// CloseWrite signals the end of sending. The other side sees EOF
	// after draining, and may still send data back.
	CloseWrite() error

	// Close releases the stream in both directions.
	Close() error
}

var _ Conn = (*ioduplex)(nil)

type ioduplex struct {
	io.WriteCloser
	io.ReadCloser
}

func (d *ioduplex) CloseWrite() error {
	return d.WriteCloser.Close()
}

func (d *ioduplex) Close() error {
	werr := d.WriteCloser.Close()
	if err := d.ReadCloser.Close(); err != nil {
		return err
	}
	return werr
}
