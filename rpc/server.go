package rpc

import (
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/progrium/privsep-go/transport"
)

// Server is the privileged side's end of the channel. It does no call
// demuxing: Receive yields each incoming message in order and Send writes
// one. Pairing replies with requests is left to the dispatcher, which
// echoes the id from each Envelope it receives.
//
// Reads and writes are locked separately, so one goroutine may block in
// Receive while others Send.
type Server struct {
	log *zap.Logger

	rmu    sync.Mutex
	reader *Reader

	wmu    sync.Mutex
	writer *Writer
}

// NewServer takes ownership of conn.
func NewServer(conn transport.Conn, opts ...Option) *Server {
	o := newOptions(opts)
	f := framer(o.maxFrame)
	return &Server{
		log:    o.log,
		reader: newReader(conn, f),
		writer: newWriter(conn, f),
	}
}

// Receive decodes the next incoming message into v. It returns io.EOF once
// the client has shut down its write side.
func (s *Server) Receive(v interface{}) error {
	s.rmu.Lock()
	defer s.rmu.Unlock()

	err := s.reader.Receive(v)
	if err == io.EOF {
		s.log.Debug("EOF on privsep server channel")
	}
	return err
}

// Send writes msg as one frame.
func (s *Server) Send(msg interface{}) error {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	return s.writer.Send(msg)
}

// Close shuts down the write side. Pending client calls fail with
// ErrPrematureEOF.
func (s *Server) Close() error {
	s.wmu.Lock()
	defer s.wmu.Unlock()
	return s.writer.Close()
}
