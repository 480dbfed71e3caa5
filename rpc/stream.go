package rpc

import (
	"io"

	"github.com/progrium/privsep-go/codec"
	"github.com/progrium/privsep-go/transport"
)

func framer(max uint32) *codec.FrameCodec {
	return &codec.FrameCodec{Codec: codec.JSONCodec{}, MaxSize: max}
}

// Writer sends values as length-prefixed JSON frames. It does no locking of
// its own; callers sharing a Writer serialize Send and Close.
type Writer struct {
	conn transport.Conn
	enc  codec.Encoder
}

// NewWriter returns a Writer on the write half of conn.
func NewWriter(conn transport.Conn) *Writer {
	return newWriter(conn, framer(0))
}

func newWriter(conn transport.Conn, f *codec.FrameCodec) *Writer {
	return &Writer{
		conn: conn,
		enc:  f.Encoder(conn),
	}
}

// Send writes v as one frame.
func (w *Writer) Send(v interface{}) error {
	return w.enc.Encode(v)
}

// Close shuts down the write direction only, so the peer sees EOF while
// replies can still be read.
func (w *Writer) Close() error {
	return w.conn.CloseWrite()
}

// Reader receives length-prefixed JSON frames. Each Receive blocks for one
// whole frame. It returns io.EOF when the stream ends between frames, and a
// *codec.TruncatedError when it ends inside one.
type Reader struct {
	dec codec.Decoder
}

// NewReader returns a Reader on r.
func NewReader(r io.Reader) *Reader {
	return newReader(r, framer(0))
}

func newReader(r io.Reader, f *codec.FrameCodec) *Reader {
	return &Reader{dec: f.Decoder(r)}
}

// Receive decodes the next frame into v.
func (r *Reader) Receive(v interface{}) error {
	return r.dec.Decode(v)
}
