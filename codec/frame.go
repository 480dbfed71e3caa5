package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// HeaderSize is the length of the frame prefix in bytes.
const HeaderSize = 4

// ErrFrameTooLarge is returned when a frame header announces more than
// FrameCodec.MaxSize payload bytes.
var ErrFrameTooLarge = errors.New("codec: frame exceeds maximum size")

// ErrEmptyFrame is returned for a frame whose payload decodes to nothing.
var ErrEmptyFrame = errors.New("codec: empty frame payload")

// ErrInvalidUTF8 is returned for a frame payload that is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("codec: frame payload is not valid UTF-8")

// ErrTrailingData is returned for a frame payload with bytes after the
// encoded value.
var ErrTrailingData = errors.New("codec: trailing data in frame payload")

// TruncatedError reports a stream that ended inside a frame. It unwraps to
// io.ErrUnexpectedEOF so it is never mistaken for a clean io.EOF.
type TruncatedError struct {
	// Header is true if the stream ended inside the length prefix.
	Header bool
	Want   int
	Got    int
}

func (e *TruncatedError) Error() string {
	part := "payload"
	if e.Header {
		part = "header"
	}
	return fmt.Sprintf("codec: premature EOF in frame %s: got %d of %d bytes", part, e.Got, e.Want)
}

func (e *TruncatedError) Unwrap() error {
	return io.ErrUnexpectedEOF
}

// FrameCodec is a length prefix wrapper around another codec. The prefix is
// a four byte uint32 in native byte order; both ends of a privsep channel
// run on the same host.
type FrameCodec struct {
	Codec

	// MaxSize bounds the payload length accepted by decoders. Zero means
	// any uint32 length is accepted.
	MaxSize uint32
}

// Encoder returns a frame encoder that first encodes a value to a buffer
// using the embedded codec, then writes prefix and payload with a single
// Write call.
func (c *FrameCodec) Encoder(w io.Writer) Encoder {
	return &frameEncoder{
		w: w,
		c: c.Codec,
	}
}

type frameEncoder struct {
	w io.Writer
	c Codec
}

func (e *frameEncoder) Encode(v interface{}) error {
	var buf bytes.Buffer
	buf.Write(make([]byte, HeaderSize))
	enc := e.c.Encoder(&buf)
	err := enc.Encode(v)
	if err != nil {
		return err
	}
	b := buf.Bytes()
	size := len(b) - HeaderSize
	if uint64(size) > uint64(^uint32(0)) {
		return ErrFrameTooLarge
	}
	binary.NativeEndian.PutUint32(b[:HeaderSize], uint32(size))
	_, err = e.w.Write(b)
	return err
}

// Decoder returns a frame decoder that reads the length prefix, then exactly
// that many payload bytes, and decodes them with the embedded codec.
//
// Decode returns io.EOF only when the stream ends on a frame boundary. A
// stream ending anywhere else yields a *TruncatedError. The payload must be
// valid UTF-8 and hold exactly one value; anything else is an error and the
// stream should not be read further.
func (c *FrameCodec) Decoder(r io.Reader) Decoder {
	return &frameDecoder{
		r:   r,
		c:   c.Codec,
		max: c.MaxSize,
	}
}

type frameDecoder struct {
	r   io.Reader
	c   Codec
	max uint32
}

func (d *frameDecoder) Decode(v interface{}) error {
	var prefix [HeaderSize]byte
	n, err := io.ReadFull(d.r, prefix[:])
	switch {
	case err == io.EOF:
		return io.EOF
	case err == io.ErrUnexpectedEOF:
		return &TruncatedError{Header: true, Want: HeaderSize, Got: n}
	case err != nil:
		return err
	}
	size := binary.NativeEndian.Uint32(prefix[:])
	if d.max != 0 && size > d.max {
		return fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, size, d.max)
	}
	buf := make([]byte, size)
	n, err = io.ReadFull(d.r, buf)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return &TruncatedError{Want: int(size), Got: n}
	}
	if err != nil {
		return err
	}
	if !utf8.Valid(buf) {
		return ErrInvalidUTF8
	}
	dec := d.c.Decoder(bytes.NewReader(buf))
	err = dec.Decode(v)
	if err == io.EOF {
		// an empty payload must not read as end of stream
		return ErrEmptyFrame
	}
	if err != nil {
		return err
	}
	if od, ok := dec.(OffsetDecoder); ok {
		if rest := buf[od.InputOffset():]; !isSpace(rest) {
			return fmt.Errorf("%w: %d bytes after value", ErrTrailingData, len(rest))
		}
	}
	return nil
}

// isSpace reports whether b is only JSON insignificant whitespace.
func isSpace(b []byte) bool {
	for _, c := range b {
		switch c {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}
