// Package codec turns values into bytes on a stream and back.
//
// The privsep wire format is FrameCodec wrapped around JSONCodec: a native
// byte order uint32 payload length followed by that many bytes of UTF-8 JSON.
package codec

import (
	"io"
)

// Encoder writes values to the Writer it was created on.
type Encoder interface {
	// Encode writes one encoded value of v.
	Encode(v interface{}) error
}

// Decoder reads values from the Reader it was created on.
type Decoder interface {
	// Decode stores the next value into v, which must be a pointer. It
	// returns io.EOF when the input holds no further value.
	Decode(v interface{}) error
}

// OffsetDecoder is a Decoder that reports how far into its input the last
// value ended. FrameCodec uses it to reject payloads with bytes after the
// value.
type OffsetDecoder interface {
	Decoder
	InputOffset() int64
}

// Codec pairs the Encoder and Decoder of one encoding.
type Codec interface {
	Encoder(w io.Writer) Encoder
	Decoder(r io.Reader) Decoder
}
