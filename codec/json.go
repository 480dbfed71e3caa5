package codec

import (
	"bytes"
	"encoding/json"
	"io"
)

// JSONCodec encodes values as compact UTF-8 JSON. Non-ASCII text is written
// as-is and HTML characters are not escaped, so encoded strings match what
// the peer sent byte for byte.
type JSONCodec struct{}

func (c JSONCodec) Encoder(w io.Writer) Encoder {
	return &jsonEncoder{w: w}
}

func (c JSONCodec) Decoder(r io.Reader) Decoder {
	return json.NewDecoder(r)
}

var _ OffsetDecoder = (*json.Decoder)(nil)

type jsonEncoder struct {
	w io.Writer
}

func (e *jsonEncoder) Encode(v interface{}) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// json.Encoder terminates every value with a newline
	_, err := e.w.Write(bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}))
	return err
}
