package rpc

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Decode converts a generic JSON value, as found in Envelope.Payload or a
// SendRecv reply, into out, which must be a pointer. Struct fields are
// matched by their json tag, and JSON numbers convert to Go integer types.
func Decode(v interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("rpc: mapstructure: %w", err)
	}
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("rpc: mapstructure: %w", err)
	}
	return nil
}
