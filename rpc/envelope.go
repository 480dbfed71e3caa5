package rpc

import (
	"encoding/json"
)

// CallID correlates a request with its reply. It is unique only among the
// calls currently outstanding on one Client.
type CallID uint64

// Envelope is the [id, payload] pair a Client writes for every call and
// expects back. A dispatcher on the Server side unpacks it to learn the id
// and replies with the same id.
type Envelope struct {
	ID      CallID
	Payload interface{}
}

func (e Envelope) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{e.ID, e.Payload})
}

// UnmarshalJSON decodes [id, payload]. If Payload already holds a pointer,
// the payload is decoded into it; otherwise Payload is set to the generic
// JSON value.
func (e *Envelope) UnmarshalJSON(b []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(b, &parts); err != nil {
		return &ProtocolError{Reason: "envelope is not an array", Err: err}
	}
	if len(parts) != 2 {
		return &ProtocolError{Reason: "envelope must have 2 elements"}
	}
	var id CallID
	if err := json.Unmarshal(parts[0], &id); err != nil {
		return &ProtocolError{Reason: "bad call id", Err: err}
	}
	e.ID = id
	if e.Payload != nil {
		return json.Unmarshal(parts[1], e.Payload)
	}
	var payload interface{}
	if err := json.Unmarshal(parts[1], &payload); err != nil {
		return err
	}
	e.Payload = payload
	return nil
}
