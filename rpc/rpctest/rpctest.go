//go:build linux

// Package rpctest connects rpc clients and servers for tests.
package rpctest

import (
	"io"
	"testing"

	"github.com/progrium/privsep-go/rpc"
	"github.com/progrium/privsep-go/transport"
)

// HandlerFunc computes the reply payload for one request payload.
type HandlerFunc func(payload interface{}) interface{}

// Echo replies with the request itself.
func Echo(payload interface{}) interface{} {
	return payload
}

// NewPair returns a Client and Server joined by a socketpair. If h is not
// nil, a goroutine answers every request with Respond. Client writes happen
// under its lock, so the stream must buffer; io.Pipe does not.
func NewPair(t testing.TB, h HandlerFunc, opts ...rpc.Option) (*rpc.Client, *rpc.Server) {
	t.Helper()
	a, b, err := transport.Socketpair()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		a.Close()
		b.Close()
	})

	srv := rpc.NewServer(b, opts...)
	if h != nil {
		go Respond(srv, h)
	}
	return rpc.NewClient(a, opts...), srv
}

// Respond answers requests one at a time until the client hangs up, then
// closes the server's write side.
func Respond(srv *rpc.Server, h HandlerFunc) error {
	defer srv.Close()
	for {
		var req rpc.Envelope
		err := srv.Receive(&req)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := srv.Send(rpc.Envelope{ID: req.ID, Payload: h(req.Payload)}); err != nil {
			return err
		}
	}
}
