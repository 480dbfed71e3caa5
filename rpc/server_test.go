//go:build linux

package rpc_test

import (
	"fmt"
	"io"
	"testing"

	"golang.org/x/sync/errgroup"

	"github.com/progrium/privsep-go/rpc"
	"github.com/progrium/privsep-go/rpc/rpctest"
	"github.com/progrium/privsep-go/transport"
)

func TestServerEOF(t *testing.T) {
	client, srv := rpctest.NewPair(t, nil)

	var g errgroup.Group
	g.Go(client.Close)

	var req rpc.Envelope
	if err := srv.Receive(&req); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	fatal(t, srv.Close())
	fatal(t, g.Wait())
}

func TestServerConcurrentSend(t *testing.T) {
	a, b, err := transport.Socketpair()
	fatal(t, err)
	defer a.Close()
	defer b.Close()

	srv := rpc.NewServer(b)
	const n = 50
	var g errgroup.Group
	for i := 1; i <= n; i++ {
		id := rpc.CallID(i)
		g.Go(func() error {
			return srv.Send(rpc.Envelope{ID: id, Payload: map[string]interface{}{"id": float64(id)}})
		})
	}

	seen := make(map[rpc.CallID]bool)
	r := rpc.NewReader(a)
	for i := 0; i < n; i++ {
		var env rpc.Envelope
		fatal(t, r.Receive(&env))
		m, ok := env.Payload.(map[string]interface{})
		if !ok || m["id"] != float64(env.ID) {
			t.Fatalf("interleaved frame: %#v", env)
		}
		seen[env.ID] = true
	}
	fatal(t, g.Wait())
	if len(seen) != n {
		t.Fatalf("expected %d distinct frames, got %d", n, len(seen))
	}
}

func TestServerRespondsInOrder(t *testing.T) {
	a, b, err := transport.Socketpair()
	fatal(t, err)
	defer a.Close()
	defer b.Close()

	srv := rpc.NewServer(b)
	var g errgroup.Group
	g.Go(func() error {
		return rpctest.Respond(srv, func(v interface{}) interface{} {
			return fmt.Sprint("re:", v)
		})
	})

	w := rpc.NewWriter(a)
	for i := 1; i <= 3; i++ {
		fatal(t, w.Send(rpc.Envelope{ID: rpc.CallID(i), Payload: i}))
	}
	fatal(t, w.Close())

	r := rpc.NewReader(a)
	for i := 1; i <= 3; i++ {
		var env rpc.Envelope
		fatal(t, r.Receive(&env))
		if env.ID != rpc.CallID(i) || env.Payload != fmt.Sprint("re:", float64(i)) {
			t.Fatalf("unexpected reply %#v", env)
		}
	}
	var env rpc.Envelope
	if err := r.Receive(&env); err != io.EOF {
		t.Fatalf("expected io.EOF after Respond returned, got %v", err)
	}
	fatal(t, g.Wait())
}
