package rpc

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"
	"go.uber.org/zap"

	"github.com/progrium/privsep-go/transport"
)

// Client multiplexes calls from any number of goroutines over one stream
// to the privileged side.
//
// Every call is written as [id, message] and blocks until the reader
// goroutine sees [id, reply]. One mutex guards the outstanding-call table,
// the write side, and the final fan-out of errors; callers wait on their
// Future with it released.
//
// There are no timeouts. A call blocks until its reply arrives or the
// stream ends.
type Client struct {
	log    *zap.Logger
	nextID func() CallID

	mu          sync.Mutex
	writer      *Writer
	outstanding map[CallID]*Future
	err         error

	done chan struct{}
}

// NewClient takes ownership of conn and starts the reader goroutine, which
// runs until the peer closes its write side or breaks the protocol.
func NewClient(conn transport.Conn, opts ...Option) *Client {
	o := newOptions(opts)
	f := framer(o.maxFrame)
	c := &Client{
		log:         o.log.With(zap.String("channel", xid.New().String())),
		nextID:      o.nextID,
		writer:      newWriter(conn, f),
		outstanding: make(map[CallID]*Future),
		done:        make(chan struct{}),
	}
	if c.nextID == nil {
		var seq uint64
		c.nextID = func() CallID {
			return CallID(atomic.AddUint64(&seq, 1))
		}
	}
	go c.loop(newReader(conn, f))
	return c
}

// SendRecv sends msg under a fresh call id and returns the reply.
//
// Once the reader has stopped, no write is attempted: the call fails at
// once with an error wrapping ErrClosed and the reason the reader stopped,
// so errors.Is(err, ErrPrematureEOF) holds after the helper hung up.
func (c *Client) SendRecv(msg interface{}) (interface{}, error) {
	return c.Call(c.nextID(), msg)
}

// Call sends msg under the given id and returns the reply. Callers that
// keep their own identity, one id per worker for example, use it directly.
// Making a call with an id that is already outstanding is a programming
// error and panics. A dead channel fails the same way as in SendRecv.
func (c *Client) Call(id CallID, msg interface{}) (interface{}, error) {
	f := NewFuture(&c.mu)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClosed, c.err)
	}
	if _, exists := c.outstanding[id]; exists {
		panic(fmt.Sprintf("rpc: call id %d is already outstanding", id))
	}
	c.outstanding[id] = f
	defer delete(c.outstanding, id)

	if err := c.writer.Send(Envelope{ID: id, Payload: msg}); err != nil {
		return nil, err
	}
	return f.Result()
}

// Close shuts down the write side and waits for the reader goroutine to
// see the peer hang up. It must not be called concurrently with itself.
func (c *Client) Close() error {
	c.mu.Lock()
	err := c.writer.Close()
	c.mu.Unlock()

	<-c.done
	return err
}

// Done is closed once the reader goroutine has exited.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Err returns why the reader stopped: ErrPrematureEOF after a clean
// hangup, or the transport or protocol error. It is nil while the reader
// is running.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// loop owns the read side and demuxes replies until an error.
func (c *Client) loop(r *Reader) {
	defer close(c.done)

	var err error
	for err == nil {
		err = c.readOne(r)
	}

	if err == io.EOF {
		c.log.Debug("EOF on privsep read channel")
		err = ErrPrematureEOF
	} else {
		c.log.Error("privsep read channel failed", zap.Error(err))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
	for _, f := range c.outstanding {
		if !f.Done() {
			f.SetError(err)
		}
	}
}

// readOne reads and dispatches one reply.
func (c *Client) readOne(r *Reader) error {
	var env Envelope
	if err := r.Receive(&env); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	f, ok := c.outstanding[env.ID]
	if !ok {
		return &ProtocolError{ID: env.ID, Reason: "reply for unknown call"}
	}
	if f.Done() {
		return &ProtocolError{ID: env.ID, Reason: "duplicate reply"}
	}
	f.SetResult(env.Payload)
	return nil
}
