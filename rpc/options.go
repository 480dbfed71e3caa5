package rpc

import (
	"go.uber.org/zap"
)

// Option configures a Client or Server.
type Option func(*options)

type options struct {
	log      *zap.Logger
	nextID   func() CallID
	maxFrame uint32
}

func newOptions(opts []Option) *options {
	o := &options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger for channel lifecycle events.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithIDFunc replaces the Client's call id generator. The default is a
// counter starting at 1. fn is called concurrently from every caller and
// must return an id no other outstanding call holds; a duplicate panics.
func WithIDFunc(fn func() CallID) Option {
	return func(o *options) {
		o.nextID = fn
	}
}

// WithMaxFrameSize rejects incoming frames with a larger payload.
func WithMaxFrameSize(n uint32) Option {
	return func(o *options) {
		o.maxFrame = n
	}
}
