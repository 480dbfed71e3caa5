package rpc

import "sync"

// Future is a one-shot result cell for a single outstanding call. It shares
// the lock of the Client that owns it: SetResult, SetError and Result must
// all be called with that lock held. Result releases the lock while it
// waits, like sync.Cond.Wait.
type Future struct {
	cond *sync.Cond
	done bool
	data interface{}
	err  error
}

// NewFuture returns a Future bound to l.
func NewFuture(l sync.Locker) *Future {
	return &Future{cond: sync.NewCond(l)}
}

// SetResult resolves the future with v and wakes its waiter.
func (f *Future) SetResult(v interface{}) {
	f.resolve(v, nil)
}

// SetError resolves the future with err and wakes its waiter.
func (f *Future) SetError(err error) {
	f.resolve(nil, err)
}

func (f *Future) resolve(v interface{}, err error) {
	if f.done {
		panic("rpc: future resolved twice")
	}
	f.done = true
	f.data = v
	f.err = err
	f.cond.Signal()
}

// Done reports whether the future has been resolved.
func (f *Future) Done() bool {
	return f.done
}

// Result blocks until the future is resolved, then returns its value or
// error.
func (f *Future) Result() (interface{}, error) {
	for !f.done {
		f.cond.Wait()
	}
	return f.data, f.err
}
