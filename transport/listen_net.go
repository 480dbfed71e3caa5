package transport

import (
	"fmt"
	"net"
)

// NetListener wraps a net.Listener to return Conns.
type NetListener struct {
	net.Listener
}

// ListenerFrom wraps an existing stream listener.
func ListenerFrom(l net.Listener) *NetListener {
	return &NetListener{Listener: l}
}

// ListenUnix creates a unix domain socket listener at the given path.
func ListenUnix(path string) (*NetListener, error) {
	l, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}
	return ListenerFrom(l), nil
}

// Accept waits for and returns the next connection to the listener.
func (l *NetListener) Accept() (Conn, error) {
	conn, err := l.Listener.Accept()
	if err != nil {
		return nil, err
	}
	c, ok := conn.(Conn)
	if !ok {
		conn.Close()
		return nil, fmt.Errorf("transport: %T does not support CloseWrite", conn)
	}
	return c, nil
}
