package transport

import (
	"net"
	"testing"
)

func TestSocketpair(t *testing.T) {
	a, b, err := Socketpair()
	fatal(t, err)
	defer a.Close()
	defer b.Close()

	halfClose(t, a, b)
}

func TestSocketpairFiles(t *testing.T) {
	parent, child, err := SocketpairFiles()
	fatal(t, err)
	defer parent.Close()

	conn, err := net.FileConn(child)
	fatal(t, err)
	child.Close()
	b, ok := conn.(*net.UnixConn)
	if !ok {
		t.Fatalf("unexpected conn type %T", conn)
	}
	defer b.Close()

	halfClose(t, parent, b)
}
