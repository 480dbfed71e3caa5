package transport

import (
	"fmt"
	"net"
	"os"
)

// DialUnix connects to a unix domain stream socket at path.
func DialUnix(path string) (*net.UnixConn, error) {
	return net.DialUnix("unix", nil, &net.UnixAddr{Name: path, Net: "unix"})
}

// FileConn adopts an inherited socket descriptor, typically one end of a
// socketpair passed to a child process. The descriptor is duplicated; the
// original is closed.
func FileConn(fd uintptr, name string) (*net.UnixConn, error) {
	f := os.NewFile(fd, name)
	if f == nil {
		return nil, fmt.Errorf("transport: invalid descriptor %d", fd)
	}
	defer f.Close()
	conn, err := net.FileConn(f)
	if err != nil {
		return nil, err
	}
	uc, ok := conn.(*net.UnixConn)
	if !ok {
		conn.Close()
		return nil, fmt.Errorf("transport: descriptor %d is %T, not a unix socket", fd, conn)
	}
	return uc, nil
}
