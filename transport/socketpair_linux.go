package transport

import (
	"net"
	"os"

	"golang.org/x/sys/unix"
)

// Socketpair returns two connected unix stream sockets. Both descriptors are
// close-on-exec; pass one to a child through exec.Cmd.ExtraFiles, which
// clears the flag on the child's copy.
func Socketpair() (*net.UnixConn, *net.UnixConn, error) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, nil, os.NewSyscallError("socketpair", err)
	}
	a, err := fileConn(fds[0], "privsep-a")
	if err != nil {
		unix.Close(fds[1])
		return nil, nil, err
	}
	b, err := fileConn(fds[1], "privsep-b")
	if err != nil {
		a.Close()
		return nil, nil, err
	}
	return a, b, nil
}

// SocketpairFiles is Socketpair for the exec case: the child's end is
// returned as an *os.File ready for ExtraFiles.
func SocketpairFiles() (*net.UnixConn, *os.File, error) {
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, nil, os.NewSyscallError("socketpair", err)
	}
	parent, err := fileConn(fds[0], "privsep-parent")
	if err != nil {
		unix.Close(fds[1])
		return nil, nil, err
	}
	return parent, os.NewFile(uintptr(fds[1]), "privsep-child"), nil
}

func fileConn(fd int, name string) (*net.UnixConn, error) {
	return FileConn(uintptr(fd), name)
}
