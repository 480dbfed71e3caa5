package caps

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/unix"
	"kernel.org/pub/linux/libs/security/libcap/psx"
)

// DefaultKernel returns ProcessKernel.
func DefaultKernel() Kernel {
	return ProcessKernel{}
}

// ThreadKernel issues each call on the current OS thread only. Goroutines
// migrate between threads, so callers changing capabilities with it should
// hold runtime.LockOSThread for as long as the change must stay visible.
type ThreadKernel struct{}

func (ThreadKernel) Capget(hdr *Header, data *[2]Data) error {
	h := unix.CapUserHeader{Version: hdr.Version, Pid: hdr.Pid}
	var d [2]unix.CapUserData
	err := unix.Capget(&h, &d[0])
	// on EINVAL the kernel reports the version it prefers
	hdr.Version = h.Version
	if err != nil {
		return err
	}
	for i := range d {
		data[i] = Data{
			Effective:   d[i].Effective,
			Permitted:   d[i].Permitted,
			Inheritable: d[i].Inheritable,
		}
	}
	return nil
}

func (ThreadKernel) Capset(hdr *Header, data *[2]Data) error {
	h := unix.CapUserHeader{Version: hdr.Version, Pid: hdr.Pid}
	var d [2]unix.CapUserData
	for i := range d {
		d[i] = unix.CapUserData{
			Effective:   data[i].Effective,
			Permitted:   data[i].Permitted,
			Inheritable: data[i].Inheritable,
		}
	}
	return unix.Capset(&h, &d[0])
}

func (ThreadKernel) Prctl(option int, arg2 uintptr) (int, error) {
	return unix.PrctlRetInt(option, arg2, 0, 0, 0)
}

// ProcessKernel applies capset and prctl to every OS thread of the process
// through libcap's psx mechanism, so the whole Go runtime ends up with the
// same capabilities. Capget reads the calling thread, which matches every
// other thread once all changes go through ProcessKernel.
type ProcessKernel struct{}

func (ProcessKernel) Capget(hdr *Header, data *[2]Data) error {
	return ThreadKernel{}.Capget(hdr, data)
}

func (ProcessKernel) Capset(hdr *Header, data *[2]Data) error {
	_, _, errno := psx.Syscall3(unix.SYS_CAPSET,
		uintptr(unsafe.Pointer(hdr)),
		uintptr(unsafe.Pointer(&data[0])), 0)
	runtime.KeepAlive(hdr)
	runtime.KeepAlive(data)
	if errno != 0 {
		return errno
	}
	return nil
}

func (ProcessKernel) Prctl(option int, arg2 uintptr) (int, error) {
	r, _, errno := psx.Syscall3(unix.SYS_PRCTL, uintptr(option), arg2, 0)
	if errno != 0 {
		return -1, errno
	}
	return int(r), nil
}

var (
	_ Kernel = ThreadKernel{}
	_ Kernel = ProcessKernel{}
)
