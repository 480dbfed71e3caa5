package caps

// Version2 is _LINUX_CAPABILITY_VERSION_2, the ABI with two 32-bit words
// per capability class.
const Version2 = 0x20071026

// prctl(2) options.
const (
	PR_GET_KEEPCAPS = 7
	PR_SET_KEEPCAPS = 8
)

// Header is struct __user_cap_header_struct.
type Header struct {
	Version uint32
	Pid     int32
}

// Data is struct __user_cap_data_struct. Kernel calls take two of them:
// index 0 holds bits 0-31 of each class, index 1 bits 32-63.
type Data struct {
	Effective   uint32
	Permitted   uint32
	Inheritable uint32
}

// Kernel issues the raw capability system calls. Implementations return
// the bare errno on failure; Control adds the call name.
type Kernel interface {
	Capget(hdr *Header, data *[2]Data) error
	Capset(hdr *Header, data *[2]Data) error
	Prctl(option int, arg2 uintptr) (int, error)
}
