//go:build !linux

package caps

// DefaultKernel returns a Kernel that fails every call with ErrNotSupported.
func DefaultKernel() Kernel {
	return unsupported{}
}

type unsupported struct{}

func (unsupported) Capget(*Header, *[2]Data) error { return ErrNotSupported }
func (unsupported) Capset(*Header, *[2]Data) error { return ErrNotSupported }
func (unsupported) Prctl(int, uintptr) (int, error) { return -1, ErrNotSupported }
