package caps

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// Control reads and replaces capability sets through a Kernel.
type Control struct {
	kernel Kernel
	log    *zap.Logger
}

// Option configures a Control.
type Option func(*Control)

// WithLogger sets the logger capability changes are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(c *Control) {
		c.log = l
	}
}

// New returns a Control issuing calls through k. A nil k means
// DefaultKernel.
func New(k Kernel, opts ...Option) *Control {
	if k == nil {
		k = DefaultKernel()
	}
	c := &Control{
		kernel: k,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func header() Header {
	return Header{Version: Version2, Pid: 0}
}

// GetCaps returns the effective, permitted and inheritable sets of the
// calling process, each sorted ascending.
func (c *Control) GetCaps() (effective, permitted, inheritable []Cap, err error) {
	hdr := header()
	var data [2]Data
	if err := c.kernel.Capget(&hdr, &data); err != nil {
		return nil, nil, nil, os.NewSyscallError("capget", err)
	}
	effective = MaskToCaps(join(data[0].Effective, data[1].Effective))
	permitted = MaskToCaps(join(data[0].Permitted, data[1].Permitted))
	inheritable = MaskToCaps(join(data[0].Inheritable, data[1].Inheritable))
	return effective, permitted, inheritable, nil
}

// DropAllCapsExcept replaces all three sets with exactly the given ones.
// It is not incremental: any capability held now and missing from the
// arguments is gone afterwards, and permitted bits cannot be regained.
func (c *Control) DropAllCapsExcept(effective, permitted, inheritable []Cap) error {
	eff, err := CapsToMask(effective)
	if err != nil {
		return fmt.Errorf("effective: %w", err)
	}
	prm, err := CapsToMask(permitted)
	if err != nil {
		return fmt.Errorf("permitted: %w", err)
	}
	inh, err := CapsToMask(inheritable)
	if err != nil {
		return fmt.Errorf("inheritable: %w", err)
	}

	var data [2]Data
	data[0].Effective, data[1].Effective = split(eff)
	data[0].Permitted, data[1].Permitted = split(prm)
	data[0].Inheritable, data[1].Inheritable = split(inh)

	hdr := header()
	if err := c.kernel.Capset(&hdr, &data); err != nil {
		return os.NewSyscallError("capset", err)
	}
	c.log.Debug("capabilities replaced",
		zap.Strings("effective", Names(MaskToCaps(eff))),
		zap.Strings("permitted", Names(MaskToCaps(prm))),
		zap.Strings("inheritable", Names(MaskToCaps(inh))))
	return nil
}

// SetKeepCaps sets or clears the "keep capabilities" flag, which preserves
// permitted capabilities across a switch away from uid 0. See prctl(2).
func (c *Control) SetKeepCaps(enable bool) error {
	var arg uintptr
	if enable {
		arg = 1
	}
	if _, err := c.kernel.Prctl(PR_SET_KEEPCAPS, arg); err != nil {
		return os.NewSyscallError("prctl", err)
	}
	c.log.Debug("keepcaps set", zap.Bool("enable", enable))
	return nil
}

// KeepCaps reports the current "keep capabilities" flag.
func (c *Control) KeepCaps() (bool, error) {
	r, err := c.kernel.Prctl(PR_GET_KEEPCAPS, 0)
	if err != nil {
		return false, os.NewSyscallError("prctl", err)
	}
	return r == 1, nil
}

var std = New(nil)

// GetCaps calls GetCaps on a Control over DefaultKernel.
func GetCaps() (effective, permitted, inheritable []Cap, err error) {
	return std.GetCaps()
}

// DropAllCapsExcept calls DropAllCapsExcept on a Control over DefaultKernel.
func DropAllCapsExcept(effective, permitted, inheritable []Cap) error {
	return std.DropAllCapsExcept(effective, permitted, inheritable)
}

// SetKeepCaps calls SetKeepCaps on a Control over DefaultKernel.
func SetKeepCaps(enable bool) error {
	return std.SetKeepCaps(enable)
}

// KeepCaps calls KeepCaps on a Control over DefaultKernel.
func KeepCaps() (bool, error) {
	return std.KeepCaps()
}
