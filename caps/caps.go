// Package caps reads and replaces the Linux capability sets of the current
// process.
//
// The three POSIX sets (effective, permitted, inheritable) are exchanged with
// the kernel as 64-bit masks split into two 32-bit words, and exposed here as
// lists of Cap ids. See capabilities(7).
package caps

import (
	"errors"
	"fmt"
)

// Cap identifies a single capability bit, 0 through MaxCap.
type Cap uint

// MaxCap is the largest id a 64-bit mask can carry.
const MaxCap Cap = 63

// Expand as necessary.
const (
	CAP_CHOWN            Cap = 0
	CAP_DAC_OVERRIDE     Cap = 1
	CAP_FOWNER           Cap = 3
	CAP_KILL             Cap = 5
	CAP_SETGID           Cap = 6
	CAP_SETUID           Cap = 7
	CAP_SETPCAP          Cap = 8
	CAP_NET_BIND_SERVICE Cap = 10
	CAP_NET_BROADCAST    Cap = 11
	CAP_NET_ADMIN        Cap = 12
	CAP_NET_RAW          Cap = 13
	CAP_SYS_ADMIN        Cap = 21
)

// ErrInvalidCap is returned for ids that do not fit in a 64-bit mask.
var ErrInvalidCap = errors.New("caps: capability id out of range")

// ErrNotSupported is returned by every kernel call on platforms without
// Linux capabilities.
var ErrNotSupported = errors.New("caps: capabilities not supported on this platform")

// Valid reports whether c fits in a capability mask.
func (c Cap) Valid() bool {
	return c <= MaxCap
}

// String returns the kernel name of c, e.g. "cap_chown", or its number if
// the name is unknown.
func (c Cap) String() string {
	if name, ok := lookupName(c); ok {
		return name
	}
	return fmt.Sprintf("%d", uint(c))
}

// Names returns the names of caps in order.
func Names(caps []Cap) []string {
	names := make([]string, len(caps))
	for i, c := range caps {
		names[i] = c.String()
	}
	return names
}
