package caps

import (
	"fmt"
	"strconv"
	"strings"

	"kernel.org/pub/linux/libs/security/libcap/cap"
)

func lookupName(c Cap) (string, bool) {
	name := cap.Value(c).String()
	if _, err := strconv.Atoi(name); err == nil {
		return "", false
	}
	return name, true
}

// Parse accepts a capability name in any of the spellings "cap_net_admin",
// "CAP_NET_ADMIN" or "net_admin", or a decimal id.
func Parse(name string) (Cap, error) {
	if n, err := strconv.ParseUint(name, 10, 8); err == nil {
		c := Cap(n)
		if !c.Valid() {
			return 0, fmt.Errorf("%w: %d", ErrInvalidCap, n)
		}
		return c, nil
	}
	name = strings.ToLower(name)
	if !strings.HasPrefix(name, "cap_") {
		name = "cap_" + name
	}
	v, err := cap.FromName(name)
	if err != nil {
		return 0, fmt.Errorf("caps: unknown capability %q", name)
	}
	return Cap(v), nil
}
