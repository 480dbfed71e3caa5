//go:build !linux

package caps

import (
	"fmt"
	"strconv"
)

func lookupName(c Cap) (string, bool) {
	return "", false
}

// Parse accepts a decimal capability id. Names are only known on Linux.
func Parse(name string) (Cap, error) {
	n, err := strconv.ParseUint(name, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("caps: unknown capability %q", name)
	}
	c := Cap(n)
	if !c.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidCap, n)
	}
	return c, nil
}
