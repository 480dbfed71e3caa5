package caps

import "fmt"

// MaskToCaps returns the offsets of the set bits in mask, ascending.
func MaskToCaps(mask uint64) []Cap {
	caps := []Cap{}
	for i := Cap(0); i <= MaxCap; i++ {
		if mask&(1<<i) != 0 {
			caps = append(caps, i)
		}
	}
	return caps
}

// CapsToMask sets one bit per id in caps. Duplicates are harmless; an id
// above MaxCap is an error.
func CapsToMask(caps []Cap) (uint64, error) {
	var mask uint64
	for _, c := range caps {
		if !c.Valid() {
			return 0, fmt.Errorf("%w: %d", ErrInvalidCap, uint(c))
		}
		mask |= 1 << c
	}
	return mask, nil
}

// split returns the low and high 32-bit words of mask.
func split(mask uint64) (lo, hi uint32) {
	return uint32(mask), uint32(mask >> 32)
}

func join(lo, hi uint32) uint64 {
	return uint64(lo) | uint64(hi)<<32
}
