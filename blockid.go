package locgen

import (
	"fmt"
	"math"
)

// DigitCount returns the number of decimal digits in n. DigitCount(0) is 1.
//
// Integer division is used instead of floor(log10(n))+1 because float log10
// is not exact near powers of ten for large n.
func DigitCount(n uint32) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}

// GlobalBlockID concatenates the territory code's decimal digits with the
// block number's: code * 10^DigitCount(block) + block.
//
// The result is the key type of the emitted lookup table, so anything that
// doesn't fit in an int32 is rejected.
func GlobalBlockID(code, block uint32) (int32, error) {
	scale := uint64(1)
	for i := DigitCount(block); i > 0; i-- {
		scale *= 10
	}
	if uint64(block) > math.MaxInt32 || uint64(code) > (math.MaxInt32-uint64(block))/scale {
		return 0, fmt.Errorf("%w: territory %d block %d", ErrBlockIDOutOfRange, code, block)
	}
	return int32(uint64(code)*scale + uint64(block)), nil
}
