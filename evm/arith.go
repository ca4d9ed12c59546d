package evm

import (
	"math"
	"math/bits"

	"github.com/holiman/uint256"
)

// toWordSize returns the ceiled word size required for memory expansion.
func toWordSize(size uint64) uint64 {
	if size > math.MaxUint64-31 {
		return math.MaxUint64/32 + 1
	}

	return (size + 31) / 32
}

// toOffset converts a word used as a memory or code position to a native
// offset.
func toOffset(x *uint256.Int) (uint64, error) {
	if !x.IsUint64() {
		return 0, ErrOffsetOverflow
	}
	return x.Uint64(), nil
}

// calcMemSize64 calculates the required memory size, and returns an error if
// the size does not fit in 64 bits. A zero length never requires memory,
// whatever the offset.
func calcMemSize64(off, l *uint256.Int) (uint64, error) {
	if l.IsZero() {
		return 0, nil
	}
	length, err := toOffset(l)
	if err != nil {
		return 0, err
	}
	return calcMemSize64WithUint(off, length)
}

// calcMemSize64WithUint calculates the required memory size for a fixed
// length access.
func calcMemSize64WithUint(off *uint256.Int, length64 uint64) (uint64, error) {
	if length64 == 0 {
		return 0, nil
	}
	offset64, err := toOffset(off)
	if err != nil {
		return 0, err
	}
	end, carry := bits.Add64(offset64, length64, 0)
	if carry != 0 {
		return 0, ErrMemoryOverflow
	}
	return end, nil
}

// getData returns a slice from the data based on the start and size and pads
// up to size with zero's. This function is overflow safe.
func getData(data []byte, start uint64, size uint64) []byte {
	length := uint64(len(data))
	if start > length {
		start = length
	}
	end := start + size
	if end > length || end < start {
		end = length
	}
	out := make([]byte, size)
	copy(out, data[start:end])
	return out
}
