package abi

import (
	"fmt"
	"strconv"

	"github.com/entropyio/go-minievm/common"
	"github.com/holiman/uint256"
)

// readWord returns the 32-byte word at index.
func readWord(output []byte, index uint64) ([]byte, error) {
	end := index + 32
	if end < index || end > uint64(len(output)) {
		return nil, fmt.Errorf("abi: cannot marshal in to go type: length insufficient %d require %d", len(output), end)
	}
	return output[index:end], nil
}

// readOffset reads a word used as an offset or length into output.
func readOffset(output []byte, index uint64) (uint64, error) {
	word, err := readWord(output, index)
	if err != nil {
		return 0, err
	}
	v := new(uint256.Int).SetBytes(word)
	if !v.IsUint64() || v.Uint64() > uint64(len(output)) {
		return 0, fmt.Errorf("abi: offset %v out of bounds (%d bytes)", v, len(output))
	}
	return v.Uint64(), nil
}

// toString decodes the value of type t whose head starts at index and renders
// it the way the command reader prints results.
func toString(index uint64, t Type, output []byte) (string, error) {
	head, err := readWord(output, index)
	if err != nil {
		return "", err
	}
	switch t.T {
	case UintTy:
		return new(uint256.Int).SetBytes(head).Dec(), nil
	case BoolTy:
		v := new(uint256.Int).SetBytes(head)
		switch {
		case v.IsZero():
			return "false", nil
		case v.Eq(uint256.NewInt(1)):
			return "true", nil
		}
		return "", fmt.Errorf("abi: improperly encoded boolean value %x", head)
	case AddressTy:
		if !isZero(head[:12]) {
			return "", fmt.Errorf("abi: improperly encoded address %x", head)
		}
		return common.BytesToAddress(head[12:]).Hex(), nil
	case StringTy:
		offset, err := readOffset(output, index)
		if err != nil {
			return "", err
		}
		length, err := readOffset(output, offset)
		if err != nil {
			return "", err
		}
		start := offset + 32
		if start+length > uint64(len(output)) {
			return "", fmt.Errorf("abi: string of length %d at %d overruns %d bytes", length, start, len(output))
		}
		return strconv.Quote(string(output[start : start+length])), nil
	default:
		return "", fmt.Errorf("abi: unknown type %v", t)
	}
}

func isZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
