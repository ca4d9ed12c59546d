package abi

import (
	"fmt"
	"strings"

	"github.com/entropyio/go-minievm/common"
	"github.com/holiman/uint256"
)

// packBytesSlice packs the given bytes as [L, V] as the canonical
// representation of a dynamic bytes value.
func packBytesSlice(bytes []byte, l int) []byte {
	length := packNum(uint256.NewInt(uint64(l)))
	return append(length, common.RightPadBytes(bytes, (l+31)/32*32)...)
}

// packElement packs the textual value arg as type t. Static types return a
// 32-byte head, dynamic types return their tail.
func packElement(t Type, arg string) ([]byte, error) {
	switch t.T {
	case UintTy:
		v, err := parseUint(arg)
		if err != nil {
			return nil, err
		}
		return packNum(v), nil
	case StringTy:
		return packBytesSlice([]byte(arg), len(arg)), nil
	case AddressTy:
		raw, err := common.DecodeHex(arg)
		if err != nil || len(raw) != common.AddressLength {
			return nil, fmt.Errorf("abi: invalid address %q", arg)
		}
		return common.LeftPadBytes(raw, 32), nil
	case BoolTy:
		switch arg {
		case "true", "1":
			return packNum(uint256.NewInt(1)), nil
		case "false", "0":
			return packNum(new(uint256.Int)), nil
		}
		return nil, fmt.Errorf("abi: invalid bool %q", arg)
	default:
		return nil, fmt.Errorf("abi: cannot pack type %v", t)
	}
}

// packNum packs the given number as a 32-byte big-endian word.
func packNum(v *uint256.Int) []byte {
	b := v.Bytes32()
	return b[:]
}

// parseUint accepts decimal numbers and 0x-prefixed hex.
func parseUint(arg string) (*uint256.Int, error) {
	if arg == "" || arg[0] == '-' || arg[0] == '+' {
		return nil, fmt.Errorf("abi: invalid uint256 %q", arg)
	}
	if len(arg) > 1 && arg[0] == '0' && (arg[1] == 'x' || arg[1] == 'X') {
		// FromHex rejects leading zero digits.
		digits := strings.TrimLeft(arg[2:], "0")
		if digits == "" && len(arg) > 2 {
			digits = "0"
		}
		v, err := uint256.FromHex("0x" + digits)
		if err != nil {
			return nil, fmt.Errorf("abi: invalid uint256 %q: %v", arg, err)
		}
		return v, nil
	}
	v, err := uint256.FromDecimal(arg)
	if err != nil {
		return nil, fmt.Errorf("abi: invalid uint256 %q: %v", arg, err)
	}
	return v, nil
}
