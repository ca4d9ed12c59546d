// Package abi implements the subset of the contract ABI needed to drive calls
// from the command line: function selectors, head/tail encoding of arguments
// given as text, and decoding of return data back to text.
package abi

import (
	"fmt"
	"strings"

	"github.com/entropyio/go-minievm/common/crypto"
	"github.com/holiman/uint256"
)

// Selector returns the first four bytes of the Keccak256 hash of the
// canonical function signature, e.g. "transfer(address,uint256)".
func Selector(signature string) [4]byte {
	var sel [4]byte
	copy(sel[:], crypto.Keccak256([]byte(signature))[:4])
	return sel
}

// ParseSignature splits "name(type1,type2)" into the name and its argument
// types.
func ParseSignature(signature string) (string, []string, error) {
	open := strings.IndexByte(signature, '(')
	if open <= 0 || !strings.HasSuffix(signature, ")") {
		return "", nil, fmt.Errorf("abi: invalid signature %q", signature)
	}
	name := signature[:open]
	list := signature[open+1 : len(signature)-1]
	if strings.ContainsAny(name, " ,()") || strings.ContainsAny(list, "()") {
		return "", nil, fmt.Errorf("abi: invalid signature %q", signature)
	}
	if list == "" {
		return name, nil, nil
	}
	types := strings.Split(list, ",")
	for i, t := range types {
		types[i] = strings.TrimSpace(t)
		if types[i] == "" {
			return "", nil, fmt.Errorf("abi: empty argument type in %q", signature)
		}
	}
	return name, types, nil
}

// Encode builds call data: the selector of signature followed by the encoded
// arguments. When types is empty they are taken from the signature.
func Encode(signature string, types, args []string) ([]byte, error) {
	if len(types) == 0 {
		_, parsed, err := ParseSignature(signature)
		if err != nil {
			return nil, err
		}
		types = parsed
	}
	packed, err := EncodeArgs(types, args)
	if err != nil {
		return nil, err
	}
	sel := Selector(signature)
	return append(sel[:], packed...), nil
}

// EncodeArgs encodes args as a tuple of the given types: one head word per
// argument, followed by the tails of the dynamic ones.
func EncodeArgs(types, args []string) ([]byte, error) {
	if len(types) != len(args) {
		return nil, fmt.Errorf("abi: argument count mismatch: %d types for %d values", len(types), len(args))
	}
	abiTypes, err := NewTypes(types)
	if err != nil {
		return nil, err
	}
	var (
		heads []byte
		tails []byte
	)
	offset := 32 * len(abiTypes)
	for i, t := range abiTypes {
		packed, err := packElement(t, args[i])
		if err != nil {
			return nil, err
		}
		if isDynamicType(t) {
			heads = append(heads, packNum(uint256.NewInt(uint64(offset)))...)
			tails = append(tails, packed...)
			offset += len(packed)
		} else {
			heads = append(heads, packed...)
		}
	}
	return append(heads, tails...), nil
}

// Decode decodes return data as a tuple of the given types. Empty data
// decodes to no values whatever the types, which is how functions without
// results return.
func Decode(types []string, data []byte) ([]string, error) {
	if len(data) == 0 {
		return nil, nil
	}
	abiTypes, err := NewTypes(types)
	if err != nil {
		return nil, err
	}
	values := make([]string, 0, len(abiTypes))
	for i, t := range abiTypes {
		v, err := toString(uint64(i)*32, t, data)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// FormatOutputs renders decoded values: a single value as is, anything else
// as a parenthesised list.
func FormatOutputs(values []string) string {
	if len(values) == 1 {
		return values[0]
	}
	return "(" + strings.Join(values, ", ") + ")"
}
