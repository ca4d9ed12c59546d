package abi

import (
	"fmt"
)

// Type enumerator
const (
	UintTy byte = iota
	BoolTy
	StringTy
	AddressTy
)

// Type is the reflection of the supported argument type.
type Type struct {
	T byte // Our own type checking

	stringKind string // holds the unparsed string for deriving signatures
}

// NewType creates a new reflection type of abi type given in t. Only the
// elementary types the command reader understands are supported.
func NewType(t string) (Type, error) {
	typ := Type{stringKind: t}
	switch t {
	case "uint256", "uint":
		typ.T = UintTy
		typ.stringKind = "uint256"
	case "bool":
		typ.T = BoolTy
	case "string":
		typ.T = StringTy
	case "address":
		typ.T = AddressTy
	default:
		return Type{}, fmt.Errorf("abi: unsupported arg type: %q", t)
	}
	return typ, nil
}

// NewTypes parses a list of type names.
func NewTypes(names []string) ([]Type, error) {
	types := make([]Type, len(names))
	for i, name := range names {
		typ, err := NewType(name)
		if err != nil {
			return nil, err
		}
		types[i] = typ
	}
	return types, nil
}

// String implements Stringer
func (t Type) String() string {
	return t.stringKind
}

// isDynamicType returns true if the type is dynamic: its value lives in the
// tail and the head only holds an offset.
func isDynamicType(t Type) bool {
	return t.T == StringTy
}
