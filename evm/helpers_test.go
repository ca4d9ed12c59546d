package evm

import (
	"testing"

	"github.com/entropyio/go-minievm/common"
	"github.com/holiman/uint256"
)

var testContext = Context{
	Address:     common.HexToAddress("0xADDDECAFADDDECAFADDDECAFADDDECAF"),
	Origin:      common.HexToAddress("0xDEADBEEFDEADBEEFDEADBEEFDEADBEEF"),
	Caller:      common.HexToAddress("0xDEADBEEFDEADBEEFDEADBEEFDEADBEEF"),
	ChainID:     *uint256.NewInt(0xBEEEEEF),
	BaseFee:     *uint256.NewInt(1),
	BlockNumber: *uint256.NewInt(17),
}

// execute runs code against a fresh account.
func execute(t *testing.T, code []byte, input []byte) (*Interpreter, *Outcome, error) {
	t.Helper()
	return executeWith(NewAccount(code), input, EVMConfig{})
}

func executeWith(account *Account, input []byte, cfg EVMConfig) (*Interpreter, *Outcome, error) {
	in := NewInterpreter(account, new(uint256.Int), input, testContext, cfg)
	out, err := in.Run()
	return in, out, err
}

func push32(x *uint256.Int) []byte {
	b := x.Bytes32()
	return append([]byte{byte(PUSH32)}, b[:]...)
}

func program(parts ...[]byte) []byte {
	var code []byte
	for _, p := range parts {
		code = append(code, p...)
	}
	return code
}

func ops(list ...OpCode) []byte {
	code := make([]byte, len(list))
	for i, op := range list {
		code[i] = byte(op)
	}
	return code
}

func words(in *Interpreter) []uint256.Int {
	return in.Stack().Data()
}

func u(v uint64) uint256.Int {
	return *uint256.NewInt(v)
}
