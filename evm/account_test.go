package evm

import (
	"testing"

	"github.com/entropyio/go-minievm/common/crypto"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	s := make(Storage)
	one, two, three := uint256.NewInt(1), uint256.NewInt(2), uint256.NewInt(3)

	assert.Equal(t, uint256.Int{}, s.Get(one))
	s.Set(three, one)
	s.Set(one, two)
	s.Set(two, new(uint256.Int))
	assert.Len(t, s, 2)
	assert.Equal(t, []uint256.Int{*one, *three}, s.Keys())

	s.Set(three, new(uint256.Int))
	assert.Equal(t, []uint256.Int{*one}, s.Keys())
}

func TestAccountSetCodeOnce(t *testing.T) {
	account := NewAccount([]byte{0x00})
	assert.Equal(t, crypto.Keccak256Hash([]byte{0x00}), account.CodeHash())

	require.NoError(t, account.SetCode([]byte{0x01}))
	assert.Equal(t, []byte{0x01}, account.Code())
	assert.Equal(t, crypto.Keccak256Hash([]byte{0x01}), account.CodeHash())

	assert.ErrorIs(t, account.SetCode([]byte{0x02}), ErrCodeAlreadySet)
	assert.Equal(t, []byte{0x01}, account.Code())
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "Stop", stopped().String())
	assert.Equal(t, "Return(0x)", returned(nil).String())
	assert.Equal(t, "Return(0x0102)", returned([]byte{1, 2}).String())
	assert.Equal(t, "Revert(0x56)", reverted([]byte{0x56}).String())
	assert.False(t, returned(nil).Reverted())
}

func TestOpCodeNames(t *testing.T) {
	assert.Equal(t, "PUSH32", PUSH32.String())
	assert.Equal(t, "DUP16", DUP16.String())
	assert.Equal(t, "SWAP1", SWAP1.String())
	assert.Equal(t, "KECCAK256", KECCAK256.String())
	assert.Equal(t, "opcode 0xc not defined", OpCode(0x0c).String())
	assert.Equal(t, JUMPDEST, StringToOp("JUMPDEST"))

	assert.True(t, PUSH0.IsPush())
	assert.Equal(t, 0, PUSH0.PushBytes())
	assert.Equal(t, 32, PUSH32.PushBytes())
	assert.Equal(t, 0, ADD.PushBytes())
}

func TestInstructionSetIsClosed(t *testing.T) {
	defined := 0
	for op, operation := range instructionSet {
		if operation == nil {
			continue
		}
		defined++
		assert.NotNil(t, operation.execute, "%v", OpCode(op))
		assert.NotContains(t, OpCode(op).String(), "not defined")
	}
	// 49 named instructions, PUSH1..32, DUP1..16 and SWAP1..16
	assert.Equal(t, 49+32+16+16, defined)
}
