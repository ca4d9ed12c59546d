package asm

import (
	"testing"

	"github.com/entropyio/go-minievm/common"
	"github.com/entropyio/go-minievm/evm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tests disassembling instructions
func TestInstructionIterator(t *testing.T) {
	for i, tc := range []struct {
		want    int
		code    string
		wantErr string
	}{
		{2, "61000000", ""},                             // valid code
		{0, "6100", "incomplete push instruction at 0"}, // invalid code
		{2, "5900", ""},                                 // undefined instruction
		{0, "", ""},                                     // empty
		{1, "5f", ""},                                   // PUSH0 has no argument
	} {
		var (
			have    int
			code, _ = common.DecodeHex(tc.code)
			it      = NewInstructionIterator(code)
		)
		for it.Next() {
			have++
		}
		var haveErr = ""
		if it.Error() != nil {
			haveErr = it.Error().Error()
		}
		assert.Equal(t, tc.wantErr, haveErr, "test %d", i)
		assert.Equal(t, tc.want, have, "test %d", i)
	}
}

func TestDisassemble(t *testing.T) {
	lines, err := Disassemble(common.FromHex("600260030156fe5b00"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"00000: PUSH1 0x02",
		"00002: PUSH1 0x03",
		"00004: ADD",
		"00005: JUMP",
		"00006: INVALID",
		"00007: JUMPDEST",
		"00008: STOP",
	}, lines)

	lines, err = Disassemble([]byte{0x0c})
	require.NoError(t, err)
	assert.Equal(t, []string{"00000: opcode 0xc not defined"}, lines)

	_, err = Disassemble(common.FromHex("600101627f"))
	assert.Error(t, err)
}

func TestDecodePartial(t *testing.T) {
	instrs, err := Decode(common.FromHex("600101627f"))
	assert.Error(t, err)
	require.Len(t, instrs, 2)
	assert.Equal(t, Instruction{PC: 2, Op: evm.ADD}, instrs[1])
}

func TestAssemble(t *testing.T) {
	code, err := Assemble(`
		PUSH1 0x02 ; first
		PUSH1 3
		add
		PUSH2 0x01
		PUSH0
		STOP`)
	require.NoError(t, err)
	assert.Equal(t, common.FromHex("60026003016100015f00"), code)

	lines, err := Disassemble(code)
	require.NoError(t, err)
	assert.Len(t, lines, 6)

	for _, src := range []string{"PUSH1", "PUSH1 0x0102", "PUSH1 zz", "FOO", "PUSH33"} {
		_, err := Assemble(src)
		assert.Error(t, err, src)
	}
}
