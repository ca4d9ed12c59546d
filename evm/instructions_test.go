package evm

import (
	"math/big"
	"testing"

	"github.com/entropyio/go-minievm/common"
	"github.com/entropyio/go-minievm/common/crypto"
	fuzz "github.com/google/gofuzz"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stackCase struct {
	name string
	code string
	want []uint256.Int
}

func runStackCases(t *testing.T, cases []stackCase) {
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in, out, err := execute(t, common.FromHex(tc.code), nil)
			require.NoError(t, err)
			require.Equal(t, ExitStop, out.Kind)
			assert.Equal(t, tc.want, words(in))
		})
	}
}

func TestArithmetic(t *testing.T) {
	runStackCases(t, []stackCase{
		{"sub", "600260030300", []uint256.Int{u(1)}},
		{"mul", "600260030200", []uint256.Int{u(6)}},
		{"exp", "600260020a", []uint256.Int{u(4)}},
		{"mod", "600360080600", []uint256.Int{u(2)}},
		{"div by zero", "600060070400", []uint256.Int{u(0)}},
		{"mod by zero", "600060070600", []uint256.Int{u(0)}},
		{"sdiv by zero", "600060070500", []uint256.Int{u(0)}},
		// ADDMOD(a=4, b=5, n=3)
		{"addmod", "6003600560040800", []uint256.Int{u(0)}},
		{"addmod zero modulus", "6000600560040800", []uint256.Int{u(0)}},
		// MULMOD(a=4, b=5, n=7)
		{"mulmod", "6007600560040900", []uint256.Int{u(6)}},
		{"mulmod zero modulus", "6000600560040900", []uint256.Int{u(0)}},
	})
}

func TestWrappingArithmetic(t *testing.T) {
	max := new(uint256.Int).SetAllOne()

	// max + 1 wraps to zero
	in, _, err := execute(t, program([]byte{byte(PUSH1), 1}, push32(max), ops(ADD)), nil)
	require.NoError(t, err)
	assert.Equal(t, []uint256.Int{u(0)}, words(in))

	// 0 - 1 wraps to max
	in, _, err = execute(t, common.FromHex("6001600003"), nil)
	require.NoError(t, err)
	assert.Equal(t, []uint256.Int{*max}, words(in))
}

func TestModularArithmeticOnFullWidth(t *testing.T) {
	max := new(uint256.Int).SetAllOne()
	n := uint256.NewInt(12)

	// (max * max) mod 12 and (max + max) mod 12 are computed without wrapping.
	code := program(push32(n), push32(max), push32(max), ops(MULMOD), push32(n), push32(max), push32(max), ops(ADDMOD))
	in, _, err := execute(t, code, nil)
	require.NoError(t, err)

	m := max.ToBig()
	mod := big.NewInt(12)
	mul := new(big.Int).Mod(new(big.Int).Mul(m, m), mod)
	add := new(big.Int).Mod(new(big.Int).Add(m, m), mod)
	assert.Equal(t, []uint256.Int{*uint256.MustFromBig(mul), *uint256.MustFromBig(add)}, words(in))
}

func TestSignedArithmetic(t *testing.T) {
	// -(2^200) does not fit any native integer.
	big200 := new(uint256.Int).Lsh(uint256.NewInt(1), 200)
	neg200 := new(uint256.Int).Neg(big200)
	neg199 := new(uint256.Int).Neg(new(uint256.Int).Lsh(uint256.NewInt(1), 199))
	minusOne := new(uint256.Int).SetAllOne()

	tests := []struct {
		name string
		code []byte
		want uint256.Int
	}{
		{"sdiv", program(push32(uint256.NewInt(2)), push32(neg200), ops(SDIV)), *neg199},
		{"sdiv negative divisor", program(push32(minusOne), push32(neg200), ops(SDIV)), *big200},
		{"slt", program(push32(uint256.NewInt(1)), push32(neg200), ops(SLT)), u(1)},
		{"slt unsigned would differ", program(push32(neg200), push32(uint256.NewInt(1)), ops(SLT)), u(0)},
		{"sgt", program(push32(neg200), push32(uint256.NewInt(1)), ops(SGT)), u(1)},
		{"lt treats words unsigned", program(push32(uint256.NewInt(1)), push32(neg200), ops(LT)), u(0)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in, _, err := execute(t, tc.code, nil)
			require.NoError(t, err)
			assert.Equal(t, []uint256.Int{tc.want}, words(in))
		})
	}
}

func TestComparison(t *testing.T) {
	runStackCases(t, []stackCase{
		{"lt", "6002600310", []uint256.Int{u(0)}},
		{"gt", "6002600311", []uint256.Int{u(1)}},
		{"gt compares top against second", "6003600211", []uint256.Int{u(0)}},
		{"eq", "6003600314", []uint256.Int{u(1)}},
		{"not eq", "6003600414", []uint256.Int{u(0)}},
		{"iszero", "600015", []uint256.Int{u(1)}},
		{"iszero nonzero", "600715", []uint256.Int{u(0)}},
	})
}

func TestBitwise(t *testing.T) {
	max := new(uint256.Int).SetAllOne()
	runStackCases(t, []stackCase{
		{"and", "600c600a16", []uint256.Int{u(8)}},
		{"or", "600c600a17", []uint256.Int{u(14)}},
		{"xor", "600c600a18", []uint256.Int{u(6)}},
		{"not", "600019", []uint256.Int{*max}},
		{"shl", "600460011b", []uint256.Int{u(8)}},
		{"shr", "600860011c", []uint256.Int{u(4)}},
		{"shl past width", "60016101001b", []uint256.Int{u(0)}},
		{"shr past width", "600161ffff1c", []uint256.Int{u(0)}},
		// BYTE(30, 0x02011005) and BYTE(27, 0x0201100506)
		{"byte", "630201100560" + "1e1a" + "64020110050660" + "1b1a00", []uint256.Int{u(0x10), u(0x02)}},
		{"byte out of range", "60ff60201a", []uint256.Int{u(0)}},
	})
}

func TestStackManipulation(t *testing.T) {
	runStackCases(t, []stackCase{
		{"pop", "6001600250", []uint256.Int{u(1)}},
		{"dup1", "600180", []uint256.Int{u(1), u(1)}},
		{"dup2", "6001600281", []uint256.Int{u(1), u(2), u(1)}},
		{"swap1", "6001600290", []uint256.Int{u(2), u(1)}},
		{"swap2", "60016002600391", []uint256.Int{u(3), u(2), u(1)}},
		{"push0", "5f", []uint256.Int{u(0)}},
		{"pc", "58585800", []uint256.Int{u(0), u(1), u(2)}},
		{"pc after push", "61ffff58", []uint256.Int{u(0xffff), u(3)}},
	})

	// DUP16 and SWAP16 reach the deepest slot they address.
	code := make([]byte, 0, 40)
	for i := 1; i <= 17; i++ {
		code = append(code, byte(PUSH1), byte(i))
	}
	in, _, err := execute(t, append(code, byte(DUP16)), nil)
	require.NoError(t, err)
	assert.Equal(t, u(2), words(in)[17])

	in, _, err = execute(t, append(code, byte(SWAP16)), nil)
	require.NoError(t, err)
	assert.Equal(t, u(17), words(in)[0])
	assert.Equal(t, u(1), words(in)[16])
}

func TestPush32(t *testing.T) {
	v := new(uint256.Int).SetBytes(common.FromHex("0x0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20"))
	in, _, err := execute(t, push32(v), nil)
	require.NoError(t, err)
	assert.Equal(t, []uint256.Int{*v}, words(in))
}

func TestJumps(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		out   *Outcome
		stack []uint256.Int
	}{
		// PUSH1 4, JUMP, INVALID, JUMPDEST, PUSH1 1, STOP
		{"jump", "600456fe5b600100", &Outcome{Kind: ExitStop}, []uint256.Int{u(1)}},
		{"jump to non-jumpdest", "60035600", &Outcome{Kind: ExitRevert, Data: []byte{0x56}}, nil},
		// position 4 is a 0x5b byte inside PUSH1 data
		{"jump into push data", "600456605b00", &Outcome{Kind: ExitRevert, Data: []byte{0x56}}, nil},
		{"jump out of bounds", "60ff56", &Outcome{Kind: ExitRevert, Data: []byte{0x56}}, nil},
		// JUMPI(dest=9, cond=0) falls through
		{"jumpi not taken", "6000600957600100", &Outcome{Kind: ExitStop}, []uint256.Int{u(1)}},
		// JUMPI(dest=6, cond=1), INVALID at 5, JUMPDEST at 6
		{"jumpi taken", "6001600657fe5b600200", &Outcome{Kind: ExitStop}, []uint256.Int{u(2)}},
		{"jumpi to non-jumpdest", "600160095700", &Outcome{Kind: ExitRevert, Data: []byte{0x57}}, nil},
		{"jumpi invalid target not taken", "600060ff57600300", &Outcome{Kind: ExitStop}, []uint256.Int{u(3)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in, out, err := execute(t, common.FromHex(tc.code), nil)
			require.NoError(t, err)
			assert.Equal(t, tc.out, out)
			if tc.stack != nil {
				assert.Equal(t, tc.stack, words(in))
			}
		})
	}

	code := program(push32(new(uint256.Int).SetAllOne()), ops(JUMP))
	_, out, err := execute(t, code, nil)
	require.NoError(t, err)
	assert.True(t, out.Reverted())
}

func TestMemoryInstructions(t *testing.T) {
	// MSTORE(0, 0x2a), MLOAD(64)
	in, _, err := execute(t, common.FromHex("602a600052604051"), nil)
	require.NoError(t, err)
	assert.Equal(t, []uint256.Int{u(0)}, words(in))
	assert.Equal(t, 96, in.Memory().Len())
	assert.Equal(t, uint64(3), in.Memory().Words())

	// MSTORE8(1, 0x1ff) keeps the low byte.
	in, _, err = execute(t, common.FromHex("6101ff600153"), nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0xff}, in.Memory().Data())
	assert.Equal(t, uint64(1), in.Memory().Words())

	// MSTORE(0, 0x2a), MLOAD(0)
	in, _, err = execute(t, common.FromHex("602a600052600051"), nil)
	require.NoError(t, err)
	assert.Equal(t, []uint256.Int{u(0x2a)}, words(in))
}

func TestKeccak256(t *testing.T) {
	// KECCAK256(0, 0) hashes the empty string without touching memory.
	in, _, err := execute(t, common.FromHex("6000600020"), nil)
	require.NoError(t, err)
	empty := crypto.Keccak256Hash(nil)
	assert.Equal(t, []uint256.Int{*new(uint256.Int).SetBytes(empty.Bytes())}, words(in))
	assert.Equal(t, 0, in.Memory().Len())

	// MSTORE8(0, 0x61), KECCAK256(0, 1), KECCAK256(0, 1)
	in, _, err = execute(t, common.FromHex("606160005360016000206001600020"), nil)
	require.NoError(t, err)
	a := crypto.Keccak256Hash([]byte("a"))
	want := *new(uint256.Int).SetBytes(a.Bytes())
	assert.Equal(t, []uint256.Int{want, want}, words(in))
}

func TestCallData(t *testing.T) {
	input := []byte{1, 2, 3}

	in, _, err := execute(t, common.FromHex("36600135"), input)
	require.NoError(t, err)
	loaded := new(uint256.Int).SetBytes(common.RightPadBytes([]byte{2, 3}, 32))
	assert.Equal(t, []uint256.Int{u(3), *loaded}, words(in))

	code := program(push32(new(uint256.Int).SetAllOne()), ops(CALLDATALOAD), []byte{byte(PUSH1), 3}, ops(CALLDATALOAD))
	in, _, err = execute(t, code, input)
	require.NoError(t, err)
	assert.Equal(t, []uint256.Int{u(0), u(0)}, words(in))
}

func TestCodeCopy(t *testing.T) {
	// CODECOPY(dest=0, offset=0, size=16) on 8 bytes of code
	code := common.FromHex("6010600060003900")
	in, _, err := execute(t, code, nil)
	require.NoError(t, err)
	assert.Equal(t, append(append([]byte{}, code...), make([]byte, 8)...), in.Memory().Data())

	// CODECOPY(dest=4, offset=2, size=2)
	in, _, err = execute(t, common.FromHex("6002600260043900"), nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 0x60, 0x02}, in.Memory().Data())

	// An offset past the code copies zeroes.
	code = program([]byte{byte(PUSH1), 2}, push32(new(uint256.Int).SetAllOne()), ops(PUSH0, CODECOPY))
	in, _, err = execute(t, code, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0}, in.Memory().Data())
}

func TestEnvironment(t *testing.T) {
	account := NewAccount(ops(ADDRESS, ORIGIN, CALLER, CALLVALUE, CHAINID, BASEFEE, NUMBER, SELFBALANCE))
	account.Balance.SetUint64(1000)

	in := NewInterpreter(account, uint256.NewInt(7), nil, testContext, EVMConfig{})
	out, err := in.Run()
	require.NoError(t, err)
	assert.Equal(t, ExitStop, out.Kind)

	addr := func(a common.Address) uint256.Int { return *new(uint256.Int).SetBytes(a.Bytes()) }
	assert.Equal(t, []uint256.Int{
		addr(testContext.Address),
		addr(testContext.Origin),
		addr(testContext.Caller),
		u(7),
		u(0xBEEEEEF),
		u(1),
		u(17),
		u(1000),
	}, words(in))
}

func TestAddSubRoundTrip(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for i := 0; i < 200; i++ {
		var a, b [4]uint64
		f.Fuzz(&a)
		f.Fuzz(&b)
		x, y := uint256.Int(a), uint256.Int(b)

		// (x + y), then y SWAP1 SUB, gives back x
		code := program(push32(&x), push32(&y), ops(ADD), push32(&y), ops(SWAP1, SUB))
		in, _, err := execute(t, code, nil)
		require.NoError(t, err)
		require.Equal(t, []uint256.Int{x}, words(in))
	}
}

func TestDivModAgainstBig(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for i := 0; i < 200; i++ {
		var a, b [4]uint64
		f.Fuzz(&a)
		f.Fuzz(&b)
		if i%4 == 0 {
			b = [4]uint64{b[0] % 1024}
		}
		x, y := uint256.Int(a), uint256.Int(b)

		// x / y and x % y, x on top
		code := program(push32(&y), push32(&x), ops(DIV), push32(&y), push32(&x), ops(MOD))
		in, _, err := execute(t, code, nil)
		require.NoError(t, err)

		quo, rem := new(big.Int), new(big.Int)
		if y.Sign() != 0 {
			quo.QuoRem(x.ToBig(), y.ToBig(), rem)
		}
		require.Equal(t, []uint256.Int{*uint256.MustFromBig(quo), *uint256.MustFromBig(rem)}, words(in))
	}
}
