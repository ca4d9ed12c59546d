package evm

import (
	"math"

	"github.com/holiman/uint256"
)

// The binary opcodes pop their first operand from the top of the stack and
// overwrite the second one in place, so `x op y` has x as the topmost item.

func opAdd(pc *uint64, in *Interpreter) (*Outcome, error) {
	x, y := in.stack.pop(), in.stack.peek()
	y.Add(&x, y)
	return nil, nil
}

func opSub(pc *uint64, in *Interpreter) (*Outcome, error) {
	x, y := in.stack.pop(), in.stack.peek()
	y.Sub(&x, y)
	return nil, nil
}

func opMul(pc *uint64, in *Interpreter) (*Outcome, error) {
	x, y := in.stack.pop(), in.stack.peek()
	y.Mul(&x, y)
	return nil, nil
}

func opDiv(pc *uint64, in *Interpreter) (*Outcome, error) {
	x, y := in.stack.pop(), in.stack.peek()
	y.Div(&x, y)
	return nil, nil
}

func opSdiv(pc *uint64, in *Interpreter) (*Outcome, error) {
	x, y := in.stack.pop(), in.stack.peek()
	y.SDiv(&x, y)
	return nil, nil
}

func opMod(pc *uint64, in *Interpreter) (*Outcome, error) {
	x, y := in.stack.pop(), in.stack.peek()
	y.Mod(&x, y)
	return nil, nil
}

func opExp(pc *uint64, in *Interpreter) (*Outcome, error) {
	base, exponent := in.stack.pop(), in.stack.peek()
	exponent.Exp(&base, exponent)
	return nil, nil
}

func opAddmod(pc *uint64, in *Interpreter) (*Outcome, error) {
	x, y, z := in.stack.pop(), in.stack.pop(), in.stack.peek()
	z.AddMod(&x, &y, z)
	return nil, nil
}

func opMulmod(pc *uint64, in *Interpreter) (*Outcome, error) {
	x, y, z := in.stack.pop(), in.stack.pop(), in.stack.peek()
	z.MulMod(&x, &y, z)
	return nil, nil
}

func opLt(pc *uint64, in *Interpreter) (*Outcome, error) {
	x, y := in.stack.pop(), in.stack.peek()
	if x.Lt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opGt(pc *uint64, in *Interpreter) (*Outcome, error) {
	x, y := in.stack.pop(), in.stack.peek()
	if x.Gt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opSlt(pc *uint64, in *Interpreter) (*Outcome, error) {
	x, y := in.stack.pop(), in.stack.peek()
	if x.Slt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opSgt(pc *uint64, in *Interpreter) (*Outcome, error) {
	x, y := in.stack.pop(), in.stack.peek()
	if x.Sgt(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opEq(pc *uint64, in *Interpreter) (*Outcome, error) {
	x, y := in.stack.pop(), in.stack.peek()
	if x.Eq(y) {
		y.SetOne()
	} else {
		y.Clear()
	}
	return nil, nil
}

func opIszero(pc *uint64, in *Interpreter) (*Outcome, error) {
	x := in.stack.peek()
	if x.IsZero() {
		x.SetOne()
	} else {
		x.Clear()
	}
	return nil, nil
}

func opAnd(pc *uint64, in *Interpreter) (*Outcome, error) {
	x, y := in.stack.pop(), in.stack.peek()
	y.And(&x, y)
	return nil, nil
}

func opOr(pc *uint64, in *Interpreter) (*Outcome, error) {
	x, y := in.stack.pop(), in.stack.peek()
	y.Or(&x, y)
	return nil, nil
}

func opXor(pc *uint64, in *Interpreter) (*Outcome, error) {
	x, y := in.stack.pop(), in.stack.peek()
	y.Xor(&x, y)
	return nil, nil
}

func opNot(pc *uint64, in *Interpreter) (*Outcome, error) {
	x := in.stack.peek()
	x.Not(x)
	return nil, nil
}

func opByte(pc *uint64, in *Interpreter) (*Outcome, error) {
	th, val := in.stack.pop(), in.stack.peek()
	val.Byte(&th)
	return nil, nil
}

// opSHL pops the shift amount and shifts the value below it in place.
// Shifts of 256 bits or more clear it.
func opSHL(pc *uint64, in *Interpreter) (*Outcome, error) {
	shift, value := in.stack.pop(), in.stack.peek()
	if shift.LtUint64(256) {
		value.Lsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil, nil
}

// opSHR is opSHL to the right, zero filling.
func opSHR(pc *uint64, in *Interpreter) (*Outcome, error) {
	shift, value := in.stack.pop(), in.stack.peek()
	if shift.LtUint64(256) {
		value.Rsh(value, uint(shift.Uint64()))
	} else {
		value.Clear()
	}
	return nil, nil
}

func opKeccak256(pc *uint64, in *Interpreter) (*Outcome, error) {
	offset, size := in.stack.pop(), in.stack.peek()
	data := in.memory.GetPtr(offset.Uint64(), size.Uint64())

	if in.hasher == nil {
		in.hasher = newKeccak()
	} else {
		in.hasher.Reset()
	}
	in.hasher.Write(data)
	in.hasher.Read(in.hasherBuf[:])

	size.SetBytes(in.hasherBuf[:])
	return nil, nil
}

func opAddress(pc *uint64, in *Interpreter) (*Outcome, error) {
	in.stack.push(new(uint256.Int).SetBytes(in.ctx.Address.Bytes()))
	return nil, nil
}

func opOrigin(pc *uint64, in *Interpreter) (*Outcome, error) {
	in.stack.push(new(uint256.Int).SetBytes(in.ctx.Origin.Bytes()))
	return nil, nil
}

func opCaller(pc *uint64, in *Interpreter) (*Outcome, error) {
	in.stack.push(new(uint256.Int).SetBytes(in.ctx.Caller.Bytes()))
	return nil, nil
}

func opCallValue(pc *uint64, in *Interpreter) (*Outcome, error) {
	in.stack.push(&in.value)
	return nil, nil
}

func opCallDataLoad(pc *uint64, in *Interpreter) (*Outcome, error) {
	x := in.stack.peek()
	if offset, overflow := x.Uint64WithOverflow(); !overflow {
		data := getData(in.input, offset, 32)
		x.SetBytes(data)
	} else {
		x.Clear()
	}
	return nil, nil
}

func opCallDataSize(pc *uint64, in *Interpreter) (*Outcome, error) {
	in.stack.push(new(uint256.Int).SetUint64(uint64(len(in.input))))
	return nil, nil
}

func opCodeCopy(pc *uint64, in *Interpreter) (*Outcome, error) {
	var (
		memOffset  = in.stack.pop()
		codeOffset = in.stack.pop()
		length     = in.stack.pop()
	)
	uint64CodeOffset, overflow := codeOffset.Uint64WithOverflow()
	if overflow {
		uint64CodeOffset = math.MaxUint64
	}
	codeCopy := getData(in.code, uint64CodeOffset, length.Uint64())
	in.memory.Set(memOffset.Uint64(), length.Uint64(), codeCopy)
	return nil, nil
}

func opNumber(pc *uint64, in *Interpreter) (*Outcome, error) {
	in.stack.push(&in.ctx.BlockNumber)
	return nil, nil
}

func opChainID(pc *uint64, in *Interpreter) (*Outcome, error) {
	in.stack.push(&in.ctx.ChainID)
	return nil, nil
}

func opSelfBalance(pc *uint64, in *Interpreter) (*Outcome, error) {
	in.stack.push(&in.balance)
	return nil, nil
}

func opBaseFee(pc *uint64, in *Interpreter) (*Outcome, error) {
	in.stack.push(&in.ctx.BaseFee)
	return nil, nil
}

func opPop(pc *uint64, in *Interpreter) (*Outcome, error) {
	in.stack.pop()
	return nil, nil
}

func opMload(pc *uint64, in *Interpreter) (*Outcome, error) {
	v := in.stack.peek()
	offset := v.Uint64()
	v.SetBytes(in.memory.GetPtr(offset, 32))
	return nil, nil
}

func opMstore(pc *uint64, in *Interpreter) (*Outcome, error) {
	mStart, val := in.stack.pop(), in.stack.pop()
	in.memory.Set32(mStart.Uint64(), &val)
	return nil, nil
}

func opMstore8(pc *uint64, in *Interpreter) (*Outcome, error) {
	off, val := in.stack.pop(), in.stack.pop()
	in.memory.store[off.Uint64()] = byte(val.Uint64())
	return nil, nil
}

func opSload(pc *uint64, in *Interpreter) (*Outcome, error) {
	loc := in.stack.peek()
	val := in.storage.Get(loc)
	loc.Set(&val)
	return nil, nil
}

func opSstore(pc *uint64, in *Interpreter) (*Outcome, error) {
	loc, val := in.stack.pop(), in.stack.pop()
	in.storage.Set(&loc, &val)
	return nil, nil
}

// opJump moves the program counter to the popped target. A target that is not
// a JUMPDEST ends the run with a revert carrying the JUMP opcode.
func opJump(pc *uint64, in *Interpreter) (*Outcome, error) {
	pos := in.stack.pop()
	if !in.validJumpdest(&pos) {
		return reverted([]byte{byte(JUMP)}), nil
	}
	*pc = pos.Uint64()
	return nil, nil
}

func opJumpi(pc *uint64, in *Interpreter) (*Outcome, error) {
	pos, cond := in.stack.pop(), in.stack.pop()
	if !cond.IsZero() {
		if !in.validJumpdest(&pos) {
			return reverted([]byte{byte(JUMPI)}), nil
		}
		*pc = pos.Uint64()
	} else {
		*pc++
	}
	return nil, nil
}

func opJumpdest(pc *uint64, in *Interpreter) (*Outcome, error) {
	return nil, nil
}

func opPc(pc *uint64, in *Interpreter) (*Outcome, error) {
	in.stack.push(new(uint256.Int).SetUint64(*pc))
	return nil, nil
}

func opPush0(pc *uint64, in *Interpreter) (*Outcome, error) {
	in.stack.push(new(uint256.Int))
	return nil, nil
}

// make push instruction function
func makePush(size uint64) executionFunc {
	return func(pc *uint64, in *Interpreter) (*Outcome, error) {
		start := *pc + 1
		if start+size > uint64(len(in.code)) {
			return nil, ErrTruncatedPush
		}
		integer := new(uint256.Int).SetBytes(in.code[start : start+size])
		in.stack.push(integer)

		*pc += size
		return nil, nil
	}
}

// make dup instruction function
func makeDup(size int) executionFunc {
	return func(pc *uint64, in *Interpreter) (*Outcome, error) {
		in.stack.dup(size)
		return nil, nil
	}
}

// make swap instruction function
func makeSwap(size int) executionFunc {
	// switch n + 1 otherwise n would be swapped with n
	size++
	return func(pc *uint64, in *Interpreter) (*Outcome, error) {
		in.stack.swap(size)
		return nil, nil
	}
}

func opStop(pc *uint64, in *Interpreter) (*Outcome, error) {
	return stopped(), nil
}

func opReturn(pc *uint64, in *Interpreter) (*Outcome, error) {
	offset, size := in.stack.pop(), in.stack.pop()
	ret := in.memory.GetCopy(offset.Uint64(), size.Uint64())
	return returned(ret), nil
}

func opRevert(pc *uint64, in *Interpreter) (*Outcome, error) {
	offset, size := in.stack.pop(), in.stack.pop()
	ret := in.memory.GetCopy(offset.Uint64(), size.Uint64())
	return reverted(ret), nil
}

// opInvalid is the designated invalid instruction. Unlike an unknown opcode it
// is a deliberate abort and ends the run with a revert.
func opInvalid(pc *uint64, in *Interpreter) (*Outcome, error) {
	return reverted([]byte{byte(INVALID)}), nil
}
