package evm

type executionFunc func(pc *uint64, in *Interpreter) (*Outcome, error)

type operation struct {
	// execute is the operation function
	execute executionFunc
	// minStack tells how many stack items are required
	minStack int
	// maxStack specifies the max length the stack can have for this operation
	// to not overflow the stack.
	maxStack int

	// memorySize returns the memory size required for the operation
	memorySize memorySizeFunc

	// jumps indicates whether the operation sets the program counter itself
	jumps bool
}

// JumpTable contains the EVM opcodes supported at a given fork.
type JumpTable [256]*operation

var instructionSet = newInstructionSet()

// newInstructionSet returns the closed set of instructions the interpreter
// understands. Every other byte is an invalid opcode.
func newInstructionSet() JumpTable {
	tbl := JumpTable{
		STOP: {
			execute:  opStop,
			minStack: minStack(0, 0),
			maxStack: maxStack(0, 0),
		},
		ADD: {
			execute:  opAdd,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		MUL: {
			execute:  opMul,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		SUB: {
			execute:  opSub,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		DIV: {
			execute:  opDiv,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		SDIV: {
			execute:  opSdiv,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		MOD: {
			execute:  opMod,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		ADDMOD: {
			execute:  opAddmod,
			minStack: minStack(3, 1),
			maxStack: maxStack(3, 1),
		},
		MULMOD: {
			execute:  opMulmod,
			minStack: minStack(3, 1),
			maxStack: maxStack(3, 1),
		},
		EXP: {
			execute:  opExp,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		LT: {
			execute:  opLt,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		GT: {
			execute:  opGt,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		SLT: {
			execute:  opSlt,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		SGT: {
			execute:  opSgt,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		EQ: {
			execute:  opEq,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		ISZERO: {
			execute:  opIszero,
			minStack: minStack(1, 1),
			maxStack: maxStack(1, 1),
		},
		AND: {
			execute:  opAnd,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		OR: {
			execute:  opOr,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		XOR: {
			execute:  opXor,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		NOT: {
			execute:  opNot,
			minStack: minStack(1, 1),
			maxStack: maxStack(1, 1),
		},
		BYTE: {
			execute:  opByte,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		SHL: {
			execute:  opSHL,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		SHR: {
			execute:  opSHR,
			minStack: minStack(2, 1),
			maxStack: maxStack(2, 1),
		},
		KECCAK256: {
			execute:    opKeccak256,
			minStack:   minStack(2, 1),
			maxStack:   maxStack(2, 1),
			memorySize: memoryKeccak256,
		},
		ADDRESS: {
			execute:  opAddress,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		ORIGIN: {
			execute:  opOrigin,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		CALLER: {
			execute:  opCaller,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		CALLVALUE: {
			execute:  opCallValue,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		CALLDATALOAD: {
			execute:  opCallDataLoad,
			minStack: minStack(1, 1),
			maxStack: maxStack(1, 1),
		},
		CALLDATASIZE: {
			execute:  opCallDataSize,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		CODECOPY: {
			execute:    opCodeCopy,
			minStack:   minStack(3, 0),
			maxStack:   maxStack(3, 0),
			memorySize: memoryCodeCopy,
		},
		NUMBER: {
			execute:  opNumber,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		CHAINID: {
			execute:  opChainID,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		SELFBALANCE: {
			execute:  opSelfBalance,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		BASEFEE: {
			execute:  opBaseFee,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		POP: {
			execute:  opPop,
			minStack: minStack(1, 0),
			maxStack: maxStack(1, 0),
		},
		MLOAD: {
			execute:    opMload,
			minStack:   minStack(1, 1),
			maxStack:   maxStack(1, 1),
			memorySize: memoryMLoad,
		},
		MSTORE: {
			execute:    opMstore,
			minStack:   minStack(2, 0),
			maxStack:   maxStack(2, 0),
			memorySize: memoryMStore,
		},
		MSTORE8: {
			execute:    opMstore8,
			minStack:   minStack(2, 0),
			maxStack:   maxStack(2, 0),
			memorySize: memoryMStore8,
		},
		SLOAD: {
			execute:  opSload,
			minStack: minStack(1, 1),
			maxStack: maxStack(1, 1),
		},
		SSTORE: {
			execute:  opSstore,
			minStack: minStack(2, 0),
			maxStack: maxStack(2, 0),
		},
		JUMP: {
			execute:  opJump,
			minStack: minStack(1, 0),
			maxStack: maxStack(1, 0),
			jumps:    true,
		},
		JUMPI: {
			execute:  opJumpi,
			minStack: minStack(2, 0),
			maxStack: maxStack(2, 0),
			jumps:    true,
		},
		PC: {
			execute:  opPc,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		JUMPDEST: {
			execute:  opJumpdest,
			minStack: minStack(0, 0),
			maxStack: maxStack(0, 0),
		},
		PUSH0: {
			execute:  opPush0,
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		},
		RETURN: {
			execute:    opReturn,
			minStack:   minStack(2, 0),
			maxStack:   maxStack(2, 0),
			memorySize: memoryReturn,
		},
		REVERT: {
			execute:    opRevert,
			minStack:   minStack(2, 0),
			maxStack:   maxStack(2, 0),
			memorySize: memoryRevert,
		},
		INVALID: {
			execute:  opInvalid,
			minStack: minStack(0, 0),
			maxStack: maxStack(0, 0),
		},
	}

	for i := 0; i < 32; i++ {
		tbl[PUSH1+OpCode(i)] = &operation{
			execute:  makePush(uint64(i + 1)),
			minStack: minStack(0, 1),
			maxStack: maxStack(0, 1),
		}
	}
	for i := 1; i <= 16; i++ {
		tbl[DUP1+OpCode(i-1)] = &operation{
			execute:  makeDup(i),
			minStack: minDupStack(i),
			maxStack: maxDupStack(i),
		}
		tbl[SWAP1+OpCode(i-1)] = &operation{
			execute:  makeSwap(i),
			minStack: minSwapStack(i + 1),
			maxStack: maxSwapStack(i + 1),
		}
	}
	return tbl
}
