package evm

import (
	"sync/atomic"

	"github.com/entropyio/go-minievm/common"
	"github.com/entropyio/go-minievm/common/crypto"
	"github.com/entropyio/go-minievm/config"
	"github.com/entropyio/go-minievm/logger"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

var log = logger.NewLogger("[evm]")

type (
	// CanTransferFunc is the signature of a transfer guard function
	CanTransferFunc func(*Account, *uint256.Int) bool
	// TransferFunc is the signature of a transfer function
	TransferFunc func(*Account, *uint256.Int)
)

// Context provides the interpreter with the environment values contract code
// can read. They are constants for the lifetime of a run.
type Context struct {
	// CanTransfer returns whether the call value can be credited to the account
	CanTransfer CanTransferFunc
	// Transfer credits the call value to the account before the code runs
	Transfer TransferFunc

	Address     common.Address
	Origin      common.Address
	Caller      common.Address
	ChainID     uint256.Int
	BaseFee     uint256.Int
	BlockNumber uint256.Int
}

// EVMConfig are the configuration options for the Interpreter
type EVMConfig struct {
	Debug bool // Enables per-instruction debug logging

	StepLimit   uint64 // Maximum number of executed instructions (0 = unlimited)
	MemoryLimit uint64 // Maximum memory size in bytes (0 = config.DefaultMemoryLimit)

	// Jumpdests caches code analysis across runs. Nil uses a process wide cache.
	Jumpdests *JumpdestCache
}

func newKeccak() crypto.KeccakState {
	return crypto.NewKeccakState()
}

// Interpreter is the execution state of a single run: program counter,
// stack and memory, plus the account it runs against. The account's storage
// is written through directly; the account is leased for the duration of Run
// so concurrent runs against it fail instead of interleaving.
type Interpreter struct {
	account *Account
	code    []byte
	storage Storage

	ctx Context
	cfg EVMConfig

	pc      uint64
	stack   *Stack
	memory  *Memory
	halted  bool
	failed  bool
	input   []byte
	value   uint256.Int
	balance uint256.Int // snapshot taken once the call value is credited

	table     *JumpTable
	analysis  bitvec
	hasher    crypto.KeccakState // Keccak256 hasher instance shared across opcodes
	hasherBuf common.Hash        // Keccak256 hasher result array shared across opcodes

	steps uint64
	abort atomic.Bool
}

// NewInterpreter binds a new run to account with the given call value and
// input.
func NewInterpreter(account *Account, value *uint256.Int, input []byte, ctx Context, cfg EVMConfig) *Interpreter {
	if cfg.MemoryLimit == 0 {
		cfg.MemoryLimit = config.DefaultMemoryLimit
	}
	if cfg.Jumpdests == nil {
		cfg.Jumpdests = defaultJumpdests
	}
	in := &Interpreter{
		account: account,
		code:    account.Code(),
		storage: account.Storage,
		ctx:     ctx,
		cfg:     cfg,
		stack:   newstack(),
		memory:  NewMemory(),
		input:   input,
		table:   &instructionSet,
	}
	if value != nil {
		in.value.Set(value)
	}
	return in
}

// Cancel aborts the run at the next instruction boundary. It is safe to call
// from another goroutine.
func (in *Interpreter) Cancel() {
	in.abort.Store(true)
}

// Stack returns the operand stack, for inspection after a run.
func (in *Interpreter) Stack() *Stack { return in.stack }

// Memory returns the run's memory, for inspection after a run.
func (in *Interpreter) Memory() *Memory { return in.memory }

// PC returns the program counter.
func (in *Interpreter) PC() uint64 { return in.pc }

// Steps returns the number of instructions executed so far.
func (in *Interpreter) Steps() uint64 { return in.steps }

// Run loops and evaluates the account's code until a terminal instruction is
// reached or the code ends, which counts as STOP. Reverts, including invalid
// jumps and INVALID, come back as an Outcome; malformed code and resource
// violations come back as an error.
//
// An Interpreter can only be run once.
func (in *Interpreter) Run() (*Outcome, error) {
	if in.halted {
		return nil, ErrInterpreterUsed
	}
	if !in.account.acquire() {
		return nil, ErrAccountInUse
	}
	defer in.account.release()

	// Credit the call value. A failed or reverted run hands it back.
	if !in.value.IsZero() && in.ctx.Transfer != nil {
		if in.ctx.CanTransfer != nil && !in.ctx.CanTransfer(in.account, &in.value) {
			return nil, ErrBalanceOverflow
		}
		prev := in.account.Balance
		in.ctx.Transfer(in.account, &in.value)
		defer func() {
			if in.failed {
				in.account.Balance = prev
			}
		}()
	}
	in.balance = in.account.Balance

	out, err := in.loop()
	in.halted = true
	in.failed = err != nil || out.Reverted()
	if err != nil {
		log.Debugf("run failed after %d steps: %v", in.steps, err)
		return nil, err
	}
	log.Debugf("run finished after %d steps: %v", in.steps, out)
	return out, nil
}

func (in *Interpreter) loop() (*Outcome, error) {
	var (
		op     OpCode
		pcCopy uint64 // the pc is moved by jumps and pushes; errors report where the op started
	)
	for {
		if in.abort.Load() {
			return nil, ErrExecutionAborted
		}
		// Running off the end of the code is an implicit STOP.
		if in.pc >= uint64(len(in.code)) {
			return stopped(), nil
		}
		if in.cfg.StepLimit > 0 && in.steps >= in.cfg.StepLimit {
			return nil, ErrStepLimitReached
		}
		in.steps++

		pcCopy = in.pc
		op = OpCode(in.code[in.pc])
		operation := in.table[op]
		if operation == nil {
			return nil, errors.Wrapf(&ErrInvalidOpCode{opcode: op}, "pc %d", pcCopy)
		}
		// Validate stack
		if err := operation.validateStack(in.stack); err != nil {
			return nil, errors.Wrapf(err, "%v at pc %d", op, pcCopy)
		}
		// Grow memory before the instruction touches it.
		if operation.memorySize != nil {
			size, err := operation.memorySize(in.stack)
			if err != nil {
				return nil, errors.Wrapf(err, "%v at pc %d", op, pcCopy)
			}
			if size > in.cfg.MemoryLimit {
				return nil, errors.Wrapf(ErrMemoryLimit, "%v at pc %d needs %d bytes", op, pcCopy, size)
			}
			if size > 0 {
				in.memory.Resize(size)
			}
		}
		if in.cfg.Debug {
			log.Debugf("pc=%05d op=%-10v stack=%d mem=%d", pcCopy, op, in.stack.len(), in.memory.Len())
		}

		out, err := operation.execute(&in.pc, in)
		if err != nil {
			return nil, errors.Wrapf(err, "%v at pc %d", op, pcCopy)
		}
		if out != nil {
			return out, nil
		}
		if !operation.jumps {
			in.pc++
		}
	}
}

// validJumpdest reports whether dest is a JUMPDEST instruction, as opposed to
// a 0x5b byte inside PUSH data or a position outside the code.
func (in *Interpreter) validJumpdest(dest *uint256.Int) bool {
	udest, overflow := dest.Uint64WithOverflow()
	if overflow || udest >= uint64(len(in.code)) {
		return false
	}
	if OpCode(in.code[udest]) != JUMPDEST {
		return false
	}
	if in.analysis == nil {
		in.analysis = in.cfg.Jumpdests.analysis(in.account.CodeHash(), in.code)
	}
	return in.analysis.codeSegment(udest)
}
