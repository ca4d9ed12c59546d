package evm

import (
	"fmt"

	"github.com/pkg/errors"
)

// List of host-level errors. A run that returns one of these did not reach an
// outcome; reverts are reported through Outcome instead.
var (
	ErrStackUnderflow   = errors.New("stack underflow")
	ErrStackOverflow    = errors.New("stack limit reached")
	ErrTruncatedPush    = errors.New("not enough bytes for PUSH")
	ErrOffsetOverflow   = errors.New("word too large to convert to an offset")
	ErrMemoryOverflow   = errors.New("memory overflow")
	ErrMemoryLimit      = errors.New("memory limit exceeded")
	ErrStepLimitReached = errors.New("step limit reached")
	ErrExecutionAborted = errors.New("execution aborted")
	ErrAccountInUse     = errors.New("account is leased by another run")
	ErrCodeAlreadySet   = errors.New("account code already replaced")
	ErrInterpreterUsed  = errors.New("interpreter already ran")
	ErrBalanceOverflow  = errors.New("call value overflows balance")
)

// ErrStackUnderflowN wraps an ErrStackUnderflow when the item count is known.
type ErrStackUnderflowN struct {
	stackLen int
	required int
}

func (e *ErrStackUnderflowN) Error() string {
	return fmt.Sprintf("stack underflow (%d <=> %d)", e.stackLen, e.required)
}

func (e *ErrStackUnderflowN) Unwrap() error {
	return ErrStackUnderflow
}

// ErrStackOverflowN wraps an ErrStackOverflow when the item count is known.
type ErrStackOverflowN struct {
	stackLen int
	limit    int
}

func (e *ErrStackOverflowN) Error() string {
	return fmt.Sprintf("stack limit reached %d (%d)", e.stackLen, e.limit)
}

func (e *ErrStackOverflowN) Unwrap() error {
	return ErrStackOverflow
}

// ErrInvalidOpCode wraps an evm error when an invalid opcode is encountered.
type ErrInvalidOpCode struct {
	opcode OpCode
}

func (e *ErrInvalidOpCode) Error() string { return fmt.Sprintf("invalid opcode: %s", e.opcode) }
