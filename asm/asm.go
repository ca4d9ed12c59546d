// Package asm provides support for dealing with EVM assembly instructions
// (e.g., disassembling them).
package asm

import (
	"fmt"

	"github.com/entropyio/go-minievm/evm"
)

// Iterator for disassembled EVM instructions
type instructionIterator struct {
	code    []byte
	pc      uint64
	arg     []byte
	op      evm.OpCode
	error   error
	started bool
}

// NewInstructionIterator creates a new instruction iterator.
func NewInstructionIterator(code []byte) *instructionIterator {
	it := new(instructionIterator)
	it.code = code
	return it
}

// Next returns true if there is a next instruction and moves on.
func (it *instructionIterator) Next() bool {
	if it.error != nil || uint64(len(it.code)) <= it.pc {
		// We previously reached an error or the end.
		return false
	}

	if it.started {
		// Since the iteration has been already started we move to the next instruction.
		if it.arg != nil {
			it.pc += uint64(len(it.arg))
		}
		it.pc++
	} else {
		// We start the iteration from the first instruction.
		it.started = true
	}

	if uint64(len(it.code)) <= it.pc {
		// We reached the end.
		return false
	}

	it.op = evm.OpCode(it.code[it.pc])
	if n := uint64(it.op.PushBytes()); n > 0 {
		u := it.pc + 1 + n
		if uint64(len(it.code)) < u {
			it.error = fmt.Errorf("incomplete push instruction at %v", it.pc)
			return false
		}
		it.arg = it.code[it.pc+1 : u]
	} else {
		it.arg = nil
	}
	return true
}

// Error returns any error that may have been encountered.
func (it *instructionIterator) Error() error {
	return it.error
}

// PC returns the PC of the current instruction.
func (it *instructionIterator) PC() uint64 {
	return it.pc
}

// Op returns the opcode of the current instruction.
func (it *instructionIterator) Op() evm.OpCode {
	return it.op
}

// Arg returns the argument of the current instruction.
func (it *instructionIterator) Arg() []byte {
	return it.arg
}

// Instruction is one decoded instruction.
type Instruction struct {
	PC  uint64
	Op  evm.OpCode
	Arg []byte
}

// String renders the instruction as "pc: OP 0xarg".
func (i Instruction) String() string {
	if len(i.Arg) > 0 {
		return fmt.Sprintf("%05x: %v 0x%x", i.PC, i.Op, i.Arg)
	}
	return fmt.Sprintf("%05x: %v", i.PC, i.Op)
}

// Decode returns all instructions in script. On a truncated push the
// instructions decoded so far are returned together with the error.
func Decode(script []byte) ([]Instruction, error) {
	var instrs []Instruction
	it := NewInstructionIterator(script)
	for it.Next() {
		instrs = append(instrs, Instruction{PC: it.PC(), Op: it.Op(), Arg: it.Arg()})
	}
	return instrs, it.Error()
}

// Disassemble returns all disassembled EVM instructions in human-readable format.
func Disassemble(script []byte) ([]string, error) {
	instrs, err := Decode(script)
	if err != nil {
		return nil, err
	}
	lines := make([]string, 0, len(instrs))
	for _, in := range instrs {
		lines = append(lines, in.String())
	}
	return lines, nil
}
