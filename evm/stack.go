package evm

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Stack holds the operand words. Opcodes mutate the item returned by peek in
// place, so pushed words are owned by the stack.
type Stack struct {
	data []uint256.Int
}

func newstack() *Stack {
	return &Stack{data: make([]uint256.Int, 0, 16)}
}

// Data returns the underlying uint256.Int array, bottom first.
func (st *Stack) Data() []uint256.Int {
	return st.data
}

func (st *Stack) push(d *uint256.Int) {
	// NOTE push limit (1024) is checked in the interpreter loop
	st.data = append(st.data, *d)
}

func (st *Stack) pop() (ret uint256.Int) {
	ret = st.data[len(st.data)-1]
	st.data = st.data[:len(st.data)-1]
	return
}

func (st *Stack) len() int {
	return len(st.data)
}

func (st *Stack) swap(n int) {
	st.data[st.len()-n], st.data[st.len()-1] = st.data[st.len()-1], st.data[st.len()-n]
}

func (st *Stack) dup(n int) {
	st.push(&st.data[st.len()-n])
}

func (st *Stack) peek() *uint256.Int {
	return &st.data[st.len()-1]
}

// Back returns the n'th item in stack
func (st *Stack) Back(n int) *uint256.Int {
	return &st.data[st.len()-n-1]
}

// String renders the stack top first, one item per line.
func (st *Stack) String() string {
	if len(st.data) == 0 {
		return "-- empty --"
	}
	var s string
	for i := len(st.data) - 1; i >= 0; i-- {
		s += fmt.Sprintf("%-3d  %s\n", len(st.data)-1-i, st.data[i].Hex())
	}
	return s
}
