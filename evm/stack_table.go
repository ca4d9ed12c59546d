package evm

import (
	"github.com/entropyio/go-minievm/config"
)

func minSwapStack(n int) int {
	return minStack(n, n)
}
func maxSwapStack(n int) int {
	return maxStack(n, n)
}

func minDupStack(n int) int {
	return minStack(n, n+1)
}
func maxDupStack(n int) int {
	return maxStack(n, n+1)
}

func maxStack(pop, push int) int {
	return int(config.StackLimit) + pop - push
}
func minStack(pops, _ int) int {
	return pops
}

// validateStack checks the stack against the operation's bounds before it is
// executed, so the instruction bodies can pop without checking.
func (op *operation) validateStack(st *Stack) error {
	if sLen := st.len(); sLen < op.minStack {
		return &ErrStackUnderflowN{stackLen: sLen, required: op.minStack}
	} else if sLen > op.maxStack {
		return &ErrStackOverflowN{stackLen: sLen, limit: op.maxStack}
	}
	return nil
}
