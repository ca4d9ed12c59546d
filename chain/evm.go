package chain

import (
	"github.com/entropyio/go-minievm/evm"
	"github.com/holiman/uint256"
)

// CanTransfer checks whether crediting amount to the account keeps its balance
// within a 256-bit word. The caller is an external owner of unlimited funds, so
// there is no sender side to check.
func CanTransfer(acct *evm.Account, amount *uint256.Int) bool {
	_, overflow := new(uint256.Int).AddOverflow(&acct.Balance, amount)
	return !overflow
}

// Transfer adds amount to the account's balance.
func Transfer(acct *evm.Account, amount *uint256.Int) {
	acct.Balance.Add(&acct.Balance, amount)
}
