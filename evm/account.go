package evm

import (
	"sort"
	"sync/atomic"

	"github.com/entropyio/go-minievm/common"
	"github.com/entropyio/go-minievm/common/crypto"
	"github.com/holiman/uint256"
)

// Storage is an account's persistent key/value store. Absent keys read as the
// zero word and storing the zero word removes the key.
type Storage map[uint256.Int]uint256.Int

// Get returns the value stored under key.
func (s Storage) Get(key *uint256.Int) uint256.Int {
	return s[*key]
}

// Set stores value under key, deleting the slot when value is zero.
func (s Storage) Set(key, value *uint256.Int) {
	if value.IsZero() {
		delete(s, *key)
		return
	}
	s[*key] = *value
}

// Keys returns the occupied slots in ascending order.
func (s Storage) Keys() []uint256.Int {
	keys := make([]uint256.Int, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i].Lt(&keys[j])
	})
	return keys
}

// Account is a single contract: its code, storage and balance. Storage and
// balance persist across runs; the code can be replaced once, after the
// deployment run returned the runtime code.
type Account struct {
	Storage Storage
	Balance uint256.Int

	code     []byte
	codeHash *common.Hash
	replaced bool

	// leased is set while an interpreter runs against the account.
	leased atomic.Bool
}

// NewAccount creates an account with empty storage and zero balance.
func NewAccount(code []byte) *Account {
	return &Account{
		Storage: make(Storage),
		code:    code,
	}
}

// Code returns the account's code. Callers must not modify it.
func (a *Account) Code() []byte {
	return a.code
}

// CodeHash returns the Keccak256 hash of the code.
func (a *Account) CodeHash() common.Hash {
	if a.codeHash == nil {
		h := crypto.Keccak256Hash(a.code)
		a.codeHash = &h
	}
	return *a.codeHash
}

// SetCode replaces the constructor code with the runtime code. It can only be
// done once and not while a run holds the account.
func (a *Account) SetCode(code []byte) error {
	if a.replaced {
		return ErrCodeAlreadySet
	}
	if !a.acquire() {
		return ErrAccountInUse
	}
	defer a.release()

	a.code = code
	a.codeHash = nil
	a.replaced = true
	return nil
}

func (a *Account) acquire() bool {
	return a.leased.CompareAndSwap(false, true)
}

func (a *Account) release() {
	a.leased.Store(false)
}
