package evm

import (
	"github.com/entropyio/go-minievm/common"
	"github.com/entropyio/go-minievm/config"
	lru "github.com/hashicorp/golang-lru"
)

// bitvec has one bit per code byte, set for PUSH immediates.
type bitvec []byte

func (bits bitvec) set1(pos uint64) {
	bits[pos/8] |= 1 << (pos % 8)
}

// codeSegment reports whether pos holds an instruction rather than push data.
func (bits bitvec) codeSegment(pos uint64) bool {
	return (bits[pos/8]>>(pos%8))&1 == 0
}

// codeBitmap marks the immediate bytes of every PUSH in code.
func codeBitmap(code []byte) bitvec {
	// Immediates cut short by the end of the code only mark existing bytes.
	bits := make(bitvec, len(code)/8+1)
	for pc := uint64(0); pc < uint64(len(code)); {
		op := OpCode(code[pc])
		pc++
		if op < PUSH1 || op > PUSH32 {
			continue
		}
		numbits := uint64(op - PUSH1 + 1)
		for ; numbits > 0 && pc < uint64(len(code)); numbits-- {
			bits.set1(pc)
			pc++
		}
	}
	return bits
}

// JumpdestCache keeps the jumpdest analysis of recently executed code, keyed
// by code hash, so repeated runs against the same account skip the scan. It
// is safe for concurrent use.
type JumpdestCache struct {
	cache *lru.Cache
}

// NewJumpdestCache creates a cache holding up to size analysed programs.
func NewJumpdestCache(size int) (*JumpdestCache, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &JumpdestCache{cache: cache}, nil
}

// analysis returns the bitmap for code, computing and storing it on a miss.
func (c *JumpdestCache) analysis(hash common.Hash, code []byte) bitvec {
	if c == nil {
		return codeBitmap(code)
	}
	if cached, ok := c.cache.Get(hash); ok {
		return cached.(bitvec)
	}
	bits := codeBitmap(code)
	c.cache.Add(hash, bits)
	return bits
}

// Len returns the number of cached programs.
func (c *JumpdestCache) Len() int {
	return c.cache.Len()
}

var defaultJumpdests, _ = NewJumpdestCache(config.DefaultJumpdestCacheSize)
