package evm

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Memory implements a simple memory model for the virtual machine. It only
// grows, and newly added bytes are zero.
type Memory struct {
	store []byte
	words uint64 // ceil(len(store)/32), the unit real memory expansion is priced in
}

// NewMemory returns a new memory model.
func NewMemory() *Memory {
	return &Memory{}
}

// Set copies value into [offset, offset+size). Callers resize first; a zero
// size is a no-op whatever the offset.
func (m *Memory) Set(offset, size uint64, value []byte) {
	if size == 0 {
		return
	}
	if offset+size > uint64(len(m.store)) {
		panic(fmt.Sprintf("memory write [%d, %d) beyond %d bytes", offset, offset+size, len(m.store)))
	}
	copy(m.store[offset:offset+size], value)
}

// Set32 writes val as a big-endian word at offset.
func (m *Memory) Set32(offset uint64, val *uint256.Int) {
	if offset+32 > uint64(len(m.store)) {
		panic(fmt.Sprintf("memory write [%d, %d) beyond %d bytes", offset, offset+32, len(m.store)))
	}
	b32 := val.Bytes32()
	copy(m.store[offset:], b32[:])
}

// Resize grows the memory to at least size bytes.
func (m *Memory) Resize(size uint64) {
	if uint64(m.Len()) < size {
		m.store = append(m.store, make([]byte, size-uint64(m.Len()))...)
	}
	if w := toWordSize(size); w > m.words {
		m.words = w
	}
}

// GetCopy returns a copy of [offset, offset+size), or nil when the range
// is empty or not yet allocated.
func (m *Memory) GetCopy(offset, size uint64) []byte {
	if size == 0 || offset+size > uint64(len(m.store)) {
		return nil
	}
	cpy := make([]byte, size)
	copy(cpy, m.store[offset:offset+size])
	return cpy
}

// GetPtr is GetCopy without the copy. The slice aliases memory.
func (m *Memory) GetPtr(offset, size uint64) []byte {
	if size == 0 || offset+size > uint64(len(m.store)) {
		return nil
	}
	return m.store[offset : offset+size]
}

// Len is the allocated size in bytes.
func (m *Memory) Len() int {
	return len(m.store)
}

// Words returns the size of the memory in 32-byte words.
func (m *Memory) Words() uint64 {
	return m.words
}

func (m *Memory) Data() []byte {
	return m.store
}

// String dumps the memory in 32-byte rows.
func (m *Memory) String() string {
	if len(m.store) == 0 {
		return "-- empty --"
	}
	var s string
	for i := 0; i < len(m.store); i += 32 {
		end := i + 32
		if end > len(m.store) {
			end = len(m.store)
		}
		s += fmt.Sprintf("%04x: % x\n", i, m.store[i:end])
	}
	return s
}
