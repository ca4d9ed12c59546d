package asm

import (
	"fmt"
	"strings"

	"github.com/entropyio/go-minievm/common"
	"github.com/entropyio/go-minievm/evm"
)

// Assemble translates whitespace separated mnemonics into bytecode. PUSHn is
// followed by its immediate as hex, left padded to n bytes. A ';' starts a
// comment running to the end of the line.
//
//	PUSH1 0x02 PUSH1 0x03 ADD ; 5
func Assemble(src string) ([]byte, error) {
	var (
		code   []byte
		tokens []string
	)
	for _, line := range strings.Split(src, "\n") {
		if i := strings.IndexByte(line, ';'); i >= 0 {
			line = line[:i]
		}
		tokens = append(tokens, strings.Fields(line)...)
	}
	for i := 0; i < len(tokens); i++ {
		name := strings.ToUpper(tokens[i])
		op := evm.StringToOp(name)
		if op == evm.STOP && name != "STOP" {
			return nil, fmt.Errorf("unknown instruction %q", tokens[i])
		}
		code = append(code, byte(op))

		size := op.PushBytes()
		if size == 0 {
			continue
		}
		if i+1 == len(tokens) {
			return nil, fmt.Errorf("%v without argument", op)
		}
		i++
		arg, err := common.DecodeHex(tokens[i])
		if err != nil {
			return nil, fmt.Errorf("invalid %v argument %q: %v", op, tokens[i], err)
		}
		if len(arg) > size {
			return nil, fmt.Errorf("%v argument %q exceeds %d bytes", op, tokens[i], size)
		}
		code = append(code, common.LeftPadBytes(arg, size)...)
	}
	return code, nil
}
