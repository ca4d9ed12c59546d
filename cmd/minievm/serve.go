package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/entropyio/go-minievm/abi"
	"github.com/entropyio/go-minievm/common"
	"github.com/entropyio/go-minievm/evm"
	"github.com/entropyio/go-minievm/runtime"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

// maxLineSize bounds a single command line on standard input.
const maxLineSize = 4 << 20

// command is one line of input.
type command struct {
	Type        string   `json:"type"`
	Signature   string   `json:"signature"`
	Args        []string `json:"args"`
	InputTypes  []string `json:"input_types"`
	OutputTypes []string `json:"output_types"`
}

func serveCmd(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("required arguments: %v", ctx.App.ArgsUsage)
	}
	code, err := common.DecodeHex(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("invalid deploy code: %v", err)
	}
	cfg, err := makeRuntimeConfig(ctx)
	if err != nil {
		return err
	}
	acct, err := deploy(code, cfg)
	if err != nil {
		return err
	}
	return serve(ctx.App.Reader, ctx.App.Writer, acct, cfg)
}

// deploy runs the constructor without call value.
func deploy(code []byte, cfg *runtime.Config) (*evm.Account, error) {
	dcfg := *cfg
	dcfg.Value = nil
	return runtime.Create(code, &dcfg)
}

// serve executes commands read line by line from r against acct and writes
// one result line per call to w. It returns at the end of input or on an exit
// command.
func serve(r io.Reader, w io.Writer, acct *evm.Account, cfg *runtime.Config) error {
	br := bufio.NewReader(r)
	for {
		line, err := readLine(br)
		switch {
		case err == io.EOF:
			return nil
		case err == errLineTooLong:
			fmt.Fprintf(w, "error: invalid command: line exceeds %d bytes\n", maxLineSize)
			continue
		case err != nil:
			return err
		}
		if len(line) == 0 {
			continue
		}
		if handle(w, line, acct, cfg) {
			return nil
		}
	}
}

// handle executes one command line and reports whether the loop should end.
func handle(w io.Writer, line []byte, acct *evm.Account, cfg *runtime.Config) bool {
	var cmd command
	if err := json.Unmarshal(line, &cmd); err != nil {
		fmt.Fprintf(w, "error: invalid command: %v\n", err)
		return false
	}
	switch cmd.Type {
	case "exit":
		return true
	case "call":
		fmt.Fprintln(w, call(acct, &cmd, cfg))
	default:
		fmt.Fprintf(w, "error: unknown command type %q\n", cmd.Type)
	}
	return false
}

var errLineTooLong = errors.New("line too long")

// readLine returns the next line without its terminator. A line longer than
// maxLineSize is consumed and reported as errLineTooLong.
func readLine(br *bufio.Reader) ([]byte, error) {
	var (
		line    []byte
		tooLong bool
	)
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			return nil, err
		}
		if !tooLong {
			line = append(line, chunk...)
			if len(line) > maxLineSize {
				line, tooLong = nil, true
			}
		}
		if !isPrefix {
			if tooLong {
				return nil, errLineTooLong
			}
			return line, nil
		}
	}
}

// call runs one call command and renders its result.
func call(acct *evm.Account, cmd *command, cfg *runtime.Config) string {
	input, err := abi.Encode(cmd.Signature, cmd.InputTypes, cmd.Args)
	if err != nil {
		return "error: " + err.Error()
	}
	log.Debugf("call %s input %x", cmd.Signature, input)

	out, err := runtime.Call(acct, input, cfg)
	if err != nil {
		return "error: " + err.Error()
	}
	if out.Kind != evm.ExitReturn {
		return out.String()
	}
	values, err := abi.Decode(cmd.OutputTypes, out.Data)
	if err != nil {
		return "error: " + err.Error()
	}
	return abi.FormatOutputs(values)
}
