package main

import (
	"fmt"
	"io"

	"github.com/entropyio/go-minievm/asm"
	"github.com/entropyio/go-minievm/common"
	"github.com/entropyio/go-minievm/evm"
	"github.com/entropyio/go-minievm/runtime"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

var (
	execCommand = &cli.Command{
		Action:    execCmd,
		Name:      "exec",
		Usage:     "Run code once",
		ArgsUsage: "<code hex>",
		Flags:     append([]cli.Flag{InputFlag}, flags...),
		Description: `
The exec command runs the given code once against a fresh account, with the
--input call data, and prints the outcome.`,
	}
	disasmCommand = &cli.Command{
		Action:    disasmCmd,
		Name:      "disasm",
		Usage:     "Disassemble code",
		ArgsUsage: "<code hex>",
		Description: `
The disasm command prints one instruction per row: its position, the opcode and
the immediate argument of PUSH instructions.`,
	}
)

func execCmd(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("required arguments: %v", ctx.Command.ArgsUsage)
	}
	code, err := common.DecodeHex(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("invalid code: %v", err)
	}
	input, err := common.DecodeHex(ctx.String(InputFlag.Name))
	if err != nil {
		return fmt.Errorf("invalid input: %v", err)
	}
	cfg, err := makeRuntimeConfig(ctx)
	if err != nil {
		return err
	}
	acct := evm.NewAccount(code)
	out, err := runtime.Call(acct, input, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, out)
	if ctx.Bool(DumpFlag.Name) {
		printStorage(ctx.App.Writer, acct)
	}
	return nil
}

func disasmCmd(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("required arguments: %v", ctx.Command.ArgsUsage)
	}
	code, err := common.DecodeHex(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("invalid code: %v", err)
	}
	instrs, err := asm.Decode(code)

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetHeader([]string{"PC", "Opcode", "Argument"})
	for _, in := range instrs {
		arg := ""
		if len(in.Arg) > 0 {
			arg = fmt.Sprintf("0x%x", in.Arg)
		}
		table.Append([]string{fmt.Sprintf("%05x", in.PC), in.Op.String(), arg})
	}
	table.Render()
	return err
}

// printStorage renders the occupied storage slots in key order.
func printStorage(w io.Writer, acct *evm.Account) {
	keys := acct.Storage.Keys()
	data := make([][]string, 0, len(keys))
	for i := range keys {
		value := acct.Storage.Get(&keys[i])
		data = append(data, []string{keys[i].Hex(), value.Hex()})
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Slot", "Value"})
	table.SetFooter([]string{"Balance", acct.Balance.Dec()})
	table.AppendBulk(data)
	table.Render()
}
