// minievm deploys a contract and drives calls against it, one JSON command per
// line on standard input.
package main

import (
	"fmt"
	"os"

	"github.com/entropyio/go-minievm/logger"
	"github.com/urfave/cli/v2"
)

var log = logger.NewLogger("[minievm]")

var (
	ConfigFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	VerbosityFlag = &cli.StringFlag{
		Name:  "verbosity",
		Usage: "log level: critical, error, warning, notice, info, debug",
		Value: "info",
	}
	ValueFlag = &cli.StringFlag{
		Name:  "value",
		Usage: "call value in wei, decimal",
		Value: "0",
	}
	StepLimitFlag = &cli.Uint64Flag{
		Name:  "steplimit",
		Usage: "maximum number of instructions per run (0 = unlimited)",
	}
	DebugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "log every executed instruction",
	}
	DumpFlag = &cli.BoolFlag{
		Name:  "dump",
		Usage: "print the account storage after the run",
	}
	InputFlag = &cli.StringFlag{
		Name:  "input",
		Usage: "call data, hex encoded",
	}
)

var flags = []cli.Flag{
	ConfigFileFlag,
	VerbosityFlag,
	ValueFlag,
	StepLimitFlag,
	DebugFlag,
	DumpFlag,
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "minievm",
		Usage:     "minimal EVM bytecode interpreter",
		ArgsUsage: "<deploy code hex>",
		Description: `Deploys the given constructor code, then reads commands from standard input:
   {"type":"call","signature":"get()","args":[],"input_types":[],"output_types":["uint256"]}
   {"type":"exit"}`,
		Flags:  flags,
		Before: setupLogging,
		Action: serveCmd,
		Commands: []*cli.Command{
			execCommand,
			disasmCommand,
			dumpConfigCommand,
		},
	}
}

func setupLogging(ctx *cli.Context) error {
	if err := logger.SetLevel(ctx.String(VerbosityFlag.Name)); err != nil {
		return fmt.Errorf("invalid verbosity %q: %v", ctx.String(VerbosityFlag.Name), err)
	}
	return nil
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
