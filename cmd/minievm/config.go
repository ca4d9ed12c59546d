package main

import (
	"fmt"
	"math/big"

	"github.com/entropyio/go-minievm/config"
	"github.com/entropyio/go-minievm/runtime"
	"github.com/urfave/cli/v2"
)

var dumpConfigCommand = &cli.Command{
	Action:      dumpConfig,
	Name:        "dumpconfig",
	Usage:       "Show configuration values",
	ArgsUsage:   "",
	Flags:       flags,
	Description: `The dumpconfig command shows configuration values.`,
}

// loadConfig loads the file given by --config, if any, on top of the defaults
// and applies the command line overrides.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if file := ctx.String(ConfigFileFlag.Name); file != "" {
		if err := config.LoadConfig(file, cfg); err != nil {
			return nil, err
		}
	}
	if ctx.IsSet(StepLimitFlag.Name) {
		cfg.VM.StepLimit = ctx.Uint64(StepLimitFlag.Name)
	}
	if ctx.Bool(DebugFlag.Name) {
		cfg.VM.Debug = true
	}
	return cfg, cfg.Validate()
}

// makeRuntimeConfig turns the flags into the configuration runs are made with.
func makeRuntimeConfig(ctx *cli.Context) (*runtime.Config, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	rcfg, err := runtime.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	value, ok := new(big.Int).SetString(ctx.String(ValueFlag.Name), 10)
	if !ok || value.Sign() < 0 {
		return nil, fmt.Errorf("invalid value %q", ctx.String(ValueFlag.Name))
	}
	rcfg.Value = value
	log.Debugf("runtime configuration:\n%v", cfg)
	return rcfg, nil
}

func dumpConfig(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	return config.Dump(ctx.App.Writer, cfg)
}
