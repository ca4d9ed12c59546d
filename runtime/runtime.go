package runtime

import (
	"math/big"
	"time"

	"github.com/entropyio/go-minievm/common"
	"github.com/entropyio/go-minievm/config"
	"github.com/entropyio/go-minievm/evm"
	"github.com/entropyio/go-minievm/logger"
	"github.com/pkg/errors"
)

var log = logger.NewLogger("[runtime]")

// ErrDeployFailed is returned by Create when the constructor did not return
// runtime code.
var ErrDeployFailed = errors.New("deployment failed")

// Config is a basic type specifying certain configuration flags for running
// the EVM.
type Config struct {
	ChainID     *big.Int
	BaseFee     *big.Int
	BlockNumber *big.Int
	Time        time.Time
	Address     common.Address
	Origin      common.Address
	Caller      common.Address
	Value       *big.Int

	Debug       bool
	StepLimit   uint64
	MemoryLimit uint64
	Jumpdests   *evm.JumpdestCache
}

// FromConfig builds a runtime configuration from the file/flag level one.
func FromConfig(c *config.Config) (*Config, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	cfg := &Config{
		ChainID:     c.Environment.ChainID,
		BaseFee:     c.Environment.BaseFee,
		BlockNumber: c.Environment.BlockNumber,
		Address:     c.Environment.Address,
		Origin:      c.Environment.Origin,
		Caller:      c.Environment.Caller,
		Debug:       c.VM.Debug,
		StepLimit:   c.VM.StepLimit,
		MemoryLimit: c.VM.MemoryLimit,
	}
	if c.VM.JumpdestCacheSize > 0 {
		cache, err := evm.NewJumpdestCache(c.VM.JumpdestCacheSize)
		if err != nil {
			return nil, err
		}
		cfg.Jumpdests = cache
	}
	return cfg, nil
}

// sets defaults on the config
func setDefaults(cfg *Config) {
	if cfg.ChainID == nil {
		cfg.ChainID = new(big.Int).Set(config.DefaultChainID)
	}
	if cfg.BaseFee == nil {
		cfg.BaseFee = big.NewInt(config.InitialBaseFee)
	}
	if cfg.Time.IsZero() {
		cfg.Time = time.Now()
	}
	if cfg.Address == (common.Address{}) {
		cfg.Address = config.DefaultAddress
	}
	if cfg.Origin == (common.Address{}) {
		cfg.Origin = config.DefaultCaller
	}
	if cfg.Caller == (common.Address{}) {
		cfg.Caller = cfg.Origin
	}
	if cfg.Value == nil {
		cfg.Value = new(big.Int)
	}
}

// Execute executes the code using the input as call data during the execution.
// It returns the outcome of the run and an error if it failed.
//
// Execute sets up a throwaway account for the code, so storage written by the
// run is discarded afterwards.
func Execute(code, input []byte, cfg *Config) (*evm.Outcome, error) {
	acct := evm.NewAccount(code)
	log.Debugf("execute code:%x, input:%x", code, input)
	return Call(acct, input, cfg)
}

// Create runs the constructor code with empty input and installs the code it
// returns as the account's runtime code. Any outcome other than Return fails
// with ErrDeployFailed.
func Create(code []byte, cfg *Config) (*evm.Account, error) {
	acct := evm.NewAccount(code)
	out, err := Call(acct, nil, cfg)
	if err != nil {
		return nil, errors.Wrapf(ErrDeployFailed, "%v", err)
	}
	if out.Kind != evm.ExitReturn {
		return nil, errors.Wrapf(ErrDeployFailed, "constructor ended with %v", out)
	}
	if err := acct.SetCode(out.Data); err != nil {
		return nil, errors.Wrapf(ErrDeployFailed, "%v", err)
	}
	log.Infof("contract deployed: code size %d, code hash %s", len(out.Data), acct.CodeHash().Hex())
	return acct, nil
}

// Call runs the account's code with the given input. The account's storage and
// balance are updated in place.
func Call(acct *evm.Account, input []byte, cfg *Config) (*evm.Outcome, error) {
	if cfg == nil {
		cfg = new(Config)
	}
	setDefaults(cfg)

	ctx, value, err := NewEnv(cfg)
	if err != nil {
		return nil, err
	}
	in := evm.NewInterpreter(acct, value, input, ctx, evm.EVMConfig{
		Debug:       cfg.Debug,
		StepLimit:   cfg.StepLimit,
		MemoryLimit: cfg.MemoryLimit,
		Jumpdests:   cfg.Jumpdests,
	})
	return in.Run()
}
