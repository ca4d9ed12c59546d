package config

import (
	"fmt"
	"github.com/entropyio/go-minievm/common"
	"math/big"
	"time"
)

const (
	StackLimit         uint64 = 1024     // Maximum size of VM stack allowed.
	DefaultMemoryLimit uint64 = 32 << 20 // Maximum number of memory bytes a single run may touch.
	InitialBaseFee            = 1        // Base fee reported by BASEFEE unless configured.

	DefaultJumpdestCacheSize = 256 // Number of analysed code bitmaps kept across runs.
)

var (
	// DefaultChainID is the identifier reported by CHAINID unless configured.
	DefaultChainID = big.NewInt(0xBEEEEEF)

	// DefaultAddress is the executing contract's address.
	DefaultAddress = common.HexToAddress("0xADDDECAFADDDECAFADDDECAFADDDECAF")

	// DefaultCaller is used for both CALLER and ORIGIN.
	DefaultCaller = common.HexToAddress("0xDEADBEEFDEADBEEFDEADBEEFDEADBEEF")
)

// Environment carries the block and transaction values exposed to contract code.
// None of them has consensus meaning; they only need to be stable so runs are
// reproducible.
type Environment struct {
	ChainID *big.Int `toml:",omitempty"`
	BaseFee *big.Int `toml:",omitempty"`

	// BlockNumber is reported by NUMBER. When nil the UTC day of the month is used.
	BlockNumber *big.Int `toml:",omitempty"`

	Address common.Address
	Origin  common.Address
	Caller  common.Address
}

// VMConfig are the interpreter limits and switches.
type VMConfig struct {
	Debug bool // Enables per-instruction debug logging

	StepLimit         uint64 // Maximum number of executed instructions per run (0 = unlimited)
	MemoryLimit       uint64 // Maximum memory size in bytes (0 = DefaultMemoryLimit)
	JumpdestCacheSize int    // Entries of the shared jumpdest analysis cache
}

// Config is the top level configuration of the interpreter and its tooling.
type Config struct {
	Environment Environment
	VM          VMConfig
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Environment: Environment{
			ChainID: new(big.Int).Set(DefaultChainID),
			BaseFee: big.NewInt(InitialBaseFee),
			Address: DefaultAddress,
			Origin:  DefaultCaller,
			Caller:  DefaultCaller,
		},
		VM: VMConfig{
			MemoryLimit:       DefaultMemoryLimit,
			JumpdestCacheSize: DefaultJumpdestCacheSize,
		},
	}
}

// Number returns the block number reported at the given wall-clock time.
func (e *Environment) Number(now time.Time) *big.Int {
	if e.BlockNumber != nil {
		return new(big.Int).Set(e.BlockNumber)
	}
	return big.NewInt(int64(now.UTC().Day()))
}

// Validate checks that every value can be represented as a 256-bit word and that
// the limits are usable.
func (c *Config) Validate() error {
	for _, v := range []struct {
		name  string
		value *big.Int
	}{
		{name: "chainID", value: c.Environment.ChainID},
		{name: "baseFee", value: c.Environment.BaseFee},
		{name: "blockNumber", value: c.Environment.BlockNumber},
	} {
		if v.value == nil {
			continue
		}
		if v.value.Sign() < 0 {
			return fmt.Errorf("invalid %s %v: negative", v.name, v.value)
		}
		if v.value.BitLen() > 256 {
			return fmt.Errorf("invalid %s %v: exceeds 256 bits", v.name, v.value)
		}
	}
	if c.VM.JumpdestCacheSize < 0 {
		return fmt.Errorf("invalid jumpdest cache size %d", c.VM.JumpdestCacheSize)
	}
	return nil
}

// String implements the fmt.Stringer interface.
func (c *Config) String() string {
	var banner string

	number := "wall-clock day"
	if c.Environment.BlockNumber != nil {
		number = c.Environment.BlockNumber.String()
	}
	banner += fmt.Sprintf("Chain ID:     %v\n", c.Environment.ChainID)
	banner += fmt.Sprintf("Base fee:     %v\n", c.Environment.BaseFee)
	banner += fmt.Sprintf("Block number: %s\n", number)
	banner += fmt.Sprintf("Address:      %s\n", c.Environment.Address)
	banner += fmt.Sprintf("Origin:       %s\n", c.Environment.Origin)
	banner += fmt.Sprintf("Caller:       %s\n", c.Environment.Caller)

	steps := "unlimited"
	if c.VM.StepLimit > 0 {
		steps = fmt.Sprintf("%d", c.VM.StepLimit)
	}
	banner += fmt.Sprintf("Step limit:   %s\n", steps)
	banner += fmt.Sprintf("Memory limit: %d bytes\n", c.VM.MemoryLimit)
	return banner
}
