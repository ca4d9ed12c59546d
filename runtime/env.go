package runtime

import (
	"fmt"
	"math/big"

	"github.com/entropyio/go-minievm/chain"
	"github.com/entropyio/go-minievm/config"
	"github.com/entropyio/go-minievm/evm"
	"github.com/holiman/uint256"
)

// NewEnv converts the configuration into the interpreter context and the call
// value. The block number falls back to the day of the month of cfg.Time.
func NewEnv(cfg *Config) (evm.Context, *uint256.Int, error) {
	context := evm.Context{
		CanTransfer: chain.CanTransfer,
		Transfer:    chain.Transfer,

		Address: cfg.Address,
		Origin:  cfg.Origin,
		Caller:  cfg.Caller,
	}
	env := config.Environment{BlockNumber: cfg.BlockNumber}
	number := env.Number(cfg.Time)
	for _, v := range []struct {
		name string
		src  *big.Int
		dst  *uint256.Int
	}{
		{"chain id", cfg.ChainID, &context.ChainID},
		{"base fee", cfg.BaseFee, &context.BaseFee},
		{"block number", number, &context.BlockNumber},
	} {
		if err := toWord(v.name, v.src, v.dst); err != nil {
			return evm.Context{}, nil, err
		}
	}
	value := new(uint256.Int)
	if err := toWord("call value", cfg.Value, value); err != nil {
		return evm.Context{}, nil, err
	}
	return context, value, nil
}

func toWord(name string, src *big.Int, dst *uint256.Int) error {
	if src.Sign() < 0 {
		return fmt.Errorf("invalid %s %v: negative", name, src)
	}
	if dst.SetFromBig(src) {
		return fmt.Errorf("invalid %s %v: exceeds 256 bits", name, src)
	}
	return nil
}
