// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package evm

import (
	"fmt"

	"github.com/creasty/defaults"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mitchellh/mapstructure"

	"github.com/tokenforge/forge-engine/config"
	"github.com/tokenforge/forge-engine/config/chain"
)

type EVMConfig struct {
	GeneralChainConfig chain.GeneralChainConfig

	Treasury     common.Address
	Wallet       common.Address
	NativeSymbol string

	Tokens map[string]config.TokenConfig
}

type RawEVMConfig struct {
	chain.GeneralChainConfig `mapstructure:",squash"`
	Treasury                 string `mapstructure:"treasury"`
	Wallet                   string `mapstructure:"wallet"`
	NativeSymbol             string `mapstructure:"nativeSymbol" default:"ETH"`

	Tokens map[string]RawTokenConfig `mapstructure:"tokens"`
}

type RawTokenConfig struct {
	Address  string `mapstructure:"address"`
	Decimals uint8  `mapstructure:"decimals"`
}

func (c *RawEVMConfig) Validate() error {
	if err := c.GeneralChainConfig.Validate(); err != nil {
		return err
	}
	if c.Treasury == "" {
		return fmt.Errorf("required field chain.Treasury empty for chain %v", *c.Id)
	}
	if c.Wallet == "" {
		return fmt.Errorf("required field chain.Wallet empty for chain %v", *c.Id)
	}
	for symbol, t := range c.Tokens {
		if t.Address == "" {
			return fmt.Errorf("required field address empty for token %s on chain %v", symbol, *c.Id)
		}
	}
	return nil
}

// NewEVMConfig decodes and validates an instance of an EVMConfig from
// raw chain config
func NewEVMConfig(chainConfig map[string]interface{}) (*EVMConfig, error) {
	var c RawEVMConfig
	err := mapstructure.Decode(chainConfig, &c)
	if err != nil {
		return nil, err
	}

	err = defaults.Set(&c)
	if err != nil {
		return nil, err
	}

	err = c.Validate()
	if err != nil {
		return nil, err
	}

	tokens := make(map[string]config.TokenConfig)
	for symbol, t := range c.Tokens {
		decimals := t.Decimals
		if decimals == 0 {
			decimals = 18
		}
		tokens[symbol] = config.TokenConfig{
			Address:  common.HexToAddress(t.Address),
			Decimals: decimals,
		}
	}

	return &EVMConfig{
		GeneralChainConfig: c.GeneralChainConfig,
		Treasury:           common.HexToAddress(c.Treasury),
		Wallet:             common.HexToAddress(c.Wallet),
		NativeSymbol:       c.NativeSymbol,
		Tokens:             tokens,
	}, nil
}
