// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sygmaprotocol/sygma-core/chains/evm/client"
	"github.com/sygmaprotocol/sygma-core/chains/evm/contracts"

	"github.com/tokenforge/forge-engine/chains/evm/calls/consts"
)

type ERC20Contract struct {
	contracts.Contract
	client client.Client
}

func NewERC20Contract(
	client client.Client,
	address common.Address,
) *ERC20Contract {
	return &ERC20Contract{
		Contract: contracts.NewContract(address, consts.ERC20ABI, nil, client, nil),
		client:   client,
	}
}

func (c *ERC20Contract) Allowance(owner common.Address, spender common.Address) (*big.Int, error) {
	res, err := c.CallContract("allowance", owner, spender)
	if err != nil {
		return nil, err
	}

	return *abi.ConvertType(res[0], new(*big.Int)).(**big.Int), nil
}

func (c *ERC20Contract) BalanceOf(owner common.Address) (*big.Int, error) {
	res, err := c.CallContract("balanceOf", owner)
	if err != nil {
		return nil, err
	}

	return *abi.ConvertType(res[0], new(*big.Int)).(**big.Int), nil
}
