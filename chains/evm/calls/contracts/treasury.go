// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package contracts

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sygmaprotocol/sygma-core/chains/evm/client"
	"github.com/sygmaprotocol/sygma-core/chains/evm/contracts"

	"github.com/tokenforge/forge-engine/chains/evm/calls"
	"github.com/tokenforge/forge-engine/chains/evm/calls/consts"
)

// TreasuryContract wraps the mining treasury. It reads the current mining
// price and assembles the mine/launch/buy calls submitted through a batch
// executor. The price curve itself lives on-chain and is consumed read-only.
type TreasuryContract struct {
	contracts.Contract
	client  client.Client
	address common.Address
}

func NewTreasuryContract(
	client client.Client,
	address common.Address,
) *TreasuryContract {
	return &TreasuryContract{
		Contract: contracts.NewContract(address, consts.TreasuryABI, nil, client, nil),
		client:   client,
		address:  address,
	}
}

// MiningPrice returns the current unit price for mining the token, denominated
// in the chain's native asset.
func (c *TreasuryContract) MiningPrice(token common.Address) (*big.Int, error) {
	res, err := c.CallContract("miningPrice", token)
	if err != nil {
		return nil, err
	}

	out := *abi.ConvertType(res[0], new(*big.Int)).(**big.Int)
	if out == nil {
		return nil, fmt.Errorf("no mining price for token %s", token.Hex())
	}

	return out, nil
}

// MineCall builds the call paying for amount units of token at up to maxPrice
// per unit. The native value attached covers the full purchase at maxPrice.
func (c *TreasuryContract) MineCall(
	token common.Address,
	recipient common.Address,
	amount *big.Int,
	maxPrice *big.Int,
) (calls.Call, error) {
	payload, err := consts.TreasuryABI.Pack("mine", token, recipient, amount, maxPrice)
	if err != nil {
		return calls.Call{}, err
	}

	return calls.Call{
		Target:  c.address,
		Payload: payload,
		Value:   new(big.Int).Mul(amount, maxPrice),
	}, nil
}

// LaunchCall builds the token launch call. The value is the launch fee
// configured by the treasury.
func (c *TreasuryContract) LaunchCall(
	name string,
	symbol string,
	salt [32]byte,
	fee *big.Int,
) (calls.Call, error) {
	payload, err := consts.TreasuryABI.Pack("launch", name, symbol, salt)
	if err != nil {
		return calls.Call{}, err
	}

	return calls.Call{
		Target:  c.address,
		Payload: payload,
		Value:   fee,
	}, nil
}

// BuyCall builds the auction buy call for the given lot.
func (c *TreasuryContract) BuyCall(
	lotId *big.Int,
	amount *big.Int,
	maxPrice *big.Int,
) (calls.Call, error) {
	payload, err := consts.TreasuryABI.Pack("buy", lotId, amount, maxPrice)
	if err != nil {
		return calls.Call{}, err
	}

	return calls.Call{
		Target:  c.address,
		Payload: payload,
		Value:   new(big.Int).Mul(amount, maxPrice),
	}, nil
}
