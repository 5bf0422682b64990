// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package evm

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sygmaprotocol/sygma-core/chains/evm/client"

	"github.com/tokenforge/forge-engine/chains/evm/calls/contracts"
)

// AllowanceReader reads ERC20 allowances across arbitrary tokens on one chain.
type AllowanceReader struct {
	client client.Client
}

func NewAllowanceReader(client client.Client) *AllowanceReader {
	return &AllowanceReader{
		client: client,
	}
}

func (r *AllowanceReader) Allowance(token common.Address, owner common.Address, spender common.Address) (*big.Int, error) {
	return contracts.NewERC20Contract(r.client, token).Allowance(owner, spender)
}
