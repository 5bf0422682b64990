package consts

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var TreasuryABI, _ = abi.JSON(strings.NewReader(`[
	{
		"inputs": [{"name": "token", "type": "address"}],
		"name": "miningPrice",
		"outputs": [{"name": "", "type": "uint256"}],
		"stateMutability": "view",
		"type": "function"
	},
	{
		"inputs": [
			{"name": "token", "type": "address"},
			{"name": "recipient", "type": "address"},
			{"name": "amount", "type": "uint256"},
			{"name": "maxPrice", "type": "uint256"}
		],
		"name": "mine",
		"outputs": [],
		"stateMutability": "payable",
		"type": "function"
	},
	{
		"inputs": [
			{"name": "name", "type": "string"},
			{"name": "symbol", "type": "string"},
			{"name": "salt", "type": "bytes32"}
		],
		"name": "launch",
		"outputs": [{"name": "", "type": "address"}],
		"stateMutability": "payable",
		"type": "function"
	},
	{
		"inputs": [
			{"name": "lotId", "type": "uint256"},
			{"name": "amount", "type": "uint256"},
			{"name": "maxPrice", "type": "uint256"}
		],
		"name": "buy",
		"outputs": [],
		"stateMutability": "payable",
		"type": "function"
	}
]`))
