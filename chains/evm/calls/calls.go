package calls

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/tokenforge/forge-engine/chains/evm/calls/consts"
)

// Call is a single on-chain instruction. Calls are value objects and are
// constructed fresh per submission; a call is never mutated or reused after
// it has been handed to an executor.
type Call struct {
	Target  common.Address
	Payload []byte
	Value   *big.Int
}

type Approval struct {
	Token   common.Address
	Spender common.Address
	Amount  *big.Int
}

// NewApproveCall builds the ERC20 approve call granting the spender the
// given amount.
func NewApproveCall(a Approval) (Call, error) {
	payload, err := consts.ERC20ABI.Pack("approve", a.Spender, a.Amount)
	if err != nil {
		return Call{}, err
	}

	return Call{
		Target:  a.Token,
		Payload: payload,
		Value:   big.NewInt(0),
	}, nil
}

// ParseApproval decodes a call back into its approval parameters. The second
// return value is false if the call is not an ERC20 approve.
func ParseApproval(c Call) (*Approval, bool) {
	method := consts.ERC20ABI.Methods["approve"]
	if len(c.Payload) < 4 || string(c.Payload[:4]) != string(method.ID) {
		return nil, false
	}

	args, err := method.Inputs.Unpack(c.Payload[4:])
	if err != nil {
		return nil, false
	}

	spender := *abi.ConvertType(args[0], new(common.Address)).(*common.Address)
	amount := *abi.ConvertType(args[1], new(*big.Int)).(**big.Int)
	return &Approval{
		Token:   c.Target,
		Spender: spender,
		Amount:  amount,
	}, true
}
