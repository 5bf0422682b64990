package calls_test

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"

	"github.com/tokenforge/forge-engine/chains/evm/calls"
)

type ApproveCallTestSuite struct {
	suite.Suite
}

func TestRunApproveCallTestSuite(t *testing.T) {
	suite.Run(t, new(ApproveCallTestSuite))
}

func (s *ApproveCallTestSuite) Test_NewApproveCall_RoundTrip() {
	approval := calls.Approval{
		Token:   common.HexToAddress("0x4200000000000000000000000000000000000006"),
		Spender: common.HexToAddress("0x6131B5fae19EA4f9D964eAc0408E4408b66337b5"),
		Amount:  big.NewInt(1000000),
	}

	c, err := calls.NewApproveCall(approval)
	s.Nil(err)
	s.Equal(approval.Token, c.Target)
	s.Equal(int64(0), c.Value.Int64())

	parsed, ok := calls.ParseApproval(c)
	s.True(ok)
	s.Equal(approval.Spender, parsed.Spender)
	s.Equal(approval.Token, parsed.Token)
	s.Equal(0, parsed.Amount.Cmp(approval.Amount))
}

func (s *ApproveCallTestSuite) Test_ParseApproval_NotAnApproval() {
	c := calls.Call{
		Target:  common.HexToAddress("0x4200000000000000000000000000000000000006"),
		Payload: []byte{0x01, 0x02, 0x03, 0x04, 0x05},
		Value:   big.NewInt(0),
	}

	_, ok := calls.ParseApproval(c)
	s.False(ok)
}

func (s *ApproveCallTestSuite) Test_ParseApproval_EmptyPayload() {
	c := calls.Call{
		Target: common.HexToAddress("0x4200000000000000000000000000000000000006"),
		Value:  big.NewInt(0),
	}

	_, ok := calls.ParseApproval(c)
	s.False(ok)
}
