package kyber

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tokenforge/forge-engine/chains/evm/calls"
)

// NativeAsset is the sentinel address the aggregator uses for the chain's
// native asset.
var NativeAsset = common.HexToAddress("0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE")

type BigInt struct {
	*big.Int
}

func (b *BigInt) UnmarshalJSON(data []byte) error {
	if b.Int == nil {
		b.Int = new(big.Int)
	}

	s := strings.Trim(string(data), "\"")
	_, ok := b.SetString(s, 10)
	if !ok {
		return fmt.Errorf("failed to parse big.Int from %s", s)
	}

	return nil
}

func (b *BigInt) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("\"%s\"", b.String())), nil
}

type PriceRequest struct {
	TokenIn         common.Address
	TokenOut        common.Address
	AmountIn        *big.Int
	TokenInDecimals uint8
}

type BuildRequest struct {
	PriceRequest

	SlippageBps uint32
	Taker       common.Address
}

// PriceQuote is a read-only pricing snapshot. It has no on-chain effect and
// may be stale seconds after creation; all amounts are base units, the USD
// fields are display values and are nil when the aggregator did not report
// them.
type PriceQuote struct {
	SellAmount    *big.Int
	BuyAmount     *big.Int
	SellAmountUsd *float64
	BuyAmountUsd  *float64
	EstimatedGas  *big.Int
	FeeAmount     *big.Int
	FeeToken      common.Address
}

type AllowanceIssue struct {
	Spender common.Address
}

type Issues struct {
	Allowance *AllowanceIssue
}

// BuildQuote extends a price quote with an executable transaction. The
// transaction is valid only for the request tuple that produced it and may be
// consumed at most once.
type BuildQuote struct {
	PriceQuote
	Issues Issues

	mu       sync.Mutex
	bound    BuildRequest
	tx       calls.Call
	consumed bool
}

// NewBuildQuote binds an executable transaction to the request tuple that
// produced it.
func NewBuildQuote(price PriceQuote, issues Issues, bound BuildRequest, tx calls.Call) *BuildQuote {
	return &BuildQuote{
		PriceQuote: price,
		Issues:     issues,
		bound:      bound,
		tx:         tx,
	}
}

// ErrQuoteStale is returned when a build quote is requested for a tuple it is
// not bound to, or after it has already been consumed.
type ErrQuoteStale struct {
	Reason string
}

func (e *ErrQuoteStale) Error() string {
	return fmt.Sprintf("build quote stale: %s", e.Reason)
}

// Transaction returns the executable call if req matches the tuple the quote
// was built for. A successful return consumes the quote; any change to trade
// size, tokens, slippage tolerance or taker requires a fresh build.
func (q *BuildQuote) Transaction(req BuildRequest) (calls.Call, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.consumed {
		return calls.Call{}, &ErrQuoteStale{Reason: "already consumed"}
	}
	if req.TokenIn != q.bound.TokenIn ||
		req.TokenOut != q.bound.TokenOut ||
		req.Taker != q.bound.Taker ||
		req.SlippageBps != q.bound.SlippageBps ||
		req.AmountIn == nil || q.bound.AmountIn == nil ||
		req.AmountIn.Cmp(q.bound.AmountIn) != 0 {
		return calls.Call{}, &ErrQuoteStale{Reason: "request does not match bound tuple"}
	}

	q.consumed = true
	return q.tx, nil
}

// Spender returns the contract that needs an allowance before execution, or
// false when none is required (native asset input).
func (q *BuildQuote) Spender() (common.Address, bool) {
	if q.Issues.Allowance == nil {
		return common.Address{}, false
	}
	return q.Issues.Allowance.Spender, true
}

type routeSummary struct {
	TokenIn      string  `json:"tokenIn"`
	AmountIn     *BigInt `json:"amountIn"`
	AmountInUsd  string  `json:"amountInUsd"`
	TokenOut     string  `json:"tokenOut"`
	AmountOut    *BigInt `json:"amountOut"`
	AmountOutUsd string  `json:"amountOutUsd"`
	Gas          *BigInt `json:"gas"`
	ExtraFee     struct {
		FeeAmount   *BigInt `json:"feeAmount"`
		ChargeFeeBy string  `json:"chargeFeeBy"`
		IsInBps     bool    `json:"isInBps"`
		FeeReceiver string  `json:"feeReceiver"`
	} `json:"extraFee"`
}

type routeResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		RouteSummary  json.RawMessage `json:"routeSummary"`
		RouterAddress string          `json:"routerAddress"`
	} `json:"data"`
}

type buildRequestBody struct {
	RouteSummary      json.RawMessage `json:"routeSummary"`
	Sender            string          `json:"sender"`
	Recipient         string          `json:"recipient"`
	SlippageTolerance uint32          `json:"slippageTolerance"`
	Deadline          int64           `json:"deadline"`
	Source            string          `json:"source,omitempty"`
}

type buildResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		AmountIn         *BigInt `json:"amountIn"`
		AmountOut        *BigInt `json:"amountOut"`
		Gas              *BigInt `json:"gas"`
		Data             string  `json:"data"`
		RouterAddress    string  `json:"routerAddress"`
		TransactionValue *BigInt `json:"transactionValue"`
	} `json:"data"`
}

func parseUsd(s string) *float64 {
	if s == "" {
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v == 0 {
		return nil
	}

	return &v
}
