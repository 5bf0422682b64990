package kyber

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/tokenforge/forge-engine/chains/evm/calls"
)

const (
	KYBER_AGGREGATOR_URL = "https://aggregator-api.kyberswap.com"

	// BUILD_DEADLINE bounds how long a built transaction stays executable.
	BUILD_DEADLINE = 20 * time.Minute

	routeNotFoundCode = 4008
)

// ErrNoRoute is returned when the aggregator found no viable path. This is a
// legitimate steady state for thin liquidity, not a failure.
var ErrNoRoute = errors.New("no route found")

type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("aggregator unavailable: status %d, %s", e.StatusCode, e.Message)
}

// API talks to the swap-routing aggregator. GetPrice produces a lightweight
// advisory quote; GetBuildQuote produces an executable transaction bound to
// its request tuple.
type API struct {
	HTTPClient *http.Client

	url         string
	chain       string
	clientID    string
	feeBps      uint32
	feeReceiver common.Address
}

func NewAPI(url string, chain string, clientID string, feeBps uint32, feeReceiver common.Address) *API {
	return &API{
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		url:         url,
		chain:       chain,
		clientID:    clientID,
		feeBps:      feeBps,
		feeReceiver: feeReceiver,
	}
}

// GetPrice fetches a route for the requested trade and maps it to a price
// quote. A zero sell amount short-circuits to a zero quote without a network
// call.
func (a *API) GetPrice(ctx context.Context, req PriceRequest) (*PriceQuote, error) {
	if req.AmountIn == nil || req.AmountIn.Sign() == 0 {
		return &PriceQuote{
			SellAmount:   big.NewInt(0),
			BuyAmount:    big.NewInt(0),
			EstimatedGas: big.NewInt(0),
			FeeAmount:    big.NewInt(0),
		}, nil
	}

	summary, _, _, err := a.route(ctx, req)
	if err != nil {
		return nil, err
	}

	return a.toPriceQuote(req, summary), nil
}

// GetBuildQuote re-resolves the route and requests a signable transaction
// bound to the taker as both sender and recipient. If either upstream call
// fails the whole operation fails with no partial quote.
func (a *API) GetBuildQuote(ctx context.Context, req BuildRequest) (*BuildQuote, error) {
	if req.AmountIn == nil || req.AmountIn.Sign() == 0 {
		return nil, fmt.Errorf("sell amount must be positive")
	}

	summary, rawSummary, _, err := a.route(ctx, req.PriceRequest)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(buildRequestBody{
		RouteSummary:      rawSummary,
		Sender:            req.Taker.Hex(),
		Recipient:         req.Taker.Hex(),
		SlippageTolerance: req.SlippageBps,
		Deadline:          time.Now().Add(BUILD_DEADLINE).Unix(),
		Source:            a.clientID,
	})
	if err != nil {
		return nil, err
	}

	buildURL := fmt.Sprintf("%s/%s/api/v1/route/build", a.url, a.chain)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, buildURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if a.clientID != "" {
		httpReq.Header.Set("x-client-id", a.clientID)
	}

	resp, err := a.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, &UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: buildURL}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	b := new(buildResponse)
	if err := json.Unmarshal(respBody, b); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	if b.Code != 0 {
		return nil, &UpstreamError{Message: b.Message}
	}

	payload, err := hexutil.Decode(b.Data.Data)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction payload: %w", err)
	}

	value := big.NewInt(0)
	if b.Data.TransactionValue != nil {
		value = b.Data.TransactionValue.Int
	} else if req.TokenIn == NativeAsset {
		value = req.AmountIn
	}

	issues := Issues{}
	if req.TokenIn != NativeAsset {
		issues.Allowance = &AllowanceIssue{
			Spender: common.HexToAddress(b.Data.RouterAddress),
		}
	}

	price := *a.toPriceQuote(req.PriceRequest, summary)
	if b.Data.AmountOut != nil {
		price.BuyAmount = b.Data.AmountOut.Int
	}

	return NewBuildQuote(price, issues, req, calls.Call{
		Target:  common.HexToAddress(b.Data.RouterAddress),
		Payload: payload,
		Value:   value,
	}), nil
}

func (a *API) route(ctx context.Context, req PriceRequest) (*routeSummary, json.RawMessage, string, error) {
	params := url.Values{}
	params.Set("tokenIn", req.TokenIn.Hex())
	params.Set("tokenOut", req.TokenOut.Hex())
	params.Set("amountIn", req.AmountIn.String())
	a.setFeeParams(req, params)

	routeURL := fmt.Sprintf("%s/%s/api/v1/routes?%s", a.url, a.chain, params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, routeURL, nil)
	if err != nil {
		return nil, nil, "", err
	}
	if a.clientID != "" {
		httpReq.Header.Set("x-client-id", a.clientID)
	}

	resp, err := a.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, nil, "", &UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil, "", ErrNoRoute
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, "", &UpstreamError{StatusCode: resp.StatusCode, Message: routeURL}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to read response body: %w", err)
	}

	r := new(routeResponse)
	if err := json.Unmarshal(body, r); err != nil {
		return nil, nil, "", fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	if r.Code == routeNotFoundCode {
		return nil, nil, "", ErrNoRoute
	}
	if r.Code != 0 {
		return nil, nil, "", &UpstreamError{Message: r.Message}
	}

	summary := new(routeSummary)
	if err := json.Unmarshal(r.Data.RouteSummary, summary); err != nil {
		return nil, nil, "", fmt.Errorf("failed to unmarshal route summary: %w", err)
	}

	return summary, r.Data.RouteSummary, r.Data.RouterAddress, nil
}

// setFeeParams attaches the protocol fee to the native leg of the trade. When
// neither side is the native asset no fee parameters are sent.
func (a *API) setFeeParams(req PriceRequest, params url.Values) {
	if a.feeBps == 0 {
		return
	}

	switch {
	case req.TokenIn == NativeAsset:
		params.Set("chargeFeeBy", "currency_in")
	case req.TokenOut == NativeAsset:
		params.Set("chargeFeeBy", "currency_out")
	default:
		return
	}

	params.Set("feeAmount", fmt.Sprintf("%d", a.feeBps))
	params.Set("isInBps", "true")
	params.Set("feeReceiver", a.feeReceiver.Hex())
}

func (a *API) toPriceQuote(req PriceRequest, summary *routeSummary) *PriceQuote {
	quote := &PriceQuote{
		SellAmount:    req.AmountIn,
		BuyAmount:     big.NewInt(0),
		SellAmountUsd: parseUsd(summary.AmountInUsd),
		BuyAmountUsd:  parseUsd(summary.AmountOutUsd),
		EstimatedGas:  big.NewInt(0),
		FeeAmount:     big.NewInt(0),
	}
	if summary.AmountIn != nil {
		quote.SellAmount = summary.AmountIn.Int
	}
	if summary.AmountOut != nil {
		quote.BuyAmount = summary.AmountOut.Int
	}
	if summary.Gas != nil {
		quote.EstimatedGas = summary.Gas.Int
	}
	if summary.ExtraFee.FeeAmount != nil && summary.ExtraFee.ChargeFeeBy != "" {
		quote.FeeAmount = feeAmount(summary)
		if summary.ExtraFee.ChargeFeeBy == "currency_in" {
			quote.FeeToken = req.TokenIn
		} else {
			quote.FeeToken = req.TokenOut
		}
	}

	return quote
}

var BPS_DENOMINATOR = big.NewInt(10000)

func feeAmount(summary *routeSummary) *big.Int {
	fee := summary.ExtraFee.FeeAmount.Int
	if !summary.ExtraFee.IsInBps {
		return fee
	}

	base := summary.AmountIn.Int
	if summary.ExtraFee.ChargeFeeBy == "currency_out" {
		base = summary.AmountOut.Int
	}

	return new(big.Int).Div(new(big.Int).Mul(base, fee), BPS_DENOMINATOR)
}
