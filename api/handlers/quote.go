package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/mux"

	"github.com/tokenforge/forge-engine/config"
	"github.com/tokenforge/forge-engine/protocol/kyber"
	"github.com/tokenforge/forge-engine/slippage"
)

type Quoter interface {
	GetPrice(ctx context.Context, req kyber.PriceRequest) (*kyber.PriceQuote, error)
	GetBuildQuote(ctx context.Context, req kyber.BuildRequest) (*kyber.BuildQuote, error)
}

type ImpactEstimator interface {
	Estimate(ctx context.Context, quote *kyber.PriceQuote, trade slippage.Trade) slippage.Estimate
}

type QuoteBody struct {
	ChainId  uint64
	TokenIn  string  `json:"tokenIn"`
	TokenOut string  `json:"tokenOut"`
	AmountIn *BigInt `json:"amountIn"`
}

type QuoteResponse struct {
	SellAmount    *BigInt  `json:"sellAmount"`
	BuyAmount     *BigInt  `json:"buyAmount"`
	SellAmountUsd *float64 `json:"sellAmountUsd,omitempty"`
	BuyAmountUsd  *float64 `json:"buyAmountUsd,omitempty"`
	FeeAmount     *BigInt  `json:"feeAmount,omitempty"`
	ImpactPct     *float64 `json:"impactPct,omitempty"`
	SlippageBps   uint32   `json:"slippageBps"`
}

type QuoteHandler struct {
	quoters    map[uint64]Quoter
	estimators map[uint64]ImpactEstimator
	tokens     *config.TokenStore
}

func NewQuoteHandler(quoters map[uint64]Quoter, estimators map[uint64]ImpactEstimator, tokens *config.TokenStore) *QuoteHandler {
	return &QuoteHandler{
		quoters:    quoters,
		estimators: estimators,
		tokens:     tokens,
	}
}

// HandleQuote prices a trade through the aggregator and returns it together
// with the price impact and the auto-selected slippage tolerance
func (h *QuoteHandler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	b := &QuoteBody{}
	d := json.NewDecoder(r.Body)
	err := d.Decode(b)
	if err != nil {
		JSONError(w, fmt.Errorf("invalid request body: %s", err), http.StatusBadRequest)
		return
	}

	vars := mux.Vars(r)
	err = h.validate(b, vars)
	if err != nil {
		JSONError(w, fmt.Errorf("invalid request body: %s", err), http.StatusBadRequest)
		return
	}

	quoter := h.quoters[b.ChainId]
	req, trade, err := h.tradeParams(b)
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	quote, err := quoter.GetPrice(r.Context(), req)
	if err != nil {
		quoteError(w, err)
		return
	}
	estimate := h.estimators[b.ChainId].Estimate(r.Context(), quote, trade)

	resp := &QuoteResponse{
		SellAmount:    &BigInt{quote.SellAmount},
		BuyAmount:     &BigInt{quote.BuyAmount},
		SellAmountUsd: quote.SellAmountUsd,
		BuyAmountUsd:  quote.BuyAmountUsd,
		ImpactPct:     estimate.ImpactPct,
		SlippageBps:   estimate.ToleranceBps,
	}
	if quote.FeeAmount != nil {
		resp.FeeAmount = &BigInt{quote.FeeAmount}
	}

	data, _ := json.Marshal(resp)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *QuoteHandler) validate(b *QuoteBody, vars map[string]string) error {
	chainId, ok := new(big.Int).SetString(vars["chainId"], 10)
	if !ok {
		return fmt.Errorf("field 'chainId' invalid")
	}
	b.ChainId = chainId.Uint64()

	if b.TokenIn == "" {
		return fmt.Errorf("missing field 'tokenIn'")
	}

	if b.TokenOut == "" {
		return fmt.Errorf("missing field 'tokenOut'")
	}

	if b.AmountIn == nil {
		return fmt.Errorf("missing field 'amountIn'")
	}

	_, ok = h.quoters[b.ChainId]
	if !ok {
		return fmt.Errorf("chain '%d' not supported", b.ChainId)
	}
	_, ok = h.estimators[b.ChainId]
	if !ok {
		return fmt.Errorf("chain '%d' not supported", b.ChainId)
	}

	return nil
}

func (h *QuoteHandler) tradeParams(b *QuoteBody) (kyber.PriceRequest, slippage.Trade, error) {
	tokenIn := common.HexToAddress(b.TokenIn)
	tokenOut := common.HexToAddress(b.TokenOut)

	_, inConfig, err := h.tokens.ConfigByAddress(b.ChainId, tokenIn)
	if err != nil {
		return kyber.PriceRequest{}, slippage.Trade{}, err
	}
	_, outConfig, err := h.tokens.ConfigByAddress(b.ChainId, tokenOut)
	if err != nil {
		return kyber.PriceRequest{}, slippage.Trade{}, err
	}

	req := kyber.PriceRequest{
		TokenIn:         tokenIn,
		TokenOut:        tokenOut,
		AmountIn:        b.AmountIn.Int,
		TokenInDecimals: inConfig.Decimals,
	}
	trade := slippage.Trade{
		TokenIn:          tokenIn,
		TokenOut:         tokenOut,
		AmountIn:         b.AmountIn.Int,
		TokenInDecimals:  inConfig.Decimals,
		TokenOutDecimals: outConfig.Decimals,
	}
	return req, trade, nil
}

func quoteError(w http.ResponseWriter, err error) {
	if errors.Is(err, kyber.ErrNoRoute) {
		JSONError(w, err, http.StatusNotFound)
		return
	}

	upstream := &kyber.UpstreamError{}
	if errors.As(err, &upstream) {
		JSONError(w, err, http.StatusBadGateway)
		return
	}

	JSONError(w, err, http.StatusInternalServerError)
}
