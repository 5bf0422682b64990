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
	"github.com/rs/zerolog/log"

	"github.com/tokenforge/forge-engine/chains/evm/calls"
	"github.com/tokenforge/forge-engine/chains/evm/executor"
	"github.com/tokenforge/forge-engine/config"
	"github.com/tokenforge/forge-engine/protocol/kyber"
	"github.com/tokenforge/forge-engine/slippage"
)

type Executor interface {
	Execute(ctx context.Context, batch []calls.Call) error
	Resume(ctx context.Context) error
	Reset() error
	State() executor.BatchState
	LastError() error
	LastSubmission() *executor.Submission
}

type SwapBody struct {
	ChainId  uint64
	TokenIn  string  `json:"tokenIn"`
	TokenOut string  `json:"tokenOut"`
	AmountIn *BigInt `json:"amountIn"`
	Taker    string  `json:"taker"`
}

type SwapStatusResponse struct {
	State    executor.BatchState `json:"state"`
	Identity string              `json:"identity,omitempty"`
	Mode     executor.Mode       `json:"mode,omitempty"`
	Error    string              `json:"error,omitempty"`
}

type SwapHandler struct {
	quoters    map[uint64]Quoter
	executors  map[uint64]Executor
	estimators map[uint64]ImpactEstimator
	tokens     *config.TokenStore
}

func NewSwapHandler(
	quoters map[uint64]Quoter,
	executors map[uint64]Executor,
	estimators map[uint64]ImpactEstimator,
	tokens *config.TokenStore,
) *SwapHandler {
	return &SwapHandler{
		quoters:    quoters,
		executors:  executors,
		estimators: estimators,
		tokens:     tokens,
	}
}

// HandleSwap builds an executable trade through the aggregator and submits it
// on-chain. Returns status code 202 when the batch has been accepted for
// execution; progress is polled through HandleStatus.
func (h *SwapHandler) HandleSwap(w http.ResponseWriter, r *http.Request) {
	b := &SwapBody{}
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

	exec := h.executors[b.ChainId]
	if exec.State() != executor.Idle {
		JSONError(w, executor.ErrNotIdle, http.StatusConflict)
		return
	}

	batch, err := h.buildBatch(r.Context(), b)
	if err != nil {
		quoteError(w, err)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), executor.TIMEOUT)
		defer cancel()

		err := exec.Execute(ctx, batch)
		if err != nil {
			log.Err(err).Uint64("chain", b.ChainId).Msgf("Swap execution failed")
		}
	}()

	w.WriteHeader(http.StatusAccepted)
}

// HandleStatus returns the current execution state for the chain
func (h *SwapHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	exec, err := h.executorFromVars(mux.Vars(r))
	if err != nil {
		JSONError(w, err, http.StatusNotFound)
		return
	}

	resp := &SwapStatusResponse{
		State: exec.State(),
	}
	if submission := exec.LastSubmission(); submission != nil {
		resp.Identity = submission.Hash.Hex()
		resp.Mode = submission.Mode
	}
	if err := exec.LastError(); err != nil {
		resp.Error = err.Error()
	}

	data, _ := json.Marshal(resp)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// HandleResume re-submits the calls left over from a partially failed batch
func (h *SwapHandler) HandleResume(w http.ResponseWriter, r *http.Request) {
	exec, err := h.executorFromVars(mux.Vars(r))
	if err != nil {
		JSONError(w, err, http.StatusNotFound)
		return
	}

	err = exec.Resume(r.Context())
	if err != nil {
		if errors.Is(err, executor.ErrNothingToResume) {
			JSONError(w, err, http.StatusConflict)
			return
		}
		JSONError(w, err, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

// HandleReset returns the executor to idle after a terminal state
func (h *SwapHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	exec, err := h.executorFromVars(mux.Vars(r))
	if err != nil {
		JSONError(w, err, http.StatusNotFound)
		return
	}

	err = exec.Reset()
	if err != nil {
		JSONError(w, err, http.StatusConflict)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *SwapHandler) buildBatch(ctx context.Context, b *SwapBody) ([]calls.Call, error) {
	tokenIn := common.HexToAddress(b.TokenIn)
	tokenOut := common.HexToAddress(b.TokenOut)
	taker := common.HexToAddress(b.Taker)

	_, inConfig, err := h.tokens.ConfigByAddress(b.ChainId, tokenIn)
	if err != nil {
		return nil, err
	}
	_, outConfig, err := h.tokens.ConfigByAddress(b.ChainId, tokenOut)
	if err != nil {
		return nil, err
	}

	quoter := h.quoters[b.ChainId]
	priceReq := kyber.PriceRequest{
		TokenIn:         tokenIn,
		TokenOut:        tokenOut,
		AmountIn:        b.AmountIn.Int,
		TokenInDecimals: inConfig.Decimals,
	}
	priceQuote, err := quoter.GetPrice(ctx, priceReq)
	if err != nil {
		return nil, err
	}

	estimate := h.estimators[b.ChainId].Estimate(ctx, priceQuote, slippage.Trade{
		TokenIn:          tokenIn,
		TokenOut:         tokenOut,
		AmountIn:         b.AmountIn.Int,
		TokenInDecimals:  inConfig.Decimals,
		TokenOutDecimals: outConfig.Decimals,
	})

	buildReq := kyber.BuildRequest{
		PriceRequest: priceReq,
		SlippageBps:  estimate.ToleranceBps,
		Taker:        taker,
	}
	quote, err := quoter.GetBuildQuote(ctx, buildReq)
	if err != nil {
		return nil, err
	}
	swapCall, err := quote.Transaction(buildReq)
	if err != nil {
		return nil, err
	}

	batch := make([]calls.Call, 0, 2)
	if spender, ok := quote.Spender(); ok {
		approve, err := calls.NewApproveCall(calls.Approval{
			Token:   tokenIn,
			Spender: spender,
			Amount:  b.AmountIn.Int,
		})
		if err != nil {
			return nil, err
		}
		batch = append(batch, approve)
	}
	return append(batch, swapCall), nil
}

func (h *SwapHandler) validate(b *SwapBody, vars map[string]string) error {
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

	if b.AmountIn == nil || b.AmountIn.Int.Sign() <= 0 {
		return fmt.Errorf("missing field 'amountIn'")
	}

	if b.Taker == "" {
		return fmt.Errorf("missing field 'taker'")
	}

	_, ok = h.quoters[b.ChainId]
	if !ok {
		return fmt.Errorf("chain '%d' not supported", b.ChainId)
	}
	_, ok = h.executors[b.ChainId]
	if !ok {
		return fmt.Errorf("chain '%d' not supported", b.ChainId)
	}
	_, ok = h.estimators[b.ChainId]
	if !ok {
		return fmt.Errorf("chain '%d' not supported", b.ChainId)
	}

	return nil
}

func (h *SwapHandler) executorFromVars(vars map[string]string) (Executor, error) {
	chainId, ok := new(big.Int).SetString(vars["chainId"], 10)
	if !ok {
		return nil, fmt.Errorf("chain id invalid")
	}

	exec, ok := h.executors[chainId.Uint64()]
	if !ok {
		return nil, fmt.Errorf("chain %d not supported", chainId.Uint64())
	}
	return exec, nil
}
