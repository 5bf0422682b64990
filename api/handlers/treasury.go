package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/tokenforge/forge-engine/chains/evm/calls"
	"github.com/tokenforge/forge-engine/chains/evm/executor"
)

type TreasuryCaller interface {
	MiningPrice(token common.Address) (*big.Int, error)
	MineCall(token common.Address, recipient common.Address, amount *big.Int, maxPrice *big.Int) (calls.Call, error)
	BuyCall(lotId *big.Int, amount *big.Int, maxPrice *big.Int) (calls.Call, error)
	LaunchCall(name string, symbol string, salt [32]byte, fee *big.Int) (calls.Call, error)
}

type MineBody struct {
	ChainId   uint64
	Token     string  `json:"token"`
	Recipient string  `json:"recipient"`
	Amount    *BigInt `json:"amount"`
	MaxPrice  *BigInt `json:"maxPrice"`
}

type BuyBody struct {
	ChainId  uint64
	LotId    *BigInt `json:"lotId"`
	Amount   *BigInt `json:"amount"`
	MaxPrice *BigInt `json:"maxPrice"`
}

type LaunchBody struct {
	ChainId uint64
	Name    string  `json:"name"`
	Symbol  string  `json:"symbol"`
	Salt    string  `json:"salt"`
	Fee     *BigInt `json:"fee"`
}

// TreasuryHandler exposes the treasury actions. Every action owns its own
// executor so a long-running mine never blocks a launch on the same chain;
// auction buys additionally settle on the auction schedule instead of the
// trade schedule.
type TreasuryHandler struct {
	treasuries      map[uint64]TreasuryCaller
	mineExecutors   map[uint64]Executor
	buyExecutors    map[uint64]Executor
	launchExecutors map[uint64]Executor
}

func NewTreasuryHandler(
	treasuries map[uint64]TreasuryCaller,
	mineExecutors map[uint64]Executor,
	buyExecutors map[uint64]Executor,
	launchExecutors map[uint64]Executor,
) *TreasuryHandler {
	return &TreasuryHandler{
		treasuries:      treasuries,
		mineExecutors:   mineExecutors,
		buyExecutors:    buyExecutors,
		launchExecutors: launchExecutors,
	}
}

// HandleMine submits a mine call for the requested token. When no max price
// is given the current on-chain mining price is used as the cap.
func (h *TreasuryHandler) HandleMine(w http.ResponseWriter, r *http.Request) {
	b := &MineBody{}
	d := json.NewDecoder(r.Body)
	err := d.Decode(b)
	if err != nil {
		JSONError(w, fmt.Errorf("invalid request body: %s", err), http.StatusBadRequest)
		return
	}

	treasury, exec, err := h.resolve(mux.Vars(r), &b.ChainId, h.mineExecutors)
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}
	if b.Token == "" || b.Recipient == "" || b.Amount == nil {
		JSONError(w, fmt.Errorf("missing field 'token', 'recipient' or 'amount'"), http.StatusBadRequest)
		return
	}

	maxPrice := new(big.Int)
	if b.MaxPrice != nil {
		maxPrice = b.MaxPrice.Int
	} else {
		maxPrice, err = treasury.MiningPrice(common.HexToAddress(b.Token))
		if err != nil {
			JSONError(w, err, http.StatusBadGateway)
			return
		}
	}

	call, err := treasury.MineCall(
		common.HexToAddress(b.Token),
		common.HexToAddress(b.Recipient),
		b.Amount.Int,
		maxPrice)
	if err != nil {
		JSONError(w, err, http.StatusInternalServerError)
		return
	}

	h.execute(w, b.ChainId, exec, call)
}

// HandleBuy submits an auction buy for the requested lot
func (h *TreasuryHandler) HandleBuy(w http.ResponseWriter, r *http.Request) {
	b := &BuyBody{}
	d := json.NewDecoder(r.Body)
	err := d.Decode(b)
	if err != nil {
		JSONError(w, fmt.Errorf("invalid request body: %s", err), http.StatusBadRequest)
		return
	}

	treasury, exec, err := h.resolve(mux.Vars(r), &b.ChainId, h.buyExecutors)
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}
	if b.LotId == nil || b.Amount == nil || b.MaxPrice == nil {
		JSONError(w, fmt.Errorf("missing field 'lotId', 'amount' or 'maxPrice'"), http.StatusBadRequest)
		return
	}

	call, err := treasury.BuyCall(b.LotId.Int, b.Amount.Int, b.MaxPrice.Int)
	if err != nil {
		JSONError(w, err, http.StatusInternalServerError)
		return
	}

	h.execute(w, b.ChainId, exec, call)
}

// HandleLaunch submits a token launch
func (h *TreasuryHandler) HandleLaunch(w http.ResponseWriter, r *http.Request) {
	b := &LaunchBody{}
	d := json.NewDecoder(r.Body)
	err := d.Decode(b)
	if err != nil {
		JSONError(w, fmt.Errorf("invalid request body: %s", err), http.StatusBadRequest)
		return
	}

	treasury, exec, err := h.resolve(mux.Vars(r), &b.ChainId, h.launchExecutors)
	if err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}
	if b.Name == "" || b.Symbol == "" || b.Fee == nil {
		JSONError(w, fmt.Errorf("missing field 'name', 'symbol' or 'fee'"), http.StatusBadRequest)
		return
	}

	var salt [32]byte
	saltBytes, err := hexutil.Decode(b.Salt)
	if err != nil || len(saltBytes) != 32 {
		JSONError(w, fmt.Errorf("field 'salt' must be a 32 byte hex string"), http.StatusBadRequest)
		return
	}
	copy(salt[:], saltBytes)

	call, err := treasury.LaunchCall(b.Name, b.Symbol, salt, b.Fee.Int)
	if err != nil {
		JSONError(w, err, http.StatusInternalServerError)
		return
	}

	h.execute(w, b.ChainId, exec, call)
}

func (h *TreasuryHandler) execute(w http.ResponseWriter, chainId uint64, exec Executor, call calls.Call) {
	if exec.State() != executor.Idle {
		JSONError(w, executor.ErrNotIdle, http.StatusConflict)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), executor.TIMEOUT)
		defer cancel()

		err := exec.Execute(ctx, []calls.Call{call})
		if err != nil {
			log.Err(err).Uint64("chain", chainId).Msgf("Treasury execution failed")
		}
	}()

	w.WriteHeader(http.StatusAccepted)
}

func (h *TreasuryHandler) resolve(
	vars map[string]string,
	chainId *uint64,
	executors map[uint64]Executor,
) (TreasuryCaller, Executor, error) {
	id, ok := new(big.Int).SetString(vars["chainId"], 10)
	if !ok {
		return nil, nil, fmt.Errorf("field 'chainId' invalid")
	}
	*chainId = id.Uint64()

	treasury, ok := h.treasuries[*chainId]
	if !ok {
		return nil, nil, fmt.Errorf("chain '%d' not supported", *chainId)
	}
	exec, ok := executors[*chainId]
	if !ok {
		return nil, nil, fmt.Errorf("chain '%d' not supported", *chainId)
	}
	return treasury, exec, nil
}
