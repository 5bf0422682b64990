package executor

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog/log"

	"github.com/tokenforge/forge-engine/chains/evm/calls"
)

const (
	TIMEOUT = 10 * time.Minute

	walletRejectedCode = 4001
)

// Provider is the wallet boundary. The engine treats it as a
// capability-negotiated black box; wallet connection itself happens outside
// the engine.
type Provider interface {
	// HasAtomicBatch is a side-effect-free capability query. Capability
	// absence is decided here, never inferred from a failed submission.
	HasAtomicBatch(ctx context.Context) (bool, error)
	SubmitAtomic(ctx context.Context, batch []calls.Call) (common.Hash, error)
	SubmitSingle(ctx context.Context, call calls.Call) (common.Hash, error)
	WaitForInclusion(ctx context.Context, hash common.Hash) (*ethTypes.Receipt, error)
	// WaitForBatchInclusion resolves the opaque identifier returned by an
	// atomic submission. Batch identifiers are not transaction hashes and
	// cannot be polled through the receipt path.
	WaitForBatchInclusion(ctx context.Context, id common.Hash) (*ethTypes.Receipt, error)
}

// WalletProvider implements Provider over an EIP-5792 style wallet RPC.
type WalletProvider struct {
	client    *rpc.Client
	sender    common.Address
	chainID   *big.Int
	blocktime time.Duration
}

func NewWalletProvider(
	client *rpc.Client,
	sender common.Address,
	chainID *big.Int,
	blocktime time.Duration,
) *WalletProvider {
	return &WalletProvider{
		client:    client,
		sender:    sender,
		chainID:   chainID,
		blocktime: blocktime,
	}
}

type walletCapability struct {
	Supported bool `json:"supported"`
}

func (p *WalletProvider) HasAtomicBatch(ctx context.Context) (bool, error) {
	capabilities := make(map[string]map[string]walletCapability)
	err := p.client.CallContext(ctx, &capabilities, "wallet_getCapabilities", p.sender)
	if err != nil {
		return false, walletError(err)
	}

	chainCapabilities, ok := capabilities[hexutil.EncodeBig(p.chainID)]
	if !ok {
		return false, nil
	}
	return chainCapabilities["atomicBatch"].Supported, nil
}

type walletCall struct {
	To    common.Address `json:"to"`
	Data  hexutil.Bytes  `json:"data"`
	Value *hexutil.Big   `json:"value,omitempty"`
}

type sendCallsRequest struct {
	Version string         `json:"version"`
	ChainID string         `json:"chainId"`
	From    common.Address `json:"from"`
	Calls   []walletCall   `json:"calls"`
}

func (p *WalletProvider) SubmitAtomic(ctx context.Context, batch []calls.Call) (common.Hash, error) {
	req := sendCallsRequest{
		Version: "1.0",
		ChainID: hexutil.EncodeBig(p.chainID),
		From:    p.sender,
	}
	for _, c := range batch {
		wc := walletCall{
			To:   c.Target,
			Data: c.Payload,
		}
		if c.Value != nil && c.Value.Sign() != 0 {
			wc.Value = (*hexutil.Big)(c.Value)
		}
		req.Calls = append(req.Calls, wc)
	}

	var id common.Hash
	err := p.client.CallContext(ctx, &id, "wallet_sendCalls", req)
	if err != nil {
		return common.Hash{}, walletError(err)
	}

	return id, nil
}

type sendTransactionRequest struct {
	From  common.Address  `json:"from"`
	To    *common.Address `json:"to"`
	Data  hexutil.Bytes   `json:"data"`
	Value *hexutil.Big    `json:"value,omitempty"`
}

func (p *WalletProvider) SubmitSingle(ctx context.Context, call calls.Call) (common.Hash, error) {
	req := sendTransactionRequest{
		From: p.sender,
		To:   &call.Target,
		Data: call.Payload,
	}
	if call.Value != nil && call.Value.Sign() != 0 {
		req.Value = (*hexutil.Big)(call.Value)
	}

	var hash common.Hash
	err := p.client.CallContext(ctx, &hash, "eth_sendTransaction", req)
	if err != nil {
		return common.Hash{}, walletError(err)
	}

	return hash, nil
}

// WaitForInclusion polls for the receipt until the transaction is mined or
// the timeout lapses. Once broadcast, the underlying chain call cannot be
// cancelled; abandoning the wait only discards interest in the outcome.
func (p *WalletProvider) WaitForInclusion(ctx context.Context, hash common.Hash) (*ethTypes.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("timed out waiting for inclusion of %s", hash.Hex())
		default:
			receipt := new(ethTypes.Receipt)
			err := p.client.CallContext(ctx, receipt, "eth_getTransactionReceipt", hash)
			if err != nil && !errors.Is(err, rpc.ErrNoResult) {
				log.Warn().Msgf("Error fetching transaction receipt: %v", err)
				time.Sleep(p.blocktime)
				continue
			}

			if err != nil || receipt.BlockNumber == nil {
				time.Sleep(p.blocktime)
				continue
			}

			return receipt, nil
		}
	}
}

// batch status codes returned by wallet_getCallsStatus
const (
	callsStatusPending   = 100
	callsStatusConfirmed = 200
)

type batchReceipt struct {
	TransactionHash common.Hash    `json:"transactionHash"`
	BlockNumber     *hexutil.Big   `json:"blockNumber"`
	GasUsed         hexutil.Uint64 `json:"gasUsed"`
	Status          hexutil.Uint64 `json:"status"`
}

type callsStatusResponse struct {
	Status   int            `json:"status"`
	Receipts []batchReceipt `json:"receipts"`
}

// WaitForBatchInclusion polls the wallet for the status of an atomically
// submitted batch until it is included or the timeout lapses. The returned
// receipt reports only the outcome; in atomic mode the batch identifier stays
// the settlement identity, so TxHash carries the id it was polled with.
func (p *WalletProvider) WaitForBatchInclusion(ctx context.Context, id common.Hash) (*ethTypes.Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, TIMEOUT)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("timed out waiting for inclusion of batch %s", id.Hex())
		default:
			status := new(callsStatusResponse)
			err := p.client.CallContext(ctx, status, "wallet_getCallsStatus", id)
			if err != nil {
				log.Warn().Msgf("Error fetching batch status: %v", err)
				time.Sleep(p.blocktime)
				continue
			}
			if status.Status <= callsStatusPending {
				time.Sleep(p.blocktime)
				continue
			}

			receipt := &ethTypes.Receipt{
				TxHash: id,
				Status: ethTypes.ReceiptStatusFailed,
			}
			if status.Status == callsStatusConfirmed && len(status.Receipts) > 0 {
				receipt.Status = uint64(status.Receipts[len(status.Receipts)-1].Status)
			}
			return receipt, nil
		}
	}
}

func walletError(err error) error {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == walletRejectedCode {
		return ErrWalletRejected
	}
	return err
}
