package executor_test

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/tokenforge/forge-engine/chains/evm/executor"
)

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// fakeRPC serves JSON-RPC over HTTP, dispatching on method name.
func fakeRPC(t *testing.T, handlers map[string]func(params []json.RawMessage) interface{}) *rpc.Client {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := new(rpcRequest)
		if err := json.NewDecoder(r.Body).Decode(req); err != nil {
			t.Fatalf("malformed rpc request: %s", err)
		}
		handler, ok := handlers[req.Method]
		if !ok {
			t.Fatalf("unexpected rpc method %s", req.Method)
		}
		result, err := json.Marshal(handler(req.Params))
		if err != nil {
			t.Fatalf("marshaling result: %s", err)
		}
		resp := map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  json.RawMessage(result),
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Fatalf("writing rpc response: %s", err)
		}
	}))
	t.Cleanup(ts.Close)

	client, err := rpc.Dial(ts.URL)
	if err != nil {
		t.Fatalf("dialing fake rpc: %s", err)
	}
	t.Cleanup(client.Close)
	return client
}

func Test_WaitForBatchInclusion_PollsUntilConfirmed(t *testing.T) {
	id := common.HexToHash("0xcc01")
	polls := 0
	client := fakeRPC(t, map[string]func([]json.RawMessage) interface{}{
		"wallet_getCallsStatus": func(params []json.RawMessage) interface{} {
			var got common.Hash
			if err := json.Unmarshal(params[0], &got); err != nil {
				t.Fatalf("decoding batch id: %s", err)
			}
			if got != id {
				t.Fatalf("polled for batch %s, want %s", got.Hex(), id.Hex())
			}
			polls++
			if polls < 3 {
				return map[string]interface{}{"status": 100}
			}
			return map[string]interface{}{
				"status": 200,
				"receipts": []map[string]interface{}{
					{
						"transactionHash": common.HexToHash("0xcc02"),
						"blockNumber":     "0x10",
						"gasUsed":         "0x5208",
						"status":          "0x1",
					},
				},
			}
		},
	})
	provider := executor.NewWalletProvider(client, owner, big.NewInt(8453), time.Millisecond)

	receipt, err := provider.WaitForBatchInclusion(context.Background(), id)

	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if polls != 3 {
		t.Fatalf("expected 3 polls, got %d", polls)
	}
	if receipt.Status != ethTypes.ReceiptStatusSuccessful {
		t.Fatalf("expected successful receipt, got status %d", receipt.Status)
	}
	if receipt.TxHash != id {
		t.Fatalf("receipt keyed on %s, want batch id %s", receipt.TxHash.Hex(), id.Hex())
	}
}

func Test_WaitForBatchInclusion_FailureStatusYieldsFailedReceipt(t *testing.T) {
	id := common.HexToHash("0xcc03")
	client := fakeRPC(t, map[string]func([]json.RawMessage) interface{}{
		"wallet_getCallsStatus": func([]json.RawMessage) interface{} {
			return map[string]interface{}{"status": 500}
		},
	})
	provider := executor.NewWalletProvider(client, owner, big.NewInt(8453), time.Millisecond)

	receipt, err := provider.WaitForBatchInclusion(context.Background(), id)

	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if receipt.Status != ethTypes.ReceiptStatusFailed {
		t.Fatalf("expected failed receipt, got status %d", receipt.Status)
	}
}
