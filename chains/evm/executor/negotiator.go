package executor

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog/log"

	"github.com/tokenforge/forge-engine/chains/evm/calls"
)

type Mode string

const (
	ModeAtomic     Mode = "atomic"
	ModeSequential Mode = "sequential"
	ModeSingle     Mode = "single"
)

// Submission describes a fully included call sequence. Hash identifies the
// settlement: the batch identifier in atomic mode, the final call's
// transaction hash otherwise.
type Submission struct {
	Hash      common.Hash
	Mode      Mode
	Completed int
}

type Submitter interface {
	Submit(ctx context.Context, batch []calls.Call, onSubmitted func(common.Hash)) (*Submission, error)
}

// Negotiator presents one submit operation regardless of whether the wallet
// supports atomic multi-call submission. The capability is queried explicitly
// before choosing a path.
type Negotiator struct {
	provider Provider
}

func NewNegotiator(provider Provider) *Negotiator {
	return &Negotiator{
		provider: provider,
	}
}

// Submit submits the batch with the strongest available atomicity guarantee
// and waits for inclusion. onSubmitted fires once, when the batch becomes
// on-chain-visible. In the sequential fallback there is no atomicity: a later
// call can fail with earlier calls already applied, reported through
// PartialBatchError.
func (n *Negotiator) Submit(ctx context.Context, batch []calls.Call, onSubmitted func(common.Hash)) (*Submission, error) {
	if len(batch) == 0 {
		return nil, fmt.Errorf("empty batch")
	}

	// single-call flows skip batching entirely
	if len(batch) == 1 {
		return n.submitSingle(ctx, batch[0], onSubmitted)
	}

	atomic, err := n.provider.HasAtomicBatch(ctx)
	if err != nil {
		return nil, err
	}
	if atomic {
		return n.submitAtomic(ctx, batch, onSubmitted)
	}
	return n.submitSequential(ctx, batch, onSubmitted)
}

func (n *Negotiator) submitSingle(ctx context.Context, call calls.Call, onSubmitted func(common.Hash)) (*Submission, error) {
	hash, err := n.provider.SubmitSingle(ctx, call)
	if err != nil {
		return nil, err
	}
	notify(onSubmitted, hash)

	receipt, err := n.provider.WaitForInclusion(ctx, hash)
	if err != nil {
		return nil, err
	}
	if receipt.Status != ethTypes.ReceiptStatusSuccessful {
		return nil, &RevertError{Hash: hash}
	}

	return &Submission{Hash: hash, Mode: ModeSingle, Completed: 1}, nil
}

func (n *Negotiator) submitAtomic(ctx context.Context, batch []calls.Call, onSubmitted func(common.Hash)) (*Submission, error) {
	id, err := n.provider.SubmitAtomic(ctx, batch)
	if err != nil {
		return nil, err
	}
	notify(onSubmitted, id)

	receipt, err := n.provider.WaitForBatchInclusion(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt.Status != ethTypes.ReceiptStatusSuccessful {
		// all calls reverted together; nothing was applied
		return nil, &RevertError{Hash: id}
	}

	return &Submission{Hash: id, Mode: ModeAtomic, Completed: len(batch)}, nil
}

// submitSequential submits calls strictly in order, waiting for each to be
// mined before submitting the next.
func (n *Negotiator) submitSequential(ctx context.Context, batch []calls.Call, onSubmitted func(common.Hash)) (*Submission, error) {
	var hash common.Hash
	for i, call := range batch {
		var err error
		hash, err = n.provider.SubmitSingle(ctx, call)
		if err != nil {
			if i == 0 {
				return nil, err
			}
			return nil, &PartialBatchError{Completed: i, Err: err}
		}
		if i == 0 {
			notify(onSubmitted, hash)
		}

		receipt, err := n.provider.WaitForInclusion(ctx, hash)
		if err != nil {
			return nil, &PartialBatchError{Completed: i, Hash: hash, Err: err}
		}
		if receipt.Status != ethTypes.ReceiptStatusSuccessful {
			log.Warn().Msgf("Call %d of %d reverted in sequential batch %s", i+1, len(batch), hash.Hex())
			return nil, &PartialBatchError{Completed: i, Hash: hash, Err: &RevertError{Hash: hash}}
		}
	}

	return &Submission{Hash: hash, Mode: ModeSequential, Completed: len(batch)}, nil
}

func notify(onSubmitted func(common.Hash), hash common.Hash) {
	if onSubmitted != nil {
		onSubmitted(hash)
	}
}
