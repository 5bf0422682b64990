package executor

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"

	"github.com/tokenforge/forge-engine/chains/evm/calls"
)

type BatchState string

const (
	Idle       BatchState = "idle"
	Pending    BatchState = "pending"
	Confirming BatchState = "confirming"
	Success    BatchState = "success"
	Error      BatchState = "error"
)

// SettlementNotifier receives the identity of a successfully settled batch.
// Only transitions into Success trigger it.
type SettlementNotifier interface {
	Settle(identity common.Hash)
}

// AllowanceSource reads the current on-chain allowance. Consulted before any
// resume so that an approval that already landed is never re-submitted.
type AllowanceSource interface {
	Allowance(token common.Address, owner common.Address, spender common.Address) (*big.Int, error)
}

// SubmissionMetrics observes submission lifecycle events.
type SubmissionMetrics interface {
	StartSubmission(identity common.Hash)
	EndSubmission(identity common.Hash)
	TrackFailure()
}

// BatchExecutor drives one logical user action (mine, buy, launch, swap)
// through submission. Each action owns its own executor instance; the
// idle-only entry guard makes the underlying build quote effectively
// single-use.
type BatchExecutor struct {
	mu sync.Mutex

	state      BatchState
	owner      common.Address
	submitter  Submitter
	settler    SettlementNotifier
	allowances AllowanceSource
	metrics    SubmissionMetrics

	remaining      []calls.Call
	lastSubmission *Submission
	lastErr        error
}

func NewBatchExecutor(
	owner common.Address,
	submitter Submitter,
	settler SettlementNotifier,
	allowances AllowanceSource,
	metrics SubmissionMetrics,
) *BatchExecutor {
	return &BatchExecutor{
		state:      Idle,
		owner:      owner,
		submitter:  submitter,
		settler:    settler,
		allowances: allowances,
		metrics:    metrics,
	}
}

func (e *BatchExecutor) State() BatchState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *BatchExecutor) LastError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

func (e *BatchExecutor) LastSubmission() *Submission {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastSubmission
}

// Execute submits the batch. Fails fast unless the executor is idle.
func (e *BatchExecutor) Execute(ctx context.Context, batch []calls.Call) error {
	e.mu.Lock()
	if e.state != Idle {
		e.mu.Unlock()
		return ErrNotIdle
	}
	e.state = Pending
	e.lastErr = nil
	e.lastSubmission = nil
	e.mu.Unlock()

	return e.submit(ctx, batch)
}

// Resume re-attempts only the calls left over from a partial batch failure.
// An approval among them is skipped when the on-chain allowance already
// covers it; completed calls are never re-submitted.
func (e *BatchExecutor) Resume(ctx context.Context) error {
	e.mu.Lock()
	if e.state != Error || len(e.remaining) == 0 {
		e.mu.Unlock()
		return ErrNothingToResume
	}
	remaining := e.remaining
	e.state = Pending
	e.lastErr = nil
	e.mu.Unlock()

	batch := make([]calls.Call, 0, len(remaining))
	for _, c := range remaining {
		if e.approvalCovered(c) {
			log.Debug().Msgf("Skipping already covered approval for %s", c.Target.Hex())
			continue
		}
		batch = append(batch, c)
	}
	if len(batch) == 0 {
		// everything left had already applied on-chain
		e.mu.Lock()
		e.state = Success
		e.remaining = nil
		e.mu.Unlock()
		return nil
	}

	return e.submit(ctx, batch)
}

// Reset returns the executor to idle. Only legal from a terminal state; an
// in-flight submission must never be silently abandoned.
func (e *BatchExecutor) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != Success && e.state != Error {
		log.Error().Msgf("Reset attempted with submission in state %s", e.state)
		return ErrResetInFlight
	}

	e.state = Idle
	e.remaining = nil
	e.lastSubmission = nil
	e.lastErr = nil
	return nil
}

func (e *BatchExecutor) submit(ctx context.Context, batch []calls.Call) error {
	// identity under which the submission was registered with the metrics;
	// the final submission hash can differ in sequential mode
	var tracked common.Hash
	submission, err := e.submitter.Submit(ctx, batch, func(hash common.Hash) {
		e.mu.Lock()
		e.state = Confirming
		e.mu.Unlock()

		tracked = hash
		if e.metrics != nil {
			e.metrics.StartSubmission(hash)
		}
	})

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		// Partial context wins over the rejection sentinel it may wrap: a
		// rejection of a later call still leaves earlier calls on-chain.
		partial := &PartialBatchError{}
		if errors.As(err, &partial) {
			e.remaining = batch[partial.Completed:]
		} else if errors.Is(err, ErrWalletRejected) {
			// nothing was submitted; the action can be retried freely
			e.state = Idle
			e.remaining = nil
			return err
		} else {
			e.remaining = nil
		}
		e.state = Error
		e.lastErr = err
		if e.metrics != nil {
			e.metrics.TrackFailure()
		}
		return err
	}

	e.state = Success
	e.remaining = nil
	e.lastSubmission = submission
	if e.metrics != nil {
		if tracked == (common.Hash{}) {
			tracked = submission.Hash
		}
		e.metrics.EndSubmission(tracked)
	}
	if e.settler != nil {
		e.settler.Settle(submission.Hash)
	}
	return nil
}

func (e *BatchExecutor) approvalCovered(c calls.Call) bool {
	if e.allowances == nil {
		return false
	}

	approval, ok := calls.ParseApproval(c)
	if !ok {
		return false
	}

	allowance, err := e.allowances.Allowance(approval.Token, e.owner, approval.Spender)
	if err != nil {
		log.Warn().Msgf("Failed checking allowance before resume: %s", err)
		return false
	}

	return allowance.Cmp(approval.Amount) >= 0
}
