package executor

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrWalletRejected is returned when the user declined the request in
	// their provider. Recoverable; nothing was submitted.
	ErrWalletRejected = errors.New("wallet rejected request")

	// ErrNotIdle is returned when execute is attempted while another
	// submission owns the executor.
	ErrNotIdle = errors.New("executor not idle")

	// ErrResetInFlight is returned when reset is attempted from a
	// non-terminal state. An in-flight submission is never silently
	// abandoned.
	ErrResetInFlight = errors.New("cannot reset executor with submission in flight")

	// ErrNothingToResume is returned when resume is attempted without a
	// partial failure to resume from.
	ErrNothingToResume = errors.New("no partial batch to resume")
)

// RevertError marks a call that was included on-chain but reverted. Terminal;
// the engine never retries a reverted submission because price or state
// likely moved.
type RevertError struct {
	Hash common.Hash
}

func (e *RevertError) Error() string {
	return fmt.Sprintf("transaction %s reverted on-chain", e.Hash.Hex())
}

// PartialBatchError reports a sequential batch where the first Completed
// calls landed on-chain and a later call failed. The batch is never retried
// from the start; callers resume with the remaining calls only.
type PartialBatchError struct {
	Completed int
	Hash      common.Hash
	Err       error
}

func (e *PartialBatchError) Error() string {
	return fmt.Sprintf("batch failed after %d completed calls: %s", e.Completed, e.Err)
}

func (e *PartialBatchError) Unwrap() error {
	return e.Err
}
