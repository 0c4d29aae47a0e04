package ethereum

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ErrConfirmationTimeout is returned when a submitted transaction is not
// mined within the configured confirmation window. The transaction may still
// confirm later; callers must not treat this as a definitive failure.
var ErrConfirmationTimeout = errors.New("transaction confirmation timed out")

// ErrConfirmedFailure is returned when a transaction was mined but reverted.
var ErrConfirmedFailure = errors.New("transaction confirmed as failed")

// EstimationError indicates the node rejected the transaction during gas
// estimation, before anything was submitted. Typically the call would revert.
type EstimationError struct {
	Err error
}

func (e *EstimationError) Error() string {
	return fmt.Sprintf("gas estimation failed: %v", e.Err)
}

func (e *EstimationError) Unwrap() error {
	return e.Err
}

// SubmissionError indicates the transaction could not be handed to the node.
// Nothing is on chain; the operation is safe to retry.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("transaction submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// Status is the terminal state of a mined transaction.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)

// Receipt summarizes a mined mint transaction.
type Receipt struct {
	TxHash  common.Hash
	GasUsed uint64
	Status  Status
}
