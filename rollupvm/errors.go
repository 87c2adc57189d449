// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rollupvm

import "errors"

var (
	// ErrInvalidBatchNumber is returned when a batch number does not
	// immediately follow its predecessor's, or is non-zero without one.
	ErrInvalidBatchNumber = errors.New("invalid batch number")

	// ErrInvalidFraudProofClaim is returned when the disputed leaf is included
	// under the committed root, so the state transition was correct.
	ErrInvalidFraudProofClaim = errors.New("invalid fraud proof claim")

	// ErrDisputePeriodEnded is only returned by a DisputeWindow the caller
	// configured.
	ErrDisputePeriodEnded = errors.New("dispute period has ended")

	// ErrNoPreviousState is reserved for state reversion, which is not
	// supported yet.
	ErrNoPreviousState = errors.New("no previous state available for reversion")

	ErrInvalidRoot = errors.New("invalid root")
)
