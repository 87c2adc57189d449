// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rollupvm

import (
	"fmt"
	"time"

	"github.com/ava-labs/avalanchego/ids"
)

// FraudEvent reports a substantiated fraud claim against a commitment.
// It is produced as data; publishing it is left to a FraudPublisher.
type FraudEvent struct {
	Validator   ids.ShortID `serialize:"true" json:"validator"`
	Root        []byte      `serialize:"true" json:"root"`
	BatchNumber uint64      `serialize:"true" json:"batchNumber"`
	Tmstmp      int64       `serialize:"true" json:"timestamp"`
}

// Timestamp returns the submission time of the disputed commitment
func (e *FraudEvent) Timestamp() time.Time { return time.Unix(e.Tmstmp, 0) }

// DisputeWindow decides whether [c] may still be disputed at [now].
// It returns ErrDisputePeriodEnded (possibly wrapped) once it may not.
type DisputeWindow func(c *Commitment, now time.Time) error

// FixedDisputeWindow returns a DisputeWindow that closes [period] after a
// commitment's timestamp. A non-positive [period] never closes.
func FixedDisputeWindow(period time.Duration) DisputeWindow {
	return func(c *Commitment, now time.Time) error {
		if period <= 0 {
			return nil
		}
		if closesAt := c.Timestamp().Add(period); now.After(closesAt) {
			return fmt.Errorf("%w: batch %d closed at %s", ErrDisputePeriodEnded, c.BatchNumber, closesAt)
		}
		return nil
	}
}

// DecideFraudClaim decides a claim that [c]'s state transition was
// fraudulent, given a [leaf] and its inclusion [proof].
//
// If [leaf] is included under [c]'s root the transition was correct, so the
// claim is rejected with ErrInvalidFraudProofClaim. Otherwise the claim is
// substantiated and the returned event describes [c].
func DecideFraudClaim(leaf []byte, proof [][]byte, c *Commitment) (*FraudEvent, error) {
	return decideFraudClaim(VerifyInclusion, leaf, proof, c)
}

func decideFraudClaim(
	verify func(leaf []byte, proof [][]byte, root []byte) bool,
	leaf []byte,
	proof [][]byte,
	c *Commitment,
) (*FraudEvent, error) {
	if verify(leaf, proof, c.Root) {
		return nil, fmt.Errorf("%w: leaf is included in batch %d", ErrInvalidFraudProofClaim, c.BatchNumber)
	}
	return &FraudEvent{
		Validator:   c.Validator,
		Root:        cloneBytes(c.Root),
		BatchNumber: c.BatchNumber,
		Tmstmp:      c.Tmstmp,
	}, nil
}
