// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rollupvm

import (
	"fmt"
	"math"
	"time"

	"github.com/ava-labs/avalanchego/ids"
)

const (
	// MaxRootLen is the maximum length of a committed state root
	MaxRootLen = 32

	// MaxPreviousRoots is the number of prior roots a commitment retains
	MaxPreviousRoots = 5
)

// Commitment is the record of a single batch on the chain.
// Each commitment contains:
// 1) The batch number, starting at 0
// 2) The Merkle root of the batch's state
// 3) Up to [MaxPreviousRoots] roots of the preceding batches, oldest first
// 4) The validator that submitted it and when
type Commitment struct {
	BatchNumber   uint64      `serialize:"true" json:"batchNumber"`
	Root          []byte      `serialize:"true" json:"root"`
	PreviousRoots [][]byte    `serialize:"true" json:"previousRoots"`
	Validator     ids.ShortID `serialize:"true" json:"validator"`
	Tmstmp        int64       `serialize:"true" json:"timestamp"`

	// Finalized is owned by an external finalization policy and is never
	// set by this package.
	Finalized bool `serialize:"true" json:"finalized"`
}

// Timestamp returns the time this commitment was submitted at
func (c *Commitment) Timestamp() time.Time { return time.Unix(c.Tmstmp, 0) }

// clone returns a deep copy of [c]
func (c *Commitment) clone() *Commitment {
	cpy := *c
	cpy.Root = cloneBytes(c.Root)
	cpy.PreviousRoots = cloneRoots(c.PreviousRoots)
	return &cpy
}

// AppendCommitment returns the commitment for [batchNumber] that follows
// [predecessor]. [predecessor] must be nil iff [batchNumber] is 0.
//
// Persisting the result is up to the caller, who must also guarantee that a
// given batch number is stored at most once.
func AppendCommitment(
	predecessor *Commitment,
	batchNumber uint64,
	root []byte,
	submitter ids.ShortID,
	now time.Time,
) (*Commitment, error) {
	if err := verifyRoot(root); err != nil {
		return nil, err
	}

	var previousRoots [][]byte
	if predecessor == nil {
		// This is the first batch, it must be batch 0
		if batchNumber != 0 {
			return nil, fmt.Errorf("%w: expected 0 for the first batch, but found %d", ErrInvalidBatchNumber, batchNumber)
		}
		previousRoots = [][]byte{}
	} else {
		// Ensure [batchNumber] comes right after its predecessor.
		// A predecessor at MaxUint64 has no successor.
		if predecessor.BatchNumber == math.MaxUint64 {
			return nil, fmt.Errorf("%w: predecessor %d has no successor", ErrInvalidBatchNumber, predecessor.BatchNumber)
		}
		if expected := predecessor.BatchNumber + 1; expected != batchNumber {
			return nil, fmt.Errorf("%w: expected %d, but found %d", ErrInvalidBatchNumber, expected, batchNumber)
		}
		previousRoots = nextPreviousRoots(predecessor)
	}

	return &Commitment{
		BatchNumber:   batchNumber,
		Root:          cloneBytes(root),
		PreviousRoots: previousRoots,
		Validator:     submitter,
		Tmstmp:        now.Unix(),
		Finalized:     false,
	}, nil
}

// nextPreviousRoots appends [predecessor]'s root to its own history and drops
// the oldest entries beyond [MaxPreviousRoots].
func nextPreviousRoots(predecessor *Commitment) [][]byte {
	roots := make([][]byte, 0, len(predecessor.PreviousRoots)+1)
	roots = append(roots, cloneRoots(predecessor.PreviousRoots)...)
	roots = append(roots, cloneBytes(predecessor.Root))
	if excess := len(roots) - MaxPreviousRoots; excess > 0 {
		roots = roots[excess:]
	}
	return roots
}

func verifyRoot(root []byte) error {
	switch {
	case len(root) == 0:
		return fmt.Errorf("%w: root is empty", ErrInvalidRoot)
	case len(root) > MaxRootLen:
		return fmt.Errorf("%w: root has length %d, max is %d", ErrInvalidRoot, len(root), MaxRootLen)
	default:
		return nil
	}
}
