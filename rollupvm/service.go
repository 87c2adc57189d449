// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rollupvm

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/formatting"
	"github.com/ava-labs/avalanchego/utils/json"
)

var errNoSuchCommitment = errors.New("couldn't get commitment from database. Does it exist?")

// Service is the API service for this chain
type Service struct{ chain *Chain }

// SubmitCommitmentArgs are the arguments to SubmitCommitment
type SubmitCommitmentArgs struct {
	BatchNumber json.Uint64 `json:"batchNumber"`
	Root        string      `json:"root"` // hex-encoded
	Validator   ids.ShortID `json:"validator"`
}

// CommitmentReply describes a commitment
type CommitmentReply struct {
	BatchNumber   json.Uint64 `json:"batchNumber"`
	Root          string      `json:"root"`          // hex-encoded
	PreviousRoots []string    `json:"previousRoots"` // hex-encoded, oldest first
	Validator     ids.ShortID `json:"validator"`
	Timestamp     json.Uint64 `json:"timestamp"`
	Finalized     bool        `json:"finalized"`
}

// SubmitCommitment appends a commitment of [args.Root] for [args.BatchNumber]
func (s *Service) SubmitCommitment(r *http.Request, args *SubmitCommitmentArgs, reply *CommitmentReply) error {
	root, err := formatting.Decode(formatting.Hex, args.Root)
	if err != nil {
		return fmt.Errorf("problem parsing root: %w", err)
	}

	commitment, err := s.chain.SubmitCommitment(r.Context(), uint64(args.BatchNumber), root, args.Validator)
	if err != nil {
		return err
	}
	return fillCommitmentReply(commitment, reply)
}

// GetCommitmentArgs are the arguments to GetCommitment
type GetCommitmentArgs struct {
	// Batch of the commitment we're getting.
	// If left blank, gets the latest commitment
	BatchNumber *json.Uint64 `json:"batchNumber"`
}

// GetCommitment gets the commitment of [args.BatchNumber]
func (s *Service) GetCommitment(r *http.Request, args *GetCommitmentArgs, reply *CommitmentReply) error {
	var (
		commitment *Commitment
		err        error
	)
	if args.BatchNumber == nil {
		commitment, err = s.chain.LastAccepted(r.Context())
		if err != nil {
			return err
		}
	} else {
		commitment, err = s.chain.GetCommitment(r.Context(), uint64(*args.BatchNumber))
		if err != nil {
			return errNoSuchCommitment
		}
	}
	return fillCommitmentReply(commitment, reply)
}

// SubmitFraudProofArgs are the arguments to SubmitFraudProof
type SubmitFraudProofArgs struct {
	BatchNumber json.Uint64 `json:"batchNumber"`
	Leaf        string      `json:"leaf"`  // hex-encoded
	Proof       []string    `json:"proof"` // hex-encoded siblings, leaf first
}

// FraudEventReply describes a substantiated fraud claim
type FraudEventReply struct {
	Validator   ids.ShortID `json:"validator"`
	Root        string      `json:"root"` // hex-encoded
	BatchNumber json.Uint64 `json:"batchNumber"`
	Timestamp   json.Uint64 `json:"timestamp"`
}

// SubmitFraudProof disputes the commitment of [args.BatchNumber].
// It errors with ErrInvalidFraudProofClaim if [args.Leaf] is included under
// the committed root.
func (s *Service) SubmitFraudProof(r *http.Request, args *SubmitFraudProofArgs, reply *FraudEventReply) error {
	leaf, proof, err := decodeProof(args.Leaf, args.Proof)
	if err != nil {
		return err
	}

	event, err := s.chain.ProcessFraudProof(r.Context(), uint64(args.BatchNumber), leaf, proof)
	if err != nil {
		return err
	}

	reply.Validator = event.Validator
	reply.BatchNumber = json.Uint64(event.BatchNumber)
	reply.Timestamp = json.Uint64(event.Tmstmp)
	reply.Root, err = formatting.Encode(formatting.Hex, event.Root)
	return err
}

func fillCommitmentReply(c *Commitment, reply *CommitmentReply) error {
	root, err := formatting.Encode(formatting.Hex, c.Root)
	if err != nil {
		return err
	}
	previousRoots := make([]string, len(c.PreviousRoots))
	for i, previousRoot := range c.PreviousRoots {
		previousRoots[i], err = formatting.Encode(formatting.Hex, previousRoot)
		if err != nil {
			return err
		}
	}

	reply.BatchNumber = json.Uint64(c.BatchNumber)
	reply.Root = root
	reply.PreviousRoots = previousRoots
	reply.Validator = c.Validator
	reply.Timestamp = json.Uint64(c.Tmstmp)
	reply.Finalized = c.Finalized
	return nil
}

func decodeProof(encodedLeaf string, encodedProof []string) ([]byte, [][]byte, error) {
	leaf, err := formatting.Decode(formatting.Hex, encodedLeaf)
	if err != nil {
		return nil, nil, fmt.Errorf("problem parsing leaf: %w", err)
	}
	proof := make([][]byte, len(encodedProof))
	for i, sibling := range encodedProof {
		proof[i], err = formatting.Decode(formatting.Hex, sibling)
		if err != nil {
			return nil, nil, fmt.Errorf("problem parsing proof element %d: %w", i, err)
		}
	}
	return leaf, proof, nil
}
