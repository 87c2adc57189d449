// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rollupvm

import (
	"fmt"
	"net/http"

	"github.com/ava-labs/avalanchego/utils/formatting"
)

// StaticService exposes the stateless proof checks
type StaticService struct{}

// CreateStaticService ...
func CreateStaticService() *StaticService {
	return &StaticService{}
}

// ProofArgs are arguments for ComputeRoot
type ProofArgs struct {
	Leaf  string   `json:"leaf"`  // hex-encoded
	Proof []string `json:"proof"` // hex-encoded siblings, leaf first
}

// ComputeRootReply is the reply from ComputeRoot
type ComputeRootReply struct {
	Root string `json:"root"`
}

// ComputeRoot returns the root [args.Leaf] and [args.Proof] hash up to
func (ss *StaticService) ComputeRoot(_ *http.Request, args *ProofArgs, reply *ComputeRootReply) error {
	leaf, proof, err := decodeProof(args.Leaf, args.Proof)
	if err != nil {
		return err
	}
	reply.Root, err = formatting.Encode(formatting.Hex, ComputeRoot(leaf, proof))
	if err != nil {
		return fmt.Errorf("couldn't encode root as string: %w", err)
	}
	return nil
}

// VerifyInclusionArgs are arguments for VerifyInclusion
type VerifyInclusionArgs struct {
	ProofArgs
	Root string `json:"root"` // hex-encoded
}

// VerifyInclusionReply is the reply from VerifyInclusion
type VerifyInclusionReply struct {
	Included bool `json:"included"`
}

// VerifyInclusion returns whether [args.Leaf] is included under [args.Root]
func (ss *StaticService) VerifyInclusion(_ *http.Request, args *VerifyInclusionArgs, reply *VerifyInclusionReply) error {
	leaf, proof, err := decodeProof(args.Leaf, args.Proof)
	if err != nil {
		return err
	}
	root, err := formatting.Decode(formatting.Hex, args.Root)
	if err != nil {
		return fmt.Errorf("problem parsing root: %w", err)
	}
	reply.Included = VerifyInclusion(leaf, proof, root)
	return nil
}
