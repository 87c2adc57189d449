package client

import (
	"context"

	"github.com/ava-labs/avalanchego/utils/formatting"
	"github.com/ava-labs/avalanchego/utils/rpc"

	"github.com/ava-labs/rollupvm/rollupvm"
)

// StaticClient defines the stateless rollupvm proof operations.
type StaticClient interface {
	// ComputeRoot returns the root [leaf] and [proof] hash up to
	ComputeRoot(ctx context.Context, leaf []byte, proof [][]byte) ([]byte, error)

	// VerifyInclusion returns whether [leaf] is included under [root]
	VerifyInclusion(ctx context.Context, leaf []byte, proof [][]byte, root []byte) (bool, error)
}

// NewStatic creates a new static client object.
func NewStatic(uri string) StaticClient {
	req := rpc.NewEndpointRequester(uri)
	return &staticClient{req: req}
}

type staticClient struct {
	req rpc.EndpointRequester
}

func (cli *staticClient) ComputeRoot(ctx context.Context, leaf []byte, proof [][]byte) ([]byte, error) {
	encodedLeaf, encodedProof, err := encodeProof(leaf, proof)
	if err != nil {
		return nil, err
	}

	resp := new(rollupvm.ComputeRootReply)
	err = cli.req.SendRequest(ctx,
		"rollup.computeRoot",
		&rollupvm.ProofArgs{Leaf: encodedLeaf, Proof: encodedProof},
		resp,
	)
	if err != nil {
		return nil, err
	}
	return formatting.Decode(formatting.Hex, resp.Root)
}

func (cli *staticClient) VerifyInclusion(ctx context.Context, leaf []byte, proof [][]byte, root []byte) (bool, error) {
	encodedLeaf, encodedProof, err := encodeProof(leaf, proof)
	if err != nil {
		return false, err
	}
	encodedRoot, err := formatting.Encode(formatting.Hex, root)
	if err != nil {
		return false, err
	}

	resp := new(rollupvm.VerifyInclusionReply)
	err = cli.req.SendRequest(ctx,
		"rollup.verifyInclusion",
		&rollupvm.VerifyInclusionArgs{
			ProofArgs: rollupvm.ProofArgs{Leaf: encodedLeaf, Proof: encodedProof},
			Root:      encodedRoot,
		},
		resp,
	)
	if err != nil {
		return false, err
	}
	return resp.Included, nil
}
