package client

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/formatting"
	"github.com/ava-labs/avalanchego/utils/json"
	"github.com/ava-labs/avalanchego/utils/rpc"

	"github.com/ava-labs/rollupvm/rollupvm"
)

// Client defines rollupvm client operations.
type Client interface {
	// SubmitCommitment commits [root] as the state of batch [batchNumber]
	SubmitCommitment(ctx context.Context, batchNumber uint64, root []byte, validator ids.ShortID) (*rollupvm.Commitment, error)

	// GetCommitment fetches the commitment of [batchNumber]
	GetCommitment(ctx context.Context, batchNumber uint64) (*rollupvm.Commitment, error)

	// LastAccepted fetches the latest commitment
	LastAccepted(ctx context.Context) (*rollupvm.Commitment, error)

	// SubmitFraudProof disputes the commitment of [batchNumber].
	// Fetches the resulting event if the claim is substantiated.
	SubmitFraudProof(ctx context.Context, batchNumber uint64, leaf []byte, proof [][]byte) (*rollupvm.FraudEvent, error)
}

// New creates a new client object.
func New(uri string) Client {
	req := rpc.NewEndpointRequester(uri)
	return &client{req: req}
}

type client struct {
	req rpc.EndpointRequester
}

func (cli *client) SubmitCommitment(ctx context.Context, batchNumber uint64, root []byte, validator ids.ShortID) (*rollupvm.Commitment, error) {
	encodedRoot, err := formatting.Encode(formatting.Hex, root)
	if err != nil {
		return nil, err
	}

	resp := new(rollupvm.CommitmentReply)
	err = cli.req.SendRequest(ctx,
		"rollup.submitCommitment",
		&rollupvm.SubmitCommitmentArgs{
			BatchNumber: json.Uint64(batchNumber),
			Root:        encodedRoot,
			Validator:   validator,
		},
		resp,
	)
	if err != nil {
		return nil, err
	}
	return parseCommitmentReply(resp)
}

func (cli *client) GetCommitment(ctx context.Context, batchNumber uint64) (*rollupvm.Commitment, error) {
	n := json.Uint64(batchNumber)
	return cli.getCommitment(ctx, &n)
}

func (cli *client) LastAccepted(ctx context.Context) (*rollupvm.Commitment, error) {
	return cli.getCommitment(ctx, nil)
}

func (cli *client) getCommitment(ctx context.Context, batchNumber *json.Uint64) (*rollupvm.Commitment, error) {
	resp := new(rollupvm.CommitmentReply)
	err := cli.req.SendRequest(ctx,
		"rollup.getCommitment",
		&rollupvm.GetCommitmentArgs{BatchNumber: batchNumber},
		resp,
	)
	if err != nil {
		return nil, err
	}
	return parseCommitmentReply(resp)
}

func (cli *client) SubmitFraudProof(ctx context.Context, batchNumber uint64, leaf []byte, proof [][]byte) (*rollupvm.FraudEvent, error) {
	encodedLeaf, encodedProof, err := encodeProof(leaf, proof)
	if err != nil {
		return nil, err
	}

	resp := new(rollupvm.FraudEventReply)
	err = cli.req.SendRequest(ctx,
		"rollup.submitFraudProof",
		&rollupvm.SubmitFraudProofArgs{
			BatchNumber: json.Uint64(batchNumber),
			Leaf:        encodedLeaf,
			Proof:       encodedProof,
		},
		resp,
	)
	if err != nil {
		return nil, err
	}

	root, err := formatting.Decode(formatting.Hex, resp.Root)
	if err != nil {
		return nil, err
	}
	return &rollupvm.FraudEvent{
		Validator:   resp.Validator,
		Root:        root,
		BatchNumber: uint64(resp.BatchNumber),
		Tmstmp:      int64(resp.Timestamp),
	}, nil
}

func parseCommitmentReply(resp *rollupvm.CommitmentReply) (*rollupvm.Commitment, error) {
	root, err := formatting.Decode(formatting.Hex, resp.Root)
	if err != nil {
		return nil, err
	}
	previousRoots := make([][]byte, len(resp.PreviousRoots))
	for i, previousRoot := range resp.PreviousRoots {
		previousRoots[i], err = formatting.Decode(formatting.Hex, previousRoot)
		if err != nil {
			return nil, err
		}
	}
	return &rollupvm.Commitment{
		BatchNumber:   uint64(resp.BatchNumber),
		Root:          root,
		PreviousRoots: previousRoots,
		Validator:     resp.Validator,
		Tmstmp:        int64(resp.Timestamp),
		Finalized:     resp.Finalized,
	}, nil
}

func encodeProof(leaf []byte, proof [][]byte) (string, []string, error) {
	encodedLeaf, err := formatting.Encode(formatting.Hex, leaf)
	if err != nil {
		return "", nil, err
	}
	encodedProof := make([]string, len(proof))
	for i, sibling := range proof {
		encodedProof[i], err = formatting.Encode(formatting.Hex, sibling)
		if err != nil {
			return "", nil, err
		}
	}
	return encodedLeaf, encodedProof, nil
}
