// (c) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rollupvm

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/utils/formatting"
	"github.com/ava-labs/avalanchego/utils/json"
)

func encodeHex(t *testing.T, b []byte) string {
	s, err := formatting.Encode(formatting.Hex, b)
	require.NoError(t, err)
	return s
}

func encodeHexes(t *testing.T, bs [][]byte) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = encodeHex(t, b)
	}
	return out
}

func TestService(t *testing.T) {
	require := require.New(t)

	chain, recorder := newTestChain(t, memdb.New(), DefaultConfig())
	service := &Service{chain: chain}
	req := httptest.NewRequest(http.MethodPost, "/", nil)

	// nothing to get yet
	require.ErrorIs(service.GetCommitment(req, &GetCommitmentArgs{}, &CommitmentReply{}), ErrNoCommitments)

	leaves := testLeaves(3)
	root, proofs := buildTree(leaves)

	reply := CommitmentReply{}
	require.NoError(service.SubmitCommitment(req, &SubmitCommitmentArgs{
		BatchNumber: 0,
		Root:        encodeHex(t, testRoot(1)),
		Validator:   testValidator,
	}, &reply))
	require.Equal(json.Uint64(0), reply.BatchNumber)
	require.Empty(reply.PreviousRoots)

	reply = CommitmentReply{}
	require.NoError(service.SubmitCommitment(req, &SubmitCommitmentArgs{
		BatchNumber: 1,
		Root:        encodeHex(t, root),
		Validator:   testValidator,
	}, &reply))
	require.Equal(encodeHex(t, root), reply.Root)
	require.Equal([]string{encodeHex(t, testRoot(1))}, reply.PreviousRoots)

	err := service.SubmitCommitment(req, &SubmitCommitmentArgs{
		BatchNumber: 5,
		Root:        encodeHex(t, root),
		Validator:   testValidator,
	}, &CommitmentReply{})
	require.ErrorIs(err, ErrInvalidBatchNumber)

	err = service.SubmitCommitment(req, &SubmitCommitmentArgs{
		BatchNumber: 2,
		Root:        "not hex",
	}, &CommitmentReply{})
	require.Error(err)

	// latest
	latest := CommitmentReply{}
	require.NoError(service.GetCommitment(req, &GetCommitmentArgs{}, &latest))
	require.Equal(json.Uint64(1), latest.BatchNumber)
	require.Equal(testValidator, latest.Validator)
	require.Equal(json.Uint64(chain.clock.Time().Unix()), latest.Timestamp)

	// by batch number
	batch0 := json.Uint64(0)
	first := CommitmentReply{}
	require.NoError(service.GetCommitment(req, &GetCommitmentArgs{BatchNumber: &batch0}, &first))
	require.Equal(encodeHex(t, testRoot(1)), first.Root)

	missing := json.Uint64(9)
	require.ErrorIs(service.GetCommitment(req, &GetCommitmentArgs{BatchNumber: &missing}, &CommitmentReply{}), errNoSuchCommitment)

	// disputes
	err = service.SubmitFraudProof(req, &SubmitFraudProofArgs{
		BatchNumber: 1,
		Leaf:        encodeHex(t, leaves[2]),
		Proof:       encodeHexes(t, proofs[2]),
	}, &FraudEventReply{})
	require.ErrorIs(err, ErrInvalidFraudProofClaim)

	event := FraudEventReply{}
	require.NoError(service.SubmitFraudProof(req, &SubmitFraudProofArgs{
		BatchNumber: 1,
		Leaf:        encodeHex(t, testRoot(0xcc)),
		Proof:       encodeHexes(t, proofs[2]),
	}, &event))
	require.Equal(json.Uint64(1), event.BatchNumber)
	require.Equal(encodeHex(t, root), event.Root)
	require.Equal(testValidator, event.Validator)
	require.Len(recorder.events, 1)
}

func TestStaticService(t *testing.T) {
	require := require.New(t)

	service := CreateStaticService()
	leaves := testLeaves(5)
	root, proofs := buildTree(leaves)

	computed := ComputeRootReply{}
	require.NoError(service.ComputeRoot(nil, &ProofArgs{
		Leaf:  encodeHex(t, leaves[4]),
		Proof: encodeHexes(t, proofs[4]),
	}, &computed))
	require.Equal(encodeHex(t, root), computed.Root)

	included := VerifyInclusionReply{}
	require.NoError(service.VerifyInclusion(nil, &VerifyInclusionArgs{
		ProofArgs: ProofArgs{
			Leaf:  encodeHex(t, leaves[1]),
			Proof: encodeHexes(t, proofs[1]),
		},
		Root: encodeHex(t, root),
	}, &included))
	require.True(included.Included)

	excluded := VerifyInclusionReply{}
	require.NoError(service.VerifyInclusion(nil, &VerifyInclusionArgs{
		ProofArgs: ProofArgs{
			Leaf:  encodeHex(t, leaves[1]),
			Proof: encodeHexes(t, proofs[2]),
		},
		Root: encodeHex(t, root),
	}, &excluded))
	require.False(excluded.Included)

	require.Error(service.ComputeRoot(nil, &ProofArgs{Leaf: "zz"}, &ComputeRootReply{}))
}
