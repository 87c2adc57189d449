// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rollupvm

import (
	"bytes"

	"github.com/ava-labs/avalanchego/utils/hashing"
)

// ComputeRoot folds [proof] into [leaf] and returns the resulting root.
// Each step hashes the current node and the next sibling, with the
// lexicographically smaller of the two first, so the order a sibling was
// stored in by the tree builder does not matter.
func ComputeRoot(leaf []byte, proof [][]byte) []byte {
	node := leaf
	for _, sibling := range proof {
		node = hashPair(node, sibling)
	}
	return node
}

// VerifyInclusion returns true iff [leaf] and [proof] hash up to exactly [root].
func VerifyInclusion(leaf []byte, proof [][]byte, root []byte) bool {
	return bytes.Equal(ComputeRoot(leaf, proof), root)
}

func hashPair(a, b []byte) []byte {
	if bytes.Compare(a, b) > 0 {
		a, b = b, a
	}
	combined := make([]byte, 0, len(a)+len(b))
	combined = append(combined, a...)
	combined = append(combined, b...)
	return hashing.ComputeHash256(combined)
}
