// (c) 2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rollupvm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifierMatchesVerifyInclusion(t *testing.T) {
	leaves := testLeaves(7)
	root, proofs := buildTree(leaves)

	for _, cacheSize := range []int{0, 1, 16} {
		verifier, err := NewVerifier(cacheSize)
		require.NoError(t, err)

		// Twice, so the second pass is answered from the cache
		for pass := 0; pass < 2; pass++ {
			for i, leaf := range leaves {
				require.True(t, verifier.VerifyInclusion(leaf, proofs[i], root))
				require.False(t, verifier.VerifyInclusion(leaf, proofs[(i+1)%len(proofs)], root))
			}
		}
	}
}

func TestVerifierDisabledCache(t *testing.T) {
	verifier, err := NewVerifier(0)
	require.NoError(t, err)
	require.Nil(t, verifier.results)
}

func TestProofKeyIsUnambiguous(t *testing.T) {
	require := require.New(t)

	key1, ok := proofKey([]byte("ab"), [][]byte{[]byte("c")}, []byte("d"))
	require.True(ok)
	key2, ok := proofKey([]byte("a"), [][]byte{[]byte("bc")}, []byte("d"))
	require.True(ok)
	key3, ok := proofKey([]byte("a"), [][]byte{[]byte("b"), []byte("c")}, []byte("d"))
	require.True(ok)
	key4, ok := proofKey([]byte("ab"), [][]byte{[]byte("c")}, []byte("d"))
	require.True(ok)

	require.NotEqual(key1, key2)
	require.NotEqual(key1, key3)
	require.NotEqual(key2, key3)
	require.Equal(key1, key4)
}
