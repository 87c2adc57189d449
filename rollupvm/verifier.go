// (c) 2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rollupvm

import (
	lru "github.com/hashicorp/golang-lru"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/ava-labs/avalanchego/utils/wrappers"
)

// Verifier checks inclusion proofs and remembers the outcome of recent
// checks. It is safe for concurrent use.
type Verifier struct {
	// nil when caching is disabled
	results *lru.Cache
}

// NewVerifier returns a Verifier caching up to [cacheSize] results.
// A [cacheSize] of 0 disables caching.
func NewVerifier(cacheSize int) (*Verifier, error) {
	if cacheSize <= 0 {
		return &Verifier{}, nil
	}
	results, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Verifier{results: results}, nil
}

// VerifyInclusion is a caching equivalent of the package level VerifyInclusion.
func (v *Verifier) VerifyInclusion(leaf []byte, proof [][]byte, root []byte) bool {
	if v.results == nil {
		return VerifyInclusion(leaf, proof, root)
	}

	key, ok := proofKey(leaf, proof, root)
	if !ok {
		return VerifyInclusion(leaf, proof, root)
	}
	if included, ok := v.results.Get(key); ok {
		return included.(bool)
	}

	included := VerifyInclusion(leaf, proof, root)
	v.results.Add(key, included)
	return included
}

// proofKey returns a digest uniquely identifying ([leaf], [proof], [root]).
// Every element is length prefixed, so distinct inputs never share an
// encoding.
func proofKey(leaf []byte, proof [][]byte, root []byte) (ids.ID, bool) {
	size := wrappers.IntLen*(len(proof)+3) + len(leaf) + len(root)
	for _, sibling := range proof {
		size += len(sibling)
	}

	p := wrappers.Packer{
		Bytes:   make([]byte, 0, size),
		MaxSize: size,
	}
	p.PackBytes(leaf)
	p.PackInt(uint32(len(proof)))
	for _, sibling := range proof {
		p.PackBytes(sibling)
	}
	p.PackBytes(root)
	if p.Errored() {
		return ids.Empty, false
	}
	return hashing.ComputeHash256Array(p.Bytes), true
}
