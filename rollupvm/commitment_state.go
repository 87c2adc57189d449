// (c) 2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rollupvm

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"github.com/ava-labs/avalanchego/database"
)

const (
	commitmentCacheSize = 8192
)

var (
	errCommitmentWrongVersion = errors.New("wrong version")
	errCommitmentExists       = errors.New("commitment already exists")

	_ CommitmentState = &commitmentState{}
)

// CommitmentState stores commitments keyed by batch number.
// A batch number can be written at most once.
type CommitmentState interface {
	GetCommitment(batchNumber uint64) (*Commitment, error)
	HasCommitment(batchNumber uint64) (bool, error)
	PutCommitment(c *Commitment) error

	ClearCache()
}

type commitmentState struct {
	cache        *lru.Cache
	commitmentDB database.Database
}

func NewCommitmentState(db database.Database) (CommitmentState, error) {
	cache, err := lru.New(commitmentCacheSize)
	if err != nil {
		return nil, err
	}
	return &commitmentState{
		cache:        cache,
		commitmentDB: db,
	}, nil
}

func (s *commitmentState) GetCommitment(batchNumber uint64) (*Commitment, error) {
	if c, ok := s.cache.Get(batchNumber); ok {
		return c.(*Commitment).clone(), nil
	}

	bytes, err := s.commitmentDB.Get(BatchKey(batchNumber))
	if err != nil {
		return nil, err
	}

	c := &Commitment{}
	parsedVersion, err := Codec.Unmarshal(bytes, c)
	if err != nil {
		return nil, fmt.Errorf("failed to parse commitment %d from disk: %w", batchNumber, err)
	}

	if parsedVersion != CodecVersion {
		return nil, errCommitmentWrongVersion
	}

	s.cache.Add(batchNumber, c)
	return c.clone(), nil
}

func (s *commitmentState) HasCommitment(batchNumber uint64) (bool, error) {
	if s.cache.Contains(batchNumber) {
		return true, nil
	}
	return s.commitmentDB.Has(BatchKey(batchNumber))
}

// PutCommitment writes [c] unless its batch number is already taken.
// Callers must serialize calls for the guarantee to hold.
func (s *commitmentState) PutCommitment(c *Commitment) error {
	exists, err := s.HasCommitment(c.BatchNumber)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: batch %d", errCommitmentExists, c.BatchNumber)
	}

	bytes, err := Codec.Marshal(CodecVersion, c)
	if err != nil {
		return err
	}

	if err := s.commitmentDB.Put(BatchKey(c.BatchNumber), bytes); err != nil {
		return err
	}
	s.cache.Add(c.BatchNumber, c.clone())
	return nil
}

func (s *commitmentState) ClearCache() {
	s.cache.Purge()
}
