// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rollupvm

import (
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"
)

const (
	IsInitializedKey byte = iota
	LastAcceptedKey
)

var (
	isInitializedKey                  = []byte{IsInitializedKey}
	lastAcceptedKey                   = []byte{LastAcceptedKey}
	_                InitializedState = (*initializedState)(nil)
)

// InitializedState is a thin wrapper around a database to provide, caching,
// serialization, and de-serialization of the initialization status and of
// the last accepted batch number.
type InitializedState interface {
	IsInitialized() (bool, error)
	SetInitialized() error

	// GetLastAccepted returns the latest batch number and whether any batch
	// was accepted yet.
	GetLastAccepted() (uint64, bool, error)
	SetLastAccepted(batchNumber uint64) error
}

type initializedState struct {
	singletonDB database.Database
}

func NewInitializedState(db database.Database) InitializedState {
	return &initializedState{
		singletonDB: db,
	}
}

func (s *initializedState) IsInitialized() (bool, error) {
	return s.singletonDB.Has(isInitializedKey)
}

func (s *initializedState) SetInitialized() error {
	return s.singletonDB.Put(isInitializedKey, nil)
}

func (s *initializedState) GetLastAccepted() (uint64, bool, error) {
	key, err := s.singletonDB.Get(lastAcceptedKey)
	if errors.Is(err, database.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get last accepted batch: %w", err)
	}
	batchNumber, err := ParseBatchKey(key)
	if err != nil {
		return 0, false, fmt.Errorf("failed to parse last accepted batch from disk: %w", err)
	}
	return batchNumber, true, nil
}

func (s *initializedState) SetLastAccepted(batchNumber uint64) error {
	return s.singletonDB.Put(lastAcceptedKey, BatchKey(batchNumber))
}
