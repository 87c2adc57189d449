// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rollupvm

import (
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/prefixdb"
	"github.com/ava-labs/avalanchego/database/versiondb"
)

var (
	// These are prefixes for db keys.
	// It's important to set different prefixes for each separate database objects.
	singletonStatePrefix  = []byte("singleton")
	commitmentStatePrefix = []byte("commitment")

	_ State = &state{}
)

// State is a wrapper around InitializedState and CommitmentState
// State also exposes a few methods needed for managing database commits and close.
type State interface {
	InitializedState
	CommitmentState

	Commit() error
	Abort()
	Close() error
}

type state struct {
	InitializedState
	CommitmentState

	baseDB *versiondb.Database
}

func NewState(db database.Database) (State, error) {
	// create a new baseDB
	baseDB := versiondb.New(db)

	// create a prefixed "singletonDB" from baseDB
	singletonDB := prefixdb.New(singletonStatePrefix, baseDB)
	// create a prefixed "commitmentDB" from baseDB
	commitmentDB := prefixdb.New(commitmentStatePrefix, baseDB)

	commitmentState, err := NewCommitmentState(commitmentDB)
	if err != nil {
		return nil, err
	}

	// return state with created sub state components
	return &state{
		InitializedState: NewInitializedState(singletonDB),
		CommitmentState:  commitmentState,
		baseDB:           baseDB,
	}, nil
}

// Commit commits pending operations to baseDB
func (s *state) Commit() error {
	return s.baseDB.Commit()
}

// Abort drops pending operations and any commitments cached while they were
// pending
func (s *state) Abort() {
	s.baseDB.Abort()
	s.ClearCache()
}

// Close closes the underlying base database
func (s *state) Close() error {
	return s.baseDB.Close()
}
