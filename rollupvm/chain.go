// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rollupvm

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/timer/mockable"
	"github.com/ava-labs/avalanchego/version"
)

const (
	Name = "rollupvm"
)

var (
	Version = &version.Semantic{
		Major: 1,
		Minor: 0,
		Patch: 0,
	}

	// ErrNoCommitments is returned when the latest commitment is requested
	// before batch 0 was submitted
	ErrNoCommitments = errors.New("no commitment has been accepted")
)

// Chain is an append-only sequence of commitments, one per batch, together
// with the fraud proof checks run against them.
//
// Appends are serialized by the chain, so a batch number is committed at
// most once however many submitters race for it. Fraud proofs never modify
// the chain.
type Chain struct {
	config Config
	log    log.Logger

	// Clock used to timestamp commitments and to evaluate dispute windows
	clock mockable.Clock

	// lock guards [state]. Appends hold it for writing.
	lock  sync.RWMutex
	state State

	verifier      *Verifier
	disputeWindow DisputeWindow
	publisher     FraudPublisher
	metrics       *metrics
}

// Initialize this chain
// [db] is where commitments are persisted
// [publisher] receives substantiated fraud claims. If nil, they are logged.
// [reg] is where the chain's metrics are registered
func (c *Chain) Initialize(
	_ context.Context,
	db database.Database,
	config Config,
	publisher FraudPublisher,
	reg prometheus.Registerer,
) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	c.config = config
	c.log = log.New("chain", Name)
	c.log.Info("Initializing rollup chain", "Version", Version)

	state, err := NewState(db)
	if err != nil {
		return fmt.Errorf("failed to create state: %w", err)
	}
	c.state = state

	c.verifier, err = NewVerifier(config.VerifierCacheSize)
	if err != nil {
		return fmt.Errorf("failed to create verifier: %w", err)
	}
	if config.DisputePeriod > 0 {
		c.disputeWindow = FixedDisputeWindow(config.DisputePeriod)
	}

	if publisher == nil {
		publisher = &LogPublisher{Log: c.log}
	}
	c.publisher = publisher

	c.metrics, err = newMetrics(reg)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	initialized, err := c.state.IsInitialized()
	if err != nil {
		return fmt.Errorf("failed to read initialization status: %w", err)
	}
	if initialized {
		if batchNumber, ok, err := c.state.GetLastAccepted(); err != nil {
			return err
		} else if ok {
			c.metrics.lastAcceptedBatch.Set(float64(batchNumber))
			c.log.Info("Resuming rollup chain", "lastAccepted", batchNumber)
		}
		return nil
	}

	if err := c.state.SetInitialized(); err != nil {
		return fmt.Errorf("error while setting db to initialized: %w", err)
	}
	if err := c.state.Commit(); err != nil {
		c.log.Error("error while committing db", "err", err)
		return err
	}
	return nil
}

// SetDisputeWindow replaces the policy deciding whether a commitment may
// still be disputed. A nil [window] accepts disputes at any time.
func (c *Chain) SetDisputeWindow(window DisputeWindow) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.disputeWindow = window
}

// SubmitCommitment appends the commitment of [root] for [batchNumber], made
// by [submitter], to the chain.
// [batchNumber] must be 0 on an empty chain, and follow the last accepted
// batch otherwise. Nothing is written if an error is returned.
func (c *Chain) SubmitCommitment(
	_ context.Context,
	batchNumber uint64,
	root []byte,
	submitter ids.ShortID,
) (*Commitment, error) {
	c.lock.Lock()
	defer c.lock.Unlock()

	commitment, err := c.appendCommitment(batchNumber, root, submitter)
	if err != nil {
		c.metrics.commitmentsRejected.Inc()
		c.log.Debug("refused state commitment",
			"batchNumber", batchNumber,
			"validator", submitter,
			"err", err,
		)
		return nil, err
	}

	c.metrics.commitmentsAccepted.Inc()
	c.metrics.lastAcceptedBatch.Set(float64(batchNumber))
	c.log.Info("state commitment submitted",
		"batchNumber", commitment.BatchNumber,
		"root", hex.EncodeToString(commitment.Root),
		"validator", commitment.Validator,
	)
	return commitment.clone(), nil
}

// appendCommitment assumes [c.lock] is held for writing
func (c *Chain) appendCommitment(batchNumber uint64, root []byte, submitter ids.ShortID) (*Commitment, error) {
	predecessor, err := c.lastAccepted()
	if err != nil && !errors.Is(err, ErrNoCommitments) {
		return nil, err
	}

	commitment, err := AppendCommitment(predecessor, batchNumber, root, submitter, c.clock.Time())
	if err != nil {
		return nil, err
	}

	if err := c.state.PutCommitment(commitment); err != nil {
		c.state.Abort()
		if errors.Is(err, errCommitmentExists) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidBatchNumber, err)
		}
		return nil, fmt.Errorf("failed to put commitment %d: %w", batchNumber, err)
	}

	if err := c.state.SetLastAccepted(batchNumber); err != nil {
		c.state.Abort()
		return nil, fmt.Errorf("failed to update last accepted batch to %d: %w", batchNumber, err)
	}

	if err := c.state.Commit(); err != nil {
		c.state.Abort()
		return nil, fmt.Errorf("failed to commit database accepting batch %d: %w", batchNumber, err)
	}
	return commitment, nil
}

// GetCommitment returns the commitment of [batchNumber]
func (c *Chain) GetCommitment(_ context.Context, batchNumber uint64) (*Commitment, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.getCommitment(batchNumber)
}

func (c *Chain) getCommitment(batchNumber uint64) (*Commitment, error) {
	commitment, err := c.state.GetCommitment(batchNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get commitment %d: %w", batchNumber, err)
	}
	return commitment, nil
}

// LastAccepted returns the latest commitment, or ErrNoCommitments
func (c *Chain) LastAccepted(_ context.Context) (*Commitment, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.lastAccepted()
}

func (c *Chain) lastAccepted() (*Commitment, error) {
	batchNumber, ok, err := c.state.GetLastAccepted()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoCommitments
	}
	return c.getCommitment(batchNumber)
}

// ProcessFraudProof decides a claim that the commitment of [batchNumber] is
// fraudulent, backed by [leaf] and its inclusion [proof].
//
// A substantiated claim is published and returned. A claim against a
// correct state transition returns ErrInvalidFraudProofClaim. The chain is
// never modified.
func (c *Chain) ProcessFraudProof(
	_ context.Context,
	batchNumber uint64,
	leaf []byte,
	proof [][]byte,
) (*FraudEvent, error) {
	c.lock.RLock()
	commitment, err := c.getCommitment(batchNumber)
	window := c.disputeWindow
	c.lock.RUnlock()
	if err != nil {
		return nil, err
	}

	if window != nil {
		if err := window(commitment, c.clock.Time()); err != nil {
			c.metrics.fraudClaimsRejected.Inc()
			return nil, err
		}
	}

	event, err := decideFraudClaim(c.verifier.VerifyInclusion, leaf, proof, commitment)
	if err != nil {
		c.metrics.fraudClaimsRejected.Inc()
		c.log.Info("fraud proof is invalid, the state transition was correct",
			"batchNumber", batchNumber,
		)
		return nil, err
	}

	c.metrics.fraudClaimsAccepted.Inc()
	c.publisher.Publish(event)
	return event, nil
}

// Shutdown closes the chain's database
func (c *Chain) Shutdown(_ context.Context) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.state == nil {
		return nil
	}
	return c.state.Close()
}
