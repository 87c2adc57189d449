// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rollupvm

import (
	"encoding/hex"

	log "github.com/inconshreveable/log15"
)

var (
	_ FraudPublisher = (*LogPublisher)(nil)
	_ FraudPublisher = PublisherFunc(nil)
	_ FraudPublisher = Publishers(nil)
)

// FraudPublisher hands substantiated fraud claims to whatever reports on or
// penalizes them.
type FraudPublisher interface {
	Publish(event *FraudEvent)
}

// PublisherFunc adapts a function to a FraudPublisher
type PublisherFunc func(event *FraudEvent)

func (f PublisherFunc) Publish(event *FraudEvent) { f(event) }

// Publishers publishes every event to each of its members, in order
type Publishers []FraudPublisher

func (ps Publishers) Publish(event *FraudEvent) {
	for _, p := range ps {
		p.Publish(event)
	}
}

// LogPublisher writes fraud events to a logger
type LogPublisher struct {
	Log log.Logger
}

func (p *LogPublisher) Publish(event *FraudEvent) {
	p.Log.Warn("fraud proof validated: state transition was incorrect",
		"batchNumber", event.BatchNumber,
		"root", hex.EncodeToString(event.Root),
		"validator", event.Validator,
		"timestamp", event.Timestamp(),
	)
}
