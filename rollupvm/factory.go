// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rollupvm

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/avalanchego/database"
)

// Factory builds initialized chains sharing a configuration
type Factory struct {
	Config     Config
	Publisher  FraudPublisher
	Registerer prometheus.Registerer
}

// New returns a Chain persisted in [db]
func (f *Factory) New(ctx context.Context, db database.Database) (*Chain, error) {
	reg := f.Registerer
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	chain := &Chain{}
	if err := chain.Initialize(ctx, db, f.Config, f.Publisher, reg); err != nil {
		return nil, err
	}
	return chain, nil
}
