// (c) 2021, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rollupvm

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ava-labs/avalanchego/utils/wrappers"
)

const metricsNamespace = "rollupvm"

type metrics struct {
	commitmentsAccepted prometheus.Counter
	commitmentsRejected prometheus.Counter
	fraudClaimsAccepted prometheus.Counter
	fraudClaimsRejected prometheus.Counter
	lastAcceptedBatch   prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		commitmentsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "commitments_accepted",
			Help:      "Number of commitments appended to the chain",
		}),
		commitmentsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "commitments_rejected",
			Help:      "Number of commitment submissions that were refused",
		}),
		fraudClaimsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "fraud_claims_accepted",
			Help:      "Number of fraud claims that were substantiated",
		}),
		fraudClaimsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "fraud_claims_rejected",
			Help:      "Number of fraud claims that were refused",
		}),
		lastAcceptedBatch: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "last_accepted_batch",
			Help:      "Batch number of the latest commitment",
		}),
	}

	errs := wrappers.Errs{}
	errs.Add(
		reg.Register(m.commitmentsAccepted),
		reg.Register(m.commitmentsRejected),
		reg.Register(m.fraudClaimsAccepted),
		reg.Register(m.fraudClaimsRejected),
		reg.Register(m.lastAcceptedBatch),
	)
	return m, errs.Err
}
