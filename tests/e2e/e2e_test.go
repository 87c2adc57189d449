// Copyright (C) 2019-2022, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// e2e implements the e2e tests.
package e2e_test

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	ginkgo "github.com/onsi/ginkgo/v2"
	"github.com/onsi/ginkgo/v2/formatter"
	"github.com/onsi/gomega"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/rollupvm/client"
	"github.com/ava-labs/rollupvm/rollupvm"
)

func TestE2e(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "rollupvm e2e test suites")
}

var (
	requestTimeout time.Duration

	// URI of a running rollupvm. If empty, one is started in process.
	endpoint string
)

func init() {
	flag.DurationVar(
		&requestTimeout,
		"request-timeout",
		30*time.Second,
		"timeout for each API request",
	)

	flag.StringVar(
		&endpoint,
		"endpoint",
		"",
		"base URI of a running rollupvm (e.g. http://127.0.0.1:9650/ext/rollup)",
	)
}

var (
	server *httptest.Server
	chain  *rollupvm.Chain

	cli       client.Client
	staticCli client.StaticClient

	validator = ids.ShortID{'e', '2', 'e'}
)

var _ = ginkgo.BeforeSuite(func() {
	if endpoint == "" {
		chain = &rollupvm.Chain{}
		err := chain.Initialize(context.Background(), memdb.New(), rollupvm.DefaultConfig(), nil, prometheus.NewRegistry())
		gomega.Expect(err).Should(gomega.BeNil())

		handlers, err := chain.CreateHandlers()
		gomega.Expect(err).Should(gomega.BeNil())
		staticHandlers, err := rollupvm.CreateStaticHandlers()
		gomega.Expect(err).Should(gomega.BeNil())

		mux := http.NewServeMux()
		mux.Handle("/ext/rollup", handlers[""])
		mux.Handle("/ext/rollup/static", staticHandlers[""])
		server = httptest.NewServer(mux)
		endpoint = server.URL + "/ext/rollup"
	}
	outf("{{blue}}rollupvm RPC:{{/}} %q\n", endpoint)

	cli = client.New(endpoint)
	staticCli = client.NewStatic(endpoint + "/static")
})

var _ = ginkgo.AfterSuite(func() {
	if server == nil {
		return
	}
	outf("{{red}}shutting down server{{/}}\n")
	server.Close()
	gomega.Expect(chain.Shutdown(context.Background())).Should(gomega.BeNil())
})

// nextBatch returns the batch number the chain expects next
func nextBatch() uint64 {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	latest, err := cli.LastAccepted(ctx)
	if err != nil {
		return 0
	}
	return latest.BatchNumber + 1
}

var _ = ginkgo.Describe("[SubmitCommitment]", func() {
	ginkgo.It("appends commitments in batch order", func() {
		first := nextBatch()

		var roots [][]byte
		for i := uint64(0); i < 7; i++ {
			root := bytes.Repeat([]byte{byte(first + i + 1)}, rollupvm.MaxRootLen)
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			c, err := cli.SubmitCommitment(ctx, first+i, root, validator)
			cancel()
			gomega.Ω(err).Should(gomega.BeNil())
			gomega.Ω(c.BatchNumber).Should(gomega.Equal(first + i))
			gomega.Ω(len(c.PreviousRoots)).Should(gomega.BeNumerically("<=", rollupvm.MaxPreviousRoots))
			if first == 0 {
				expected := roots
				if len(expected) > rollupvm.MaxPreviousRoots {
					expected = expected[len(expected)-rollupvm.MaxPreviousRoots:]
				}
				gomega.Ω(len(c.PreviousRoots)).Should(gomega.Equal(len(expected)))
				for j := range expected {
					gomega.Ω(c.PreviousRoots[j]).Should(gomega.Equal(expected[j]))
				}
			}
			roots = append(roots, root)
		}
	})

	ginkgo.It("refuses skipped and repeated batches", func() {
		next := nextBatch()
		root := bytes.Repeat([]byte{0xee}, rollupvm.MaxRootLen)

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		_, err := cli.SubmitCommitment(ctx, next+1, root, validator)
		gomega.Ω(err).ShouldNot(gomega.BeNil())
		gomega.Ω(err.Error()).Should(gomega.ContainSubstring(rollupvm.ErrInvalidBatchNumber.Error()))

		if next > 0 {
			_, err = cli.SubmitCommitment(ctx, next-1, root, validator)
			gomega.Ω(err).ShouldNot(gomega.BeNil())
			gomega.Ω(err.Error()).Should(gomega.ContainSubstring(rollupvm.ErrInvalidBatchNumber.Error()))
		}
	})
})

var _ = ginkgo.Describe("[SubmitFraudProof]", ginkgo.Ordered, func() {
	var (
		batchNumber uint64
		leaf        = bytes.Repeat([]byte{0x02}, 32)
		proof       = [][]byte{bytes.Repeat([]byte{0x01}, 32)}
	)

	ginkgo.It("commits a root built from a proof", func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		root, err := staticCli.ComputeRoot(ctx, leaf, proof)
		gomega.Ω(err).Should(gomega.BeNil())

		batchNumber = nextBatch()
		_, err = cli.SubmitCommitment(ctx, batchNumber, root, validator)
		gomega.Ω(err).Should(gomega.BeNil())
	})

	ginkgo.It("rejects a claim against a correct transition", func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		_, err := cli.SubmitFraudProof(ctx, batchNumber, leaf, proof)
		gomega.Ω(err).ShouldNot(gomega.BeNil())
		gomega.Ω(err.Error()).Should(gomega.ContainSubstring(rollupvm.ErrInvalidFraudProofClaim.Error()))
	})

	ginkgo.It("accepts a claim with a tampered proof", func() {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		tampered := [][]byte{bytes.Repeat([]byte{0x01}, 32)}
		tampered[0][0] = 0x00
		event, err := cli.SubmitFraudProof(ctx, batchNumber, leaf, tampered)
		gomega.Ω(err).Should(gomega.BeNil())

		c, err := cli.GetCommitment(ctx, batchNumber)
		gomega.Ω(err).Should(gomega.BeNil())
		gomega.Ω(event.BatchNumber).Should(gomega.Equal(c.BatchNumber))
		gomega.Ω(event.Root).Should(gomega.Equal(c.Root))
		gomega.Ω(event.Validator).Should(gomega.Equal(c.Validator))
		gomega.Ω(event.Tmstmp).Should(gomega.Equal(c.Tmstmp))
	})
})

// Outputs to stdout.
//
// e.g.,
//
//	Out("{{green}}{{bold}}hi there %q{{/}}", "aa")
//	Out("{{magenta}}{{bold}}hi therea{{/}} {{cyan}}{{underline}}b{{/}}")
//
// ref.
// https://github.com/onsi/ginkgo/blob/v2.0.0/formatter/formatter.go#L52-L73
func outf(format string, args ...interface{}) {
	s := formatter.F(format, args...)
	fmt.Fprint(formatter.ColorableStdOut, s)
}
