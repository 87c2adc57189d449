// Copyright (C) 2019-2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	log "github.com/inconshreveable/log15"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/leveldb"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/rollupvm/rollupvm"
)

const (
	baseURL         = "/ext/rollup"
	shutdownTimeout = 10 * time.Second
)

func main() {
	v, err := getViper()
	if err != nil {
		fmt.Printf("couldn't get config: %s\n", err)
		os.Exit(1)
	}
	// Print Version and exit
	if v.GetBool(versionKey) {
		fmt.Printf("%s@%s\n", rollupvm.Name, rollupvm.Version)
		os.Exit(0)
	}

	cfg, err := getConfig(v)
	if err != nil {
		fmt.Printf("invalid config: %s\n", err)
		os.Exit(1)
	}

	lvl, err := log.LvlFromString(cfg.logLevel)
	if err != nil {
		fmt.Printf("invalid log level: %s\n", err)
		os.Exit(1)
	}
	log.Root().SetHandler(log.LvlFilterHandler(lvl, log.StreamHandler(os.Stderr, log.TerminalFormat())))

	if err := run(cfg); err != nil {
		log.Error("rollupvm exited with an error", "err", err)
		os.Exit(1)
	}
}

func run(cfg config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	registry := prometheus.NewRegistry()
	db, err := openDB(cfg, registry)
	if err != nil {
		return fmt.Errorf("couldn't open database: %w", err)
	}

	factory := &rollupvm.Factory{
		Config:     cfg.chain,
		Registerer: registry,
	}
	chain, err := factory.New(ctx, db)
	if err != nil {
		return fmt.Errorf("couldn't initialize chain: %w", err)
	}
	defer func() {
		if err := chain.Shutdown(context.Background()); err != nil {
			log.Error("error while shutting down chain", "err", err)
		}
	}()

	mux := http.NewServeMux()
	handlers, err := chain.CreateHandlers()
	if err != nil {
		return err
	}
	for extension, handler := range handlers {
		mux.Handle(path.Join(baseURL, extension), handler)
	}
	staticHandlers, err := rollupvm.CreateStaticHandlers()
	if err != nil {
		return err
	}
	for extension, handler := range staticHandlers {
		mux.Handle(path.Join(baseURL, "static", extension), handler)
	}
	mux.Handle("/ext/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.httpHost, strconv.Itoa(int(cfg.httpPort))),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		log.Info("HTTP API server listening", "address", server.Addr)
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down HTTP API server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	return server.Shutdown(shutdownCtx)
}

func openDB(cfg config, registry prometheus.Registerer) (database.Database, error) {
	switch cfg.dbType {
	case memDBType:
		log.Warn("using an in-memory database, commitments won't survive a restart")
		return memdb.New(), nil
	case levelDBType:
		return leveldb.New(cfg.dbDir, nil, logging.NoLog{}, "db", registry)
	default:
		return nil, fmt.Errorf("unknown database type %q", cfg.dbType)
	}
}
