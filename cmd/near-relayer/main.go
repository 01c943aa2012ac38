// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/dgraph-io/badger/v2"
	"github.com/hashicorp/go-multierror"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/ziflex/lecho/v2"

	api "github.com/optakt/near-go/api/relay"
	"github.com/optakt/near-go/codec/zbor"
	"github.com/optakt/near-go/keystore"
	"github.com/optakt/near-go/models/near"
	"github.com/optakt/near-go/provider"
	"github.com/optakt/near-go/relayer"
	"github.com/optakt/near-go/service/metrics"
	"github.com/optakt/near-go/service/profiler"
	"github.com/optakt/near-go/signer"
)

const (
	success = 0
	failure = 1
)

func main() {
	os.Exit(run())
}

func run() int {

	// Signal catching for clean shutdown.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	// Command line parameter initialization.
	var (
		flagAccount  string
		flagAllowed  []string
		flagAddress  string
		flagCache    uint64
		flagFinality string
		flagKey      string
		flagKeystore string
		flagLevel    string
		flagLog      string
		flagMetrics  string
		flagNetwork  string
		flagProfiler string
		flagRPC      string
		flagTimeout  time.Duration
	)

	pflag.StringVarP(&flagAccount, "account", "a", "", "account ID of the relayer paying for relayed transactions")
	pflag.StringSliceVar(&flagAllowed, "allow", nil, "sender accounts allowed to relay delegate actions (default all)")
	pflag.StringVarP(&flagAddress, "address", "d", ":8080", "address to serve the relay API on")
	pflag.Uint64VarP(&flagCache, "cache", "e", uint64(datasize.MB), "maximum cache size for block headers in bytes")
	pflag.StringVarP(&flagFinality, "finality", "f", string(near.FinalityFinal), "finality of the blocks used as transaction reference")
	pflag.StringVarP(&flagKey, "key", "k", "", "secret key of the relayer, overrides the key store")
	pflag.StringVarP(&flagKeystore, "keystore", "s", "keystore", "directory of the key store database")
	pflag.StringVarP(&flagLevel, "wait-until", "w", near.DefaultWaitUntil.String(), "execution level to wait for when relaying")
	pflag.StringVarP(&flagLog, "level", "l", "info", "log output level")
	pflag.StringVarP(&flagMetrics, "metrics", "m", "", "address to serve prometheus metrics on (disabled if empty)")
	pflag.StringVarP(&flagNetwork, "network", "n", "testnet", "network name of the relayer key in the key store")
	pflag.StringVarP(&flagProfiler, "profiler", "p", "", "address to serve pprof endpoints on (disabled if empty)")
	pflag.StringVarP(&flagRPC, "rpc", "r", "https://rpc.testnet.near.org", "URL of the JSON-RPC node")
	pflag.DurationVarP(&flagTimeout, "timeout", "t", provider.DefaultConfig.Timeout, "timeout of requests to the node")

	pflag.Parse()

	// Logger initialization.
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	level, err := zerolog.ParseLevel(flagLog)
	if err != nil {
		log.Error().Str("level", flagLog).Err(err).Msg("could not parse log level")
		return failure
	}
	log = log.Level(level)
	elog := lecho.From(log)

	// Parameter validation.
	id := near.AccountID(flagAccount)
	err = id.Validate()
	if err != nil {
		log.Error().Str("account", flagAccount).Err(err).Msg("invalid relayer account")
		return failure
	}
	wait, err := near.ParseTxExecutionStatus(flagLevel)
	if err != nil {
		log.Error().Str("wait_until", flagLevel).Err(err).Msg("invalid wait-until level")
		return failure
	}
	finality := near.Finality(flagFinality)
	if finality != near.FinalityFinal && finality != near.FinalityOptimistic {
		log.Error().Str("finality", flagFinality).Msg("invalid finality")
		return failure
	}
	allowed := make([]near.AccountID, 0, len(flagAllowed))
	for _, sender := range flagAllowed {
		allowed = append(allowed, near.AccountID(strings.TrimSpace(sender)))
	}

	// Metrics are registered on a dedicated registry that is only served when
	// an address was given.
	registry := prometheus.NewRegistry()
	err = metrics.RegisterBadgerMetrics(registry)
	if err != nil {
		log.Error().Err(err).Msg("could not register database metrics")
		return failure
	}

	// Key store initialization. A key given on the command line is stored so
	// that later runs can omit it.
	db, err := badger.Open(keystore.DefaultOptions(flagKeystore))
	if err != nil {
		log.Error().Str("keystore", flagKeystore).Err(err).Msg("could not open key store database")
		return failure
	}
	defer db.Close()

	store := keystore.NewBadger(db, metrics.NewCodec(registry, zbor.NewCodec()))
	if flagKey != "" {
		secret, err := near.ParseSecretKey(flagKey)
		if err != nil {
			log.Error().Err(err).Msg("could not parse relayer key")
			return failure
		}
		err = store.SetKey(flagNetwork, id, secret)
		if err != nil {
			log.Error().Err(err).Msg("could not store relayer key")
			return failure
		}
	}
	secret, err := store.Key(flagNetwork, id)
	if errors.Is(err, keystore.ErrNotFound) {
		log.Error().Str("network", flagNetwork).Str("account", flagAccount).Msg("no relayer key in key store, provide one with --key")
		return failure
	}
	if err != nil {
		log.Error().Err(err).Msg("could not load relayer key")
		return failure
	}
	sign, err := signer.FromSecretKey(secret)
	if err != nil {
		log.Error().Err(err).Msg("could not initialize relayer signer")
		return failure
	}

	// Node access, with block headers cached and submissions counted.
	rpc := provider.NewJSONRPC(flagRPC,
		provider.WithLogger(log),
		provider.WithTimeout(flagTimeout),
	)
	cached, err := provider.NewCached(rpc, provider.WithCacheSize(datasize.ByteSize(flagCache)))
	if err != nil {
		log.Error().Err(err).Msg("could not initialize block cache")
		return failure
	}
	service := metrics.NewService(registry, cached)

	relay, err := relayer.New(id, sign, service,
		relayer.WithLogger(log),
		relayer.WithAllowed(allowed...),
		relayer.WithLevel(wait),
		relayer.WithFinality(finality),
		relayer.WithMetrics(metrics.NewRelay(registry)),
	)
	if err != nil {
		log.Error().Err(err).Msg("could not initialize relayer")
		return failure
	}

	server := echo.New()
	server.HideBanner = true
	server.HidePort = true
	server.Logger = elog
	server.Use(lecho.Middleware(lecho.Config{Logger: elog}))
	api.NewController(relay).Register(server)

	// This section launches the main executing components in their own
	// goroutine, so they can run concurrently. Afterwards, we wait for an
	// interrupt signal in order to proceed with the next section.
	done := make(chan struct{})
	failed := make(chan struct{})
	go func() {
		log.Info().Str("address", flagAddress).Str("relayer", flagAccount).Msg("NEAR Relayer starting")
		err := server.Start(flagAddress)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn().Err(err).Msg("NEAR Relayer failed")
			close(failed)
		} else {
			close(done)
		}
		log.Info().Msg("NEAR Relayer stopped")
	}()

	var mserver *metrics.Server
	if flagMetrics != "" {
		mserver = metrics.NewServer(log, flagMetrics, registry)
		go func() {
			err := mserver.Start()
			if err != nil {
				log.Warn().Err(err).Msg("metrics server failed")
			}
		}()
	}

	var pserver *profiler.Server
	if flagProfiler != "" {
		pserver = profiler.NewServer(log, flagProfiler)
		go func() {
			err := pserver.Start()
			if err != nil {
				log.Warn().Err(err).Msg("profiler failed")
			}
		}()
	}

	select {
	case <-sig:
		log.Info().Msg("NEAR Relayer stopping")
	case <-done:
		log.Info().Msg("NEAR Relayer done")
	case <-failed:
		log.Warn().Msg("NEAR Relayer aborted")
	}
	go func() {
		<-sig
		log.Warn().Msg("forcing exit")
		os.Exit(1)
	}()

	// We first stop accepting requests, then drain the relayer so that pending
	// delegate actions get an answer, and lastly stop the metrics and profiling
	// servers.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var merr *multierror.Error
	err = server.Shutdown(ctx)
	if err != nil {
		merr = multierror.Append(merr, err)
	}
	relay.Stop()
	cached.Close()
	if mserver != nil {
		err = mserver.Stop(ctx)
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	if pserver != nil {
		err = pserver.Stop(ctx)
		if err != nil {
			merr = multierror.Append(merr, err)
		}
	}
	err = merr.ErrorOrNil()
	if err != nil {
		log.Error().Err(err).Msg("could not shut down cleanly")
		return failure
	}

	return success
}
