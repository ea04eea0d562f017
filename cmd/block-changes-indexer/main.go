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
	"os"
	"os/signal"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/optakt/block-changes/codec/zbor"
	"github.com/optakt/block-changes/engine"
	"github.com/optakt/block-changes/models/indexer"
	"github.com/optakt/block-changes/service/feeder"
	"github.com/optakt/block-changes/service/metrics"
	"github.com/optakt/block-changes/service/pipeline"
	"github.com/optakt/block-changes/service/sink"
	"github.com/optakt/block-changes/service/storage"
)

const (
	success = 0
	failure = 1
)

const (
	sinkLog      = "log"
	sinkSQLite   = "sqlite"
	sinkPostgres = "postgres"
)

type config struct {
	Data     string `validate:"required"`
	Input    string `validate:"required,file"`
	Level    string `validate:"required"`
	Sink     string `validate:"oneof=log sqlite postgres"`
	SQLite   string `validate:"required_if=Sink sqlite"`
	Postgres string `validate:"required_if=Sink postgres"`
	Metrics  string `validate:"omitempty,hostname_port"`
	Latest   bool
	Constant bool
}

func main() {
	os.Exit(run())
}

func run() int {

	// Signal catching for clean shutdown.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	// Command line parameter initialization.
	var cfg config

	pflag.StringVarP(&cfg.Data, "data", "d", "data", "path to database directory for the record stores")
	pflag.StringVarP(&cfg.Input, "input", "i", "", "path to the compressed stream of blocks to process")
	pflag.StringVarP(&cfg.Level, "level", "l", "info", "log output level")
	pflag.StringVarP(&cfg.Sink, "sink", "s", sinkLog, "sink for change logs (log, sqlite or postgres)")
	pflag.StringVar(&cfg.SQLite, "sqlite", "", "path to the SQLite database for the sqlite sink")
	pflag.StringVar(&cfg.Postgres, "postgres", "", "connection string of the Postgres database for the postgres sink")
	pflag.StringVarP(&cfg.Metrics, "metrics", "m", "", "address on which to expose metrics (disabled if empty)")
	pflag.BoolVar(&cfg.Latest, "latest", false, "keep the latest record per key instead of the first one")
	pflag.BoolVar(&cfg.Constant, "constant-transaction-key", false, "store all transactions under a single key")

	pflag.Parse()

	// Logger initialization.
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		log.Error().Str("level", cfg.Level).Err(err).Msg("could not parse log level")
		return failure
	}
	log = log.Level(level)

	err = validator.New().Struct(cfg)
	if err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return failure
	}

	// Open the record store database.
	db, err := badger.Open(indexer.DefaultOptions(cfg.Data))
	if err != nil {
		log.Error().Str("data", cfg.Data).Err(err).Msg("could not open record store database")
		return failure
	}
	defer func() {
		err := db.Close()
		if err != nil {
			log.Error().Err(err).Msg("could not close record store database")
		}
	}()

	// The storage library is initialized with a codec and provides functions to
	// interact with a Badger database while encoding and compressing
	// transparently.
	codec := zbor.NewCodec()
	lib := storage.New(codec)

	// The feeder reads the blocks to process from the input stream.
	file, err := os.Open(cfg.Input)
	if err != nil {
		log.Error().Str("input", cfg.Input).Err(err).Msg("could not open input")
		return failure
	}
	defer file.Close()
	feed, err := feeder.FromStream(file)
	if err != nil {
		log.Error().Err(err).Msg("could not initialize feeder")
		return failure
	}
	defer feed.Close()

	// The sink receives the change log of every processed block.
	ctx := context.Background()
	var out indexer.Sink
	switch cfg.Sink {
	case sinkSQLite:
		lite, err := sink.OpenSQLite(ctx, cfg.SQLite)
		if err != nil {
			log.Error().Str("sqlite", cfg.SQLite).Err(err).Msg("could not open sqlite sink")
			return failure
		}
		defer func() {
			err := lite.Close()
			if err != nil {
				log.Error().Err(err).Msg("could not close sqlite sink")
			}
		}()
		out = lite
	case sinkPostgres:
		pg, err := sink.OpenPostgres(ctx, cfg.Postgres)
		if err != nil {
			log.Error().Err(err).Msg("could not open postgres sink")
			return failure
		}
		defer pg.Close()
		out = pg
	default:
		out = sink.NewLog(log)
	}

	options := []func(*pipeline.Config){
		pipeline.WithLatest(cfg.Latest),
	}
	if cfg.Constant {
		options = append(options, pipeline.WithTransactionKey(pipeline.ConstantTransactionKey))
	}

	eng := engine.New(log, "Block Changes Indexer", sig)

	// Metrics are only collected when they are exposed.
	if cfg.Metrics != "" {
		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector())
		err = metrics.RegisterBadgerMetrics(registry)
		if err != nil {
			log.Error().Err(err).Msg("could not register badger metrics")
			return failure
		}
		out = metrics.NewSink(out, registry)
		server := metrics.NewServer(log, cfg.Metrics, registry)
		eng.Component(
			"metrics",
			server.Start,
			func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				err := server.Stop(ctx)
				if err != nil && !errors.Is(err, context.DeadlineExceeded) {
					log.Error().Err(err).Msg("could not stop metrics server")
				}
			},
		)
	}

	processor := pipeline.New(log, db, lib, feed, out, options...)
	eng.Component("processor", processor.Run, processor.Stop)

	err = eng.Run()
	if err != nil {
		log.Error().Err(err).Msg("failed")
		return failure
	}

	return success
}
