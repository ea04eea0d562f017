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
	"os"
	"time"

	"github.com/dgraph-io/badger/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/optakt/block-changes/codec/zbor"
	"github.com/optakt/block-changes/models/indexer"
	"github.com/optakt/block-changes/service/snapshot"
	"github.com/optakt/block-changes/service/storage"
)

const (
	success = 0
	failure = 1
)

func main() {
	os.Exit(run())
}

func run() int {

	// Parse the command line arguments.
	var (
		flagData    string
		flagFile    string
		flagLevel   string
		flagRestore bool
	)

	pflag.StringVarP(&flagData, "data", "d", "data", "path to database directory for the record stores")
	pflag.StringVarP(&flagFile, "file", "f", "", "snapshot file (stdout or stdin if empty)")
	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")
	pflag.BoolVarP(&flagRestore, "restore", "r", false, "restore the snapshot into an empty database instead of creating one")

	pflag.Parse()

	// Initialize the logger.
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	level, err := zerolog.ParseLevel(flagLevel)
	if err != nil {
		log.Error().Str("level", flagLevel).Err(err).Msg("could not parse log level")
		return failure
	}
	log = log.Level(level)

	// Open the record store database.
	db, err := badger.Open(indexer.DefaultOptions(flagData))
	if err != nil {
		log.Error().Str("data", flagData).Err(err).Msg("could not open record store database")
		return failure
	}
	defer db.Close()

	lib := storage.New(zbor.NewCodec())

	if flagRestore {
		input := os.Stdin
		if flagFile != "" {
			input, err = os.Open(flagFile)
			if err != nil {
				log.Error().Str("file", flagFile).Err(err).Msg("could not open snapshot file")
				return failure
			}
			defer input.Close()
		}

		last, err := snapshot.Restore(db, lib, input)
		if err != nil {
			log.Error().Err(err).Msg("could not restore snapshot")
			return failure
		}

		log.Info().Uint64("last", last).Msg("snapshot restored")
		return success
	}

	output := os.Stdout
	if flagFile != "" {
		output, err = os.OpenFile(flagFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			log.Error().Str("file", flagFile).Err(err).Msg("could not open snapshot file")
			return failure
		}
		defer output.Close()
	}

	last, err := snapshot.Create(db, lib, output)
	if err != nil {
		log.Error().Err(err).Msg("could not create snapshot")
		return failure
	}

	log.Info().Uint64("last", last).Msg("snapshot created")

	return success
}
