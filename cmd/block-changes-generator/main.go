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
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/optakt/block-changes/models/eth"
	"github.com/optakt/block-changes/service/feeder"
)

const (
	success = 0
	failure = 1
)

func main() {
	os.Exit(run())
}

func run() int {

	// Command line parameter initialization.
	var (
		flagOutput       string
		flagLevel        string
		flagStart        uint64
		flagCount        uint
		flagTransactions uint
		flagTime         string
		flagInterval     time.Duration
		flagSeed         int64
	)

	pflag.StringVarP(&flagOutput, "output", "o", "blocks.cbor.zst", "path to the block stream to write")
	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")
	pflag.Uint64VarP(&flagStart, "start", "s", 1, "height of the first generated block")
	pflag.UintVarP(&flagCount, "count", "c", 100, "number of blocks to generate")
	pflag.UintVarP(&flagTransactions, "transactions", "t", 4, "number of transactions per block")
	pflag.StringVar(&flagTime, "time", "2024-01-01T00:00:00Z", "timestamp of the first generated block")
	pflag.DurationVar(&flagInterval, "interval", 12*time.Hour, "time between two generated blocks")
	pflag.Int64Var(&flagSeed, "seed", 0, "seed for the random hashes and addresses")

	pflag.Parse()

	// Logger initialization.
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	level, err := zerolog.ParseLevel(flagLevel)
	if err != nil {
		log.Error().Str("level", flagLevel).Err(err).Msg("could not parse log level")
		return failure
	}
	log = log.Level(level)

	start, err := time.Parse(time.RFC3339, flagTime)
	if err != nil {
		log.Error().Str("time", flagTime).Err(err).Msg("could not parse start time")
		return failure
	}

	file, err := os.Create(flagOutput)
	if err != nil {
		log.Error().Str("output", flagOutput).Err(err).Msg("could not create output")
		return failure
	}
	defer file.Close()

	write, err := feeder.NewWriter(file)
	if err != nil {
		log.Error().Err(err).Msg("could not initialize writer")
		return failure
	}

	// Ensure consistent deterministic results for a given seed.
	random := rand.New(rand.NewSource(flagSeed))
	parent := bytes(random, 32)
	for i := uint(0); i < flagCount; i++ {
		height := flagStart + uint64(i)
		timestamp := start.Add(time.Duration(i) * flagInterval).UTC()
		block := generate(random, height, timestamp, parent, flagTransactions)
		err = write.Write(block)
		if err != nil {
			log.Error().Err(err).Msg("could not write block")
			return failure
		}
		parent = block.Hash
	}

	err = write.Close()
	if err != nil {
		log.Error().Err(err).Msg("could not flush output")
		return failure
	}

	log.Info().
		Str("output", flagOutput).
		Uint64("first", flagStart).
		Uint("count", flagCount).
		Msg("blocks generated")

	return success
}

func generate(random *rand.Rand, height uint64, timestamp time.Time, parent []byte, count uint) *eth.Block {
	statuses := []eth.TraceStatus{eth.StatusSucceeded, eth.StatusSucceeded, eth.StatusSucceeded, eth.StatusFailed, eth.StatusReverted}

	var gasUsed uint64
	traces := make([]eth.TransactionTrace, 0, count)
	for i := uint(0); i < count; i++ {
		used := 21000 + uint64(random.Intn(100000))
		gasUsed += used
		trace := eth.TransactionTrace{
			Hash:     bytes(random, 32),
			From:     bytes(random, 20),
			To:       bytes(random, 20),
			Nonce:    uint64(random.Intn(1000)),
			GasLimit: used + uint64(random.Intn(10000)),
			GasUsed:  used,
			Index:    uint32(i),
			Status:   statuses[random.Intn(len(statuses))],
		}
		traces = append(traces, trace)
	}

	block := eth.Block{
		Number: height,
		Hash:   bytes(random, 32),
		Size:   uint64(512 + random.Intn(64<<10)),
		Header: &eth.Header{
			ParentHash:  parent,
			UncleHash:   bytes(random, 32),
			ReceiptRoot: bytes(random, 32),
			GasLimit:    30_000_000,
			GasUsed:     gasUsed,
			Nonce:       random.Uint64(),
			Timestamp:   &timestamp,
		},
		TransactionTraces: traces,
	}

	return &block
}

func bytes(random *rand.Rand, n int) []byte {
	data := make([]byte, n)
	_, _ = random.Read(data)
	return data
}
