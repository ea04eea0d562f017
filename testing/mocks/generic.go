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

package mocks

import (
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/optakt/block-changes/models/eth"
	"github.com/optakt/block-changes/models/meta"
)

// Global variables that can be used for testing. They are non-nil valid values
// for the types commonly needed to test indexer components.
var (
	NoopLogger = zerolog.New(io.Discard)

	GenericError = errors.New("dummy error")

	GenericHeight = uint64(100)

	GenericBytes = []byte(`test`)

	GenericTime = time.Date(2024, time.January, 1, 13, 14, 15, 0, time.UTC)

	GenericDayKey   = "day:2024-01-01"
	GenericMonthKey = "month:2024-01"

	GenericBlockMeta = meta.BlockMeta{
		ID:          meta.Hex(GenericHash(0)),
		Number:      GenericHeight,
		Hash:        meta.Hex(GenericHash(0)),
		ParentHash:  meta.Hex(GenericHash(1)),
		UncleHash:   meta.Hex(GenericHash(2)),
		ReceiptRoot: meta.Hex(GenericHash(3)),
		GasLimit:    30_000_000,
		GasUsed:     63_000,
		Nonce:       42,
		Size:        1024,
		Timestamp:   GenericTime,
	}

	GenericTransaction = meta.Transaction{
		ID:          meta.Hex(GenericHash(10)),
		BlockNumber: GenericHeight,
		Index:       0,
		Nonce:       7,
		Status:      "1",
		GasLimit:    25_000,
		GasUsed:     21_000,
		From:        meta.Hex(GenericAddress(0)),
		To:          meta.Hex(GenericAddress(1)),
		Timestamp:   GenericTime,
	}
)

// GenericHash returns a deterministic 32-byte hash for the given index.
func GenericHash(index int) []byte {
	hash := make([]byte, 32)
	for i := range hash {
		hash[i] = byte(index + i)
	}
	return hash
}

// GenericAddress returns a deterministic 20-byte address for the given index.
func GenericAddress(index int) []byte {
	address := make([]byte, 20)
	for i := range address {
		address[i] = byte(0xa0 + index + i)
	}
	return address
}

// GenericBlock returns a block at the given height, with the generic time. It
// holds three transactions, of which the last one failed.
func GenericBlock(height uint64) *eth.Block {
	timestamp := GenericTime
	block := eth.Block{
		Number: height,
		Hash:   GenericHash(0),
		Size:   1024,
		Header: &eth.Header{
			ParentHash:  GenericHash(1),
			UncleHash:   GenericHash(2),
			ReceiptRoot: GenericHash(3),
			GasLimit:    30_000_000,
			GasUsed:     63_000,
			Nonce:       42,
			Timestamp:   &timestamp,
		},
		TransactionTraces: []eth.TransactionTrace{
			{
				Hash:     GenericHash(10),
				From:     GenericAddress(0),
				To:       GenericAddress(1),
				Nonce:    7,
				GasLimit: 25_000,
				GasUsed:  21_000,
				Index:    0,
				Status:   eth.StatusSucceeded,
			},
			{
				Hash:     GenericHash(11),
				From:     GenericAddress(2),
				To:       GenericAddress(3),
				Nonce:    8,
				GasLimit: 50_000,
				GasUsed:  21_000,
				Index:    1,
				Status:   eth.StatusSucceeded,
			},
			{
				Hash:     GenericHash(12),
				From:     GenericAddress(4),
				To:       GenericAddress(5),
				Nonce:    9,
				GasLimit: 50_000,
				GasUsed:  21_000,
				Index:    2,
				Status:   eth.StatusFailed,
			},
		},
	}

	return &block
}
