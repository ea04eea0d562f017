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

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v2"
	"github.com/rs/zerolog"

	"github.com/optakt/block-changes/models/changes"
	"github.com/optakt/block-changes/models/eth"
	"github.com/optakt/block-changes/models/indexer"
	"github.com/optakt/block-changes/models/meta"
	"github.com/optakt/block-changes/service/emitter"
	"github.com/optakt/block-changes/service/storage"
	"github.com/optakt/block-changes/service/store"
	"github.com/optakt/block-changes/service/transform"
)

// Processor runs one step per block: it projects the block into records,
// writes them to the record stores, turns the resulting deltas into a change
// log and hands it to the sink. Steps never overlap.
type Processor struct {
	log  zerolog.Logger
	cfg  Config
	db   *badger.DB
	lib  indexer.Library
	feed indexer.Feeder
	sink indexer.Sink

	blocks       *store.Store[meta.BlockMeta]
	transactions *store.Store[meta.Transaction]

	ctx    context.Context
	cancel context.CancelFunc
	once   *sync.Once
}

// New creates a processor that reads blocks from the feeder, keeps its record
// stores in the given database and applies change logs to the sink.
func New(log zerolog.Logger, db *badger.DB, lib indexer.Library, feed indexer.Feeder, sink indexer.Sink, options ...func(*Config)) *Processor {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := Processor{
		log:  log.With().Str("component", "processor").Logger(),
		cfg:  cfg,
		db:   db,
		lib:  lib,
		feed: feed,
		sink: sink,

		blocks:       store.New[meta.BlockMeta](db, lib, NamespaceBlockMeta),
		transactions: store.New[meta.Transaction](db, lib, NamespaceTransactions),

		ctx:    ctx,
		cancel: cancel,
		once:   &sync.Once{},
	}

	return &p
}

// Run processes blocks from the feeder until it is finished or the processor
// is stopped. Blocks at or below the last height processed in a previous run
// are skipped.
func (p *Processor) Run() error {

	last, resumed, err := p.Last()
	if err != nil {
		return fmt.Errorf("could not retrieve last processed height: %w", err)
	}
	if resumed {
		p.log.Info().Uint64("last", last).Msg("resuming from last processed height")
	}

	for {
		select {
		case <-p.ctx.Done():
			return nil
		default:
		}

		block, err := p.feed.Block()
		if errors.Is(err, indexer.ErrFinished) {
			p.log.Info().Msg("no more blocks to process")
			return nil
		}
		if err != nil {
			return fmt.Errorf("could not feed next block: %w", err)
		}
		if resumed && block.Number <= last {
			p.log.Debug().Uint64("height", block.Number).Msg("skipping already processed block")
			continue
		}

		log, err := p.Process(p.ctx, block)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("could not process block (height: %d): %w", block.Number, err)
		}

		p.log.Info().
			Uint64("height", block.Number).
			Int("block_meta", len(log.Table(emitter.TableBlockMeta))).
			Int("transactions", len(log.Table(emitter.TableTransactions))).
			Msg("block processed")
	}
}

// Stop makes the processor stop after its ongoing step.
func (p *Processor) Stop() {
	p.once.Do(p.cancel)
}

// Last returns the height of the last block that was fully processed, if any.
func (p *Processor) Last() (uint64, bool, error) {
	var height uint64
	err := p.db.View(p.lib.RetrieveLast(&height))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return height, true, nil
}

// Process runs a single step for the given block. If any part of the step
// fails, nothing of it is persisted and no change log is returned.
func (p *Processor) Process(ctx context.Context, block *eth.Block) (*changes.Log, error) {

	// Whatever happens, the next step starts from a clean slate in the stores.
	defer p.blocks.Reset()
	defer p.transactions.Reset()

	err := p.storeBlockMeta(block)
	if err != nil {
		return nil, fmt.Errorf("could not store block meta (namespace: %s): %w", p.blocks.Namespace(), err)
	}
	err = p.storeTransactions(block)
	if err != nil {
		return nil, fmt.Errorf("could not store transactions (namespace: %s): %w", p.transactions.Namespace(), err)
	}

	log := changes.NewLog()
	entries, err := emitter.Emit(emitter.BlockMetaTable, p.blocks.Deltas())
	if err != nil {
		return nil, fmt.Errorf("could not emit block meta changes: %w", err)
	}
	log.Append(entries...)
	entries, err = emitter.Emit(emitter.TransactionsTable, p.transactions.Deltas())
	if err != nil {
		return nil, fmt.Errorf("could not emit transaction changes: %w", err)
	}
	log.Append(entries...)

	err = p.sink.Apply(ctx, log)
	if err != nil {
		return nil, fmt.Errorf("could not apply change log: %w", err)
	}

	err = p.db.Update(storage.Combine(
		p.blocks.Flush(),
		p.transactions.Flush(),
		p.lib.SaveLast(block.Number),
	))
	if err != nil {
		return nil, fmt.Errorf("could not persist records: %w", err)
	}

	return log, nil
}

func (p *Processor) storeBlockMeta(block *eth.Block) error {

	timestamp, record, err := transform.BlockMeta(block)
	if err != nil {
		return err
	}

	// The same block metadata is stored under the key of its day and the key of
	// its month; each key gets its own delta.
	set := p.blocks.SetIfNotExists
	if p.cfg.Latest {
		set = p.blocks.Set
	}
	for _, key := range []string{timestamp.DayKey(), timestamp.MonthKey()} {
		err = set(record.Number, key, record)
		if err != nil {
			return err
		}
	}

	return nil
}

func (p *Processor) storeTransactions(block *eth.Block) error {

	transactions, err := transform.Transactions(block)
	if err != nil {
		return err
	}

	set := p.transactions.SetIfNotExists
	if p.cfg.Latest {
		set = p.transactions.Set
	}
	for _, transaction := range transactions {
		err = set(transaction.BlockNumber, p.cfg.TransactionKey(transaction), transaction)
		if err != nil {
			return err
		}
	}

	return nil
}
