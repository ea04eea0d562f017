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

package pipeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/block-changes/codec/zbor"
	"github.com/optakt/block-changes/models/changes"
	"github.com/optakt/block-changes/models/eth"
	"github.com/optakt/block-changes/models/indexer"
	"github.com/optakt/block-changes/models/meta"
	"github.com/optakt/block-changes/service/emitter"
	"github.com/optakt/block-changes/service/pipeline"
	"github.com/optakt/block-changes/service/storage"
	"github.com/optakt/block-changes/service/transform"
	"github.com/optakt/block-changes/testing/helpers"
	"github.com/optakt/block-changes/testing/mocks"
)

func newProcessor(t *testing.T, feed indexer.Feeder, sink indexer.Sink, options ...func(*pipeline.Config)) *pipeline.Processor {
	t.Helper()

	db := helpers.InMemoryDB(t)
	lib := storage.New(zbor.NewCodec())

	return pipeline.New(mocks.NoopLogger, db, lib, feed, sink, options...)
}

func newValue(t *testing.T, entry changes.Entry, name string) string {
	t.Helper()

	field, ok := entry.Field(name)
	require.True(t, ok, "missing field %s", name)
	require.NotNil(t, field.NewValue)

	return *field.NewValue
}

func TestProcessor_Process(t *testing.T) {
	ctx := context.Background()

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		var applied *changes.Log
		sink := mocks.BaselineSink(t)
		sink.ApplyFunc = func(_ context.Context, log *changes.Log) error {
			applied = log
			return nil
		}
		proc := newProcessor(t, mocks.BaselineFeeder(t), sink)

		log, err := proc.Process(ctx, mocks.GenericBlock(mocks.GenericHeight))

		require.NoError(t, err)
		require.NotNil(t, log)
		assert.Same(t, applied, log)

		blocks := log.Table(emitter.TableBlockMeta)
		require.Len(t, blocks, 2)
		assert.Equal(t, mocks.GenericDayKey, blocks[0].Key)
		assert.Equal(t, mocks.GenericMonthKey, blocks[1].Key)
		for _, entry := range blocks {
			assert.Equal(t, changes.OperationCreate, entry.Operation)
			assert.Equal(t, mocks.GenericHeight, entry.Ordinal)
			assert.Equal(t, "100", newValue(t, entry, "number"))
			assert.Equal(t, mocks.GenericBlockMeta.Hash, newValue(t, entry, "hash"))
			assert.Equal(t, "2024-01-01T13:14:15Z", newValue(t, entry, "timestamp"))
		}
		assert.Equal(t, "2024-01-01T00:00:00Z", newValue(t, blocks[0], "at"))
		assert.Equal(t, "2024-01-01T00:00:00Z", newValue(t, blocks[1], "at"))

		transactions := log.Table(emitter.TableTransactions)
		require.Len(t, transactions, 2)
		assert.Equal(t, meta.Hex(mocks.GenericHash(10)), transactions[0].Key)
		assert.Equal(t, meta.Hex(mocks.GenericHash(11)), transactions[1].Key)
		assert.Equal(t, "1", newValue(t, transactions[0], "status"))

		entries := log.Entries()
		require.Len(t, entries, 4)
		assert.Equal(t, emitter.TableBlockMeta, entries[0].Table)
		assert.Equal(t, emitter.TableTransactions, entries[3].Table)

		last, ok, err := proc.Last()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, mocks.GenericHeight, last)
	})

	t.Run("keeps first record of the period", func(t *testing.T) {
		t.Parallel()

		proc := newProcessor(t, mocks.BaselineFeeder(t), mocks.BaselineSink(t))

		_, err := proc.Process(ctx, mocks.GenericBlock(mocks.GenericHeight))
		require.NoError(t, err)

		log, err := proc.Process(ctx, mocks.GenericBlock(mocks.GenericHeight+1))

		require.NoError(t, err)
		assert.Equal(t, 0, log.Len())
	})

	t.Run("new day creates day record only", func(t *testing.T) {
		t.Parallel()

		proc := newProcessor(t, mocks.BaselineFeeder(t), mocks.BaselineSink(t))

		_, err := proc.Process(ctx, mocks.GenericBlock(mocks.GenericHeight))
		require.NoError(t, err)

		block := mocks.GenericBlock(mocks.GenericHeight + 1)
		next := mocks.GenericTime.Add(24 * time.Hour)
		block.Header.Timestamp = &next
		block.TransactionTraces = nil

		log, err := proc.Process(ctx, block)

		require.NoError(t, err)
		blocks := log.Table(emitter.TableBlockMeta)
		require.Len(t, blocks, 1)
		assert.Equal(t, "day:2024-01-02", blocks[0].Key)
		assert.Equal(t, "101", newValue(t, blocks[0], "number"))
	})

	t.Run("latest mode emits updates", func(t *testing.T) {
		t.Parallel()

		proc := newProcessor(t, mocks.BaselineFeeder(t), mocks.BaselineSink(t), pipeline.WithLatest(true))

		_, err := proc.Process(ctx, mocks.GenericBlock(mocks.GenericHeight))
		require.NoError(t, err)

		log, err := proc.Process(ctx, mocks.GenericBlock(mocks.GenericHeight+1))

		require.NoError(t, err)
		blocks := log.Table(emitter.TableBlockMeta)
		require.Len(t, blocks, 2)
		for _, entry := range blocks {
			assert.Equal(t, changes.OperationUpdate, entry.Operation)
			field, ok := entry.Field("number")
			require.True(t, ok)
			require.NotNil(t, field.OldValue)
			assert.Equal(t, "100", *field.OldValue)
			assert.Equal(t, "101", *field.NewValue)
		}
		transactions := log.Table(emitter.TableTransactions)
		require.Len(t, transactions, 2)
		assert.Equal(t, changes.OperationUpdate, transactions[0].Operation)
	})

	t.Run("constant transaction key keeps a single transaction", func(t *testing.T) {
		t.Parallel()

		proc := newProcessor(t, mocks.BaselineFeeder(t), mocks.BaselineSink(t), pipeline.WithTransactionKey(pipeline.ConstantTransactionKey))

		log, err := proc.Process(ctx, mocks.GenericBlock(mocks.GenericHeight))

		require.NoError(t, err)
		transactions := log.Table(emitter.TableTransactions)
		require.Len(t, transactions, 1)
		assert.Equal(t, "transaction.id", transactions[0].Key)
		assert.Equal(t, meta.Hex(mocks.GenericHash(10)), newValue(t, transactions[0], "id"))
	})

	t.Run("handles sink failure", func(t *testing.T) {
		t.Parallel()

		sink := mocks.BaselineSink(t)
		sink.ApplyFunc = func(context.Context, *changes.Log) error {
			return mocks.GenericError
		}
		proc := newProcessor(t, mocks.BaselineFeeder(t), sink)

		log, err := proc.Process(ctx, mocks.GenericBlock(mocks.GenericHeight))

		assert.ErrorIs(t, err, mocks.GenericError)
		assert.Nil(t, log)

		_, ok, err := proc.Last()
		require.NoError(t, err)
		assert.False(t, ok)

		sink.ApplyFunc = func(context.Context, *changes.Log) error {
			return nil
		}
		log, err = proc.Process(ctx, mocks.GenericBlock(mocks.GenericHeight))

		require.NoError(t, err)
		assert.Len(t, log.Table(emitter.TableBlockMeta), 2)
		assert.Len(t, log.Table(emitter.TableTransactions), 2)
	})

	t.Run("handles block without timestamp", func(t *testing.T) {
		t.Parallel()

		called := false
		sink := mocks.BaselineSink(t)
		sink.ApplyFunc = func(context.Context, *changes.Log) error {
			called = true
			return nil
		}
		proc := newProcessor(t, mocks.BaselineFeeder(t), sink)

		block := mocks.GenericBlock(mocks.GenericHeight)
		block.Header.Timestamp = nil

		log, err := proc.Process(ctx, block)

		require.Error(t, err)
		assert.ErrorIs(t, err, transform.ErrMissingField)
		assert.Contains(t, err.Error(), pipeline.NamespaceBlockMeta)
		assert.Nil(t, log)
		assert.False(t, called)
	})
}

func TestProcessor_Run(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		var logs []*changes.Log
		sink := mocks.BaselineSink(t)
		sink.ApplyFunc = func(_ context.Context, log *changes.Log) error {
			logs = append(logs, log)
			return nil
		}
		proc := newProcessor(t, mocks.BaselineFeeder(t), sink)

		err := proc.Run()

		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, 4, logs[0].Len())
	})

	t.Run("skips processed blocks when resuming", func(t *testing.T) {
		t.Parallel()

		heights := []uint64{mocks.GenericHeight, mocks.GenericHeight + 1}
		feed := &mocks.Feeder{}
		feed.BlockFunc = func() (*eth.Block, error) {
			if len(heights) == 0 {
				return nil, indexer.ErrFinished
			}
			height := heights[0]
			heights = heights[1:]
			return mocks.GenericBlock(height), nil
		}

		var processed []uint64
		sink := mocks.BaselineSink(t)
		sink.ApplyFunc = func(_ context.Context, log *changes.Log) error {
			for _, entry := range log.Entries() {
				processed = append(processed, entry.Ordinal)
			}
			return nil
		}
		proc := newProcessor(t, feed, sink, pipeline.WithLatest(true))

		_, err := proc.Process(context.Background(), mocks.GenericBlock(mocks.GenericHeight))
		require.NoError(t, err)
		processed = nil

		err = proc.Run()

		require.NoError(t, err)
		require.NotEmpty(t, processed)
		for _, ordinal := range processed {
			assert.Equal(t, mocks.GenericHeight+1, ordinal)
		}

		last, _, err := proc.Last()
		require.NoError(t, err)
		assert.Equal(t, mocks.GenericHeight+1, last)
	})

	t.Run("handles feeder failure", func(t *testing.T) {
		t.Parallel()

		feed := &mocks.Feeder{
			BlockFunc: func() (*eth.Block, error) {
				return nil, mocks.GenericError
			},
		}
		proc := newProcessor(t, feed, mocks.BaselineSink(t))

		err := proc.Run()

		assert.ErrorIs(t, err, mocks.GenericError)
	})

	t.Run("stops before next block", func(t *testing.T) {
		t.Parallel()

		feed := &mocks.Feeder{
			BlockFunc: func() (*eth.Block, error) {
				return mocks.GenericBlock(mocks.GenericHeight), nil
			},
		}
		called := false
		sink := mocks.BaselineSink(t)
		sink.ApplyFunc = func(context.Context, *changes.Log) error {
			called = true
			return nil
		}
		proc := newProcessor(t, feed, sink)

		proc.Stop()
		err := proc.Run()

		require.NoError(t, err)
		assert.False(t, called)
	})
}
