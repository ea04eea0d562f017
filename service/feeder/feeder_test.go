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

package feeder_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/block-changes/models/indexer"
	"github.com/optakt/block-changes/service/feeder"
	"github.com/optakt/block-changes/testing/helpers"
	"github.com/optakt/block-changes/testing/mocks"
)

func TestFeeder_Block(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		first := mocks.GenericBlock(mocks.GenericHeight)
		second := mocks.GenericBlock(mocks.GenericHeight + 1)
		stream := helpers.BlockStream(t, first, second)

		feed, err := feeder.FromStream(stream)
		require.NoError(t, err)
		defer feed.Close()

		got, err := feed.Block()
		require.NoError(t, err)
		assert.Equal(t, first.Number, got.Number)
		assert.Equal(t, first.Hash, got.Hash)
		require.NotNil(t, got.Header)
		require.NotNil(t, got.Header.Timestamp)
		assert.True(t, first.Header.Timestamp.Equal(*got.Header.Timestamp))
		assert.Equal(t, first.TransactionTraces, got.TransactionTraces)

		got, err = feed.Block()
		require.NoError(t, err)
		assert.Equal(t, second.Number, got.Number)

		_, err = feed.Block()
		assert.True(t, errors.Is(err, indexer.ErrFinished))
	})

	t.Run("keeps absent timestamps absent", func(t *testing.T) {
		t.Parallel()

		block := mocks.GenericBlock(mocks.GenericHeight)
		block.Header.Timestamp = nil
		stream := helpers.BlockStream(t, block)

		feed, err := feeder.FromStream(stream)
		require.NoError(t, err)
		defer feed.Close()

		got, err := feed.Block()
		require.NoError(t, err)
		require.NotNil(t, got.Header)
		assert.Nil(t, got.Header.Timestamp)
	})

	t.Run("empty stream is finished", func(t *testing.T) {
		t.Parallel()

		stream := helpers.BlockStream(t)

		feed, err := feeder.FromStream(stream)
		require.NoError(t, err)
		defer feed.Close()

		_, err = feed.Block()
		assert.True(t, errors.Is(err, indexer.ErrFinished))
	})

	t.Run("handles corrupted stream", func(t *testing.T) {
		t.Parallel()

		feed, err := feeder.FromStream(bytes.NewReader(mocks.GenericBytes))
		require.NoError(t, err)
		defer feed.Close()

		_, err = feed.Block()
		assert.Error(t, err)
		assert.False(t, errors.Is(err, indexer.ErrFinished))
	})
}
