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

package storage_test

import (
	"errors"
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/block-changes/codec/zbor"
	"github.com/optakt/block-changes/models/meta"
	"github.com/optakt/block-changes/service/storage"
	"github.com/optakt/block-changes/testing/helpers"
	"github.com/optakt/block-changes/testing/mocks"
)

func TestSaveAndRetrieve_Last(t *testing.T) {
	db := helpers.InMemoryDB(t)
	lib := storage.New(zbor.NewCodec())

	t.Run("missing last height", func(t *testing.T) {
		var got uint64
		err := db.View(lib.RetrieveLast(&got))

		assert.True(t, errors.Is(err, badger.ErrKeyNotFound))
	})

	t.Run("save last height", func(t *testing.T) {
		err := db.Update(lib.SaveLast(42))
		assert.NoError(t, err)
	})

	t.Run("retrieve last height", func(t *testing.T) {
		var got uint64
		err := db.View(lib.RetrieveLast(&got))

		assert.NoError(t, err)
		assert.Equal(t, uint64(42), got)
	})
}

func TestSaveAndRetrieve_Record(t *testing.T) {
	db := helpers.InMemoryDB(t)
	lib := storage.New(zbor.NewCodec())

	t.Run("save record", func(t *testing.T) {
		err := db.Update(lib.SaveRecord("block_meta", mocks.GenericDayKey, mocks.GenericBlockMeta))
		assert.NoError(t, err)
	})

	t.Run("retrieve record", func(t *testing.T) {
		var got meta.BlockMeta
		err := db.View(lib.RetrieveRecord("block_meta", mocks.GenericDayKey, &got))

		require.NoError(t, err)
		assert.Equal(t, mocks.GenericBlockMeta.Number, got.Number)
		assert.Equal(t, mocks.GenericBlockMeta.Hash, got.Hash)
	})

	t.Run("records are scoped to their namespace", func(t *testing.T) {
		var got meta.BlockMeta
		err := db.View(lib.RetrieveRecord("transactions", mocks.GenericDayKey, &got))

		assert.True(t, errors.Is(err, badger.ErrKeyNotFound))
	})
}

func TestSave_CodecFailure(t *testing.T) {
	db := helpers.InMemoryDB(t)
	codec := mocks.BaselineCodec(t)
	codec.MarshalFunc = func(interface{}) ([]byte, error) {
		return nil, mocks.GenericError
	}
	lib := storage.New(codec)

	err := db.Update(lib.SaveLast(42))
	assert.True(t, errors.Is(err, mocks.GenericError))
}

func TestCombine(t *testing.T) {
	db := helpers.InMemoryDB(t)
	lib := storage.New(zbor.NewCodec())

	t.Run("executes all operations", func(t *testing.T) {
		err := db.Update(storage.Combine(
			lib.SaveLast(7),
			lib.SaveRecord("block_meta", mocks.GenericMonthKey, mocks.GenericBlockMeta),
		))
		require.NoError(t, err)

		var got uint64
		require.NoError(t, db.View(lib.RetrieveLast(&got)))
		assert.Equal(t, uint64(7), got)
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		called := false
		err := db.Update(storage.Combine(
			func(*badger.Txn) error { return mocks.GenericError },
			func(*badger.Txn) error { called = true; return nil },
		))

		assert.True(t, errors.Is(err, mocks.GenericError))
		assert.False(t, called)
	})
}
