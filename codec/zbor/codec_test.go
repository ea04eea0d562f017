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

package zbor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/block-changes/codec/zbor"
	"github.com/optakt/block-changes/models/meta"
	"github.com/optakt/block-changes/testing/mocks"
)

func TestCodec(t *testing.T) {
	codec := zbor.NewCodec()

	t.Run("marshals and unmarshals records", func(t *testing.T) {
		data, err := codec.Marshal(mocks.GenericBlockMeta)
		require.NoError(t, err)

		var got meta.BlockMeta
		err = codec.Unmarshal(data, &got)
		require.NoError(t, err)

		assert.True(t, mocks.GenericBlockMeta.Timestamp.Equal(got.Timestamp))
		got.Timestamp = mocks.GenericBlockMeta.Timestamp
		assert.Equal(t, mocks.GenericBlockMeta, got)
	})

	t.Run("encoding is canonical", func(t *testing.T) {
		first, err := codec.Encode(mocks.GenericTransaction)
		require.NoError(t, err)
		second, err := codec.Encode(mocks.GenericTransaction)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("handles corrupted data", func(t *testing.T) {
		var got meta.BlockMeta
		err := codec.Unmarshal(mocks.GenericBytes, &got)
		assert.Error(t, err)
	})
}
