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

package helpers

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/optakt/block-changes/models/eth"
	"github.com/optakt/block-changes/service/feeder"
)

// BlockStream encodes the given blocks in the stream format read by the
// feeder.
func BlockStream(t *testing.T, blocks ...*eth.Block) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	write, err := feeder.NewWriter(&buf)
	require.NoError(t, err)
	for _, block := range blocks {
		require.NoError(t, write.Write(block))
	}
	require.NoError(t, write.Close())

	return &buf
}
