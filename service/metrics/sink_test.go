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

package metrics_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/block-changes/models/changes"
	"github.com/optakt/block-changes/service/metrics"
	"github.com/optakt/block-changes/testing/mocks"
)

func TestSink_Apply(t *testing.T) {
	log := changes.NewLog()
	log.Append(
		changes.Entry{Table: "block_meta", Key: "day:2024-01-01", Operation: changes.OperationCreate},
		changes.Entry{Table: "block_meta", Key: "month:2024-01", Operation: changes.OperationCreate},
		changes.Entry{Table: "transactions", Key: "0x01", Operation: changes.OperationUpdate},
	)

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		registry := prometheus.NewRegistry()
		sink := metrics.NewSink(mocks.BaselineSink(t), registry)

		err := sink.Apply(context.Background(), log)

		require.NoError(t, err)
		count, err := testutil.GatherAndCount(registry, "block_changes_entries_total")
		require.NoError(t, err)
		assert.Equal(t, 2, count)
		count, err = testutil.GatherAndCount(registry, "block_changes_apply_seconds")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("handles sink failure", func(t *testing.T) {
		t.Parallel()

		registry := prometheus.NewRegistry()
		wrapped := mocks.BaselineSink(t)
		wrapped.ApplyFunc = func(context.Context, *changes.Log) error {
			return mocks.GenericError
		}
		sink := metrics.NewSink(wrapped, registry)

		err := sink.Apply(context.Background(), log)

		assert.ErrorIs(t, err, mocks.GenericError)
		count, err := testutil.GatherAndCount(registry, "block_changes_entries_total")
		require.NoError(t, err)
		assert.Equal(t, 0, count)
		count, err = testutil.GatherAndCount(registry, "block_changes_failed_logs_total")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}
