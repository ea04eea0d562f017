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

package sink_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/block-changes/models/changes"
	"github.com/optakt/block-changes/service/sink"
)

func TestLog_Apply(t *testing.T) {
	var buf bytes.Buffer
	out := sink.NewLog(zerolog.New(&buf))

	log := changes.NewLog()
	log.Append(changes.Entry{
		Table:     "transactions",
		Key:       "0x01",
		Ordinal:   100,
		Operation: changes.OperationCreate,
		Fields: []changes.Field{
			{Name: "status", NewValue: value("1")},
		},
	})

	err := out.Apply(context.Background(), log)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"table":"transactions"`)
	assert.Contains(t, buf.String(), `"operation":"create"`)
	assert.Contains(t, buf.String(), `"fields":{"status":"1"}`)
}
