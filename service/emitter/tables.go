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

package emitter

import (
	"strconv"
	"time"

	"github.com/optakt/block-changes/models/changes"
	"github.com/optakt/block-changes/models/meta"
)

// Table names used in the change log.
const (
	TableBlockMeta    = "block_meta"
	TableTransactions = "transactions"
)

// BlockMetaTable tracks block metadata stored under period keys. Updates track
// a narrower set of columns than creations; hashes and the timestamp are only
// written when the row is created.
var BlockMetaTable = changes.Table[meta.BlockMeta]{
	Name: TableBlockMeta,
	Create: []changes.Column[meta.BlockMeta]{
		{Name: "at", Value: periodStart},
		text("size", func(b meta.BlockMeta) string { return number(b.Size) }),
		text("number", func(b meta.BlockMeta) string { return number(b.Number) }),
		text("gas_limit", func(b meta.BlockMeta) string { return number(b.GasLimit) }),
		text("gas_used", func(b meta.BlockMeta) string { return number(b.GasUsed) }),
		text("id", func(b meta.BlockMeta) string { return b.ID }),
		text("hash", func(b meta.BlockMeta) string { return b.Hash }),
		text("uncle_hash", func(b meta.BlockMeta) string { return b.UncleHash }),
		text("receipt_root", func(b meta.BlockMeta) string { return b.ReceiptRoot }),
		text("parent_hash", func(b meta.BlockMeta) string { return b.ParentHash }),
		text("timestamp", func(b meta.BlockMeta) string { return timestamp(b.Timestamp) }),
	},
	Update: []changes.Column[meta.BlockMeta]{
		text("number", func(b meta.BlockMeta) string { return number(b.Number) }),
		text("size", func(b meta.BlockMeta) string { return number(b.Size) }),
		text("gas_limit", func(b meta.BlockMeta) string { return number(b.GasLimit) }),
		text("gas_used", func(b meta.BlockMeta) string { return number(b.GasUsed) }),
		text("id", func(b meta.BlockMeta) string { return b.ID }),
	},
}

// TransactionsTable tracks successfully executed transactions. The hash column
// mirrors the identifier.
var TransactionsTable = changes.Table[meta.Transaction]{
	Name: TableTransactions,
	Create: []changes.Column[meta.Transaction]{
		text("status", func(t meta.Transaction) string { return t.Status }),
		text("gas_limit", func(t meta.Transaction) string { return number(t.GasLimit) }),
		text("gas_used", func(t meta.Transaction) string { return number(t.GasUsed) }),
		text("id", func(t meta.Transaction) string { return t.ID }),
		text("hash", func(t meta.Transaction) string { return t.ID }),
	},
	Update: []changes.Column[meta.Transaction]{
		text("at", func(t meta.Transaction) string { return timestamp(t.Timestamp) }),
		text("status", func(t meta.Transaction) string { return t.Status }),
		text("gas_limit", func(t meta.Transaction) string { return number(t.GasLimit) }),
		text("gas_used", func(t meta.Transaction) string { return number(t.GasUsed) }),
		text("id", func(t meta.Transaction) string { return t.ID }),
		text("hash", func(t meta.Transaction) string { return t.ID }),
	},
}

func text[R any](name string, value func(R) string) changes.Column[R] {
	return changes.Column[R]{
		Name: name,
		Value: func(_ string, record R) (string, error) {
			return value(record), nil
		},
	}
}

// periodStart renders the start of the period the key refers to, rather than
// the block time itself.
func periodStart(key string, _ meta.BlockMeta) (string, error) {
	ts, err := meta.TimestampFromKey(key)
	if err != nil {
		return "", err
	}
	return timestamp(ts.Time()), nil
}

func number(n uint64) string {
	return strconv.FormatUint(n, 10)
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
