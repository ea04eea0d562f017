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
	"github.com/optakt/block-changes/models/meta"
)

// Namespaces under which the record stores keep their values.
const (
	NamespaceBlockMeta    = "block_meta"
	NamespaceTransactions = "transactions"
)

// DefaultConfig is the default configuration for the processor.
var DefaultConfig = Config{
	Latest:         false,
	TransactionKey: TransactionID,
}

// Config contains optional parameters we can set for the processor.
type Config struct {
	Latest         bool
	TransactionKey func(meta.Transaction) string
}

// WithLatest makes later writes for a key replace earlier ones, which results
// in update changes. By default, only the first record written for a key is
// kept.
func WithLatest(latest bool) func(*Config) {
	return func(cfg *Config) {
		cfg.Latest = latest
	}
}

// WithTransactionKey sets the function used to derive the store key of each
// transaction.
func WithTransactionKey(key func(meta.Transaction) string) func(*Config) {
	return func(cfg *Config) {
		cfg.TransactionKey = key
	}
}

// TransactionID keys each transaction by its own identifier.
func TransactionID(transaction meta.Transaction) string {
	return transaction.ID
}

// ConstantTransactionKey stores every transaction under the same key, so that
// only the first transaction ever seen is kept.
func ConstantTransactionKey(meta.Transaction) string {
	return "transaction.id"
}
