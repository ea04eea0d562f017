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

package indexer

import (
	"github.com/dgraph-io/badger/v2"
)

// Library is the set of Badger operations used by the record stores.
type Library interface {
	ReadLibrary
	WriteLibrary
}

type ReadLibrary interface {
	RetrieveLast(height *uint64) func(*badger.Txn) error
	RetrieveRecord(namespace string, key string, record interface{}) func(*badger.Txn) error
}

type WriteLibrary interface {
	SaveLast(height uint64) func(*badger.Txn) error
	SaveRecord(namespace string, key string, record interface{}) func(*badger.Txn) error
}
