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

package storage

import (
	"github.com/OneOfOne/xxhash"
	"github.com/dgraph-io/badger/v2"
)

// SaveLast is an operation that writes the height of the last processed block.
func (l *Library) SaveLast(height uint64) func(*badger.Txn) error {
	return l.save(EncodeKey(PrefixLast), height)
}

// SaveRecord is an operation that writes the record stored under the given key
// of a namespace.
func (l *Library) SaveRecord(namespace string, key string, record interface{}) func(*badger.Txn) error {
	return l.save(recordKey(namespace, key), record)
}

// RetrieveLast retrieves the height of the last processed block.
func (l *Library) RetrieveLast(height *uint64) func(*badger.Txn) error {
	return l.retrieve(EncodeKey(PrefixLast), height)
}

// RetrieveRecord retrieves the record stored under the given key of a namespace.
func (l *Library) RetrieveRecord(namespace string, key string, record interface{}) func(*badger.Txn) error {
	return l.retrieve(recordKey(namespace, key), record)
}

// Namespaces are hashed so that record keys have a fixed-length prefix and the
// keys of one namespace can never collide with those of another.
func recordKey(namespace string, key string) []byte {
	hash := xxhash.ChecksumString64(namespace)
	return EncodeKey(PrefixRecord, hash, key)
}
