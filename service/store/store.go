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

package store

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dgraph-io/badger/v2"

	"github.com/optakt/block-changes/models/changes"
	"github.com/optakt/block-changes/models/indexer"
	"github.com/optakt/block-changes/service/storage"
)

// Store keeps the latest record for each key of one namespace. Writes made
// during a step are kept in memory and recorded as deltas; they only reach the
// database when the operation returned by Flush is executed.
type Store[R any] struct {
	db        *badger.DB
	lib       indexer.Library
	namespace string

	pending map[string]R
	order   []string
	deltas  []changes.Delta[R]
}

// New creates a store for the given namespace on top of a Badger database.
func New[R any](db *badger.DB, lib indexer.Library, namespace string) *Store[R] {
	s := Store[R]{
		db:        db,
		lib:       lib,
		namespace: namespace,

		pending: make(map[string]R),
	}

	return &s
}

// Namespace returns the namespace of the store.
func (s *Store[R]) Namespace() string {
	return s.namespace
}

// SetIfNotExists sets the value for the key, unless a value already exists for
// it, either from a previous step or from an earlier write of this step. Only
// the first write for a key ever results in a delta.
func (s *Store[R]) SetIfNotExists(ordinal uint64, key string, value R) error {
	_, ok, err := s.lookup(key)
	if err != nil {
		return fmt.Errorf("could not look up record (key: %s): %w", key, err)
	}
	if ok {
		return nil
	}

	s.write(ordinal, key, nil, value)

	return nil
}

// Set sets the value for the key, replacing any existing value. Replacing an
// existing value results in an update delta that carries the previous value.
func (s *Store[R]) Set(ordinal uint64, key string, value R) error {
	old, ok, err := s.lookup(key)
	if err != nil {
		return fmt.Errorf("could not look up record (key: %s): %w", key, err)
	}
	if !ok {
		s.write(ordinal, key, nil, value)
		return nil
	}

	s.write(ordinal, key, &old, value)

	return nil
}

// Get returns the current value for the key, including writes of the ongoing
// step.
func (s *Store[R]) Get(key string) (R, bool, error) {
	return s.lookup(key)
}

// Deltas returns the deltas of the ongoing step, ordered by ordinal. Deltas
// with the same ordinal keep the order in which they were written.
func (s *Store[R]) Deltas() []changes.Delta[R] {
	deltas := make([]changes.Delta[R], len(s.deltas))
	copy(deltas, s.deltas)
	sort.SliceStable(deltas, func(i, j int) bool {
		return deltas[i].Ordinal < deltas[j].Ordinal
	})
	return deltas
}

// Flush returns an operation that persists the values written during the
// ongoing step. It does not reset the step; see Reset.
func (s *Store[R]) Flush() func(*badger.Txn) error {
	ops := make([]func(*badger.Txn) error, 0, len(s.order))
	for _, key := range s.order {
		ops = append(ops, s.lib.SaveRecord(s.namespace, key, s.pending[key]))
	}
	return storage.Combine(ops...)
}

// Reset discards the values and deltas of the ongoing step.
func (s *Store[R]) Reset() {
	s.pending = make(map[string]R)
	s.order = nil
	s.deltas = nil
}

func (s *Store[R]) write(ordinal uint64, key string, old *R, value R) {
	_, seen := s.pending[key]
	if !seen {
		s.order = append(s.order, key)
	}
	s.pending[key] = value

	operation := changes.OperationCreate
	if old != nil {
		operation = changes.OperationUpdate
	}
	delta := changes.Delta[R]{
		Key:       key,
		Operation: operation,
		Ordinal:   ordinal,
		OldValue:  old,
		NewValue:  &value,
	}
	s.deltas = append(s.deltas, delta)
}

func (s *Store[R]) lookup(key string) (R, bool, error) {
	value, ok := s.pending[key]
	if ok {
		return value, true, nil
	}

	var record R
	err := s.db.View(s.lib.RetrieveRecord(s.namespace, key, &record))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return record, false, nil
	}
	if err != nil {
		return record, false, err
	}

	return record, true, nil
}
