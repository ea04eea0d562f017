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

package mocks

import (
	"testing"

	"github.com/dgraph-io/badger/v2"
)

type Library struct {
	SaveLastFunc       func(height uint64) func(*badger.Txn) error
	SaveRecordFunc     func(namespace string, key string, record interface{}) func(*badger.Txn) error
	RetrieveLastFunc   func(height *uint64) func(*badger.Txn) error
	RetrieveRecordFunc func(namespace string, key string, record interface{}) func(*badger.Txn) error
}

// BaselineLibrary returns a library whose writes succeed without touching the
// database and whose reads never find anything.
func BaselineLibrary(t *testing.T) *Library {
	t.Helper()

	l := Library{
		SaveLastFunc: func(uint64) func(*badger.Txn) error {
			return noop
		},
		SaveRecordFunc: func(string, string, interface{}) func(*badger.Txn) error {
			return noop
		},
		RetrieveLastFunc: func(*uint64) func(*badger.Txn) error {
			return notFound
		},
		RetrieveRecordFunc: func(string, string, interface{}) func(*badger.Txn) error {
			return notFound
		},
	}

	return &l
}

func (l *Library) SaveLast(height uint64) func(*badger.Txn) error {
	return l.SaveLastFunc(height)
}

func (l *Library) SaveRecord(namespace string, key string, record interface{}) func(*badger.Txn) error {
	return l.SaveRecordFunc(namespace, key, record)
}

func (l *Library) RetrieveLast(height *uint64) func(*badger.Txn) error {
	return l.RetrieveLastFunc(height)
}

func (l *Library) RetrieveRecord(namespace string, key string, record interface{}) func(*badger.Txn) error {
	return l.RetrieveRecordFunc(namespace, key, record)
}

func noop(*badger.Txn) error {
	return nil
}

func notFound(*badger.Txn) error {
	return badger.ErrKeyNotFound
}
