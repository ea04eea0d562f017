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

package snapshot

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/dgraph-io/badger/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/optakt/block-changes/models/indexer"
)

// Create writes a zstd-compressed backup of the record store database to the
// writer. It returns the height of the last processed block contained in the
// snapshot, if there is one.
func Create(db *badger.DB, lib indexer.ReadLibrary, w io.Writer) (uint64, error) {

	var last uint64
	err := db.View(lib.RetrieveLast(&last))
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return 0, fmt.Errorf("could not retrieve last processed height: %w", err)
	}

	compressor, err := zstd.NewWriter(w)
	if err != nil {
		return 0, fmt.Errorf("could not initialize compressor: %w", err)
	}
	_, err = db.Backup(compressor, 0)
	if err != nil {
		compressor.Close()
		return 0, fmt.Errorf("could not back up database: %w", err)
	}
	err = compressor.Close()
	if err != nil {
		return 0, fmt.Errorf("could not flush compressor: %w", err)
	}

	return last, nil
}

// Restore loads a snapshot created with Create into the database. The
// database must not contain any processed state yet.
func Restore(db *badger.DB, lib indexer.ReadLibrary, r io.Reader) (uint64, error) {

	var last uint64
	err := db.View(lib.RetrieveLast(&last))
	if err == nil {
		return 0, fmt.Errorf("%w (last: %d)", ErrNotEmpty, last)
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		return 0, fmt.Errorf("could not check database state: %w", err)
	}

	decompressor, err := zstd.NewReader(r)
	if err != nil {
		return 0, fmt.Errorf("could not initialize decompressor: %w", err)
	}
	defer decompressor.Close()

	err = db.Load(decompressor, runtime.GOMAXPROCS(0))
	if err != nil {
		return 0, fmt.Errorf("could not load snapshot: %w", err)
	}

	err = db.View(lib.RetrieveLast(&last))
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return 0, fmt.Errorf("could not retrieve restored height: %w", err)
	}

	return last, nil
}
