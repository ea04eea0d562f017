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

package sink

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the pure Go SQLite driver under the name "sqlite".
	_ "modernc.org/sqlite"

	"github.com/optakt/block-changes/models/changes"
)

// SQLite replays change logs into a SQLite database, one transaction per log.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens the SQLite database at the given path and creates the
// tables the change log is replayed into.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	// SQLite only supports one writer at a time, and in-memory databases only
	// exist as long as their connection.
	db.SetMaxOpenConns(1)

	for _, statement := range schema(dialectSQLite) {
		_, err = db.ExecContext(ctx, statement)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("could not create table: %w", err)
		}
	}

	s := SQLite{
		db: db,
	}

	return &s, nil
}

// DB gives access to the underlying database.
func (s *SQLite) DB() *sql.DB {
	return s.db
}

// Apply replays all entries of the log, in order, within a single transaction.
func (s *SQLite) Apply(ctx context.Context, log *changes.Log) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, entry := range log.Entries() {
		statement, err := Build(entry, Anonymous)
		if err != nil {
			return fmt.Errorf("could not build statement: %w", err)
		}
		result, err := tx.ExecContext(ctx, statement.Query, statement.Args...)
		if err != nil {
			return fmt.Errorf("could not execute statement (table: %s, key: %s): %w", entry.Table, entry.Key, err)
		}
		if entry.Operation != changes.OperationUpdate {
			continue
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("could not count updated rows (table: %s, key: %s): %w", entry.Table, entry.Key, err)
		}
		if affected == 0 {
			return fmt.Errorf("could not update row (table: %s, key: %s): %w", entry.Table, entry.Key, ErrRowNotFound)
		}
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
