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
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/optakt/block-changes/models/changes"
)

// Postgres replays change logs into a Postgres database, one transaction per
// log.
type Postgres struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to the Postgres database behind the given connection
// string and creates the tables the change log is replayed into.
func OpenPostgres(ctx context.Context, conn string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(conn)
	if err != nil {
		return nil, fmt.Errorf("could not parse connection string: %w", err)
	}

	// All values of the change log are rendered as text; the simple protocol
	// lets the server convert them to the column types.
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not create connection pool: %w", err)
	}
	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("could not reach database: %w", err)
	}

	for _, statement := range schema(dialectPostgres) {
		_, err = pool.Exec(ctx, statement)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("could not create table: %w", err)
		}
	}

	p := Postgres{
		pool: pool,
	}

	return &p, nil
}

// Apply replays all entries of the log, in order, within a single transaction.
func (p *Postgres) Apply(ctx context.Context, log *changes.Log) error {
	err := pgx.BeginFunc(ctx, p.pool, func(tx pgx.Tx) error {
		for _, entry := range log.Entries() {
			statement, err := Build(entry, Positional)
			if err != nil {
				return fmt.Errorf("could not build statement: %w", err)
			}
			tag, err := tx.Exec(ctx, statement.Query, statement.Args...)
			if err != nil {
				return fmt.Errorf("could not execute statement (table: %s, key: %s): %w", entry.Table, entry.Key, err)
			}
			if entry.Operation == changes.OperationUpdate && tag.RowsAffected() == 0 {
				return fmt.Errorf("could not update row (table: %s, key: %s): %w", entry.Table, entry.Key, ErrRowNotFound)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("could not apply change log: %w", err)
	}

	return nil
}

// Close closes all connections of the pool.
func (p *Postgres) Close() {
	p.pool.Close()
}
