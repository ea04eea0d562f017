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
	"fmt"
	"strings"

	"github.com/optakt/block-changes/models/changes"
)

// KeyColumn is the primary key column of every table; it holds the key of the
// change entry.
const KeyColumn = "key"

// Statement is a parameterized SQL statement.
type Statement struct {
	Query string
	Args  []interface{}
}

// Placeholder renders the placeholder of the parameter at the given one-based
// position.
type Placeholder func(position int) string

// Positional renders numbered placeholders, as used by Postgres.
func Positional(position int) string {
	return fmt.Sprintf("$%d", position)
}

// Anonymous renders question mark placeholders, as used by SQLite.
func Anonymous(int) string {
	return "?"
}

// Build creates the statement that replays the given change entry. Creations
// are upserts, so that replaying a step that was already applied is harmless.
// Updates expect the row to exist; sinks fail the log when none was affected.
func Build(entry changes.Entry, placeholder Placeholder) (Statement, error) {
	switch entry.Operation {
	case changes.OperationCreate:
		return insert(entry, placeholder), nil
	case changes.OperationUpdate:
		if len(entry.Fields) == 0 {
			return Statement{}, fmt.Errorf("update without fields (table: %s, key: %s)", entry.Table, entry.Key)
		}
		return update(entry, placeholder), nil
	case changes.OperationDelete:
		return remove(entry, placeholder), nil
	default:
		return Statement{}, fmt.Errorf("unsupported operation (%s)", entry.Operation)
	}
}

func insert(entry changes.Entry, placeholder Placeholder) Statement {
	columns := make([]string, 0, len(entry.Fields)+1)
	values := make([]string, 0, len(entry.Fields)+1)
	updates := make([]string, 0, len(entry.Fields))
	args := make([]interface{}, 0, len(entry.Fields)+1)

	columns = append(columns, quote(KeyColumn))
	values = append(values, placeholder(1))
	args = append(args, entry.Key)
	for _, field := range entry.Fields {
		args = append(args, value(field.NewValue))
		columns = append(columns, quote(field.Name))
		values = append(values, placeholder(len(args)))
		updates = append(updates, fmt.Sprintf("%s = excluded.%s", quote(field.Name), quote(field.Name)))
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(entry.Table),
		strings.Join(columns, ", "),
		strings.Join(values, ", "),
	)
	if len(updates) == 0 {
		query += fmt.Sprintf(" ON CONFLICT (%s) DO NOTHING", quote(KeyColumn))
	} else {
		query += fmt.Sprintf(" ON CONFLICT (%s) DO UPDATE SET %s", quote(KeyColumn), strings.Join(updates, ", "))
	}

	return Statement{Query: query, Args: args}
}

func update(entry changes.Entry, placeholder Placeholder) Statement {
	sets := make([]string, 0, len(entry.Fields))
	args := make([]interface{}, 0, len(entry.Fields)+1)
	for _, field := range entry.Fields {
		args = append(args, value(field.NewValue))
		sets = append(sets, fmt.Sprintf("%s = %s", quote(field.Name), placeholder(len(args))))
	}
	args = append(args, entry.Key)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s",
		quote(entry.Table),
		strings.Join(sets, ", "),
		quote(KeyColumn),
		placeholder(len(args)),
	)

	return Statement{Query: query, Args: args}
}

func remove(entry changes.Entry, placeholder Placeholder) Statement {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = %s",
		quote(entry.Table),
		quote(KeyColumn),
		placeholder(1),
	)

	return Statement{Query: query, Args: []interface{}{entry.Key}}
}

func value(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func quote(identifier string) string {
	return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
}
