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
)

// Column types, mapped to the type names of each database.
const (
	typeText = iota
	typeNumber
	typeTime
)

type column struct {
	name string
	typ  int
}

type table struct {
	name    string
	columns []column
}

// tables holds the relational layout the change log is replayed into. It
// covers every column tracked on creation or update.
var tables = []table{
	{
		name: "block_meta",
		columns: []column{
			{name: "at", typ: typeTime},
			{name: "size", typ: typeNumber},
			{name: "number", typ: typeNumber},
			{name: "gas_limit", typ: typeNumber},
			{name: "gas_used", typ: typeNumber},
			{name: "id", typ: typeText},
			{name: "hash", typ: typeText},
			{name: "uncle_hash", typ: typeText},
			{name: "receipt_root", typ: typeText},
			{name: "parent_hash", typ: typeText},
			{name: "timestamp", typ: typeTime},
		},
	},
	{
		name: "transactions",
		columns: []column{
			{name: "at", typ: typeTime},
			{name: "status", typ: typeText},
			{name: "gas_limit", typ: typeNumber},
			{name: "gas_used", typ: typeNumber},
			{name: "id", typ: typeText},
			{name: "hash", typ: typeText},
		},
	},
}

// dialect maps column types to the type names of a database.
type dialect map[int]string

var (
	dialectPostgres = dialect{
		typeText:   "TEXT",
		typeNumber: "NUMERIC",
		typeTime:   "TIMESTAMPTZ",
	}
	dialectSQLite = dialect{
		typeText:   "TEXT",
		typeNumber: "INTEGER",
		typeTime:   "TEXT",
	}
)

// schema returns the statements creating the tables, if they don't exist yet.
func schema(types dialect) []string {
	statements := make([]string, 0, len(tables))
	for _, table := range tables {
		definitions := make([]string, 0, len(table.columns)+1)
		definitions = append(definitions, fmt.Sprintf("%s TEXT PRIMARY KEY", quote(KeyColumn)))
		for _, column := range table.columns {
			definitions = append(definitions, fmt.Sprintf("%s %s", quote(column.name), types[column.typ]))
		}
		statement := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", quote(table.name), strings.Join(definitions, ", "))
		statements = append(statements, statement)
	}
	return statements
}
