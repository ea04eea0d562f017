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

package emitter

import (
	"fmt"

	"github.com/optakt/block-changes/models/changes"
)

// Emit turns the deltas of one record kind into change entries for the given
// table, one entry per delta and in delta order. If any delta can not be
// converted, no entries are returned for the table.
func Emit[R any](table changes.Table[R], deltas []changes.Delta[R]) ([]changes.Entry, error) {
	entries := make([]changes.Entry, 0, len(deltas))
	for _, delta := range deltas {
		entry, err := emit(table, delta)
		if err != nil {
			return nil, fmt.Errorf("could not emit change (table: %s, key: %s, ordinal: %d): %w", table.Name, delta.Key, delta.Ordinal, err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func emit[R any](table changes.Table[R], delta changes.Delta[R]) (changes.Entry, error) {
	var fields []changes.Field
	var err error
	switch delta.Operation {

	case changes.OperationCreate:
		if delta.NewValue == nil {
			return changes.Entry{}, fmt.Errorf("missing new value for creation")
		}
		fields, err = diff(table.Create, delta.Key, nil, delta.NewValue)

	case changes.OperationUpdate:
		if delta.OldValue == nil || delta.NewValue == nil {
			return changes.Entry{}, fmt.Errorf("missing old or new value for update")
		}
		fields, err = diff(table.Update, delta.Key, delta.OldValue, delta.NewValue)

	case changes.OperationDelete:
		// Deletions are only converted for tables that explicitly declare which
		// columns they track on deletion.
		if table.Delete == nil {
			return changes.Entry{}, fmt.Errorf("%w: %s", ErrUnsupportedOperation, delta.Operation)
		}
		if delta.OldValue == nil {
			return changes.Entry{}, fmt.Errorf("missing old value for deletion")
		}
		fields, err = diff(table.Delete, delta.Key, delta.OldValue, nil)

	default:
		return changes.Entry{}, fmt.Errorf("%w: %s", ErrUnsupportedOperation, delta.Operation)
	}
	if err != nil {
		return changes.Entry{}, err
	}

	entry := changes.Entry{
		Table:     table.Name,
		Key:       delta.Key,
		Ordinal:   delta.Ordinal,
		Operation: delta.Operation,
		Fields:    fields,
	}

	return entry, nil
}

func diff[R any](columns []changes.Column[R], key string, before *R, after *R) ([]changes.Field, error) {
	fields := make([]changes.Field, 0, len(columns))
	for _, column := range columns {
		field := changes.Field{Name: column.Name}
		if before != nil {
			value, err := column.Value(key, *before)
			if err != nil {
				return nil, fmt.Errorf("could not render old value (column: %s): %w", column.Name, err)
			}
			field.OldValue = &value
		}
		if after != nil {
			value, err := column.Value(key, *after)
			if err != nil {
				return nil, fmt.Errorf("could not render new value (column: %s): %w", column.Name, err)
			}
			field.NewValue = &value
		}
		fields = append(fields, field)
	}

	return fields, nil
}
