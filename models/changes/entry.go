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

package changes

// Field is the change of a single column. A nil value means the value is
// absent, which is distinct from an empty string.
type Field struct {
	Name     string
	OldValue *string
	NewValue *string
}

// Entry is the column-level change of one row, derived from one delta.
type Entry struct {
	Table     string
	Key       string
	Ordinal   uint64
	Operation Operation
	Fields    []Field
}

// Field returns the change for the column with the given name.
func (e Entry) Field(name string) (Field, bool) {
	for _, field := range e.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// Columns returns the column names of the entry in declaration order.
func (e Entry) Columns() []string {
	names := make([]string, 0, len(e.Fields))
	for _, field := range e.Fields {
		names = append(names, field.Name)
	}
	return names
}
