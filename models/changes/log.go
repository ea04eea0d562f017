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

// Log is the ordered, append-only list of change entries of one processing
// step.
type Log struct {
	entries []Entry
}

// NewLog creates an empty change log.
func NewLog() *Log {
	l := Log{
		entries: make([]Entry, 0, 8),
	}

	return &l
}

// Append adds the given entries at the end of the log, keeping their order.
func (l *Log) Append(entries ...Entry) {
	l.entries = append(l.entries, entries...)
}

// Len returns the number of entries in the log.
func (l *Log) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the entries of the log, in the order they were
// appended.
func (l *Log) Entries() []Entry {
	entries := make([]Entry, len(l.entries))
	copy(entries, l.entries)
	return entries
}

// Table returns the entries of the log that belong to the given table, in log
// order.
func (l *Log) Table(name string) []Entry {
	var entries []Entry
	for _, entry := range l.entries {
		if entry.Table == name {
			entries = append(entries, entry)
		}
	}
	return entries
}
