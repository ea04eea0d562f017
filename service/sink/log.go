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

	"github.com/rs/zerolog"

	"github.com/optakt/block-changes/models/changes"
)

// Log writes every change entry to the logger instead of a database. It is
// meant for dry runs.
type Log struct {
	log zerolog.Logger
}

// NewLog creates a sink that logs change entries.
func NewLog(log zerolog.Logger) *Log {
	l := Log{
		log: log.With().Str("component", "sink").Logger(),
	}

	return &l
}

// Apply logs the entries of the change log, in order.
func (l *Log) Apply(_ context.Context, log *changes.Log) error {
	for _, entry := range log.Entries() {
		fields := zerolog.Dict()
		for _, field := range entry.Fields {
			if field.NewValue == nil {
				fields = fields.Interface(field.Name, nil)
				continue
			}
			fields = fields.Str(field.Name, *field.NewValue)
		}
		l.log.Info().
			Str("table", entry.Table).
			Str("key", entry.Key).
			Uint64("ordinal", entry.Ordinal).
			Str("operation", entry.Operation.String()).
			Dict("fields", fields).
			Msg("change entry")
	}
	return nil
}
