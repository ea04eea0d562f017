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

package meta

import (
	"fmt"
	"strings"
	"time"
)

const (
	prefixDay   = "day:"
	prefixMonth = "month:"

	layoutDay   = "2006-01-02"
	layoutMonth = "2006-01"
)

// BlockTimestamp is the time of a block, used to derive the period keys under
// which block metadata is stored.
type BlockTimestamp struct {
	time time.Time
}

// NewBlockTimestamp wraps the given block time. Periods are always computed in
// UTC.
func NewBlockTimestamp(t time.Time) BlockTimestamp {
	return BlockTimestamp{time: t.UTC()}
}

// TimestampFromKey parses a day or month key back into the timestamp of the
// start of its period.
func TimestampFromKey(key string) (BlockTimestamp, error) {
	var layout string
	var value string
	switch {
	case strings.HasPrefix(key, prefixDay):
		layout = layoutDay
		value = strings.TrimPrefix(key, prefixDay)
	case strings.HasPrefix(key, prefixMonth):
		layout = layoutMonth
		value = strings.TrimPrefix(key, prefixMonth)
	default:
		return BlockTimestamp{}, fmt.Errorf("unknown period key (%s)", key)
	}

	t, err := time.ParseInLocation(layout, value, time.UTC)
	if err != nil {
		return BlockTimestamp{}, fmt.Errorf("could not parse period key (%s): %w", key, err)
	}

	return NewBlockTimestamp(t), nil
}

// Time returns the wrapped time.
func (b BlockTimestamp) Time() time.Time {
	return b.time
}

// DayKey returns the key of the block's day, such as "day:2024-01-01".
func (b BlockTimestamp) DayKey() string {
	return prefixDay + b.time.Format(layoutDay)
}

// MonthKey returns the key of the block's month, such as "month:2024-01".
func (b BlockTimestamp) MonthKey() string {
	return prefixMonth + b.time.Format(layoutMonth)
}

func (b BlockTimestamp) String() string {
	return b.time.Format(time.RFC3339)
}
