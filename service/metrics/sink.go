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

package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/optakt/block-changes/models/changes"
	"github.com/optakt/block-changes/models/indexer"
)

const (
	labelTable     = "table"
	labelOperation = "operation"
)

// Sink wraps a sink and records metrics for the change logs it applies.
type Sink struct {
	sink indexer.Sink

	entries  *prometheus.CounterVec
	failures prometheus.Counter
	duration prometheus.Histogram
}

// NewSink creates a sink that records metrics on the given registerer before
// forwarding change logs to the wrapped sink.
func NewSink(sink indexer.Sink, registerer prometheus.Registerer) *Sink {
	factory := promauto.With(registerer)

	entriesOpts := prometheus.CounterOpts{
		Name: "block_changes_entries_total",
		Help: "the number of applied change entries",
	}
	entries := factory.NewCounterVec(entriesOpts, []string{labelTable, labelOperation})

	failuresOpts := prometheus.CounterOpts{
		Name: "block_changes_failed_logs_total",
		Help: "the number of change logs that could not be applied",
	}
	failures := factory.NewCounter(failuresOpts)

	durationOpts := prometheus.HistogramOpts{
		Name:    "block_changes_apply_seconds",
		Help:    "the time it takes to apply a change log",
		Buckets: prometheus.DefBuckets,
	}
	duration := factory.NewHistogram(durationOpts)

	s := Sink{
		sink: sink,

		entries:  entries,
		failures: failures,
		duration: duration,
	}

	return &s
}

// Apply forwards the change log to the wrapped sink. Entries are only counted
// once the log was applied successfully.
func (s *Sink) Apply(ctx context.Context, log *changes.Log) error {
	start := time.Now()
	err := s.sink.Apply(ctx, log)
	s.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.failures.Inc()
		return err
	}

	for _, entry := range log.Entries() {
		s.entries.WithLabelValues(entry.Table, entry.Operation.String()).Inc()
	}

	return nil
}
