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

package mocks

import (
	"context"
	"testing"

	"github.com/optakt/block-changes/models/changes"
)

type Sink struct {
	ApplyFunc func(ctx context.Context, log *changes.Log) error
}

func BaselineSink(t *testing.T) *Sink {
	t.Helper()

	s := Sink{
		ApplyFunc: func(context.Context, *changes.Log) error {
			return nil
		},
	}

	return &s
}

func (s *Sink) Apply(ctx context.Context, log *changes.Log) error {
	return s.ApplyFunc(ctx, log)
}
