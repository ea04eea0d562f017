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
	"testing"

	"github.com/optakt/block-changes/models/eth"
	"github.com/optakt/block-changes/models/indexer"
)

type Feeder struct {
	BlockFunc func() (*eth.Block, error)
}

// BaselineFeeder returns a feeder that yields the generic block once and is
// finished afterwards.
func BaselineFeeder(t *testing.T) *Feeder {
	t.Helper()

	fed := false
	f := Feeder{
		BlockFunc: func() (*eth.Block, error) {
			if fed {
				return nil, indexer.ErrFinished
			}
			fed = true
			return GenericBlock(GenericHeight), nil
		},
	}

	return &f
}

func (f *Feeder) Block() (*eth.Block, error) {
	return f.BlockFunc()
}
