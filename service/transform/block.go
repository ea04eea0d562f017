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

package transform

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/optakt/block-changes/models/eth"
	"github.com/optakt/block-changes/models/meta"
)

// BlockMeta projects the given block into its metadata record, along with the
// timestamp used to derive the keys it is stored under.
func BlockMeta(block *eth.Block) (meta.BlockTimestamp, meta.BlockMeta, error) {
	err := validate(block)
	if err != nil {
		return meta.BlockTimestamp{}, meta.BlockMeta{}, fmt.Errorf("invalid block (height: %d): %w", block.Number, err)
	}

	header := block.Header
	timestamp := meta.NewBlockTimestamp(*header.Timestamp)
	record := meta.BlockMeta{
		ID:          meta.Hex(block.Hash),
		Number:      block.Number,
		Hash:        meta.Hex(block.Hash),
		ParentHash:  meta.Hex(header.ParentHash),
		UncleHash:   meta.Hex(header.UncleHash),
		ReceiptRoot: meta.Hex(header.ReceiptRoot),
		GasLimit:    header.GasLimit,
		GasUsed:     header.GasUsed,
		Nonce:       header.Nonce,
		Size:        block.Size,
		Timestamp:   timestamp.Time(),
	}

	return timestamp, record, nil
}

func validate(block *eth.Block) error {
	var errs error
	if block.Header == nil {
		errs = multierror.Append(errs, fmt.Errorf("%w: header", ErrMissingField))
		return errs
	}
	if block.Header.Timestamp == nil {
		errs = multierror.Append(errs, fmt.Errorf("%w: header timestamp", ErrMissingField))
	}
	if len(block.Hash) == 0 {
		errs = multierror.Append(errs, fmt.Errorf("%w: block hash", ErrMissingField))
	}
	return errs
}
