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
	"strconv"

	"github.com/optakt/block-changes/models/eth"
	"github.com/optakt/block-changes/models/meta"
)

// Transactions projects the successfully executed transactions of the given
// block, in the order of their traces. Failed and reverted transactions are
// skipped.
func Transactions(block *eth.Block) ([]meta.Transaction, error) {
	err := validate(block)
	if err != nil {
		return nil, fmt.Errorf("invalid block (height: %d): %w", block.Number, err)
	}

	timestamp := block.Header.Timestamp.UTC()
	transactions := make([]meta.Transaction, 0, len(block.TransactionTraces))
	for _, trace := range block.TransactionTraces {
		if trace.Status != eth.StatusSucceeded {
			continue
		}

		transaction := meta.Transaction{
			ID:          meta.Hex(trace.Hash),
			BlockNumber: block.Number,
			Index:       trace.Index,
			Nonce:       trace.Nonce,
			Status:      strconv.FormatInt(int64(trace.Status), 10),
			GasLimit:    trace.GasLimit,
			GasUsed:     trace.GasUsed,
			From:        meta.Hex(trace.From),
			To:          meta.Hex(trace.To),
			Timestamp:   timestamp,
		}
		transactions = append(transactions, transaction)
	}

	return transactions, nil
}
