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

package eth

import (
	"time"
)

// Block is a decoded Ethereum block, as handed to the indexer by its source.
type Block struct {
	Number            uint64             `cbor:"1,keyasint"`
	Hash              []byte             `cbor:"2,keyasint"`
	Size              uint64             `cbor:"3,keyasint"`
	Header            *Header            `cbor:"4,keyasint"`
	TransactionTraces []TransactionTrace `cbor:"5,keyasint"`
}

// Header is the header of a decoded block. The timestamp is optional in the
// encoding, but it is required for every block we index.
type Header struct {
	ParentHash  []byte     `cbor:"1,keyasint"`
	UncleHash   []byte     `cbor:"2,keyasint"`
	ReceiptRoot []byte     `cbor:"3,keyasint"`
	GasLimit    uint64     `cbor:"4,keyasint"`
	GasUsed     uint64     `cbor:"5,keyasint"`
	Nonce       uint64     `cbor:"6,keyasint"`
	Timestamp   *time.Time `cbor:"7,keyasint"`
}
