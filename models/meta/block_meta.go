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
	"time"
)

// BlockMeta is the projection of a block that is tracked per day and per month.
type BlockMeta struct {
	ID          string    `cbor:"1,keyasint"`
	Number      uint64    `cbor:"2,keyasint"`
	Hash        string    `cbor:"3,keyasint"`
	ParentHash  string    `cbor:"4,keyasint"`
	UncleHash   string    `cbor:"5,keyasint"`
	ReceiptRoot string    `cbor:"6,keyasint"`
	GasLimit    uint64    `cbor:"7,keyasint"`
	GasUsed     uint64    `cbor:"8,keyasint"`
	Nonce       uint64    `cbor:"9,keyasint"`
	Size        uint64    `cbor:"10,keyasint"`
	Timestamp   time.Time `cbor:"11,keyasint"`
}
