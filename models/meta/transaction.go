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

// Transaction is the projection of a successfully executed transaction.
type Transaction struct {
	ID          string    `cbor:"1,keyasint"`
	BlockNumber uint64    `cbor:"2,keyasint"`
	Index       uint32    `cbor:"3,keyasint"`
	Nonce       uint64    `cbor:"4,keyasint"`
	Status      string    `cbor:"5,keyasint"`
	GasLimit    uint64    `cbor:"6,keyasint"`
	GasUsed     uint64    `cbor:"7,keyasint"`
	From        string    `cbor:"8,keyasint"`
	To          string    `cbor:"9,keyasint"`
	Timestamp   time.Time `cbor:"10,keyasint"`
}
