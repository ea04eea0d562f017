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

// TraceStatus is the execution status of a transaction trace.
type TraceStatus int32

const (
	StatusUnknown TraceStatus = iota
	StatusSucceeded
	StatusFailed
	StatusReverted
)

func (s TraceStatus) String() string {
	switch s {
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	case StatusReverted:
		return "reverted"
	default:
		return "unknown"
	}
}

// TransactionTrace is the execution trace of a single transaction of a block.
type TransactionTrace struct {
	Hash     []byte      `cbor:"1,keyasint"`
	From     []byte      `cbor:"2,keyasint"`
	To       []byte      `cbor:"3,keyasint"`
	Nonce    uint64      `cbor:"4,keyasint"`
	GasLimit uint64      `cbor:"5,keyasint"`
	GasUsed  uint64      `cbor:"6,keyasint"`
	Index    uint32      `cbor:"7,keyasint"`
	Status   TraceStatus `cbor:"8,keyasint"`
}
