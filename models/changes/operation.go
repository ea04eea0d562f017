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

package changes

import (
	"fmt"
)

// Operation is the kind of transition a delta describes.
type Operation uint8

// The zero value is reserved so that an uninitialized delta is never mistaken
// for a creation.
const (
	OperationUnset Operation = iota
	OperationCreate
	OperationUpdate
	OperationDelete
)

func (o Operation) String() string {
	switch o {
	case OperationUnset:
		return "unset"
	case OperationCreate:
		return "create"
	case OperationUpdate:
		return "update"
	case OperationDelete:
		return "delete"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(o))
	}
}
