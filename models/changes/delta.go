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

// Delta describes how the record stored under a key changed during one
// processing step. OldValue is nil for creations and NewValue is nil for
// deletions.
type Delta[R any] struct {
	Key       string
	Operation Operation
	Ordinal   uint64
	OldValue  *R
	NewValue  *R
}
