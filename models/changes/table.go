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

// Column declares a tracked column and how its value is rendered from a
// record. The key the record is stored under is passed along, because some
// columns are derived from it.
type Column[R any] struct {
	Name  string
	Value func(key string, record R) (string, error)
}

// Table declares which columns are tracked for each operation. The lists are
// ordered; entries carry their fields in this order. A nil Delete list means
// that deletions are not supported for the table.
type Table[R any] struct {
	Name   string
	Create []Column[R]
	Update []Column[R]
	Delete []Column[R]
}
