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

package feeder

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/optakt/block-changes/codec/zbor"
	"github.com/optakt/block-changes/models/eth"
)

// Writer writes blocks in the stream format read by the feeder.
type Writer struct {
	stream  *zstd.Encoder
	encoder *cbor.Encoder
}

// NewWriter creates a block stream writer on top of the given writer.
func NewWriter(writer io.Writer) (*Writer, error) {

	stream, err := zstd.NewWriter(writer)
	if err != nil {
		return nil, fmt.Errorf("could not initialize compression: %w", err)
	}
	mode, err := zbor.EncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("could not initialize encoding: %w", err)
	}

	w := Writer{
		stream:  stream,
		encoder: mode.NewEncoder(stream),
	}

	return &w, nil
}

// Write appends the block to the stream.
func (w *Writer) Write(block *eth.Block) error {
	err := w.encoder.Encode(block)
	if err != nil {
		return fmt.Errorf("could not encode block (height: %d): %w", block.Number, err)
	}
	return nil
}

// Close flushes the remaining data to the underlying writer. It does not close
// the underlying writer.
func (w *Writer) Close() error {
	return w.stream.Close()
}
