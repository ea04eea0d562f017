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
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/optakt/block-changes/codec/zbor"
	"github.com/optakt/block-changes/models/eth"
	"github.com/optakt/block-changes/models/indexer"
)

// Feeder is a component that reads decoded blocks from a Zstandard-compressed
// sequence of CBOR items and feeds them to its consumer.
type Feeder struct {
	stream  *zstd.Decoder
	decoder *cbor.Decoder
}

// FromStream creates a block feeder that sources blocks from the given reader.
func FromStream(reader io.Reader) (*Feeder, error) {

	stream, err := zstd.NewReader(reader)
	if err != nil {
		return nil, fmt.Errorf("could not initialize decompression: %w", err)
	}
	mode, err := zbor.DecOptions().DecMode()
	if err != nil {
		return nil, fmt.Errorf("could not initialize decoding: %w", err)
	}

	f := Feeder{
		stream:  stream,
		decoder: mode.NewDecoder(stream),
	}

	return &f, nil
}

// Block returns the next block of the stream. Once the stream is exhausted, it
// returns indexer.ErrFinished.
func (f *Feeder) Block() (*eth.Block, error) {
	var block eth.Block
	err := f.decoder.Decode(&block)
	if errors.Is(err, io.EOF) {
		return nil, indexer.ErrFinished
	}
	if err != nil {
		return nil, fmt.Errorf("could not decode block: %w", err)
	}

	return &block, nil
}

// Close releases the resources of the decompressor. It does not close the
// underlying reader.
func (f *Feeder) Close() {
	f.stream.Close()
}
