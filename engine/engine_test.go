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

package engine_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/block-changes/engine"
	"github.com/optakt/block-changes/testing/mocks"
)

func TestEngine_Run(t *testing.T) {
	t.Run("stops all components when one finishes", func(t *testing.T) {
		t.Parallel()

		done := make(chan struct{})
		stopped := make([]string, 0, 2)
		sig := make(chan os.Signal, 1)

		err := engine.New(mocks.NoopLogger, "test", sig).
			Component("finisher", func() error {
				return nil
			}, func() {
				stopped = append(stopped, "finisher")
			}).
			Component("waiter", func() error {
				<-done
				return nil
			}, func() {
				stopped = append(stopped, "waiter")
				close(done)
			}).
			Run()

		require.NoError(t, err)
		assert.Equal(t, []string{"finisher", "waiter"}, stopped)
	})

	t.Run("returns first component error", func(t *testing.T) {
		t.Parallel()

		done := make(chan struct{})
		sig := make(chan os.Signal, 1)

		err := engine.New(mocks.NoopLogger, "test", sig).
			Component("failer", func() error {
				return mocks.GenericError
			}, func() {}).
			Component("waiter", func() error {
				<-done
				return nil
			}, func() {
				close(done)
			}).
			Run()

		assert.ErrorIs(t, err, mocks.GenericError)
	})

	t.Run("stops components on signal", func(t *testing.T) {
		t.Parallel()

		done := make(chan struct{})
		sig := make(chan os.Signal, 1)
		sig <- os.Interrupt

		err := engine.New(mocks.NoopLogger, "test", sig).
			Component("waiter", func() error {
				<-done
				return nil
			}, func() {
				close(done)
			}).
			Run()

		assert.NoError(t, err)
	})

	t.Run("runs without components", func(t *testing.T) {
		t.Parallel()

		err := engine.New(mocks.NoopLogger, "test", make(chan os.Signal)).Run()

		assert.NoError(t, err)
	})
}
