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

package engine

import (
	"os"

	"github.com/rs/zerolog"
)

// Engine runs a set of named components until one of them returns, or until a
// signal is received, and then stops all of them.
type Engine struct {
	log        zerolog.Logger
	components []*component
	sig        chan os.Signal
}

// New creates a new engine.
func New(log zerolog.Logger, name string, sig chan os.Signal) *Engine {
	e := Engine{
		log: log.With().Str("engine", name).Logger(),
		sig: sig,
	}

	return &e
}

// Component registers a new component for the engine. Components will be shut down
// in the same order as the one in which they were registered.
func (e *Engine) Component(name string, run func() error, stop func()) *Engine {
	c := component{
		log:  e.log.With().Str("component", name).Logger(),
		run:  run,
		stop: stop,
	}

	e.components = append(e.components, &c)

	return e
}

// Run launches the engine components and waits for the first of them to return,
// or for a signal. It then stops all components, waits for them to return, and
// returns the first error encountered.
func (e *Engine) Run() error {
	if len(e.components) == 0 {
		return nil
	}

	notify := make(chan error, len(e.components))
	for _, component := range e.components {
		go component.Run(notify)
	}

	// Here, we are waiting for a signal, or for one of the components to fail
	// or finish. In both cases, we proceed to shut down everything, while also
	// entering a goroutine that allows us to force shut down by sending
	// another signal.
	var first error
	remaining := len(e.components)
	select {
	case <-e.sig:
		e.log.Info().Msg("engine stopping")
	case first = <-notify:
		remaining--
		if first != nil {
			e.log.Warn().Msg("engine aborted")
		} else {
			e.log.Info().Msg("engine done")
		}
	}
	go func() {
		<-e.sig
		e.log.Warn().Msg("forcing exit")
		os.Exit(1)
	}()

	// Components are stopped in the order in which they were registered.
	for _, component := range e.components {
		component.Stop()
	}
	for ; remaining > 0; remaining-- {
		err := <-notify
		if first == nil {
			first = err
		}
	}

	return first
}
