/*
Copyright 2022 CodeNotary, Inc. All rights reserved.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package backend defines how a storage engine is measured and ships the
// engines a sweep can be run against.
package backend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/codenotary/txbench/pkg/workload"
)

var (
	ErrIllegalArguments = errors.New("illegal arguments")
	ErrUnknownBackend   = errors.New("unknown backend")
	ErrKeyNotFound      = errors.New("key not found")
)

// Signaler brackets the measured window
type Signaler interface {
	Start() error
	Stop() error
}

// Benchmark measures how long a backend takes to execute the workload
// described by p. Only the execution of the transactions is timed.
type Benchmark interface {
	Name() string
	Run(ctx context.Context, p workload.Params, gen *workload.Generator, sig Signaler) (time.Duration, error)
}

// Engine is a storage engine driven by Measure
type Engine interface {
	// Setup prepares an empty store holding every baseline key
	Setup(ctx context.Context, baseline []string) error

	// Execute applies tx atomically
	Execute(ctx context.Context, tx *workload.Transaction) error

	// Teardown releases everything Setup acquired
	Teardown() error
}

// Measure builds the workload, prepares the engine and times the
// sequential execution of every transaction. sig is started right before
// the first transaction and stopped right after the last one. Teardown is
// called whatever the outcome, even when Setup fails halfway.
func Measure(ctx context.Context, eng Engine, p workload.Params, gen *workload.Generator, sig Signaler) (elapsed time.Duration, err error) {
	if eng == nil || gen == nil || sig == nil {
		return 0, ErrIllegalArguments
	}

	w := gen.Build(p)

	defer func() {
		terr := eng.Teardown()
		if err == nil && terr != nil {
			err = fmt.Errorf("tearing down engine: %w", terr)
		}
	}()

	err = eng.Setup(ctx, w.BaselineKeys)
	if err != nil {
		return 0, fmt.Errorf("setting up engine: %w", err)
	}

	err = sig.Start()
	if err != nil {
		return 0, err
	}

	start := time.Now()

	for i, tx := range w.Transactions {
		if err = ctx.Err(); err == nil {
			err = eng.Execute(ctx, tx)
		}
		if err != nil {
			sig.Stop()
			return 0, fmt.Errorf("transaction %d: %w", i, err)
		}
	}

	elapsed = time.Since(start)

	err = sig.Stop()
	if err != nil {
		return 0, err
	}

	return elapsed, nil
}

// Factory creates a fresh engine for every measured point
type Factory func(opts *Options) (Engine, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes an engine available through Lookup, replacing any engine
// registered under the same name
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	registry[name] = factory
}

func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func Lookup(name string, opts *Options) (Benchmark, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownBackend, name)
	}

	return &engineBenchmark{name: name, factory: factory, opts: opts}, nil
}

type engineBenchmark struct {
	name    string
	factory Factory
	opts    *Options
}

func (b *engineBenchmark) Name() string {
	return b.name
}

func (b *engineBenchmark) Run(ctx context.Context, p workload.Params, gen *workload.Generator, sig Signaler) (time.Duration, error) {
	eng, err := b.factory(b.opts)
	if err != nil {
		return 0, err
	}

	b.opts.Logger.Debugf("%s: measuring %s", b.name, p)

	return Measure(ctx, eng, p, gen, sig)
}

func init() {
	Register("no-backup", newNoBackupEngine)
	Register("file-backup", newFileBackupEngine)
	Register("hashmap", newHashMapEngine)
	Register("postgres", newPostgresEngine)
}
