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

package backend

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/codenotary/txbench/embedded/logger"
	"github.com/codenotary/txbench/pkg/workload"
	"github.com/stretchr/testify/require"
)

type stubSignaler struct {
	events []string
	err    error
}

func (s *stubSignaler) Start() error {
	s.events = append(s.events, "start")
	return s.err
}

func (s *stubSignaler) Stop() error {
	s.events = append(s.events, "stop")
	return nil
}

type recordingEngine struct {
	events   []string
	baseline []string
	ops      uint64
	failAt   int
	setupErr error
	executed int
}

var errEngine = errors.New("engine failure")

func (e *recordingEngine) Setup(_ context.Context, baseline []string) error {
	e.events = append(e.events, "setup")
	e.baseline = baseline
	return e.setupErr
}

func (e *recordingEngine) Execute(_ context.Context, tx *workload.Transaction) error {
	if e.failAt > 0 && e.executed+1 == e.failAt {
		return errEngine
	}

	e.executed++
	e.ops += uint64(tx.Len())
	return nil
}

func (e *recordingEngine) Teardown() error {
	e.events = append(e.events, "teardown")
	return nil
}

func testGenerator() *workload.Generator {
	return workload.NewGenerator(workload.Config{Seed: 1, BaselineKeys: 8})
}

func TestMeasure(t *testing.T) {
	eng := &recordingEngine{}
	sig := &stubSignaler{}

	p := workload.Params{WritePercentage: 40, TransactionSize: 7, TransactionCount: 11}

	elapsed, err := Measure(context.Background(), eng, p, testGenerator(), sig)
	require.NoError(t, err)
	require.GreaterOrEqual(t, elapsed, time.Duration(0))

	require.Equal(t, []string{"setup", "teardown"}, eng.events)
	require.Equal(t, []string{"start", "stop"}, sig.events)
	require.Len(t, eng.baseline, 8)
	require.Equal(t, 11, eng.executed)
	require.Equal(t, p.TotalOperations(), eng.ops)
}

func TestMeasureErrors(t *testing.T) {
	p := workload.Params{WritePercentage: 40, TransactionSize: 2, TransactionCount: 5}

	_, err := Measure(context.Background(), nil, p, testGenerator(), &stubSignaler{})
	require.ErrorIs(t, err, ErrIllegalArguments)

	t.Run("setup", func(t *testing.T) {
		eng := &recordingEngine{setupErr: errEngine}
		sig := &stubSignaler{}

		_, err := Measure(context.Background(), eng, p, testGenerator(), sig)
		require.ErrorIs(t, err, errEngine)
		require.Equal(t, []string{"setup", "teardown"}, eng.events)
		require.Empty(t, sig.events)
	})

	t.Run("execute", func(t *testing.T) {
		eng := &recordingEngine{failAt: 3}
		sig := &stubSignaler{}

		_, err := Measure(context.Background(), eng, p, testGenerator(), sig)
		require.ErrorIs(t, err, errEngine)
		require.Contains(t, err.Error(), "transaction 2")
		require.Equal(t, 2, eng.executed)
		require.Equal(t, []string{"setup", "teardown"}, eng.events)
		require.Equal(t, []string{"start", "stop"}, sig.events)
	})

	t.Run("signal", func(t *testing.T) {
		eng := &recordingEngine{}

		_, err := Measure(context.Background(), eng, p, testGenerator(), &stubSignaler{err: errEngine})
		require.ErrorIs(t, err, errEngine)
		require.Zero(t, eng.executed)
		require.Equal(t, []string{"setup", "teardown"}, eng.events)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		eng := &recordingEngine{}

		_, err := Measure(ctx, eng, p, testGenerator(), &stubSignaler{})
		require.ErrorIs(t, err, context.Canceled)
		require.Zero(t, eng.executed)
	})

	require.Panics(t, func() {
		Measure(context.Background(), &recordingEngine{}, workload.Params{WritePercentage: 101, TransactionSize: 1, TransactionCount: 1}, testGenerator(), &stubSignaler{})
	})
}

func TestRegistry(t *testing.T) {
	require.Equal(t, []string{"file-backup", "hashmap", "no-backup", "postgres"}, Names())

	_, err := Lookup("missing", DefaultOptions())
	require.ErrorIs(t, err, ErrUnknownBackend)

	_, err = Lookup("hashmap", nil)
	require.ErrorIs(t, err, ErrIllegalArguments)

	b, err := Lookup("hashmap", DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, "hashmap", b.Name())

	b, err = Lookup("postgres", DefaultOptions().WithPostgresDSN(""))
	require.NoError(t, err)

	_, err = b.Run(context.Background(), workload.Params{TransactionSize: 1, TransactionCount: 1}, testGenerator(), &stubSignaler{})
	require.ErrorIs(t, err, ErrIllegalArguments)
}

func TestInProcessBackends(t *testing.T) {
	for _, name := range []string{"no-backup", "file-backup", "hashmap"} {
		t.Run(name, func(t *testing.T) {
			tempDir := t.TempDir()

			b, err := Lookup(name, DefaultOptions().
				WithTempDir(tempDir).
				WithLogger(logger.NewMemoryLogger()))
			require.NoError(t, err)

			for _, pct := range []int{0, 50, 100} {
				sig := &stubSignaler{}

				_, err := b.Run(context.Background(),
					workload.Params{WritePercentage: pct, TransactionSize: 20, TransactionCount: 10},
					testGenerator(),
					sig,
				)
				require.NoError(t, err)
				require.Equal(t, []string{"start", "stop"}, sig.events)
			}

			entries, err := os.ReadDir(tempDir)
			require.NoError(t, err)
			require.Empty(t, entries)
		})
	}
}

func TestEnginesRejectUnknownKeys(t *testing.T) {
	tx := workload.NewTransaction(1)
	tx.Get("missing")

	for _, factory := range []Factory{newNoBackupEngine, newFileBackupEngine, newHashMapEngine} {
		eng, err := factory(DefaultOptions().WithTempDir(t.TempDir()))
		require.NoError(t, err)

		require.NoError(t, eng.Setup(context.Background(), []string{"present"}))

		err = eng.Execute(context.Background(), tx)
		require.Error(t, err)
		require.Contains(t, err.Error(), "key not found")

		require.NoError(t, eng.Teardown())
	}
}

func TestFileBackupPersistsBetweenTransactions(t *testing.T) {
	eng, err := newFileBackupEngine(DefaultOptions().WithTempDir(t.TempDir()))
	require.NoError(t, err)

	require.NoError(t, eng.Setup(context.Background(), nil))
	defer eng.Teardown()

	set := workload.NewTransaction(1)
	set.Set("k", 1)
	require.NoError(t, eng.Execute(context.Background(), set))

	get := workload.NewTransaction(1)
	get.Get("k")
	require.NoError(t, eng.Execute(context.Background(), get))
}
