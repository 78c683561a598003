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

package sampler

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/codenotary/txbench/embedded/logger"
	"github.com/codenotary/txbench/pkg/report"
	"github.com/stretchr/testify/require"
)

var errReader = errors.New("reader failure")

// fakeReader reports every core half busy between two snapshots
type fakeReader struct {
	mu        sync.Mutex
	cores     int
	calls     int
	failAfter int
}

func (r *fakeReader) ReadCores() ([]CoreTimes, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls++
	if r.failAfter > 0 && r.calls > r.failAfter {
		return nil, errReader
	}

	cores := make([]CoreTimes, r.cores)
	for i := range cores {
		cores[i] = CoreTimes{Busy: float64(r.calls), Total: 2 * float64(r.calls)}
	}

	return cores, nil
}

func testOptions(r CoreStatsReader) *Options {
	return DefaultOptions().
		WithInterval(time.Millisecond).
		WithReader(r).
		WithLogger(logger.NewMemoryLogger())
}

func TestSamplerIdleWritesHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.csv")

	s, err := Open(path, testOptions(&fakeReader{cores: 2}))
	require.NoError(t, err)
	require.Equal(t, path, s.Path())
	require.Equal(t, StateIdle, s.State())

	time.Sleep(30 * time.Millisecond)
	require.Zero(t, s.Rows())

	require.NoError(t, s.Abort())
	require.NoError(t, s.Wait())
	require.Equal(t, StateTerminated, s.State())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "cpu0,cpu1\n", string(b))
}

func TestSamplerCapturesBetweenStartAndStop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.csv")

	s, err := Open(path, testOptions(&fakeReader{cores: 3}))
	require.NoError(t, err)

	require.NoError(t, s.Start())
	require.Eventually(t, func() bool { return s.Rows() >= 3 }, 5*time.Second, time.Millisecond)

	require.NoError(t, s.Stop())
	require.Eventually(t, func() bool { return s.State() == StateIdle }, 5*time.Second, time.Millisecond)

	rows := s.Rows()
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, rows, s.Rows())

	require.NoError(t, s.Abort())
	require.NoError(t, s.Wait())

	header, trace, err := report.ReadTrace(path)
	require.NoError(t, err)
	require.Equal(t, []string{"cpu0", "cpu1", "cpu2"}, header)
	require.Len(t, trace, int(rows))

	for _, row := range trace {
		require.Equal(t, []float64{50, 50, 50}, row)
	}
}

func TestSamplerShortWindowsAreTraced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.csv")

	s, err := Open(path, testOptions(&fakeReader{cores: 2}).WithInterval(50*time.Millisecond))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Start())
		time.Sleep(5 * time.Millisecond)
		require.NoError(t, s.Stop())
	}

	require.NoError(t, s.Abort())
	require.NoError(t, s.Wait())

	// one capturing tick per window
	require.EqualValues(t, 5, s.Rows())

	_, trace, err := report.ReadTrace(path)
	require.NoError(t, err)
	require.Len(t, trace, 5)

	for _, row := range trace {
		require.Equal(t, []float64{50, 50}, row)
	}
}

func TestSamplerAbortWhileCapturing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.csv")

	s, err := Open(path, testOptions(&fakeReader{cores: 1}))
	require.NoError(t, err)

	require.NoError(t, s.Start())
	require.Eventually(t, func() bool { return s.Rows() >= 1 }, 5*time.Second, time.Millisecond)

	require.NoError(t, s.Abort())
	require.NoError(t, s.Wait())
	require.NoError(t, s.Err())

	_, trace, err := report.ReadTrace(path)
	require.NoError(t, err)
	require.Len(t, trace, int(s.Rows()))

	require.ErrorIs(t, s.Start(), ErrAlreadyClosed)
	require.ErrorIs(t, s.Abort(), ErrAlreadyClosed)
	require.NoError(t, s.Close())
}

func TestSamplerCloseStopsCapture(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "trace.csv"), testOptions(&fakeReader{cores: 1}))
	require.NoError(t, err)

	require.NoError(t, s.Start())
	require.NoError(t, s.Close())
	require.Equal(t, StateTerminated, s.State())

	require.ErrorIs(t, s.Stop(), ErrAlreadyClosed)
	require.NoError(t, s.Close())
}

func TestSamplerCommandsAreQueued(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "trace.csv"), testOptions(&fakeReader{cores: 1}).WithCommandBuffer(1))
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		require.NoError(t, s.Start())
		require.NoError(t, s.Stop())
	}

	require.NoError(t, s.Abort())
	require.NoError(t, s.Wait())
}

func TestSamplerReaderFailure(t *testing.T) {
	log := logger.NewMemoryLoggerWithLevel(logger.LogError)

	s, err := Open(filepath.Join(t.TempDir(), "trace.csv"), testOptions(&fakeReader{cores: 2, failAfter: 3}).WithLogger(log))
	require.NoError(t, err)

	require.NoError(t, s.Start())

	require.ErrorIs(t, s.Wait(), errReader)
	require.ErrorIs(t, s.Err(), errReader)
	require.Equal(t, StateTerminated, s.State())

	require.ErrorIs(t, s.Stop(), ErrAlreadyClosed)
	require.True(t, log.Contains(logger.LogError, errReader.Error()))
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "trace.csv"), nil)
	require.ErrorIs(t, err, ErrIllegalArguments)

	_, err = Open(filepath.Join(dir, "trace.csv"), testOptions(&fakeReader{cores: 1}).WithInterval(0))
	require.ErrorIs(t, err, ErrIllegalArguments)

	_, err = Open(filepath.Join(dir, "trace.csv"), testOptions(&fakeReader{cores: 0}))
	require.ErrorIs(t, err, ErrNoCores)

	_, err = Open(filepath.Join(dir, "missing", "trace.csv"), testOptions(&fakeReader{cores: 1}))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = Open(filepath.Join(dir, "trace.csv"), testOptions(failingReader{}))
	require.ErrorIs(t, err, errReader)
}

type failingReader struct{}

func (failingReader) ReadCores() ([]CoreTimes, error) {
	return nil, errReader
}

func TestCommandAndStateNames(t *testing.T) {
	require.Equal(t, "start", CmdStart.String())
	require.Equal(t, "stop", CmdStop.String())
	require.Equal(t, "abort", CmdAbort.String())
	require.Equal(t, "command(9)", Command(9).String())

	require.Equal(t, "idle", StateIdle.String())
	require.Equal(t, "capturing", StateCapturing.String())
	require.Equal(t, "terminated", StateTerminated.String())
}
