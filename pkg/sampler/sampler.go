/*
Copyright 2024 Codenotary Inc. All rights reserved.

SPDX-License-Identifier: BUSL-1.1
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://mariadb.com/bsl11/

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package sampler records per-core CPU utilization to a trace file while a
// measured window is open.
//
// A Sampler runs its own goroutine. The caller drives it by sending
// commands which never wait for the sampler to act on them: Start opens a
// capturing window, Stop closes it and Abort ends the sampler for good. Each
// interval the loop takes one queued command and, while capturing, appends
// one row of per-core utilization since the previous interval.
package sampler

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/codenotary/txbench/embedded/logger"
	"github.com/codenotary/txbench/pkg/report"
	"github.com/prometheus/procfs"
)

var (
	ErrIllegalArguments = errors.New("illegal arguments")
	ErrAlreadyClosed    = errors.New("sampler already closed")
	ErrNoCores          = errors.New("no cores reported")
)

type Command int

const (
	CmdStart Command = iota
	CmdStop
	CmdAbort
)

func (c Command) String() string {
	switch c {
	case CmdStart:
		return "start"
	case CmdStop:
		return "stop"
	case CmdAbort:
		return "abort"
	}
	return fmt.Sprintf("command(%d)", int(c))
}

type State int32

const (
	StateIdle State = iota
	StateCapturing
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCapturing:
		return "capturing"
	case StateTerminated:
		return "terminated"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

type Sampler struct {
	path     string
	f        *os.File
	trace    *report.TraceWriter
	reader   CoreStatsReader
	interval time.Duration
	log      logger.Logger

	state int32
	rows  uint64

	mu     sync.Mutex
	closed bool
	cmds   chan Command

	done chan struct{}
	err  error
}

// Open creates the trace file at path, writes its header and starts the
// sampling goroutine in the idle state.
func Open(path string, opts *Options) (*Sampler, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	reader := opts.Reader
	if reader == nil {
		r, err := NewProcStatReader(procfs.DefaultMountPoint)
		if err != nil {
			return nil, err
		}
		reader = r
	}

	cores, err := reader.ReadCores()
	if err != nil {
		return nil, err
	}
	if len(cores) == 0 {
		return nil, ErrNoCores
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	trace, err := report.NewTraceWriter(f, report.CoreNames(len(cores)))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("writing trace header to '%s': %w", path, err)
	}

	s := &Sampler{
		path:     path,
		f:        f,
		trace:    trace,
		reader:   reader,
		interval: opts.Interval,
		log:      opts.Logger,
		cmds:     make(chan Command, opts.CommandBuffer),
		done:     make(chan struct{}),
	}

	go s.loop(cores)

	s.log.Debugf("cpu sampler tracing %d cores into '%s' every %v", len(cores), path, s.interval)

	return s, nil
}

func (s *Sampler) Path() string {
	return s.path
}

func (s *Sampler) State() State {
	return State(atomic.LoadInt32(&s.state))
}

// Rows returns the number of trace rows written so far
func (s *Sampler) Rows() uint64 {
	return atomic.LoadUint64(&s.rows)
}

func (s *Sampler) Start() error {
	return s.send(CmdStart)
}

func (s *Sampler) Stop() error {
	return s.send(CmdStop)
}

// Abort terminates the sampler. Rows already written are flushed to disk
// and the trace file is closed. Use Wait to join the sampler goroutine.
func (s *Sampler) Abort() error {
	return s.send(CmdAbort)
}

// Close ends the sampler without an explicit Abort: any open capturing
// window is stopped, the trace is closed and the goroutine is joined.
func (s *Sampler) Close() error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.cmds)
	}
	s.mu.Unlock()

	return s.Wait()
}

// Wait blocks until the sampler goroutine exits and returns the error
// which terminated it, if any.
func (s *Sampler) Wait() error {
	<-s.done
	return s.err
}

// Err returns the error which terminated the sampler, or nil while it is running
func (s *Sampler) Err() error {
	select {
	case <-s.done:
		return s.err
	default:
		return nil
	}
}

func (s *Sampler) send(cmd Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrAlreadyClosed
	}

	if cmd == CmdAbort {
		s.closed = true
	}

	select {
	case s.cmds <- cmd:
		return nil
	case <-s.done:
		return ErrAlreadyClosed
	}
}

func (s *Sampler) setState(state State) {
	atomic.StoreInt32(&s.state, int32(state))
}

// loop handles at most one pending command per tick, so a Start followed by
// a Stop always spans at least one capturing tick. The core snapshot is
// refreshed every tick, the tick handling Start already writes a row.
func (s *Sampler) loop(prev []CoreTimes) {
	for {
		select {
		case cmd, ok := <-s.cmds:
			if !ok {
				s.terminate(nil)
				return
			}

			switch cmd {
			case CmdStart:
				s.setState(StateCapturing)
			case CmdStop:
				s.setState(StateIdle)
			case CmdAbort:
				s.terminate(nil)
				return
			}
		default:
		}

		cur, err := s.reader.ReadCores()
		if err != nil {
			s.terminate(err)
			return
		}

		if s.State() == StateCapturing {
			err = s.trace.WriteRow(Utilization(prev, cur, s.trace.Columns()))
			if err != nil {
				s.terminate(fmt.Errorf("writing cpu trace '%s': %w", s.path, err))
				return
			}

			atomic.AddUint64(&s.rows, 1)
		}

		prev = cur

		time.Sleep(s.interval)
	}
}

func (s *Sampler) terminate(err error) {
	if serr := s.f.Sync(); err == nil {
		err = serr
	}
	if cerr := s.f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		s.log.Errorf("cpu sampler terminated: %v", err)
	} else {
		s.log.Debugf("cpu sampler terminated after %d rows", s.Rows())
	}

	s.err = err
	s.setState(StateTerminated)
	close(s.done)
}
