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

// Package runner drives a benchmark over a sweep of workload points while
// the CPU sampler traces the measured windows.
package runner

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/codenotary/txbench/pkg/backend"
	"github.com/codenotary/txbench/pkg/report"
	"github.com/codenotary/txbench/pkg/sampler"
	"github.com/codenotary/txbench/pkg/workload"
	"github.com/rs/xid"
)

type Result = report.Result

type Runner struct {
	opts    *Options
	metrics *Metrics
}

func NewRunner(opts *Options) (*Runner, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &Runner{
		opts:    opts,
		metrics: NewMetrics(opts.Registerer),
	}, nil
}

func (r *Runner) ResultsPath() string {
	return report.ResultsPath(r.opts.OutputDir, r.opts.Name)
}

func (r *Runner) TracePath() string {
	return report.TracePath(r.opts.OutputDir, r.opts.Name)
}

// Run measures every point in order with a single CPU sampler spanning the
// whole sweep, then writes the results file. If any point fails, no results
// file is written.
func (r *Runner) Run(ctx context.Context, bench backend.Benchmark, points []workload.Params) ([]Result, error) {
	if bench == nil {
		return nil, ErrIllegalArguments
	}

	err := ValidatePoints(points)
	if err != nil {
		return nil, err
	}

	if r.opts.OutputDir != "" {
		err = os.MkdirAll(r.opts.OutputDir, 0755)
		if err != nil {
			return nil, err
		}
	}

	log := r.opts.Logger

	run := RunInfo{
		ID:      xid.New().String(),
		Name:    r.opts.Name,
		Backend: bench.Name(),
		Start:   time.Now(),
	}

	s, err := sampler.Open(r.TracePath(), sampler.DefaultOptions().
		WithInterval(r.opts.SampleInterval).
		WithReader(r.opts.CoreReader).
		WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("opening cpu trace: %w", err)
	}

	log.Infof("run %s: sweeping %d points against '%s'", run.ID, len(points), run.Backend)

	progress := progressTrackers{r.metrics.newProgressTracker(run.Backend, len(points))}
	if r.opts.Progress {
		progress = append(progress, newBarProgressTracker(len(points)))
	}

	gen := workload.NewGenerator(r.opts.Workload)

	results := make([]Result, 0, len(points))

	for i, p := range points {
		res, err := r.measure(ctx, bench, gen, s, p)
		if err != nil {
			s.Abort()
			if werr := s.Wait(); werr != nil && werr != err {
				log.Warningf("run %s: cpu sampler: %v", run.ID, werr)
			}

			return nil, fmt.Errorf("point %d (%s): %w", i, p, err)
		}

		results = append(results, res)
		progress.Add(1)

		log.Infof("run %s: point %d/%d %s took %dms", run.ID, i+1, len(points), p, res.DurationMs)
	}

	s.Abort()

	err = s.Wait()
	if err != nil {
		return nil, fmt.Errorf("cpu trace: %w", err)
	}

	run.End = time.Now()

	err = report.WriteResults(r.ResultsPath(), results)
	if err != nil {
		return nil, err
	}

	log.Infof("run %s: results written to '%s', cpu trace to '%s'", run.ID, r.ResultsPath(), r.TracePath())

	for _, sink := range r.opts.Sinks {
		err = sink.Publish(ctx, run, results)
		if err != nil {
			return results, err
		}
	}

	return results, nil
}

func (r *Runner) measure(ctx context.Context, bench backend.Benchmark, gen *workload.Generator, s *sampler.Sampler, p workload.Params) (Result, error) {
	// the sampler stops on its own when writing the trace fails
	if err := s.Err(); err != nil {
		return Result{}, err
	}

	elapsed, err := bench.Run(ctx, p, gen, s)
	if err != nil {
		return Result{}, err
	}

	r.metrics.observePoint(bench.Name(), p, elapsed)

	return Result{
		DurationMs:       uint64(elapsed.Milliseconds()),
		WritePercentage:  p.WritePercentage,
		TransactionSize:  p.TransactionSize,
		TransactionCount: p.TransactionCount,
	}, nil
}
