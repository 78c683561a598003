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

package runner

import (
	"os"
	"time"

	"github.com/codenotary/txbench/embedded/logger"
	"github.com/codenotary/txbench/pkg/sampler"
	"github.com/codenotary/txbench/pkg/workload"
	"github.com/prometheus/client_golang/prometheus"
)

const DefaultName = "benchmark"

type Options struct {
	// Name of the sweep, output files are {Name}.csv and {Name}_cpu_stats.csv
	Name string

	OutputDir string

	SampleInterval time.Duration

	// CoreReader overrides the source of per-core counters
	CoreReader sampler.CoreStatsReader

	Workload workload.Config

	Logger logger.Logger

	Registerer prometheus.Registerer

	// Progress draws a progress bar on the terminal
	Progress bool

	Sinks []Sink
}

func DefaultOptions() *Options {
	return &Options{
		Name:           DefaultName,
		OutputDir:      ".",
		SampleInterval: sampler.DefaultInterval,
		Workload:       workload.DefaultConfig(),
		Logger:         logger.NewSimpleLogger("txbench", os.Stderr),
	}
}

func (opts *Options) Validate() error {
	if opts == nil ||
		opts.Name == "" ||
		opts.SampleInterval <= 0 ||
		opts.Logger == nil {
		return ErrIllegalArguments
	}

	return nil
}

func (opts *Options) WithName(name string) *Options {
	opts.Name = name
	return opts
}

func (opts *Options) WithOutputDir(dir string) *Options {
	opts.OutputDir = dir
	return opts
}

func (opts *Options) WithSampleInterval(interval time.Duration) *Options {
	opts.SampleInterval = interval
	return opts
}

func (opts *Options) WithCoreReader(reader sampler.CoreStatsReader) *Options {
	opts.CoreReader = reader
	return opts
}

func (opts *Options) WithWorkload(cfg workload.Config) *Options {
	opts.Workload = cfg
	return opts
}

func (opts *Options) WithLogger(logger logger.Logger) *Options {
	opts.Logger = logger
	return opts
}

func (opts *Options) WithRegisterer(reg prometheus.Registerer) *Options {
	opts.Registerer = reg
	return opts
}

func (opts *Options) WithProgress(progress bool) *Options {
	opts.Progress = progress
	return opts
}

func (opts *Options) WithSinks(sinks ...Sink) *Options {
	opts.Sinks = sinks
	return opts
}
