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
	"os"
	"time"

	"github.com/codenotary/txbench/embedded/logger"
)

const (
	DefaultInterval      = 200 * time.Millisecond
	DefaultCommandBuffer = 1024
)

type Options struct {
	// Interval slept between two iterations of the sampling loop
	Interval time.Duration

	// CommandBuffer is the capacity of the command channel
	CommandBuffer int

	// Reader provides the per-core counters. When nil, /proc/stat is used
	Reader CoreStatsReader

	Logger logger.Logger
}

func DefaultOptions() *Options {
	return &Options{
		Interval:      DefaultInterval,
		CommandBuffer: DefaultCommandBuffer,
		Logger:        logger.NewSimpleLogger("sampler", os.Stderr),
	}
}

func (opts *Options) Validate() error {
	if opts == nil ||
		opts.Interval <= 0 ||
		opts.CommandBuffer < 1 ||
		opts.Logger == nil {
		return ErrIllegalArguments
	}

	return nil
}

func (opts *Options) WithInterval(interval time.Duration) *Options {
	opts.Interval = interval
	return opts
}

func (opts *Options) WithCommandBuffer(size int) *Options {
	opts.CommandBuffer = size
	return opts
}

func (opts *Options) WithReader(reader CoreStatsReader) *Options {
	opts.Reader = reader
	return opts
}

func (opts *Options) WithLogger(logger logger.Logger) *Options {
	opts.Logger = logger
	return opts
}
