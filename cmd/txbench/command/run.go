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

package command

import (
	"context"
	"fmt"
	"io"

	"github.com/codenotary/txbench/embedded/logger"
	"github.com/codenotary/txbench/pkg/backend"
	"github.com/codenotary/txbench/pkg/report"
	"github.com/codenotary/txbench/pkg/runner"
	"github.com/codenotary/txbench/pkg/workload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func (cl *Commandline) newRunCmd() (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a sweep against a backend",
		Example: `  txbench run --backend hashmap --transaction-size 1000 --transaction-count 100
  txbench run --backend file-backup --sweep shape --power 6 --write-percentage 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			options, err := parseOptions()
			if err != nil {
				return err
			}
			options.ConfigFile = cl.ConfigFile()

			return runSweep(cmd.Context(), options, cmd.OutOrStdout())
		},
	}

	setupRunFlags(cmd.Flags())

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	return cmd, nil
}

func runSweep(ctx context.Context, options *Options, out io.Writer) error {
	log, err := logger.NewLogger(&logger.Options{
		Name:      "txbench",
		Level:     logger.LogLevelFromEnvironment(),
		LogFormat: options.LogFormat,
		LogFile:   options.LogFile,
	})
	if err != nil {
		return err
	}
	defer log.Close()

	if options.ConfigFile != "" {
		log.Infof("configuration loaded from '%s'", options.ConfigFile)
	}

	points, err := options.Points()
	if err != nil {
		return err
	}

	bench, err := backend.Lookup(options.Backend, backend.DefaultOptions().
		WithTempDir(options.TempDir).
		WithPostgresDSN(options.PostgresDSN).
		WithLogger(log))
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if options.MetricsServer {
		srv := startMetrics(fmt.Sprintf(":%d", options.MetricsServerPort), reg, log)
		defer srv.Close()
	}

	var sinks []runner.Sink

	if options.InfluxDBURL != "" {
		sink := runner.NewInfluxSink(options.InfluxDBURL, options.InfluxDBToken, options.InfluxDBOrg, options.InfluxDBBucket)
		defer sink.Close()

		sinks = append(sinks, sink)
	}

	r, err := runner.NewRunner(runner.DefaultOptions().
		WithName(options.Name).
		WithOutputDir(options.OutputDir).
		WithSampleInterval(options.SampleInterval).
		WithWorkload(workload.Config{Seed: options.Seed, BaselineKeys: options.BaselineKeys}).
		WithLogger(log).
		WithRegisterer(reg).
		WithProgress(options.Progress).
		WithSinks(sinks...))
	if err != nil {
		return err
	}

	log.Infof("%s sweep of '%s' with seed %d", options.Sweep, options.Backend, options.Seed)

	results, err := r.Run(ctx, bench, points)
	if err != nil {
		return err
	}

	report.PrintSummary(out, results, nil, nil)

	return nil
}
