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

package command

import (
	"errors"
	"fmt"
	"time"

	"github.com/codenotary/txbench/embedded/logger"
	"github.com/codenotary/txbench/pkg/backend"
	"github.com/codenotary/txbench/pkg/runner"
	"github.com/codenotary/txbench/pkg/sampler"
	"github.com/codenotary/txbench/pkg/workload"
	"github.com/spf13/viper"
)

const (
	SweepPercentage = "percentage"
	SweepShape      = "shape"
)

var ErrInvalidSweep = errors.New("invalid sweep")

type Options struct {
	Name       string
	OutputDir  string
	LogFile    string
	LogFormat  string
	ConfigFile string

	Backend string
	Sweep   string

	WritePercentage  int
	TransactionSize  uint64
	TransactionCount uint64
	Power            int

	BaselineKeys   int
	Seed           int64
	SampleInterval time.Duration

	TempDir     string
	PostgresDSN string

	Progress bool

	MetricsServer     bool
	MetricsServerPort int

	InfluxDBURL    string
	InfluxDBToken  string
	InfluxDBOrg    string
	InfluxDBBucket string
}

func DefaultOptions() *Options {
	return &Options{
		Name:              runner.DefaultName,
		OutputDir:         ".",
		LogFormat:         logger.LogFormatText,
		Backend:           "no-backup",
		Sweep:             SweepPercentage,
		WritePercentage:   10,
		TransactionSize:   1_000,
		TransactionCount:  100,
		Power:             6,
		BaselineKeys:      workload.DefaultBaselineKeys,
		SampleInterval:    sampler.DefaultInterval,
		PostgresDSN:       backend.DefaultPostgresDSN,
		MetricsServerPort: 9497,
		InfluxDBOrg:       "txbench",
		InfluxDBBucket:    "txbench",
	}
}

func parseOptions() (*Options, error) {
	options := &Options{
		Name:      viper.GetString("name"),
		OutputDir: viper.GetString("output-dir"),
		LogFile:   viper.GetString("logfile"),
		LogFormat: viper.GetString("logformat"),

		Backend: viper.GetString("backend"),
		Sweep:   viper.GetString("sweep"),

		WritePercentage:  viper.GetInt("write-percentage"),
		TransactionSize:  viper.GetUint64("transaction-size"),
		TransactionCount: viper.GetUint64("transaction-count"),
		Power:            viper.GetInt("power"),

		BaselineKeys:   viper.GetInt("baseline-keys"),
		Seed:           viper.GetInt64("seed"),
		SampleInterval: viper.GetDuration("sample-interval"),

		TempDir:     viper.GetString("temp-dir"),
		PostgresDSN: viper.GetString("postgres-dsn"),

		Progress: viper.GetBool("progress"),

		MetricsServer:     viper.GetBool("metrics-server"),
		MetricsServerPort: viper.GetInt("metrics-server-port"),

		InfluxDBURL:    viper.GetString("influxdb-url"),
		InfluxDBToken:  viper.GetString("influxdb-token"),
		InfluxDBOrg:    viper.GetString("influxdb-org"),
		InfluxDBBucket: viper.GetString("influxdb-bucket"),
	}

	if options.Sweep != SweepPercentage && options.Sweep != SweepShape {
		return nil, fmt.Errorf("%w: '%s', expected '%s' or '%s'", ErrInvalidSweep, options.Sweep, SweepPercentage, SweepShape)
	}

	if options.Seed == 0 {
		options.Seed = time.Now().UnixNano()
	}

	return options, nil
}

// Points materializes the sweep selected by the options
func (o *Options) Points() ([]workload.Params, error) {
	if o.Sweep == SweepShape {
		return runner.ShapeSweep(o.WritePercentage, o.Power)
	}

	points := runner.PercentageSweep(o.TransactionSize, o.TransactionCount)

	return points, runner.ValidatePoints(points)
}
