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
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func (cl *Commandline) setupRootFlags(cmd *cobra.Command) {
	options := DefaultOptions()

	cmd.PersistentFlags().StringVar(&cl.config.CfgFn, "config", "", "config file (default path are ., configs, /etc/txbench or $HOME. Default filename is txbench.toml)")
	cmd.PersistentFlags().String("name", options.Name, "sweep name, output files are {name}.csv and {name}_cpu_stats.csv")
	cmd.PersistentFlags().String("output-dir", options.OutputDir, "directory of the output files")
	cmd.PersistentFlags().String("logfile", options.LogFile, "log path with filename. E.g. /tmp/txbench/txbench.log")
	cmd.PersistentFlags().String("logformat", options.LogFormat, "log format e.g. text/json")
}

func setupRunFlags(flags *pflag.FlagSet) {
	options := DefaultOptions()

	flags.StringP("backend", "b", options.Backend, "backend to measure, see the backends command")
	flags.String("sweep", options.Sweep, "sweep kind: percentage (write percentage 0..90) or shape (constant total operations)")
	flags.Int("write-percentage", options.WritePercentage, "write percentage of the shape sweep")
	flags.Uint64("transaction-size", options.TransactionSize, "operations per transaction of the percentage sweep")
	flags.Uint64("transaction-count", options.TransactionCount, "transactions per point of the percentage sweep")
	flags.Int("power", options.Power, "every point of the shape sweep runs 10^power operations")
	flags.Int("baseline-keys", options.BaselineKeys, "number of pre-populated keys read by get operations")
	flags.Int64("seed", options.Seed, "seed of the read/write decisions, 0 picks a random one")
	flags.Duration("sample-interval", options.SampleInterval, "cpu sampling interval")
	flags.String("temp-dir", options.TempDir, "directory hosting the files of file based backends")
	flags.String("postgres-dsn", options.PostgresDSN, "connection string of the postgres backend")
	flags.Bool("progress", options.Progress, "show a progress bar")
	flags.Bool("metrics-server", options.MetricsServer, "enable or disable Prometheus endpoint")
	flags.Int("metrics-server-port", options.MetricsServerPort, "Prometheus endpoint port")
	flags.String("influxdb-url", options.InfluxDBURL, "publish results to this InfluxDB v2 server")
	flags.String("influxdb-token", options.InfluxDBToken, "InfluxDB authentication token")
	flags.String("influxdb-org", options.InfluxDBOrg, "InfluxDB organization")
	flags.String("influxdb-bucket", options.InfluxDBBucket, "InfluxDB bucket")
}

func setupDefaults(options *Options) {
	viper.SetDefault("name", options.Name)
	viper.SetDefault("output-dir", options.OutputDir)
	viper.SetDefault("logfile", options.LogFile)
	viper.SetDefault("logformat", options.LogFormat)
	viper.SetDefault("backend", options.Backend)
	viper.SetDefault("sweep", options.Sweep)
	viper.SetDefault("write-percentage", options.WritePercentage)
	viper.SetDefault("transaction-size", options.TransactionSize)
	viper.SetDefault("transaction-count", options.TransactionCount)
	viper.SetDefault("power", options.Power)
	viper.SetDefault("baseline-keys", options.BaselineKeys)
	viper.SetDefault("seed", options.Seed)
	viper.SetDefault("sample-interval", options.SampleInterval)
	viper.SetDefault("temp-dir", options.TempDir)
	viper.SetDefault("postgres-dsn", options.PostgresDSN)
	viper.SetDefault("progress", options.Progress)
	viper.SetDefault("metrics-server", options.MetricsServer)
	viper.SetDefault("metrics-server-port", options.MetricsServerPort)
	viper.SetDefault("influxdb-url", options.InfluxDBURL)
	viper.SetDefault("influxdb-token", options.InfluxDBToken)
	viper.SetDefault("influxdb-org", options.InfluxDBOrg)
	viper.SetDefault("influxdb-bucket", options.InfluxDBBucket)
}
