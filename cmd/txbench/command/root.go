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
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func (cl *Commandline) NewRootCmd() (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:   "txbench",
		Short: "txbench - throughput and cpu cost of transactional key/value workloads",
		Long: `txbench - throughput and cpu cost of transactional key/value workloads.

A sweep runs a backend over a series of workload points. Every point is timed
and the per-core cpu utilization of its measured window is traced.
Results go to {name}.csv and the cpu trace to {name}_cpu_stats.csv.

Setting the logging level and other options through environment variables:
- Logging level: LOG_LEVEL={debug|info|warning|error}
- The environment variable names for other settings are derived by prefixing flag names with "TXBENCH_"
  e.g TXBENCH_BACKEND=hashmap ./txbench run.
  Note: flags take precedence over environment variables.
`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		PersistentPreRunE: cl.ConfigChain(nil),
	}

	cl.setupRootFlags(cmd)

	if err := viper.BindPFlags(cmd.PersistentFlags()); err != nil {
		return nil, err
	}

	runCmd, err := cl.newRunCmd()
	if err != nil {
		return nil, err
	}

	cmd.AddCommand(runCmd)
	cmd.AddCommand(cl.newSummarizeCmd())
	cmd.AddCommand(cl.newBackendsCmd())

	setupDefaults(DefaultOptions())

	return cmd, nil
}
