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
	"errors"
	"os"

	"github.com/codenotary/txbench/pkg/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func (cl *Commandline) newSummarizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summarize",
		Short: "Print the results of a sweep and the mean cpu utilization of its measured windows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name := viper.GetString("name")
			dir := viper.GetString("output-dir")

			results, err := report.ReadResults(report.ResultsPath(dir, name))
			if err != nil {
				return err
			}

			header, rows, err := report.ReadTrace(report.TracePath(dir, name))
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}

			report.PrintSummary(cmd.OutOrStdout(), results, header, rows)

			return nil
		},
	}
}
