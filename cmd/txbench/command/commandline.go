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
	"fmt"

	c "github.com/codenotary/txbench/cmd/helper"
	"github.com/spf13/cobra"
)

// Commandline carries what the txbench subcommands share: the configuration
// file located by the root command
type Commandline struct {
	config c.Config
}

func newCommandline() *Commandline {
	return &Commandline{config: c.Config{Name: "txbench"}}
}

// ConfigFile returns the configuration file in use, empty when every setting
// comes from flags, TXBENCH_ variables or defaults
func (cl *Commandline) ConfigFile() string {
	return cl.config.CfgFn
}

// ConfigChain returns a PersistentPreRunE loading the configuration before post
func (cl *Commandline) ConfigChain(post func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := cl.config.LoadConfig(cmd)
		if err != nil {
			return fmt.Errorf("loading %s configuration: %w", cl.config.Name, err)
		}

		if post == nil {
			return nil
		}

		return post(cmd, args)
	}
}
