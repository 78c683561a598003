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
	c "github.com/codenotary/txbench/cmd/helper"
	"github.com/codenotary/txbench/cmd/version"
	"github.com/spf13/cobra"
)

func Execute() {
	version.App = "txbench"

	cmd, err := newCommand()
	if err != nil {
		c.QuitToStdErr(err)
	}

	if err := cmd.Execute(); err != nil {
		c.QuitToStdErr(err)
	}
}

func newCommand() (*cobra.Command, error) {
	cmd, err := newCommandline().NewRootCmd()
	if err != nil {
		return nil, err
	}

	cmd.AddCommand(version.VersionCmd())

	return cmd, nil
}
