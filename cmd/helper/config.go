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

package helper

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var ErrMissingConfigFlag = errors.New("config flag is not defined")

// Config locates the configuration file of a command and wires the
// environment variables prefixed by the command name
type Config struct {
	Name  string
	CfgFn string
}

// LoadConfig reads the configuration file given by the --config flag or,
// when the flag is empty, the first {Name}.toml found in the working
// directory, ./configs, /etc/{Name} or the home directory. Only an
// explicitly requested file is required to exist.
func (c *Config) LoadConfig(cmd *cobra.Command) error {
	if c.Name == "" {
		return errors.New("config name is required")
	}

	if cmd.Flags().Lookup("config") == nil {
		return ErrMissingConfigFlag
	}

	cfgFn, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	c.CfgFn = cfgFn

	if c.CfgFn != "" {
		viper.SetConfigFile(c.CfgFn)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("configs")
		if runtime.GOOS != "windows" {
			viper.AddConfigPath("/etc/" + c.Name)
		}
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(c.Name)
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix(strings.ToUpper(c.Name))
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if c.CfgFn == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	c.CfgFn = viper.ConfigFileUsed()

	return nil
}
