// Copyright 2025 Dimitrij Drus <dadrus@gmx.de>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package flags

import (
	"github.com/spf13/cobra"
)

const (
	Config                  = "config"
	EnvironmentConfigPrefix = "env-config-prefix"

	DefaultEnvironmentConfigPrefix = "BODYPARSER_"
)

func RegisterGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP(Config, "c", "",
		"Path to bodyparser's configuration file.\n"+
			"If not provided, the defaults and environment variables are used.")
	cmd.PersistentFlags().String(EnvironmentConfigPrefix, DefaultEnvironmentConfigPrefix,
		"Prefix for the environment variables to consider for\nloading configuration from")
}
