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

package serve

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/dadrus/bodyparser/cmd/flags"
	"github.com/dadrus/bodyparser/internal"
	"github.com/dadrus/bodyparser/internal/config"
	"github.com/dadrus/bodyparser/internal/logging"
	"github.com/dadrus/bodyparser/version"
)

func createApp(cmd *cobra.Command, mainModule fx.Option) (*fx.App, error) {
	configPath, _ := cmd.Flags().GetString(flags.Config)
	envPrefix, _ := cmd.Flags().GetString(flags.EnvironmentConfigPrefix)

	cfg, err := config.NewConfiguration(
		config.EnvVarPrefix(envPrefix),
		config.ConfigurationPath(configPath),
	)
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger(cfg.Log)
	logger.Info().
		Str("_version", version.Version).
		Msg("Starting bodyparser")

	app := fx.New(
		fx.Supply(cfg, logger),
		fx.WithLogger(func(logger zerolog.Logger) fxevent.Logger {
			return &eventLogger{l: logger}
		}),
		internal.Module,
		mainModule,
	)

	return app, app.Err()
}
