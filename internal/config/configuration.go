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

package config

import (
	"github.com/dadrus/bodyparser/internal/config/parser"
	"github.com/dadrus/bodyparser/internal/errorsx"
	"github.com/dadrus/bodyparser/internal/validation"
	"github.com/dadrus/bodyparser/internal/x/errorchain"
)

type (
	ConfigurationPath string
	EnvVarPrefix      string
)

type Configuration struct {
	Serve   ServeConfig   `koanf:"serve"`
	Log     LoggingConfig `koanf:"log"`
	Metrics MetricsConfig `koanf:"metrics"`
}

func NewConfiguration(envPrefix EnvVarPrefix, configFile ConfigurationPath) (*Configuration, error) {
	result := defaultConfig()

	err := parser.New(
		parser.WithDecodeHookFunc(logLevelDecodeHookFunc),
		parser.WithDecodeHookFunc(logFormatDecodeHookFunc),
		parser.WithConfigFile(string(configFile)),
		parser.WithEnvPrefix(string(envPrefix)),
	).Load(&result)
	if err != nil {
		return nil, errorchain.NewWithMessage(errorsx.ErrConfiguration,
			"failed to load configuration").CausedBy(err)
	}

	if err = validation.ValidateStruct(result); err != nil {
		return nil, errorchain.NewWithMessage(errorsx.ErrConfiguration,
			"configuration is invalid").CausedBy(err)
	}

	return &result, nil
}
