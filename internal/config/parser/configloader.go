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

package parser

import (
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"

	"github.com/dadrus/bodyparser/internal/errorsx"
	"github.com/dadrus/bodyparser/internal/x/errorchain"
)

type ConfigLoader interface {
	Load(config any) error
}

// New creates a loader which layers the configuration taken from the given struct,
// an optional yaml file and environment variables, in that order.
func New(opts ...Option) ConfigLoader {
	loader := &configLoader{o: defaultOptions()}

	for _, opt := range opts {
		opt(&loader.o)
	}

	return loader
}

type configLoader struct {
	o opts
}

func (c *configLoader) Load(config any) error {
	if len(c.o.configFile) != 0 {
		if _, err := os.Stat(c.o.configFile); err != nil {
			return errorchain.NewWithMessagef(errorsx.ErrConfiguration,
				"config file %s is not accessible", c.o.configFile).CausedBy(err)
		}
	}

	parser, err := koanfFromStruct(config)
	if err != nil {
		return err
	}

	loadAndMergeConfig := func(loadConfig func() (*koanf.Koanf, error)) error {
		konf, err := loadConfig()
		if err != nil {
			return err
		}

		return parser.Load(confmap.Provider(konf.Raw(), ""), nil)
	}

	if len(c.o.configFile) != 0 {
		if err = loadAndMergeConfig(func() (*koanf.Koanf, error) {
			return koanfFromYaml(c.o.configFile)
		}); err != nil {
			return err
		}
	}

	if err = loadAndMergeConfig(func() (*koanf.Koanf, error) {
		return koanfFromEnv(c.o.envPrefix)
	}); err != nil {
		return err
	}

	err = parser.UnmarshalWithConf("", config, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.ComposeDecodeHookFunc(c.o.decodeHooks...),
			Result:           config,
			WeaklyTypedInput: true,
		},
	})
	if err != nil {
		return errorchain.NewWithMessage(errorsx.ErrConfiguration,
			"failed to decode configuration").CausedBy(err)
	}

	return nil
}
