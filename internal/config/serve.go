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
	"fmt"
	"time"
)

type ServeConfig struct {
	Host                 string  `koanf:"host"`
	Port                 int     `koanf:"port"                   validate:"min=1,max=65535"`
	Timeout              Timeout `koanf:"timeout"`
	VerboseErrors        bool    `koanf:"verbose_errors"`
	Base64EncodingHeader string  `koanf:"base64_encoding_header" validate:"required,header_name"`
	CORS                 *CORS   `koanf:"cors,omitempty"`
}

func (c ServeConfig) Address() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

type Timeout struct {
	Read  time.Duration `koanf:"read,string"  mapstructure:"read"  validate:"gte=0"`
	Write time.Duration `koanf:"write,string" mapstructure:"write" validate:"gte=0"`
	Idle  time.Duration `koanf:"idle,string"  mapstructure:"idle"  validate:"gte=0"`
}

// CORS is only applied if configured.
type CORS struct {
	AllowedOrigins   []string      `koanf:"allowed_origins"`
	AllowedMethods   []string      `koanf:"allowed_methods"`
	AllowedHeaders   []string      `koanf:"allowed_headers"   validate:"dive,header_name"`
	ExposedHeaders   []string      `koanf:"exposed_headers"   validate:"dive,header_name"`
	AllowCredentials bool          `koanf:"allow_credentials"`
	MaxAge           time.Duration `koanf:"max_age,string"    mapstructure:"max_age" validate:"gte=0"`
}
