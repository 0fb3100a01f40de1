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

package decoding

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/dadrus/bodyparser/internal/config"
	"github.com/dadrus/bodyparser/internal/handler/fxlcm"
	"github.com/dadrus/bodyparser/internal/pipeline"
	"github.com/dadrus/bodyparser/internal/pipeline/bodyparser"
	bpprometheus "github.com/dadrus/bodyparser/internal/prometheus"
)

// nolint: gochecknoglobals
var Module = fx.Options(
	fx.Provide(newChain),
	fx.Invoke(registerHooks),
)

func newChain(observer *bpprometheus.DecodeObserver) pipeline.Chain {
	return pipeline.NewChain(bodyparser.New(bodyparser.WithObserver(observer)))
}

type hooksArgs struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Configuration
	Logger    zerolog.Logger
	Chain     pipeline.Chain
	Gatherer  prometheus.Gatherer
}

func registerHooks(args hooksArgs) {
	lcm := &fxlcm.LifecycleManager{
		ServiceName:    "Decoding",
		ServiceAddress: args.Config.Serve.Address(),
		Server:         newService(args.Config, args.Logger, args.Chain, args.Gatherer),
		Logger:         args.Logger,
	}

	args.Lifecycle.Append(
		fx.Hook{
			OnStart: lcm.Start,
			OnStop:  lcm.Stop,
		},
	)
}
