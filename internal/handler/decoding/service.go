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
	"net/http"

	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/dadrus/bodyparser/internal/config"
	"github.com/dadrus/bodyparser/internal/handler/middleware/http/accesslog"
	"github.com/dadrus/bodyparser/internal/handler/middleware/http/dump"
	"github.com/dadrus/bodyparser/internal/handler/middleware/http/errorhandler"
	"github.com/dadrus/bodyparser/internal/handler/middleware/http/logger"
	"github.com/dadrus/bodyparser/internal/handler/middleware/http/methodfilter"
	"github.com/dadrus/bodyparser/internal/handler/middleware/http/recovery"
	"github.com/dadrus/bodyparser/internal/pipeline"
)

const (
	decodePath = "/decode"
	eventsPath = "/events"
)

func newService(
	conf *config.Configuration,
	log zerolog.Logger,
	chain pipeline.Chain,
	gatherer prometheus.Gatherer,
) *http.Server {
	cfg := conf.Serve
	eh := errorhandler.New(errorhandler.WithVerboseErrors(cfg.VerboseErrors))
	onlyPost := alice.New(methodfilter.New(http.MethodPost))

	mux := http.NewServeMux()
	decode := onlyPost.Then(newDecodeHandler(chain, eh, cfg.Base64EncodingHeader))

	mux.Handle(decodePath, decode)
	mux.Handle(decodePath+"/", decode)
	mux.Handle(eventsPath, onlyPost.Then(newEventHandler(chain, eh)))

	if conf.Metrics.Enabled {
		mux.Handle(conf.Metrics.Path, alice.New(methodfilter.New(http.MethodGet)).
			Then(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	hc := alice.New(
		logger.New(log),
		accesslog.New(log),
		dump.New(),
		recovery.New(eh),
	)

	if cfg.CORS != nil {
		hc = hc.Append(cors.New(cors.Options{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   cfg.CORS.AllowedMethods,
			AllowedHeaders:   cfg.CORS.AllowedHeaders,
			AllowCredentials: cfg.CORS.AllowCredentials,
			ExposedHeaders:   cfg.CORS.ExposedHeaders,
			MaxAge:           int(cfg.CORS.MaxAge.Seconds()),
		}).Handler)
	}

	return &http.Server{
		Handler:        hc.Then(mux),
		ReadTimeout:    cfg.Timeout.Read,
		WriteTimeout:   cfg.Timeout.Write,
		IdleTimeout:    cfg.Timeout.Idle,
		MaxHeaderBytes: http.DefaultMaxHeaderBytes,
		ErrorLog:       newStdLogger(log),
	}
}
