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

package accesslog

import (
	"context"
	"net/http"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/rs/zerolog"

	"github.com/dadrus/bodyparser/internal/accesscontext"
	"github.com/dadrus/bodyparser/internal/x"
	"github.com/dadrus/bodyparser/internal/x/httpx"
)

func New(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
			start := time.Now()
			ctx := accesscontext.New(req.Context())
			req = req.WithContext(ctx)

			logCtx := logger.Level(zerolog.InfoLevel).With().
				Int64("_tx_start", start.Unix()).
				Str("_client_ip", httpx.ClientIP(req)).
				Str("_http_method", req.Method).
				Str("_http_path", req.URL.Path).
				Str("_http_user_agent", req.Header.Get("User-Agent")).
				Str("_http_host", req.Host).
				Str("_http_scheme", x.IfThenElse(req.TLS != nil, "https", "http"))

			logCtx = logHeader(req, logCtx, "Content-Type", "_http_content_type")
			logCtx = logHeader(req, logCtx, "X-Request-Id", "_request_id")

			accLog := logCtx.Logger()
			accLog.Info().Msg("TX started")

			metrics := httpsnoop.CaptureMetrics(next, rw, req)

			logDecodingStatus(ctx, accLog.Info(), metrics.Code).
				Int64("_body_bytes_sent", metrics.Written).
				Int("_http_status_code", metrics.Code).
				Int64("_tx_duration_ms", metrics.Duration.Milliseconds()).
				Msg("TX finished")
		})
	}
}

func logDecodingStatus(ctx context.Context, event *zerolog.Event, statusCode int) *zerolog.Event {
	contentType := accesscontext.ContentType(ctx)
	err := accesscontext.Error(ctx)

	if len(contentType) != 0 {
		event.Str("_decoded_as", contentType)
	}

	if err != nil || statusCode >= 300 {
		event.Err(err).Bool("_decoding_succeeded", false)
	} else {
		event.Bool("_decoding_succeeded", true)
	}

	return event
}

func logHeader(req *http.Request, logCtx zerolog.Context, headerName, logKey string) zerolog.Context {
	if headerValue := req.Header.Get(headerName); len(headerValue) != 0 {
		logCtx = logCtx.Str(logKey, headerValue)
	}

	return logCtx
}
