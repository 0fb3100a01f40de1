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

package logger

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const headerRequestID = "X-Request-Id"

// New attaches the given logger to the request context. Every log event emitted for
// the request carries its request id, which is generated if the client did not send
// one. The id is echoed in the response.
func New(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
			requestID := req.Header.Get(headerRequestID)
			if len(requestID) == 0 {
				requestID = uuid.NewString()
				req.Header.Set(headerRequestID, requestID)
			}

			rw.Header().Set(headerRequestID, requestID)

			reqLogger := logger.With().Str("_request_id", requestID).Logger()

			next.ServeHTTP(rw, req.WithContext(reqLogger.WithContext(req.Context())))
		})
	}
}
