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

package dump

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/justinas/alice"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadrus/bodyparser/internal/x/testsupport"
)

func TestDumpHandler(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		uc       string
		logLevel zerolog.Level
		assert   func(t *testing.T, events []map[string]any)
	}{
		{
			uc:       "debug log level",
			logLevel: zerolog.DebugLevel,
			assert: func(t *testing.T, events []map[string]any) {
				t.Helper()

				assert.Empty(t, events)
			},
		},
		{
			uc:       "trace log level",
			logLevel: zerolog.TraceLevel,
			assert: func(t *testing.T, events []map[string]any) {
				t.Helper()

				require.Len(t, events, 2)

				assert.Equal(t, "trace", events[0]["level"])
				assert.Contains(t, events[0]["message"], "POST /decode HTTP/1.1")
				assert.Contains(t, events[0]["message"], `{"foo":"bar"}`)

				assert.Equal(t, "trace", events[1]["level"])
				assert.Contains(t, events[1]["message"], "HTTP/1.1 201 Created")
				assert.Contains(t, events[1]["message"], "X-Test: yes")
				assert.Contains(t, events[1]["message"], `{"body":{"foo":"bar"}}`)
			},
		},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			t.Parallel()

			// GIVEN
			tl := &testsupport.TestingLog{TB: t}
			logger := zerolog.New(zerolog.TestWriter{T: tl}).Level(tc.logLevel)

			handler := alice.New(
				func(next http.Handler) http.Handler {
					return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
						next.ServeHTTP(rw, req.WithContext(logger.WithContext(req.Context())))
					})
				},
				New(),
			).ThenFunc(func(rw http.ResponseWriter, _ *http.Request) {
				rw.Header().Set("X-Test", "yes")
				rw.WriteHeader(http.StatusCreated)
				_, _ = rw.Write([]byte(`{"body":{"foo":"bar"}}`))
			})

			req := httptest.NewRequest(http.MethodPost, "/decode", strings.NewReader(`{"foo":"bar"}`))
			rec := httptest.NewRecorder()

			// WHEN
			handler.ServeHTTP(rec, req)

			// THEN
			assert.Equal(t, http.StatusCreated, rec.Code)
			assert.JSONEq(t, `{"body":{"foo":"bar"}}`, rec.Body.String())
			tc.assert(t, tl.Events())
		})
	}
}
