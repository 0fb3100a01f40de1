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
	"bytes"
	"net/http"
	"net/http/httputil"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/rs/zerolog"
)

// New dumps requests and the responses written for them at trace level. Nothing
// happens for loggers configured with a higher level.
func New() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
			logger := zerolog.Ctx(req.Context())

			if logger.GetLevel() != zerolog.TraceLevel {
				next.ServeHTTP(rw, req)

				return
			}

			if dump, err := httputil.DumpRequest(req, req.ContentLength != 0); err == nil {
				logger.Trace().Msgf("Request: %s", dump)
			} else {
				logger.Trace().Err(err).Msg("Failed dumping request")
			}

			var (
				buf         bytes.Buffer
				wroteHeader bool
			)

			writeHead := func(code int) {
				if wroteHeader {
					return
				}

				buf.WriteString(req.Proto + " " + strconv.Itoa(code) + " " + http.StatusText(code) + "\r\n")
				_ = rw.Header().Write(&buf)
				buf.WriteString("\r\n")

				wroteHeader = true
			}

			next.ServeHTTP(httpsnoop.Wrap(rw, httpsnoop.Hooks{
				WriteHeader: func(writeHeader httpsnoop.WriteHeaderFunc) httpsnoop.WriteHeaderFunc {
					return func(code int) {
						writeHead(code)
						writeHeader(code)
					}
				},
				Write: func(write httpsnoop.WriteFunc) httpsnoop.WriteFunc {
					return func(data []byte) (int, error) {
						writeHead(http.StatusOK)
						buf.Write(data)

						return write(data)
					}
				},
			}), req)

			logger.Trace().Msgf("Response: %s", buf.Bytes())
		})
	}
}
