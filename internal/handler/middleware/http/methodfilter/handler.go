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

package methodfilter

import (
	"net/http"
	"slices"
	"strings"
)

// New rejects requests with a method not contained in the given list.
func New(methods ...string) func(http.Handler) http.Handler {
	allowed := strings.Join(methods, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
			if !slices.Contains(methods, req.Method) {
				rw.Header().Set("Allow", allowed)
				rw.WriteHeader(http.StatusMethodNotAllowed)

				return
			}

			next.ServeHTTP(rw, req)
		})
	}
}
