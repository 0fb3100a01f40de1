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

package contenttype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		uc     string
		value  string
		assert func(t *testing.T, err error, ct ContentType)
	}{
		{
			uc:    "simple media type",
			value: "application/json",
			assert: func(t *testing.T, err error, ct ContentType) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, "application/json", ct.Type)
				assert.Empty(t, ct.Parameters)
				assert.Equal(t, KindJSON, ct.Kind())
			},
		},
		{
			uc:    "media type with parameters",
			value: "application/json; charset=utf-8",
			assert: func(t *testing.T, err error, ct ContentType) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, "application/json", ct.Type)
				assert.Equal(t, map[string]string{"charset": "utf-8"}, ct.Parameters)
			},
		},
		{
			uc:    "upper case media type",
			value: "Application/X-WWW-Form-Urlencoded",
			assert: func(t *testing.T, err error, ct ContentType) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, "application/x-www-form-urlencoded", ct.Type)
				assert.Equal(t, KindForm, ct.Kind())
			},
		},
		{
			uc:    "multipart with boundary keeps the boundary case",
			value: "multipart/form-data; boundary=----WebKitFormBoundaryvef1fLxmoUdYZWXp",
			assert: func(t *testing.T, err error, ct ContentType) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, "multipart/form-data", ct.Type)
				assert.Equal(t, "----WebKitFormBoundaryvef1fLxmoUdYZWXp", ct.Parameters["boundary"])
				assert.Equal(t, KindMultipart, ct.Kind())
			},
		},
		{
			uc:    "parameter names are lower cased but values kept",
			value: "Multipart/Form-Data; Boundary=AbCdEf; Charset=UTF-8",
			assert: func(t *testing.T, err error, ct ContentType) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, "multipart/form-data", ct.Type)
				assert.Equal(t, map[string]string{"boundary": "AbCdEf", "charset": "UTF-8"}, ct.Parameters)
			},
		},
		{
			uc:    "quoted boundary",
			value: `multipart/form-data; boundary="Abc:Def"`,
			assert: func(t *testing.T, err error, ct ContentType) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, "Abc:Def", ct.Parameters["boundary"])
			},
		},
		{
			uc:    "unsupported but valid media type",
			value: "text/plain",
			assert: func(t *testing.T, err error, ct ContentType) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, "text/plain", ct.Type)
				assert.Equal(t, KindOther, ct.Kind())
			},
		},
		{
			uc:    "missing subtype",
			value: "application",
			assert: func(t *testing.T, err error, _ ContentType) {
				t.Helper()

				require.Error(t, err)
				require.ErrorIs(t, err, ErrParse)
				assert.Contains(t, err.Error(), `"application"`)
			},
		},
		{
			uc:    "empty value",
			value: "",
			assert: func(t *testing.T, err error, _ ContentType) {
				t.Helper()

				require.ErrorIs(t, err, ErrParse)
			},
		},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			// WHEN
			ct, err := Resolve(tc.value)

			// THEN
			tc.assert(t, err, ct)
		})
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		mediaType string
		kind      Kind
		name      string
	}{
		{mediaType: "application/json", kind: KindJSON, name: "JSON"},
		{mediaType: "application/x-www-form-urlencoded", kind: KindForm, name: "Form URL Encoding"},
		{mediaType: "multipart/form-data", kind: KindMultipart, name: "Multipart Encoding"},
		{mediaType: "multipart/mixed", kind: KindOther, name: "Other"},
		{mediaType: "application/problem+json", kind: KindOther, name: "Other"},
		{mediaType: "", kind: KindOther, name: "Other"},
	} {
		t.Run(tc.mediaType, func(t *testing.T) {
			// WHEN
			kind := KindOf(tc.mediaType)

			// THEN
			assert.Equal(t, tc.kind, kind)
			assert.Equal(t, tc.name, kind.String())
		})
	}
}
