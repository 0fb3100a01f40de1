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
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKoanfFromYaml(t *testing.T) {
	for _, tc := range []struct {
		uc     string
		config string
		env    map[string]string
		assert func(t *testing.T, err error, konf *koanf.Koanf)
	}{
		{
			uc: "valid content",
			config: `
serve:
  port: 8080
  verbose_errors: true
log:
  level: debug
`,
			assert: func(t *testing.T, err error, konf *koanf.Koanf) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, 8080, konf.Get("serve.port"))
				assert.Equal(t, true, konf.Get("serve.verbose_errors"))
				assert.Equal(t, "debug", konf.Get("log.level"))
			},
		},
		{
			uc:     "content with environment variables",
			config: "serve:\n  host: ${YAMLTEST_HOST}\n  port: ${YAMLTEST_PORT:-9090}\n",
			env:    map[string]string{"YAMLTEST_HOST": "127.0.0.1"},
			assert: func(t *testing.T, err error, konf *koanf.Koanf) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, "127.0.0.1", konf.Get("serve.host"))
				assert.Equal(t, 9090, konf.Get("serve.port"))
			},
		},
		{
			uc:     "invalid content",
			config: "foobar",
			assert: func(t *testing.T, err error, _ *koanf.Koanf) {
				t.Helper()

				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to load")
			},
		},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			// GIVEN
			for key, val := range tc.env {
				t.Setenv(key, val)
			}

			fileName := writeConfigFile(t, tc.config)

			// WHEN
			konf, err := koanfFromYaml(fileName)

			// THEN
			tc.assert(t, err, konf)
		})
	}
}

func TestKoanfFromYamlWithMissingFile(t *testing.T) {
	t.Parallel()

	// WHEN
	_, err := koanfFromYaml(filepath.Join(t.TempDir(), "missing.yaml"))

	// THEN
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}
