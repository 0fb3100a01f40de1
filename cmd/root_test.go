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

package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommandHasAllSubcommands(t *testing.T) {
	t.Parallel()

	// WHEN
	names := make([]string, 0, len(RootCmd.Commands()))
	for _, cmd := range RootCmd.Commands() {
		names = append(names, cmd.Name())
	}

	// THEN
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "validate")
	assert.Contains(t, names, "decode")
}

func TestNewValidateCmd(t *testing.T) {
	t.Parallel()

	// WHEN
	cmd := newValidateCmd()

	// THEN
	assert.Equal(t, "validate", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, cmd.PersistentFlags().Lookup("env-config-prefix"))

	commands := cmd.Commands()
	assert.Len(t, commands, 1)
	assert.Equal(t, "config", commands[0].Use)
}
