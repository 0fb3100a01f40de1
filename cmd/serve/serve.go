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

package serve

import (
	"github.com/spf13/cobra"

	"github.com/dadrus/bodyparser/internal/handler/decoding"
)

// NewServeCommand represents the "serve" command.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Short:   "Starts the HTTP service decoding request bodies",
		Example: "bodyparser serve -c config.yaml",
		Run: func(cmd *cobra.Command, _ []string) {
			app, err := createApp(cmd, decoding.Module)
			if err != nil {
				cmd.PrintErrf("Failed to initialize bodyparser: %v\n", err)

				return
			}

			app.Run()
		},
	}
}
