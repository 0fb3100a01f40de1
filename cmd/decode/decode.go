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

package decode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dadrus/bodyparser/internal/pipeline"
	"github.com/dadrus/bodyparser/internal/pipeline/bodyparser"
)

const (
	ContentTypeFlag = "content-type"
	Base64Flag      = "base64"
	InputFlag       = "input"
	OutputFlag      = "output"
	LogLevelFlag    = "log-level"

	outputJSON = "json"
	outputYAML = "yaml"
	stdin      = "-"
)

var ErrUnsupportedOutputFormat = errors.New("unsupported output format")

// NewDecodeCommand represents the "decode" command.
func NewDecodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decodes a payload according to its content type and prints the result",
		Example: "bodyparser decode -t application/json -i body.json\n" +
			"cat form.txt | bodyparser decode -t application/x-www-form-urlencoded -o yaml",
		Run: func(cmd *cobra.Command, _ []string) {
			if err := runDecode(cmd); err != nil {
				cmd.PrintErrf("%v\n", err)

				os.Exit(1)
			}
		},
	}

	cmd.Flags().StringP(ContentTypeFlag, "t", "",
		"Content type of the payload, including its parameters, e.g. the multipart boundary")
	cmd.Flags().Bool(Base64Flag, false, "Marks the payload as base64 encoded")
	cmd.Flags().StringP(InputFlag, "i", stdin, "File to read the payload from. Use - for stdin")
	cmd.Flags().StringP(OutputFlag, "o", outputJSON, "Output format, either json or yaml")
	cmd.Flags().String(LogLevelFlag, zerolog.WarnLevel.String(), "Log level for diagnostic messages")

	return cmd
}

func runDecode(cmd *cobra.Command) error {
	contentType, _ := cmd.Flags().GetString(ContentTypeFlag)
	isBase64, _ := cmd.Flags().GetBool(Base64Flag)
	input, _ := cmd.Flags().GetString(InputFlag)
	output, _ := cmd.Flags().GetString(OutputFlag)
	logLevel, _ := cmd.Flags().GetString(LogLevelFlag)

	if output != outputJSON && output != outputYAML {
		return fmt.Errorf("%w: %s", ErrUnsupportedOutputFormat, output)
	}

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	raw, err := readInput(cmd.InOrStdin(), input)
	if err != nil {
		return err
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: true}).
		Level(level).With().Timestamp().Logger()

	body, err := decode(logger.WithContext(context.Background()), contentType, raw, isBase64)
	if err != nil {
		return err
	}

	return writeResult(cmd.OutOrStdout(), output, body)
}

func readInput(in io.Reader, input string) ([]byte, error) {
	if input == stdin {
		return io.ReadAll(in)
	}

	return os.ReadFile(input)
}

func decode(ctx context.Context, contentType string, raw []byte, isBase64 bool) (any, error) {
	headers := pipeline.Headers{}
	if len(contentType) != 0 {
		headers["Content-Type"] = contentType
	}

	pctx := pipeline.NewContext(ctx, headers, raw)
	pctx.IsBase64Encoded = isBase64

	if err := pipeline.NewChain(bodyparser.New()).Run(pctx, nil); err != nil {
		return nil, err
	}

	if data, ok := pctx.Body.([]byte); ok {
		return string(data), nil
	}

	return pctx.Body, nil
}

func writeResult(out io.Writer, format string, body any) error {
	if format == outputYAML {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2) //nolint:mnd

		if err := enc.Encode(body); err != nil {
			return err
		}

		return enc.Close()
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	return enc.Encode(body)
}
