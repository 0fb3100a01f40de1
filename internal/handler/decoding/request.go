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

package decoding

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/dadrus/bodyparser/internal/errorsx"
	"github.com/dadrus/bodyparser/internal/pipeline"
	"github.com/dadrus/bodyparser/internal/pipeline/contenttype"
	"github.com/dadrus/bodyparser/internal/x/errorchain"
)

const base64Encoding = "base64"

func newRequestContext(req *http.Request, base64Header string) (*pipeline.Context, error) {
	raw, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, errorchain.NewWithMessage(errorsx.ErrArgument, "failed to read request body").
			CausedBy(err)
	}

	headers := make(pipeline.Headers, len(req.Header))
	for name, values := range req.Header {
		headers[name] = strings.Join(values, ", ")
	}

	ctx := pipeline.NewContext(req.Context(), headers, raw)
	ctx.IsBase64Encoded = strings.EqualFold(strings.TrimSpace(req.Header.Get(base64Header)), base64Encoding)

	return ctx, nil
}

// decodedMediaType returns the media type the body has been decoded from. The
// body is handed to the pipeline as []byte, so any other non nil value is the
// result of a decoding.
func decodedMediaType(ctx *pipeline.Context) string {
	if _, raw := ctx.Body.([]byte); raw || ctx.Body == nil {
		return ""
	}

	header, _ := ctx.Headers.Get("Content-Type")

	ct, err := contenttype.Resolve(header)
	if err != nil {
		return ""
	}

	return ct.Type
}

// responseBody converts raw payloads left untouched to strings so that they are
// rendered as such and not base64 encoded.
func responseBody(body any) any {
	if raw, ok := body.([]byte); ok {
		return string(raw)
	}

	return body
}

func runPipeline(ctx context.Context, chain pipeline.Chain, pctx *pipeline.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return chain.Run(pctx, nil)
}
