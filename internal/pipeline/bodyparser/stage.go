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

package bodyparser

import (
	"net/http"

	"github.com/dadrus/bodyparser/internal/httperr"
	"github.com/dadrus/bodyparser/internal/pipeline"
	"github.com/dadrus/bodyparser/internal/pipeline/contenttype"
)

const headerContentType = "Content-Type"

// Stage replaces the raw request body with its structured representation based on
// the declared content type. Bodies of unknown or unparseable content types are
// left untouched. It holds no per request state.
type Stage struct {
	*opts
}

func New(options ...Option) *Stage {
	o := &opts{newError: httperr.New, observer: noopObserver{}}

	for _, opt := range options {
		opt(o)
	}

	return &Stage{opts: o}
}

func (s *Stage) Process(ctx *pipeline.Context, next pipeline.Next) error {
	logger := ctx.Logger()

	if isEmpty(ctx.Body) {
		ctx.Body = nil

		return next()
	}

	header, present := ctx.Headers.Get(headerContentType)
	if !present || len(header) == 0 {
		return next()
	}

	ct, err := contenttype.Resolve(header)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to parse content type. Leaving body untouched")

		return next()
	}

	raw, ok := rawBytes(ctx.Body)
	if !ok {
		logger.Debug().Msgf("Body of type %T is not a raw payload. Leaving it untouched", ctx.Body)

		return next()
	}

	switch kind := ct.Kind(); kind {
	case contenttype.KindJSON, contenttype.KindForm:
		body, err := s.decode(ctx, kind, raw, ct.Parameters)
		if err != nil {
			return err
		}

		ctx.Body = body

		return next()
	case contenttype.KindMultipart:
		body, err := s.decode(ctx, kind, raw, ct.Parameters, contenttype.WithBase64Encoding(ctx.IsBase64Encoded))
		if err != nil {
			return err
		}

		ctx.Body = body

		return next()
	default:
		logger.Debug().Str("_content_type", ct.Type).Msg("No decoder for content type. Leaving body untouched")

		return next()
	}
}

func (s *Stage) decode(
	ctx *pipeline.Context,
	kind contenttype.Kind,
	raw []byte,
	params map[string]string,
	decOpts ...contenttype.DecoderOption,
) (any, error) {
	decoder, err := contenttype.NewDecoder(kind, decOpts...)
	if err != nil {
		return nil, err
	}

	body, err := decoder.Decode(raw, params)
	s.observer.ObserveDecoding(kind, err)

	if err != nil {
		msg := "Unprocessable Entity: Invalid " + kind.String()
		logger := ctx.Logger()

		logger.Error().Err(err).Msg(msg)
		logger.Debug().Msg(string(raw))

		return nil, s.newError(http.StatusUnprocessableEntity, msg)
	}

	return body, nil
}

func isEmpty(body any) bool {
	switch val := body.(type) {
	case nil:
		return true
	case string:
		return len(val) == 0
	case []byte:
		return len(val) == 0
	default:
		return false
	}
}

func rawBytes(body any) ([]byte, bool) {
	switch val := body.(type) {
	case string:
		return []byte(val), true
	case []byte:
		return val, true
	default:
		return nil, false
	}
}
