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
	"bytes"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/dadrus/bodyparser/internal/accesscontext"
	"github.com/dadrus/bodyparser/internal/errorsx"
	"github.com/dadrus/bodyparser/internal/handler/middleware/http/errorhandler"
	"github.com/dadrus/bodyparser/internal/pipeline"
	"github.com/dadrus/bodyparser/internal/x/errorchain"
)

type response struct {
	Body any `json:"body"`
}

type decodeHandler struct {
	chain        pipeline.Chain
	eh           errorhandler.ErrorHandler
	base64Header string
}

func newDecodeHandler(chain pipeline.Chain, eh errorhandler.ErrorHandler, base64Header string) http.Handler {
	return &decodeHandler{chain: chain, eh: eh, base64Header: base64Header}
}

func (h *decodeHandler) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	pctx, err := newRequestContext(req, h.base64Header)
	if err != nil {
		h.eh.HandleError(rw, req, err)

		return
	}

	if err = runPipeline(req.Context(), h.chain, pctx); err != nil {
		h.eh.HandleError(rw, req, err)

		return
	}

	payload, err := json.Marshal(response{Body: responseBody(pctx.Body)})
	if err != nil {
		h.eh.HandleError(rw, req,
			errorchain.NewWithMessage(errorsx.ErrInternal, "failed to render response").CausedBy(err))

		return
	}

	accesscontext.SetContentType(req.Context(), decodedMediaType(pctx))
	writeJSON(rw, payload)
}

type eventHandler struct {
	chain pipeline.Chain
	eh    errorhandler.ErrorHandler
}

func newEventHandler(chain pipeline.Chain, eh errorhandler.ErrorHandler) http.Handler {
	return &eventHandler{chain: chain, eh: eh}
}

func (h *eventHandler) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	data, err := io.ReadAll(req.Body)
	if err != nil {
		h.eh.HandleError(rw, req,
			errorchain.NewWithMessage(errorsx.ErrArgument, "failed to read request body").CausedBy(err))

		return
	}

	evt, err := parseEvent(bytes.TrimSpace(data))
	if err != nil {
		h.eh.HandleError(rw, req, err)

		return
	}

	pctx := pipeline.NewContext(req.Context(), evt.headers, evt.rawBody())
	pctx.IsBase64Encoded = evt.isBase64Encoded

	if err = runPipeline(req.Context(), h.chain, pctx); err != nil {
		h.eh.HandleError(rw, req, err)

		return
	}

	payload, err := evt.marshalWithBody(responseBody(pctx.Body))
	if err != nil {
		h.eh.HandleError(rw, req,
			errorchain.NewWithMessage(errorsx.ErrInternal, "failed to render event").CausedBy(err))

		return
	}

	accesscontext.SetContentType(req.Context(), decodedMediaType(pctx))
	writeJSON(rw, payload)
}

func writeJSON(rw http.ResponseWriter, payload []byte) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(http.StatusOK)
	rw.Write(payload) //nolint:errcheck
}
