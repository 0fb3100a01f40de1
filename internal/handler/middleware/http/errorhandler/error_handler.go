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

package errorhandler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dadrus/bodyparser/internal/accesscontext"
	"github.com/dadrus/bodyparser/internal/errorsx"
	"github.com/dadrus/bodyparser/internal/httperr"
)

//go:generate mockery --name ErrorHandler --structname ErrorHandlerMock

type ErrorHandler interface {
	HandleError(rw http.ResponseWriter, req *http.Request, err error)
}

func New(opts ...Option) ErrorHandler {
	options := defaultOptions()

	for _, opt := range opts {
		opt(options)
	}

	return &errorHandler{opts: options}
}

type errorHandler struct {
	*opts
}

func (h *errorHandler) HandleError(rw http.ResponseWriter, req *http.Request, err error) {
	ctx := req.Context()

	var httpErr *httperr.Error

	switch {
	case errors.As(err, &httpErr):
		errorWriter(h.opts, httpErr.Code)(rw, req, err)
	case errors.Is(err, errorsx.ErrArgument):
		h.onArgumentError(rw, req, err)
	default:
		logger := zerolog.Ctx(ctx)
		logger.Error().Err(err).Msg("Internal error occurred")

		h.onInternalError(rw, req, err)
	}

	accesscontext.SetError(ctx, err)
}

// clientMessage returns the message of a client error as is. Any other error is
// rendered by its full text, which is only done if verbose errors are enabled.
func clientMessage(err error) string {
	var httpErr *httperr.Error
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}

	return err.Error()
}
