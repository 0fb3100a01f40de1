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

package pipeline

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
)

// Headers maps header names to their values. Lookups through Get ignore the case
// of the name.
type Headers map[string]string

func (h Headers) Get(name string) (string, bool) {
	if value, ok := h[name]; ok {
		return value, true
	}

	for key, value := range h {
		if strings.EqualFold(key, name) {
			return value, true
		}
	}

	return "", false
}

// Context is the request scoped state stages work on. Body starts as the raw
// payload (string or []byte) or nil and may be replaced by a stage.
type Context struct {
	Headers         Headers
	Body            any
	IsBase64Encoded bool

	ctx context.Context //nolint:containedctx
}

func NewContext(ctx context.Context, headers Headers, body any) *Context {
	if headers == nil {
		headers = Headers{}
	}

	return &Context{ctx: ctx, Headers: headers, Body: body}
}

func (c *Context) AppContext() context.Context {
	if c.ctx == nil {
		return context.Background()
	}

	return c.ctx
}

// Logger returns the logger bound to the request. zerolog falls back to a disabled
// logger if none has been attached.
func (c *Context) Logger() *zerolog.Logger { return zerolog.Ctx(c.AppContext()) }
