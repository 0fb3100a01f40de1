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
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dadrus/bodyparser/internal/httperr"
	"github.com/dadrus/bodyparser/internal/pipeline"
	"github.com/dadrus/bodyparser/internal/pipeline/contenttype"
	"github.com/dadrus/bodyparser/internal/x/testsupport"
)

const testBoundary = "----WebKitFormBoundaryvef1fLxmoUdYZWXp"

type observerMock struct {
	mock.Mock
}

func (m *observerMock) ObserveDecoding(kind contenttype.Kind, err error) { m.Called(kind, err) }

func demoMultipartData(t *testing.T) []byte {
	t.Helper()

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	require.NoError(t, writer.SetBoundary(testBoundary))

	for _, file := range []struct{ name, data string }{
		{name: "A.txt", data: "@11X111Y\r\n111Z\rCCCC\nCCCC\r\nCCCCC@\r\n"},
		{name: "B.txt", data: "@22X222Y\r\n222Z\r222W\n2220\r\n666@"},
	} {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="uploads[]"; filename=%q`, file.name))
		header.Set("Content-Type", "text/plain")

		pw, err := writer.CreatePart(header)
		require.NoError(t, err)

		_, err = pw.Write([]byte(file.data))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	return buf.Bytes()
}

func levels(events []map[string]any) []string {
	res := make([]string, 0, len(events))
	for _, event := range events {
		res = append(res, fmt.Sprint(event["level"]))
	}

	return res
}

func TestStageProcess(t *testing.T) {
	t.Parallel()

	errNext := errors.New("next failed")

	for _, tc := range []struct {
		uc        string
		headers   pipeline.Headers
		body      func(t *testing.T) any
		base64    bool
		nextErr   error
		configure func(t *testing.T, obs *observerMock)
		assert    func(t *testing.T, err error, ctx *pipeline.Context, nextCalls int, logs *testsupport.TestingLog)
	}{
		{
			uc:      "absent body",
			headers: pipeline.Headers{"content-type": "application/json"},
			body:    func(t *testing.T) any { t.Helper(); return nil },
			assert: func(t *testing.T, err error, ctx *pipeline.Context, nextCalls int, _ *testsupport.TestingLog) {
				t.Helper()

				require.NoError(t, err)
				assert.Nil(t, ctx.Body)
				assert.Equal(t, 1, nextCalls)
			},
		},
		{
			uc:      "empty string body",
			headers: pipeline.Headers{"content-type": "application/json"},
			body:    func(t *testing.T) any { t.Helper(); return "" },
			assert: func(t *testing.T, err error, ctx *pipeline.Context, nextCalls int, _ *testsupport.TestingLog) {
				t.Helper()

				require.NoError(t, err)
				assert.Nil(t, ctx.Body)
				assert.Equal(t, 1, nextCalls)
			},
		},
		{
			uc:      "empty byte body",
			headers: pipeline.Headers{},
			body:    func(t *testing.T) any { t.Helper(); return []byte{} },
			assert: func(t *testing.T, err error, ctx *pipeline.Context, nextCalls int, _ *testsupport.TestingLog) {
				t.Helper()

				require.NoError(t, err)
				assert.Nil(t, ctx.Body)
				assert.Equal(t, 1, nextCalls)
			},
		},
		{
			uc:      "no content type header",
			headers: pipeline.Headers{"Accept": "application/json"},
			body:    func(t *testing.T) any { t.Helper(); return `{"hello":"world"}` },
			assert: func(t *testing.T, err error, ctx *pipeline.Context, nextCalls int, _ *testsupport.TestingLog) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, `{"hello":"world"}`, ctx.Body)
				assert.Equal(t, 1, nextCalls)
			},
		},
		{
			uc:      "unparseable content type",
			headers: pipeline.Headers{"content-type": "some/unknown/type"},
			body:    func(t *testing.T) any { t.Helper(); return "Unknown body type" },
			assert: func(t *testing.T, err error, ctx *pipeline.Context, nextCalls int, _ *testsupport.TestingLog) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, "Unknown body type", ctx.Body)
				assert.Equal(t, 1, nextCalls)
			},
		},
		{
			uc:      "malformed content type is logged as warning",
			headers: pipeline.Headers{"Content-Type": "application"},
			body:    func(t *testing.T) any { t.Helper(); return "foo" },
			assert: func(t *testing.T, err error, ctx *pipeline.Context, nextCalls int, logs *testsupport.TestingLog) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, "foo", ctx.Body)
				assert.Equal(t, 1, nextCalls)

				events := logs.Events()
				require.Len(t, events, 1)
				assert.Equal(t, "warn", events[0]["level"])
			},
		},
		{
			uc:      "unsupported content type",
			headers: pipeline.Headers{"content-type": "text/plain"},
			body:    func(t *testing.T) any { t.Helper(); return "Plain text" },
			assert: func(t *testing.T, err error, ctx *pipeline.Context, nextCalls int, logs *testsupport.TestingLog) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, "Plain text", ctx.Body)
				assert.Equal(t, 1, nextCalls)
				assert.NotContains(t, levels(logs.Events()), "error")
			},
		},
		{
			uc:      "valid json",
			headers: pipeline.Headers{"content-type": "application/json; charset=utf-8"},
			body:    func(t *testing.T) any { t.Helper(); return `{"hello":"world"}` },
			configure: func(t *testing.T, obs *observerMock) {
				t.Helper()

				obs.On("ObserveDecoding", contenttype.KindJSON, nil).Once()
			},
			assert: func(t *testing.T, err error, ctx *pipeline.Context, nextCalls int, _ *testsupport.TestingLog) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, map[string]any{"hello": "world"}, ctx.Body)
				assert.Equal(t, 1, nextCalls)
			},
		},
		{
			uc:      "valid json given as bytes with canonical header name",
			headers: pipeline.Headers{"Content-Type": "application/json"},
			body:    func(t *testing.T) any { t.Helper(); return []byte(`[1,"a"]`) },
			assert: func(t *testing.T, err error, ctx *pipeline.Context, nextCalls int, _ *testsupport.TestingLog) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, []any{float64(1), "a"}, ctx.Body)
				assert.Equal(t, 1, nextCalls)
			},
		},
		{
			uc:      "invalid json",
			headers: pipeline.Headers{"content-type": "application/json; charset=utf-8"},
			body:    func(t *testing.T) any { t.Helper(); return "INVALID JSON" },
			configure: func(t *testing.T, obs *observerMock) {
				t.Helper()

				obs.On("ObserveDecoding", contenttype.KindJSON, mock.Anything).Once()
			},
			assert: func(t *testing.T, err error, ctx *pipeline.Context, nextCalls int, logs *testsupport.TestingLog) {
				t.Helper()

				var httpErr *httperr.Error

				require.ErrorAs(t, err, &httpErr)
				assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Code)
				assert.Equal(t, "Unprocessable Entity: Invalid JSON", httpErr.Message)
				assert.Equal(t, "INVALID JSON", ctx.Body)
				assert.Zero(t, nextCalls)

				events := logs.Events()
				require.Len(t, events, 2)
				assert.Equal(t, "error", events[0]["level"])
				assert.Equal(t, "Unprocessable Entity: Invalid JSON", events[0]["message"])
				assert.Equal(t, "debug", events[1]["level"])
				assert.Equal(t, "INVALID JSON", events[1]["message"])
			},
		},
		{
			uc:      "valid form encoding",
			headers: pipeline.Headers{"content-type": "application/x-www-form-urlencoded"},
			body:    func(t *testing.T) any { t.Helper(); return "a=b" },
			configure: func(t *testing.T, obs *observerMock) {
				t.Helper()

				obs.On("ObserveDecoding", contenttype.KindForm, nil).Once()
			},
			assert: func(t *testing.T, err error, ctx *pipeline.Context, nextCalls int, _ *testsupport.TestingLog) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, map[string]any{"a": "b"}, ctx.Body)
				assert.Equal(t, 1, nextCalls)
			},
		},
		{
			uc:      "form with invalid escapes",
			headers: pipeline.Headers{"content-type": "application/x-www-form-urlencoded"},
			body:    func(t *testing.T) any { t.Helper(); return "discount=100%&a=b" },
			configure: func(t *testing.T, obs *observerMock) {
				t.Helper()

				obs.On("ObserveDecoding", contenttype.KindForm, nil).Once()
			},
			assert: func(t *testing.T, err error, ctx *pipeline.Context, nextCalls int, _ *testsupport.TestingLog) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, map[string]any{"discount": "100%", "a": "b"}, ctx.Body)
				assert.Equal(t, 1, nextCalls)
			},
		},
		{
			uc: "valid base64 encoded multipart",
			headers: pipeline.Headers{
				"content-type": "multipart/form-data; boundary=" + testBoundary,
			},
			body: func(t *testing.T) any {
				t.Helper()

				return base64.StdEncoding.EncodeToString(demoMultipartData(t))
			},
			base64: true,
			configure: func(t *testing.T, obs *observerMock) {
				t.Helper()

				obs.On("ObserveDecoding", contenttype.KindMultipart, nil).Once()
			},
			assert: func(t *testing.T, err error, ctx *pipeline.Context, nextCalls int, _ *testsupport.TestingLog) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, 1, nextCalls)
				require.IsType(t, []contenttype.Part{}, ctx.Body)

				parts := ctx.Body.([]contenttype.Part) //nolint:forcetypeassert

				require.Len(t, parts, 2)
				assert.Equal(t, "A.txt", parts[0].Filename)
				assert.Equal(t, "text/plain", parts[0].Type)
				assert.Equal(t, "B.txt", parts[1].Filename)
				assert.Equal(t, "text/plain", parts[1].Type)
			},
		},
		{
			uc: "valid raw multipart",
			headers: pipeline.Headers{
				"Content-Type": "multipart/form-data; boundary=" + testBoundary,
			},
			body: func(t *testing.T) any { t.Helper(); return demoMultipartData(t) },
			assert: func(t *testing.T, err error, ctx *pipeline.Context, nextCalls int, logs *testsupport.TestingLog) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, 1, nextCalls)

				parts := ctx.Body.([]contenttype.Part) //nolint:forcetypeassert

				require.Len(t, parts, 2)
				assert.Equal(t, "A.txt", parts[0].Filename)
				assert.Equal(t, "B.txt", parts[1].Filename)
				// a successful multipart decoding does not end up in the "no decoder" branch
				assert.Empty(t, logs.Events())
			},
		},
		{
			uc: "multipart with mismatched boundary",
			headers: pipeline.Headers{
				"Content-Type": "multipart/form-data; boundary=" + strings.ToLower(testBoundary),
			},
			body: func(t *testing.T) any { t.Helper(); return demoMultipartData(t) },
			assert: func(t *testing.T, err error, _ *pipeline.Context, nextCalls int, _ *testsupport.TestingLog) {
				t.Helper()

				var httpErr *httperr.Error

				require.ErrorAs(t, err, &httpErr)
				assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Code)
				assert.Equal(t, "Unprocessable Entity: Invalid Multipart Encoding", httpErr.Message)
				assert.Zero(t, nextCalls)
			},
		},
		{
			uc:      "multipart without boundary",
			headers: pipeline.Headers{"content-type": "multipart/form-data"},
			body:    func(t *testing.T) any { t.Helper(); return demoMultipartData(t) },
			configure: func(t *testing.T, obs *observerMock) {
				t.Helper()

				obs.On("ObserveDecoding", contenttype.KindMultipart, contenttype.ErrMissingBoundary).Once()
			},
			assert: func(t *testing.T, err error, _ *pipeline.Context, nextCalls int, _ *testsupport.TestingLog) {
				t.Helper()

				var httpErr *httperr.Error

				require.ErrorAs(t, err, &httpErr)
				assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Code)
				assert.Equal(t, "Unprocessable Entity: Invalid Multipart Encoding", httpErr.Message)
				assert.Zero(t, nextCalls)
			},
		},
		{
			uc:      "multipart marked base64 but not encoded",
			headers: pipeline.Headers{"content-type": "multipart/form-data; boundary=" + testBoundary},
			body:    func(t *testing.T) any { t.Helper(); return "----WebKitFormBoundary!!!" },
			base64:  true,
			assert: func(t *testing.T, err error, _ *pipeline.Context, nextCalls int, _ *testsupport.TestingLog) {
				t.Helper()

				var httpErr *httperr.Error

				require.ErrorAs(t, err, &httpErr)
				assert.Equal(t, "Unprocessable Entity: Invalid Multipart Encoding", httpErr.Message)
				assert.Zero(t, nextCalls)
			},
		},
		{
			uc:      "already decoded body",
			headers: pipeline.Headers{"content-type": "application/json"},
			body:    func(t *testing.T) any { t.Helper(); return map[string]any{"foo": "bar"} },
			assert: func(t *testing.T, err error, ctx *pipeline.Context, nextCalls int, _ *testsupport.TestingLog) {
				t.Helper()

				require.NoError(t, err)
				assert.Equal(t, map[string]any{"foo": "bar"}, ctx.Body)
				assert.Equal(t, 1, nextCalls)
			},
		},
		{
			uc:      "error from next is propagated unchanged",
			headers: pipeline.Headers{"content-type": "application/json"},
			body:    func(t *testing.T) any { t.Helper(); return `{}` },
			nextErr: errNext,
			assert: func(t *testing.T, err error, ctx *pipeline.Context, nextCalls int, _ *testsupport.TestingLog) {
				t.Helper()

				require.ErrorIs(t, err, errNext)
				assert.Equal(t, map[string]any{}, ctx.Body)
				assert.Equal(t, 1, nextCalls)
			},
		},
		{
			uc:      "cancellation from next is not swallowed",
			headers: pipeline.Headers{},
			body:    func(t *testing.T) any { t.Helper(); return "foo" },
			nextErr: context.Canceled,
			assert: func(t *testing.T, err error, _ *pipeline.Context, nextCalls int, _ *testsupport.TestingLog) {
				t.Helper()

				require.ErrorIs(t, err, context.Canceled)
				assert.Equal(t, 1, nextCalls)
			},
		},
	} {
		t.Run(tc.uc, func(t *testing.T) {
			// GIVEN
			logger, logs := testsupport.NewLogger(t)
			obs := &observerMock{}

			configure := tc.configure
			if configure == nil {
				configure = func(t *testing.T, obs *observerMock) {
					t.Helper()

					obs.On("ObserveDecoding", mock.Anything, mock.Anything).Maybe()
				}
			}

			configure(t, obs)

			ctx := pipeline.NewContext(logger.WithContext(context.Background()), tc.headers, tc.body(t))
			ctx.IsBase64Encoded = tc.base64

			nextCalls := 0
			stage := New(WithObserver(obs))

			// WHEN
			err := stage.Process(ctx, func() error {
				nextCalls++

				return tc.nextErr
			})

			// THEN
			tc.assert(t, err, ctx, nextCalls, logs)
			obs.AssertExpectations(t)
		})
	}
}

func TestStageUsesConfiguredErrorFactory(t *testing.T) {
	t.Parallel()

	// GIVEN
	errCustom := errors.New("custom")

	var (
		code int
		msg  string
	)

	stage := New(WithErrorFactory(func(c int, m string) error {
		code = c
		msg = m

		return errCustom
	}))

	ctx := pipeline.NewContext(context.Background(), pipeline.Headers{"content-type": "application/json"}, "{")

	// WHEN
	err := stage.Process(ctx, func() error { return nil })

	// THEN
	require.ErrorIs(t, err, errCustom)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "Unprocessable Entity: Invalid JSON", msg)
}

func TestStageIgnoresNilOptions(t *testing.T) {
	t.Parallel()

	// WHEN
	stage := New(WithErrorFactory(nil), WithObserver(nil))

	// THEN
	require.NotNil(t, stage.newError)
	assert.Equal(t, noopObserver{}, stage.observer)
}

func TestStageIsSafeForConcurrentUse(t *testing.T) {
	t.Parallel()

	// GIVEN
	stage := New()

	var wg sync.WaitGroup

	// WHEN
	for i := range 50 {
		wg.Add(1)

		go func(idx int) {
			defer wg.Done()

			ctx := pipeline.NewContext(context.Background(),
				pipeline.Headers{"content-type": "application/x-www-form-urlencoded"},
				fmt.Sprintf("idx=%d", idx))

			err := stage.Process(ctx, func() error { return nil })

			// THEN
			assert.NoError(t, err)
			assert.Equal(t, map[string]any{"idx": fmt.Sprint(idx)}, ctx.Body)
		}(i)
	}

	wg.Wait()
}
