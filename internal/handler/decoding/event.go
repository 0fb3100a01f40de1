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
	"github.com/goccy/go-json"

	"github.com/dadrus/bodyparser/internal/errorsx"
	"github.com/dadrus/bodyparser/internal/x/errorchain"
)

// event is a serverless HTTP proxy event. Fields not known to the decoder are
// kept as is and written back unchanged.
type event struct {
	headers         map[string]string
	body            *string
	isBase64Encoded bool

	fields map[string]json.RawMessage
}

func parseEvent(data []byte) (*event, error) {
	evt := &event{}

	if err := json.Unmarshal(data, &evt.fields); err != nil {
		return nil, errorchain.NewWithMessage(errorsx.ErrArgument, "malformed event").CausedBy(err)
	}

	if evt.fields == nil {
		return nil, errorchain.NewWithMessage(errorsx.ErrArgument, "malformed event")
	}

	for name, target := range map[string]any{
		"headers":         &evt.headers,
		"body":            &evt.body,
		"isBase64Encoded": &evt.isBase64Encoded,
	} {
		value, present := evt.fields[name]
		if !present {
			continue
		}

		if err := json.Unmarshal(value, target); err != nil {
			return nil, errorchain.NewWithMessagef(errorsx.ErrArgument, "malformed event field %s", name).
				CausedBy(err)
		}
	}

	return evt, nil
}

func (e *event) rawBody() any {
	if e.body == nil {
		return nil
	}

	return []byte(*e.body)
}

func (e *event) marshalWithBody(body any) ([]byte, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	result := make(map[string]json.RawMessage, len(e.fields)+1)
	for name, value := range e.fields {
		result[name] = value
	}

	result["body"] = encoded

	return json.Marshal(result)
}
