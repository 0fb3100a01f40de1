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

package httperr

import (
	"encoding/xml"
	"net/http"
	"reflect"

	"github.com/goccy/go-json"
	"github.com/iancoleman/strcase"
)

// Factory creates the client visible error for the given HTTP status code and message.
type Factory func(code int, message string) error

// Error is an error meant to be sent to the client. Only Code and Message are ever
// rendered; whatever caused it is expected to be logged before.
type Error struct {
	Code    int
	Message string
}

type message struct { //nolint:musttag
	XMLName xml.Name `json:"-"`
	Code    string   `json:"code"              xml:"code"`
	Message string   `json:"message,omitempty" xml:"message,omitempty"`
}

func New(code int, message string) error {
	return &Error{Code: code, Message: message}
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Is(target error) bool { return reflect.TypeOf(e) == reflect.TypeOf(target) }

func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(message{Code: e.codeName(), Message: e.Message})
}

func (e *Error) MarshalXML(encoder *xml.Encoder, _ xml.StartElement) error {
	return encoder.Encode(message{ //nolint:musttag
		XMLName: xml.Name{Local: "error"},
		Code:    e.codeName(),
		Message: e.Message,
	})
}

func (e *Error) codeName() string {
	text := http.StatusText(e.Code)
	if len(text) == 0 {
		return "unknownError"
	}

	return strcase.ToLowerCamel(text)
}
