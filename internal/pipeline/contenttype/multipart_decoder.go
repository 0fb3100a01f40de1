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

package contenttype

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"mime/multipart"
)

var ErrMissingBoundary = errors.New("missing boundary parameter")

// Part is a single entry of a multipart/form-data payload.
type Part struct {
	Name     string `json:"name,omitempty"`
	Filename string `json:"filename,omitempty"`
	Type     string `json:"type,omitempty"`
	Data     []byte `json:"data"`
}

// MultipartDecoder decodes multipart/form-data payloads into the ordered list of
// their parts. The boundary is taken from the "boundary" parameter.
type MultipartDecoder struct {
	Base64Encoded bool
}

func (d MultipartDecoder) Decode(rawData []byte, params map[string]string) (any, error) {
	boundary := params["boundary"]
	if len(boundary) == 0 {
		return nil, ErrMissingBoundary
	}

	data := rawData

	if d.Base64Encoded {
		decoded, err := decodeBase64(rawData)
		if err != nil {
			return nil, err
		}

		data = decoded
	}

	reader := multipart.NewReader(bytes.NewReader(data), boundary)
	parts := make([]Part, 0)

	for {
		part, err := reader.NextPart()
		// only a bare io.EOF marks the final boundary. A wrapped one means no
		// boundary has been found at all.
		if err == io.EOF { //nolint:errorlint
			return parts, nil
		} else if err != nil {
			return nil, err
		}

		content, err := io.ReadAll(part)
		_ = part.Close()

		if err != nil {
			return nil, err
		}

		parts = append(parts, Part{
			Name:     part.FormName(),
			Filename: part.FileName(),
			Type:     part.Header.Get("Content-Type"),
			Data:     content,
		})
	}
}

// decodeBase64 accepts padded and unpadded input in both the standard and the URL
// safe alphabet.
func decodeBase64(data []byte) ([]byte, error) {
	var firstErr error

	for _, enc := range []*base64.Encoding{
		base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding,
	} {
		decoded := make([]byte, enc.DecodedLen(len(data)))

		n, err := enc.Decode(decoded, data)
		if err == nil {
			return decoded[:n], nil
		}

		if firstErr == nil {
			firstErr = err
		}
	}

	return nil, firstErr
}
