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
	"errors"
)

var ErrUnsupportedContentType = errors.New("unsupported mime type")

// Decoder turns a raw payload into a structured value. Implementations are
// stateless and safe for concurrent use.
type Decoder interface {
	Decode(data []byte, params map[string]string) (any, error)
}

type decoderOpts struct {
	base64Encoded bool
}

type DecoderOption func(*decoderOpts)

// WithBase64Encoding marks the payload as base64 encoded. Only the multipart
// decoder takes it into account.
func WithBase64Encoding(flag bool) DecoderOption {
	return func(o *decoderOpts) {
		o.base64Encoded = flag
	}
}

func NewDecoder(kind Kind, opts ...DecoderOption) (Decoder, error) {
	options := decoderOpts{}

	for _, opt := range opts {
		opt(&options)
	}

	switch kind {
	case KindJSON:
		return JSONDecoder{}, nil
	case KindForm:
		return WWWFormUrlencodedDecoder{}, nil
	case KindMultipart:
		return MultipartDecoder{Base64Encoded: options.base64Encoded}, nil
	default:
		return nil, ErrUnsupportedContentType
	}
}
