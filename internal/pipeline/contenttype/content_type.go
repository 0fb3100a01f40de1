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
	"mime"
	"strings"

	mediatype "github.com/elnormous/contenttype"

	"github.com/dadrus/bodyparser/internal/x/errorchain"
)

var ErrParse = errors.New("malformed media type")

// ContentType is the normalized form of a Content-Type header value. Type holds
// the lower cased "type/subtype" token, Parameters the parameters keyed by their
// lower cased names.
type ContentType struct {
	Type       string
	Parameters map[string]string
}

func (ct ContentType) Kind() Kind { return KindOf(ct.Type) }

// Resolve parses the given header value according to the media type grammar
// ("type/subtype; name=value; ..."). Parameter values are kept as sent, since
// e.g. multipart boundaries are case-sensitive.
func Resolve(value string) (ContentType, error) {
	mt, err := mediatype.ParseMediaType(value)
	if err != nil {
		return ContentType{}, errorchain.NewWithMessagef(ErrParse, "%q", value).CausedBy(err)
	}

	return ContentType{
		Type:       strings.ToLower(mt.Type + "/" + mt.Subtype),
		Parameters: parameters(value, mt.Parameters),
	}, nil
}

// parameters returns the parameters of value with lower cased names. The grammar
// check above lower cases the values as well, so they are taken from mime if it
// can read them.
func parameters(value string, fallback map[string]string) map[string]string {
	if _, params, err := mime.ParseMediaType(value); err == nil {
		return params
	}

	params := make(map[string]string, len(fallback))
	for name, val := range fallback {
		params[strings.ToLower(name)] = val
	}

	return params
}
