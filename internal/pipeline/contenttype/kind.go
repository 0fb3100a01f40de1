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

type Kind int

const (
	KindOther Kind = iota
	KindJSON
	KindForm
	KindMultipart
)

const (
	MediaTypeJSON      = "application/json"
	MediaTypeForm      = "application/x-www-form-urlencoded"
	MediaTypeMultipart = "multipart/form-data"
)

// KindOf maps a normalized media type to the decoding kind responsible for it.
// Everything not supported results in KindOther.
func KindOf(mediaType string) Kind {
	switch mediaType {
	case MediaTypeJSON:
		return KindJSON
	case MediaTypeForm:
		return KindForm
	case MediaTypeMultipart:
		return KindMultipart
	default:
		return KindOther
	}
}

// String returns the human readable name used in client facing error messages.
func (k Kind) String() string {
	switch k {
	case KindJSON:
		return "JSON"
	case KindForm:
		return "Form URL Encoding"
	case KindMultipart:
		return "Multipart Encoding"
	default:
		return "Other"
	}
}
