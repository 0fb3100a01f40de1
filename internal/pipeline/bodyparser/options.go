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
	"github.com/dadrus/bodyparser/internal/httperr"
	"github.com/dadrus/bodyparser/internal/pipeline/contenttype"
)

// Observer is informed about every decoding attempt. err is nil on success.
type Observer interface {
	ObserveDecoding(kind contenttype.Kind, err error)
}

type noopObserver struct{}

func (noopObserver) ObserveDecoding(contenttype.Kind, error) {}

type opts struct {
	newError httperr.Factory
	observer Observer
}

type Option func(*opts)

func WithErrorFactory(factory httperr.Factory) Option {
	return func(o *opts) {
		if factory != nil {
			o.newError = factory
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(o *opts) {
		if observer != nil {
			o.observer = observer
		}
	}
}
