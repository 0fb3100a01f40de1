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

package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dadrus/bodyparser/internal/pipeline/contenttype"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// DecodeObserver counts body decoding attempts per content kind and outcome.
type DecodeObserver struct {
	decodings *prometheus.CounterVec
}

func NewDecodeObserver(reg prometheus.Registerer) *DecodeObserver {
	decodings := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bodyparser",
			Name:      "decode_total",
			Help:      "Number of request body decoding attempts",
		},
		[]string{"kind", "outcome"},
	)

	reg.MustRegister(decodings)

	return &DecodeObserver{decodings: decodings}
}

func (o *DecodeObserver) ObserveDecoding(kind contenttype.Kind, err error) {
	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeFailure
	}

	o.decodings.WithLabelValues(kind.String(), outcome).Inc()
}
