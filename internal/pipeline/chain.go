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

// Chain is an ordered list of stages. Each stage decides on its own whether to
// continue by calling next.
type Chain []Stage

func NewChain(stages ...Stage) Chain {
	return append(Chain(nil), stages...)
}

// Then returns a new chain with the given stages appended.
func (c Chain) Then(stages ...Stage) Chain {
	return append(append(make(Chain, 0, len(c)+len(stages)), c...), stages...)
}

// Run executes the chain. final is invoked after the last stage called its next
// and may be nil.
func (c Chain) Run(ctx *Context, final Next) error {
	return c.run(0, ctx, final)
}

func (c Chain) run(idx int, ctx *Context, final Next) error {
	if idx == len(c) {
		if final == nil {
			return nil
		}

		return final()
	}

	return c[idx].Process(ctx, func() error { return c.run(idx+1, ctx, final) })
}
