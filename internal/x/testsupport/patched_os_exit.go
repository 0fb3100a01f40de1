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

package testsupport

import (
	"os"
	"testing"

	"github.com/undefinedlabs/go-mpatch"
)

// PatchedOSExit records the invocation of os.Exit while it is patched.
type PatchedOSExit struct {
	Called bool
	Code   int

	patch *mpatch.Patch
}

// PatchOSExit replaces os.Exit with exitFn until the test finishes.
func PatchOSExit(t *testing.T, exitFn func(int)) (*PatchedOSExit, error) {
	t.Helper()

	var err error

	exit := &PatchedOSExit{}
	exit.patch, err = mpatch.PatchMethod(os.Exit, func(code int) {
		exit.Called = true
		exit.Code = code

		exitFn(code)
	})

	t.Cleanup(func() {
		if exit.patch != nil {
			_ = exit.patch.Unpatch()
		}
	})

	return exit, err
}
