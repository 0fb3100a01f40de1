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
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// TestingLog collects everything written through zerolog.TestWriter so tests can
// assert on emitted log events. Every Log call results in one line.
type TestingLog struct {
	testing.TB

	mu  sync.Mutex
	buf bytes.Buffer
}

func (t *TestingLog) Log(args ...any) {
	t.write(fmt.Sprint(args...))
}

func (t *TestingLog) Logf(format string, args ...any) {
	t.write(fmt.Sprintf(format, args...))
}

func (t *TestingLog) CollectedLog() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.buf.String()
}

// Events returns the collected log output split into single JSON log events.
func (t *TestingLog) Events() []map[string]any {
	t.Helper()

	var events []map[string]any

	for _, line := range strings.Split(t.CollectedLog(), "\n") {
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}

		var event map[string]any
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			t.Fatalf("unexpected log line %q: %v", line, err)
		}

		events = append(events, event)
	}

	return events
}

func (t *TestingLog) write(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := t.buf.WriteString(line + "\n"); err != nil {
		t.Error(err)
	}
}

// NewLogger creates a debug level logger writing into a new TestingLog.
func NewLogger(t testing.TB) (zerolog.Logger, *TestingLog) {
	t.Helper()

	tl := &TestingLog{TB: t}
	logger := zerolog.New(zerolog.TestWriter{T: tl}).Level(zerolog.DebugLevel)

	return logger, tl
}
