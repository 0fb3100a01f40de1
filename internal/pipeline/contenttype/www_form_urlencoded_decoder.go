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
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const (
	maxFormDepth      = 5
	maxFormArrayIndex = 20
	maxFormParameters = 1000
)

var bracketSegment = regexp.MustCompile(`\[[^\[\]]*\]`)

// WWWFormUrlencodedDecoder decodes application/x-www-form-urlencoded payloads.
// Bracket notation in keys results in nested values: "a[b]=c" becomes
// {"a": {"b": "c"}}, "a[]=1&a[]=2" and "a=1&a=2" become {"a": ["1", "2"]}. Leaves
// are always strings.
type WWWFormUrlencodedDecoder struct{}

func (WWWFormUrlencodedDecoder) Decode(rawData []byte, _ map[string]string) (any, error) {
	var result any = map[string]any{}

	pairs := strings.Split(string(rawData), "&")
	if len(pairs) > maxFormParameters {
		pairs = pairs[:maxFormParameters]
	}

	for _, pair := range pairs {
		if len(pair) == 0 {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(pair, "=")

		key := unescapeFormText(rawKey)
		value := unescapeFormText(rawValue)

		if len(key) == 0 {
			continue
		}

		result = mergeFormValues(result, nestFormValue(splitFormKey(key), value))
	}

	return compactFormValue(result), nil
}

// splitFormKey splits "a[b][]" into "a", "[b]" and "[]". Nesting deeper than
// maxFormDepth is kept as a single literal segment.
func splitFormKey(key string) []string {
	loc := bracketSegment.FindStringIndex(key)
	if loc == nil {
		return []string{key}
	}

	var segments []string

	if loc[0] > 0 {
		segments = append(segments, key[:loc[0]])
	}

	pos := loc[0]

	for range maxFormDepth {
		loc = bracketSegment.FindStringIndex(key[pos:])
		if loc == nil {
			return segments
		}

		segments = append(segments, key[pos+loc[0]:pos+loc[1]])
		pos += loc[1]
	}

	if loc = bracketSegment.FindStringIndex(key[pos:]); loc != nil {
		segments = append(segments, "["+key[pos+loc[0]:]+"]")
	}

	return segments
}

func nestFormValue(segments []string, value string) any {
	var leaf any = value

	for i := len(segments) - 1; i >= 0; i-- {
		segment := segments[i]
		if segment == "[]" {
			leaf = []any{leaf}

			continue
		}

		name := segment
		bracketed := strings.HasPrefix(segment, "[") && strings.HasSuffix(segment, "]")

		if bracketed {
			name = segment[1 : len(segment)-1]
		}

		if idx, ok := arrayIndex(name); bracketed && ok {
			arr := make([]any, idx+1)
			arr[idx] = leaf
			leaf = arr
		} else {
			leaf = map[string]any{name: leaf}
		}
	}

	return leaf
}

func arrayIndex(name string) (int, bool) {
	idx, err := strconv.Atoi(name)
	if err != nil || idx < 0 || idx > maxFormArrayIndex || strconv.Itoa(idx) != name {
		return 0, false
	}

	return idx, true
}

func mergeFormValues(target, source any) any { // nolint: cyclop
	if source == nil {
		return target
	}

	switch tgt := target.(type) {
	case nil:
		return source
	case map[string]any:
		switch src := source.(type) {
		case map[string]any:
			for key, val := range src {
				tgt[key] = mergeFormValues(tgt[key], val)
			}
		case []any:
			for idx, val := range src {
				if val != nil {
					key := strconv.Itoa(idx)
					tgt[key] = mergeFormValues(tgt[key], val)
				}
			}
		default:
			return []any{tgt, src}
		}

		return tgt
	case []any:
		switch src := source.(type) {
		case []any:
			for idx, val := range src {
				if val == nil {
					continue
				}

				if idx >= len(tgt) {
					tgt = append(tgt, make([]any, idx-len(tgt)+1)...)
					tgt[idx] = val
				} else if tgt[idx] == nil {
					tgt[idx] = val
				} else if isFormObject(tgt[idx]) && isFormObject(val) {
					tgt[idx] = mergeFormValues(tgt[idx], val)
				} else {
					tgt = append(tgt, val)
				}
			}

			return tgt
		case map[string]any:
			converted := make(map[string]any, len(tgt)+len(src))

			for idx, val := range tgt {
				if val != nil {
					converted[strconv.Itoa(idx)] = val
				}
			}

			return mergeFormValues(converted, src)
		default:
			return append(tgt, src)
		}
	default:
		if src, ok := source.([]any); ok {
			return append([]any{tgt}, src...)
		}

		return []any{tgt, source}
	}
}

func isFormObject(val any) bool {
	switch val.(type) {
	case map[string]any, []any:
		return true
	default:
		return false
	}
}

// compactFormValue removes the holes sparse indexes ("a[3]=x") leave behind.
func compactFormValue(value any) any {
	switch val := value.(type) {
	case map[string]any:
		for key, entry := range val {
			val[key] = compactFormValue(entry)
		}

		return val
	case []any:
		compacted := make([]any, 0, len(val))

		for _, entry := range val {
			if entry != nil {
				compacted = append(compacted, compactFormValue(entry))
			}
		}

		return compacted
	default:
		return value
	}
}

// unescapeFormText decodes a key or value. Text with invalid escapes, like "100%",
// is kept as sent, apart from "+" meaning space.
func unescapeFormText(text string) string {
	if unescaped, err := url.QueryUnescape(text); err == nil {
		return unescaped
	}

	return strings.ReplaceAll(text, "+", " ")
}
