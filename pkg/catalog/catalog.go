// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package catalog reads the JSON instruction/annotation files Configure is
// pointed at. Instruction catalogs are a JSON array of objects; each object
// describes one instruction, alias group, overlay, or pseudo entry.
package catalog

import (
	"os"
	"strconv"

	"github.com/segmentio/encoding/json"

	"github.com/jeffnye-gh/mavisgo/internal/dectypes"
)

// Entry is one element of an instruction catalog array. The decoder core
// treats most keys as opaque except the small set the Builder interprets
// directly (mnemonic, form, stencil, fixed, ignore, overlay, alias,
// pseudo, xform, tags); everything else flows through to
// meta.InstMetaData/uarch.Parse as override data.
type Entry map[string]any

// ReadISAFile parses one instruction catalog file into its entries. A
// missing file or malformed JSON is BadISAFile; the spec requires this be
// fatal to Configure.
func ReadISAFile(path string) ([]Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, dectypes.BadISAFile(path, err)
	}

	var entries []Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, dectypes.BadISAFile(path, err)
	}

	return entries, nil
}

// ReadAnnotationFile parses one annotation catalog file into its entries.
// A missing file or malformed JSON is BadAnnotationFile.
func ReadAnnotationFile(path string) ([]map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, dectypes.BadAnnotationFile(path, err)
	}

	var entries []map[string]any
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, dectypes.BadAnnotationFile(path, err)
	}

	return entries, nil
}

// Mnemonic returns the entry's own "mnemonic" key, per its role: a plain
// instruction and an overlay both use "mnemonic" for their own name, while
// an overlay additionally names its base via "overlay".
func (e Entry) Mnemonic() (string, bool) {
	m, ok := e["mnemonic"].(string)
	return m, ok && m != ""
}

// Pseudo returns the entry's "pseudo" key, identifying a pseudo-instruction
// entry (bypasses the dispatch trie entirely).
func (e Entry) Pseudo() (string, bool) {
	m, ok := e["pseudo"].(string)
	return m, ok && m != ""
}

// OverlayBase returns the base mnemonic an overlay entry specializes, via
// its "overlay" key.
func (e Entry) OverlayBase() (string, bool) {
	m, ok := e["overlay"].(string)
	return m, ok && m != ""
}

// Form returns the entry's declared form name.
func (e Entry) Form() (string, bool) {
	m, ok := e["form"].(string)
	return m, ok && m != ""
}

// Stencil returns the entry's fixed encoding word, parsed from either a
// JSON number or a "0x"-prefixed string (catalogs favor hex literals for
// readability).
func (e Entry) Stencil() (uint64, bool) {
	return e.opcodeField("stencil")
}

// MatchMask returns an overlay's "mask" key.
func (e Entry) MatchMask() (uint64, bool) {
	return e.opcodeField("mask")
}

// MatchValue returns an overlay's "value" key.
func (e Entry) MatchValue() (uint64, bool) {
	return e.opcodeField("value")
}

func (e Entry) opcodeField(key string) (uint64, bool) {
	switch v := e[key].(type) {
	case float64:
		return uint64(v), true
	case string:
		return parseOpcodeString(v)
	default:
		return 0, false
	}
}

// parseOpcodeString accepts "0x"-prefixed hex, "0b"-prefixed binary, or
// plain decimal, via strconv's base-0 auto-detection.
func parseOpcodeString(s string) (uint64, bool) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, false
	}

	return v, true
}

// StringList returns e[key] as a []string, accepting either a JSON array of
// strings or a single string (catalogs allow both for single-element
// lists like "fixed"/"ignore"/"tags").
func (e Entry) StringList(key string) []string {
	switch v := e[key].(type) {
	case []any:
		out := make([]string, 0, len(v))

		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}

		return out
	case string:
		return []string{v}
	default:
		return nil
	}
}

// Aliases returns the entry's "alias" array of additional stencils, parsed
// the same way Stencil is.
func (e Entry) Aliases() []uint64 {
	raw, ok := e["alias"].([]any)
	if !ok {
		return nil
	}

	out := make([]uint64, 0, len(raw))

	for _, item := range raw {
		switch v := item.(type) {
		case float64:
			out = append(out, uint64(v))
		case string:
			if n, ok := parseOpcodeString(v); ok {
				out = append(out, n)
			}
		}
	}

	return out
}

// XForm returns the entry's named extractor override, via its "xform" key.
func (e Entry) XForm() (string, bool) {
	m, ok := e["xform"].(string)
	return m, ok && m != ""
}
