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

// Package annotation holds the mnemonic -> annotation map populated from
// auxiliary JSON catalogs, with command-line override merge.
package annotation

import (
	"github.com/jeffnye-gh/mavisgo/internal/dectypes"
)

// Annotation is an opaque user-supplied payload attached to a mnemonic
// (e.g. documentation strings, model-specific flags). The decoder core
// treats its Data as opaque; only the Builder and external collaborators
// interpret specific keys.
type Annotation struct {
	Mnemonic string
	Data     map[string]any
}

// Clone returns an independent copy, used when applying an override.
func (a *Annotation) Clone() *Annotation {
	data := make(map[string]any, len(a.Data))
	for k, v := range a.Data {
		data[k] = v
	}

	return &Annotation{Mnemonic: a.Mnemonic, Data: data}
}

// Registry maps mnemonic -> Annotation, tracking which file last
// contributed each mnemonic so within-file duplicates can be rejected.
type Registry struct {
	byMnemonic map[string]*Annotation
	sourceFile map[string]string
}

// NewRegistry constructs an empty annotation registry.
func NewRegistry() *Registry {
	return &Registry{
		byMnemonic: make(map[string]*Annotation),
		sourceFile: make(map[string]string),
	}
}

// LoadFile merges one annotation catalog file's entries into the registry.
// A mnemonic appearing twice within the same file is
// AnnotationNotUniqueInFile; a mnemonic appearing in a later file overrides
// an earlier file's entry (override merge), which is not an error.
func (r *Registry) LoadFile(file string, entries []map[string]any) error {
	seenInFile := make(map[string]struct{})

	for _, e := range entries {
		mnemonic, _ := e["mnemonic"].(string)
		if mnemonic == "" {
			continue
		}

		if _, dup := seenInFile[mnemonic]; dup {
			return dectypes.AnnotationNotUniqueInFile(mnemonic, file)
		}

		seenInFile[mnemonic] = struct{}{}

		data := make(map[string]any, len(e))
		for k, v := range e {
			if k == "mnemonic" {
				continue
			}

			data[k] = v
		}

		r.byMnemonic[mnemonic] = &Annotation{Mnemonic: mnemonic, Data: data}
		r.sourceFile[mnemonic] = file
	}

	return nil
}

// Find returns the registered annotation for mnemonic. Per the spec's
// resolved open question, a miss returns (nil, false) regardless of
// whether any annotation files were configured at all; callers decide
// whether absence is itself an error.
func (r *Registry) Find(mnemonic string) (*Annotation, bool) {
	a, ok := r.byMnemonic[mnemonic]
	return a, ok
}

// Override applies a command-line override of the form "name:value" to the
// named mnemonic's annotation, cloning it first so the registry's original
// entry is unaffected (useful when the same base annotation is shared by
// several overlay-derived mnemonics).
func (r *Registry) Override(mnemonic, name string, value any) {
	a, ok := r.byMnemonic[mnemonic]
	if !ok {
		a = &Annotation{Mnemonic: mnemonic, Data: make(map[string]any)}
	} else {
		a = a.Clone()
	}

	a.Data[name] = value
	r.byMnemonic[mnemonic] = a
}
