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

// Package dtable implements the decode dispatch trie (FactoryNode variants
// plus the DTable root) and the two direct-mapped decode caches that sit in
// front of it.
package dtable

import (
	"github.com/jeffnye-gh/mavisgo/internal/dectypes"
	"github.com/jeffnye-gh/mavisgo/internal/uarch"
	"github.com/jeffnye-gh/mavisgo/pkg/annotation"
	"github.com/jeffnye-gh/mavisgo/pkg/extractor"
	"github.com/jeffnye-gh/mavisgo/pkg/form"
	"github.com/jeffnye-gh/mavisgo/pkg/meta"
	"github.com/jeffnye-gh/mavisgo/pkg/overlay"
)

// FactoryNode is the closed set of dispatch trie node kinds: a tagged
// variant reimplemented as a Go interface with exactly the implementers
// below, per the "variant preferred, dispatch is hot" design note.
type FactoryNode interface {
	lookup(op form.Opcode) (*Leaf, error)
}

// Leaf is the terminal producer of a trie path: an IFactory bundling a
// mnemonic's metadata, bound extractor, assigned UID, and any overlays
// registered against it (sorted by popcount descending).
type Leaf struct {
	Mnemonic   string
	UID        uint32
	Meta       *meta.InstMetaData
	Extractor  extractor.Extractor
	UArch      uarch.UArchInfo
	Annotation *annotation.Annotation
	Overlays   []*overlay.Overlay
}

// resolved is what a leaf decodes to for a specific opcode, after overlay
// resolution.
type resolved struct {
	Mnemonic   string
	UID        uint32
	Meta       *meta.InstMetaData
	Extractor  extractor.Extractor
	UArch      uarch.UArchInfo
	Annotation *annotation.Annotation
}

// resolve evaluates this leaf's overlays (already sorted popcount-desc) in
// order and returns the first match's mnemonic, UID, metadata and extractor
// (the base leaf's extractor when the overlay has none), or the base leaf's
// own identity when no overlay matches. UArch and Annotation always come
// from the base leaf; an overlay carries no annotation of its own.
func (l *Leaf) resolve(op form.Opcode) resolved {
	for _, o := range l.Overlays {
		if o.IsMatch(op) {
			ex := o.Extractor
			if ex == nil {
				ex = l.Extractor
			}

			return resolved{
				Mnemonic:   o.Mnemonic,
				UID:        o.UID,
				Meta:       o.Meta,
				Extractor:  ex,
				UArch:      l.UArch,
				Annotation: l.Annotation,
			}
		}
	}

	return resolved{
		Mnemonic:   l.Mnemonic,
		UID:        l.UID,
		Meta:       l.Meta,
		Extractor:  l.Extractor,
		UArch:      l.UArch,
		Annotation: l.Annotation,
	}
}

func (l *Leaf) lookup(op form.Opcode) (*Leaf, error) {
	return l, nil
}

// fixedCase is one (mask, value) disambiguator registered against a
// SpecialCase node, in decreasing specificity order.
type fixedCase struct {
	mask, value form.Opcode
	popcount    int
	leaf        *Leaf
}

// SpecialCase is the terminal disambiguating node: it carries the
// non-fixed "base" leaf reached directly, the "default" leaf reached via an
// ignore-set fallback path, and an ordered list of fixed-field cases.
// Fixed-field cases are evaluated first, in decreasing popcount(mask) order
// (insertion order breaks ties); the first match wins. Absent a match, Base
// is preferred over Default.
type SpecialCase struct {
	Base    *Leaf
	Default *Leaf
	Cases   []fixedCase
}

func (s *SpecialCase) lookup(op form.Opcode) (*Leaf, error) {
	for _, c := range s.Cases {
		if (op & c.mask) == c.value {
			return c.leaf, nil
		}
	}

	if s.Base != nil {
		return s.Base, nil
	}

	if s.Default != nil {
		return s.Default, nil
	}

	return nil, dectypes.UnknownOpcode(uint64(op))
}

// insertCase registers a fixed-field case, sorted by popcount(mask)
// descending with insertion order as the tie-break (a stable insertion
// sort, same rationale as overlay.ByPopCountDesc: lists are tiny). A
// colliding (mask, value) pair for a different mnemonic is OpcodeConflict.
func (s *SpecialCase) insertCase(mask, value form.Opcode, leaf *Leaf) error {
	for _, c := range s.Cases {
		if c.mask == mask && c.value == value {
			return dectypes.OpcodeConflict(leaf.Mnemonic, uint64(value))
		}
	}

	popcount := popcountOpcode(mask)
	nc := fixedCase{mask: mask, value: value, popcount: popcount, leaf: leaf}

	s.Cases = append(s.Cases, nc)

	for i := len(s.Cases) - 1; i > 0; i-- {
		if s.Cases[i-1].popcount >= s.Cases[i].popcount {
			break
		}

		s.Cases[i-1], s.Cases[i] = s.Cases[i], s.Cases[i-1]
	}

	return nil
}

func popcountOpcode(v form.Opcode) int {
	count := 0
	for v != 0 {
		count += int(v & 1)
		v >>= 1
	}

	return count
}

// Dense dispatches on the value of a single field, with O(1) map lookup and
// an optional default child used when the descent key belongs to an
// instruction's ignore-set.
type Dense struct {
	Field    form.Field
	Children map[uint64]FactoryNode
	Default  FactoryNode
}

func newDense(f form.Field) *Dense {
	return &Dense{Field: f, Children: make(map[uint64]FactoryNode)}
}

func (d *Dense) lookup(op form.Opcode) (*Leaf, error) {
	key := d.Field.Extract(op)

	child, ok := d.Children[key]
	if !ok {
		child = d.Default
	}

	if child == nil {
		return nil, dectypes.UnknownOpcode(uint64(op))
	}

	return child.lookup(op)
}

// MatchList partitions opcodes by encoding-length class via an ordered list
// of predicates; it is used only at the trie root. Dispatch picks the first
// predicate that returns true and descends into the aligned child.
type MatchList struct {
	Predicates []func(form.Opcode) bool
	Children   []FactoryNode
}

func (m *MatchList) lookup(op form.Opcode) (*Leaf, error) {
	idx, ok := m.branchIndex(op)
	if !ok || m.Children[idx] == nil {
		return nil, dectypes.UnknownOpcode(uint64(op))
	}

	return m.Children[idx].lookup(op)
}

// branchIndex returns the index of the first matching predicate.
func (m *MatchList) branchIndex(op form.Opcode) (int, bool) {
	for i, pred := range m.Predicates {
		if pred(op) {
			return i, true
		}
	}

	return 0, false
}
