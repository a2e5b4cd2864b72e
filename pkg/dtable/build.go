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
package dtable

import (
	"github.com/jeffnye-gh/mavisgo/internal/dectypes"
	"github.com/jeffnye-gh/mavisgo/pkg/form"
)

// InsertInstruction descends the trie per the build_ algorithm (spec 4.4)
// for a primary (non-alias) stencil and installs leaf at the terminal
// SpecialCase. fixedMask/fixedValue are the pre-computed disambiguator for
// the instruction's "fixed" field list (zero mask means "no fixed fields").
// Every error returned here is fatal to Configure.
func (dt *DTable) InsertInstruction(f form.Form, stencil form.Opcode, ignore map[string]bool, fixedMask, fixedValue form.Opcode, hasFixed bool, leaf *Leaf) error {
	sc, err := dt.descend(f, stencil, ignore, leaf.Mnemonic)
	if err != nil {
		return err
	}

	if hasFixed {
		return sc.insertCase(fixedMask, fixedValue, leaf)
	}

	if sc.Base == nil {
		sc.Base = leaf
		return nil
	}

	if sc.Default == nil {
		sc.Default = leaf
		return nil
	}

	return dectypes.InstructionAlias(uint64(stencil), leaf.Mnemonic, sc.Base.Mnemonic)
}

// InsertAlias descends the trie for an additional stencil declared in an
// instruction's "alias" array, reusing the already-built leaf. A colliding
// terminal slot is ErrInstructionAlias; callers are expected to log and
// skip this one alias stencil rather than abort Configure, per the
// asymmetric recovery policy in spec 9.
func (dt *DTable) InsertAlias(f form.Form, stencil form.Opcode, ignore map[string]bool, fixedMask, fixedValue form.Opcode, hasFixed bool, leaf *Leaf) error {
	sc, err := dt.descend(f, stencil, ignore, leaf.Mnemonic)
	if err != nil {
		return err
	}

	if hasFixed {
		for _, c := range sc.Cases {
			if c.mask == fixedMask && c.value == fixedValue {
				return dectypes.InstructionAlias(uint64(stencil), leaf.Mnemonic, c.leaf.Mnemonic)
			}
		}

		return sc.insertCase(fixedMask, fixedValue, leaf)
	}

	if sc.Base == nil {
		sc.Base = leaf
		return nil
	}

	if sc.Base == leaf || sc.Default == leaf {
		// Already resolves to the same leaf via another path; harmless.
		return nil
	}

	if sc.Default == nil {
		sc.Default = leaf
		return nil
	}

	return dectypes.InstructionAlias(uint64(stencil), leaf.Mnemonic, sc.Base.Mnemonic)
}

// descend walks the trie from the root MatchList down to the terminal
// SpecialCase node for (form, stencil), creating Dense levels as needed and
// asserting field-compatibility along any shared prefix (spec 4.4 step 2).
func (dt *DTable) descend(f form.Form, stencil form.Opcode, ignore map[string]bool, mnemonic string) (*SpecialCase, error) {
	idx, ok := dt.root.branchIndex(stencil)
	if !ok {
		return nil, dectypes.UnknownOpcode(uint64(stencil))
	}

	fields := f.Fields
	if len(fields) == 0 {
		return nil, dectypes.UnknownForm("", mnemonic, f.Name)
	}

	cur, err := dt.ensureDenseChild(&dt.root.Children[idx], fields[0], mnemonic)
	if err != nil {
		return nil, err
	}

	for i := 0; i < len(fields)-1; i++ {
		fi := fields[i]

		var key uint64

		useDefault := ignore[fi.Name]
		if !useDefault {
			key = fi.Extract(stencil)
		}

		next, err := dt.ensureChildAt(cur, useDefault, key, fields[i+1], mnemonic)
		if err != nil {
			return nil, err
		}

		cur = next
	}

	last := fields[len(fields)-1]

	var key uint64

	useDefault := ignore[last.Name]
	if !useDefault {
		key = last.Extract(stencil)
	}

	return dt.ensureSpecialCase(cur, useDefault, key)
}

// ensureDenseChild ensures slot (a pointer to a MatchList child) holds a
// Dense node keyed by field f, creating it on first use and otherwise
// asserting the existing node's field is equivalent to f.
func (dt *DTable) ensureDenseChild(slot *FactoryNode, f form.Field, mnemonic string) (*Dense, error) {
	if *slot == nil {
		d := newDense(f)
		*slot = d

		return d, nil
	}

	d, ok := (*slot).(*Dense)
	if !ok || !d.Field.IsEquivalent(f) {
		return nil, dectypes.FieldsIncompatible(mnemonic, describeNode(*slot), f.Name)
	}

	return d, nil
}

// ensureChildAt ensures cur has a child (keyed by key, or its Default when
// useDefault) that is a Dense node over field `next`.
func (dt *DTable) ensureChildAt(cur *Dense, useDefault bool, key uint64, next form.Field, mnemonic string) (*Dense, error) {
	if useDefault {
		if cur.Default == nil {
			cur.Default = newDense(next)
		}

		d, ok := cur.Default.(*Dense)
		if !ok || !d.Field.IsEquivalent(next) {
			return nil, dectypes.FieldsIncompatible(mnemonic, describeNode(cur.Default), next.Name)
		}

		return d, nil
	}

	if existing, ok := cur.Children[key]; ok {
		d, ok := existing.(*Dense)
		if !ok || !d.Field.IsEquivalent(next) {
			return nil, dectypes.FieldsIncompatible(mnemonic, describeNode(existing), next.Name)
		}

		return d, nil
	}

	d := newDense(next)
	cur.Children[key] = d

	return d, nil
}

// ensureSpecialCase ensures the terminal child of cur is a SpecialCase node.
func (dt *DTable) ensureSpecialCase(cur *Dense, useDefault bool, key uint64) (*SpecialCase, error) {
	if useDefault {
		if cur.Default == nil {
			cur.Default = &SpecialCase{}
		}

		sc, ok := cur.Default.(*SpecialCase)
		if !ok {
			return nil, dectypes.FieldsIncompatible("", describeNode(cur.Default), "<special-case>")
		}

		return sc, nil
	}

	if existing, ok := cur.Children[key]; ok {
		sc, ok := existing.(*SpecialCase)
		if !ok {
			return nil, dectypes.FieldsIncompatible("", describeNode(existing), "<special-case>")
		}

		return sc, nil
	}

	sc := &SpecialCase{}
	cur.Children[key] = sc

	return sc, nil
}

func describeNode(n FactoryNode) string {
	switch v := n.(type) {
	case *Dense:
		return "dense:" + v.Field.Name
	case *SpecialCase:
		return "special-case"
	case *MatchList:
		return "match-list"
	default:
		return "unknown"
	}
}
