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
package meta

import (
	"fmt"
	"sort"
	"strings"
)

// InstMetaData captures the per-instruction static attributes recognized
// from the catalog JSON: mnemonic, ISA set membership, the operand-type map,
// the tag set used for catalog filtering, and the list of fields whose value
// is fixed by the instruction's stencil (driving SpecialCase disambiguation).
//
// InstMetaData is mutable while the owning DTable is being built (overrides
// accumulate onto the operand-type map) and is frozen once Configure
// completes; mutating a frozen InstMetaData is a programming error.
type InstMetaData struct {
	Mnemonic     string
	ISA          map[string]struct{}
	OperandTypes map[OperandFieldID]OperandType
	Tags         map[string]struct{}
	Fixed        []string
	Ignore       []string
	frozen       bool
}

// New constructs an empty InstMetaData for mnemonic.
func New(mnemonic string) *InstMetaData {
	return &InstMetaData{
		Mnemonic:     mnemonic,
		ISA:          make(map[string]struct{}),
		OperandTypes: make(map[OperandFieldID]OperandType),
		Tags:         make(map[string]struct{}),
	}
}

// AddISA records ISA-set membership (e.g. "rv32i", "rv64i").
func (m *InstMetaData) AddISA(set string) {
	m.mustNotBeFrozen()
	m.ISA[set] = struct{}{}
}

// AddTags records catalog-filter tags.
func (m *InstMetaData) AddTags(tags ...string) {
	m.mustNotBeFrozen()
	for _, t := range tags {
		m.Tags[t] = struct{}{}
	}
}

// HasAnyTag reports whether m carries any of the given tags.
func (m *InstMetaData) HasAnyTag(tags map[string]struct{}) bool {
	for t := range tags {
		if _, ok := m.Tags[t]; ok {
			return true
		}
	}

	return false
}

// SetOperandType records the operand type bound to a given field position.
func (m *InstMetaData) SetOperandType(field OperandFieldID, t OperandType) {
	m.mustNotBeFrozen()
	m.OperandTypes[field] = t
}

// ParseOverrides applies per-field operand-type overrides recognized from an
// instruction's JSON object: keys of the form "<type-letter>_<field>" (e.g.
// "w_rd", "d_rs1", "f_rs2") rebind that field's operand type. Overrides are
// idempotent: applying the same JSON object twice leaves OperandTypes
// unchanged, since the result is a pure function of the JSON content.
func (m *InstMetaData) ParseOverrides(obj map[string]any) error {
	m.mustNotBeFrozen()

	for key, val := range obj {
		parts := strings.SplitN(key, "_", 2)
		if len(parts) != 2 {
			continue
		}

		ot, ok := ParseOperandType(parts[0])
		if !ok {
			continue
		}

		field, ok := ParseOperandFieldID(parts[1])
		if !ok {
			continue
		}

		truthy, ok := val.(bool)
		if ok && !truthy {
			continue
		}

		m.OperandTypes[field] = ot
	}

	return nil
}

// Clone produces an independent, unfrozen copy suitable as the basis for an
// overlay's specialized metadata.
func (m *InstMetaData) Clone() *InstMetaData {
	c := New(m.Mnemonic)
	for k := range m.ISA {
		c.ISA[k] = struct{}{}
	}

	for k, v := range m.OperandTypes {
		c.OperandTypes[k] = v
	}

	for k := range m.Tags {
		c.Tags[k] = struct{}{}
	}

	c.Fixed = append(c.Fixed, m.Fixed...)
	c.Ignore = append(c.Ignore, m.Ignore...)

	return c
}

// Freeze marks this metadata read-only; called once Configure completes.
func (m *InstMetaData) Freeze() {
	m.frozen = true
}

func (m *InstMetaData) mustNotBeFrozen() {
	if m.frozen {
		panic(fmt.Sprintf("meta: mutation of frozen InstMetaData %q", m.Mnemonic))
	}
}

// String renders a short diagnostic form.
func (m *InstMetaData) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s[", m.Mnemonic)

	fixed := append([]string(nil), m.Fixed...)
	sort.Strings(fixed)

	if len(fixed) > 0 {
		fmt.Fprintf(&sb, "fixed=%s", strings.Join(fixed, ","))
	}

	sb.WriteString("]")

	return sb.String()
}
