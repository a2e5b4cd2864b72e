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
package extractor

import (
	"fmt"
	"strings"

	"github.com/jeffnye-gh/mavisgo/internal/disasm"
	"github.com/jeffnye-gh/mavisgo/pkg/form"
	"github.com/jeffnye-gh/mavisgo/pkg/meta"
)

// Extractor decodes an opcode into OperandInfo and renders a minimal
// disassembly string for it. Every leaf factory binds exactly one
// Extractor, either the form's default or a named "xform" override.
type Extractor interface {
	Extract(op form.Opcode) OperandInfo
	GetDasmString(op form.Opcode, mnemonic string, meta *meta.InstMetaData) string
}

// FormGeneric is the default, form-driven extractor. It consults the bound
// Form for field positions and the instruction's own declared "sources"/
// "dests"/"specials" name lists for operand ordering, so two instructions
// sharing a Form can still expose differently-ordered operands.
type FormGeneric struct {
	Form     form.Form
	Sources  []string
	Dests    []string
	Specials []string
	Types    map[meta.OperandFieldID]meta.OperandType
}

// NewFormGeneric binds a default extractor to a form for one instruction.
func NewFormGeneric(f form.Form, sources, dests, specials []string, types map[meta.OperandFieldID]meta.OperandType) *FormGeneric {
	return &FormGeneric{Form: f, Sources: sources, Dests: dests, Specials: specials, Types: types}
}

// Extract implements Extractor.
func (g *FormGeneric) Extract(op form.Opcode) OperandInfo {
	info := NewOperandInfo()

	for _, name := range g.Dests {
		if fv, ok := g.extractField(op, name); ok {
			info.Dests = append(info.Dests, fv)
		}
	}

	for _, name := range g.Sources {
		if fv, ok := g.extractField(op, name); ok {
			info.Sources = append(info.Sources, fv)
		}
	}

	for _, name := range g.Specials {
		if f, ok := g.Form.FieldByName(name); ok {
			info.Specials[name] = f.Extract(op)
		}
	}

	if f, ok := g.Form.FieldByName("imm"); ok {
		info.Imm = f.Extract(op)
		info.HasImm = true
	} else if f, ok := g.Form.FieldByName("imm12"); ok {
		info.Imm = f.Extract(op)
		info.HasImm = true
	}

	return info
}

func (g *FormGeneric) extractField(op form.Opcode, name string) (Operand, bool) {
	f, ok := g.Form.FieldByName(name)
	if !ok {
		return Operand{}, false
	}

	id, ok := meta.ParseOperandFieldID(name)
	if !ok {
		return Operand{}, false
	}

	return Operand{Field: id, Type: g.Types[id], Value: f.Extract(op)}, true
}

// GetDasmString implements Extractor using the minimal renderer in
// internal/disasm. This is not a full disassembly grammar (an explicit
// spec Non-goal); it exists only because Extractor requires the method.
func (g *FormGeneric) GetDasmString(op form.Opcode, mnemonic string, m *meta.InstMetaData) string {
	info := g.Extract(op)
	return disasm.Render(mnemonic, operandValues(info.Dests), operandValues(info.Sources), info.Imm, info.HasImm)
}

func operandValues(ops []Operand) []uint64 {
	vals := make([]uint64, len(ops))
	for i, o := range ops {
		vals[i] = o.Value
	}

	return vals
}

// String renders a short diagnostic form.
func (g *FormGeneric) String() string {
	return fmt.Sprintf("FormGeneric(form=%s, sources=[%s], dests=[%s])",
		g.Form.Name, strings.Join(g.Sources, ","), strings.Join(g.Dests, ","))
}
