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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffnye-gh/mavisgo/pkg/form"
	"github.com/jeffnye-gh/mavisgo/pkg/meta"
)

func rForm(t *testing.T) form.Form {
	t.Helper()

	fr := form.NewRegistry()
	f, ok := fr.Lookup("R")
	require.True(t, ok)

	return f
}

func TestFormGenericExtractOrdersSourcesAndDests(t *testing.T) {
	f := rForm(t)
	types := map[meta.OperandFieldID]meta.OperandType{
		meta.FieldRD:  meta.OperandWord,
		meta.FieldRS1: meta.OperandWord,
		meta.FieldRS2: meta.OperandWord,
	}

	ex := NewFormGeneric(f, []string{"rs1", "rs2"}, []string{"rd"}, nil, types)

	// add x5, x6, x7 = rd=5 rs1=6 rs2=7
	op := form.Opcode(0)
	op |= 5 << 7
	op |= 6 << 15
	op |= 7 << 20

	info := ex.Extract(op)
	require.Len(t, info.Dests, 1)
	require.Len(t, info.Sources, 2)
	assert.Equal(t, uint64(5), info.Dests[0].Value)
	assert.Equal(t, uint64(6), info.Sources[0].Value)
	assert.Equal(t, uint64(7), info.Sources[1].Value)
	assert.False(t, info.HasImm)
}

func TestFormGenericExtractSpecials(t *testing.T) {
	f := rForm(t)
	ex := NewFormGeneric(f, nil, nil, []string{"funct7"}, nil)

	op := form.Opcode(0x20) << 25

	info := ex.Extract(op)
	assert.Equal(t, uint64(0x20), info.Specials["funct7"])
}

func TestFormGenericGetDasmString(t *testing.T) {
	f := rForm(t)
	ex := NewFormGeneric(f, []string{"rs1", "rs2"}, []string{"rd"}, nil, nil)

	op := form.Opcode(0)
	op |= 5 << 7
	op |= 6 << 15
	op |= 7 << 20

	s := ex.GetDasmString(op, "add", meta.New("add"))
	assert.Equal(t, "add x5, x6, x7", s)
}

func TestRegistryXform(t *testing.T) {
	r := NewRegistry()
	f := rForm(t)
	ex := NewFormGeneric(f, nil, nil, nil, nil)

	r.RegisterXform("custom", ex)

	got, ok := r.Xform("custom")
	require.True(t, ok)
	assert.Same(t, ex, got)

	_, ok = r.Xform("missing")
	assert.False(t, ok)
}
