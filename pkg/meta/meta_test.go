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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperandFieldID(t *testing.T) {
	id, ok := ParseOperandFieldID("rs1")
	require.True(t, ok)
	assert.Equal(t, FieldRS1, id)

	_, ok = ParseOperandFieldID("bogus")
	assert.False(t, ok)
}

func TestParseOperandType(t *testing.T) {
	ot, ok := ParseOperandType("d")
	require.True(t, ok)
	assert.Equal(t, OperandDouble, ot)
	assert.Equal(t, RegFileGPR, RegFileOf(ot))

	fOt, _ := ParseOperandType("f")
	assert.Equal(t, RegFileFPR, RegFileOf(fOt))
}

func TestParseOverridesIsIdempotent(t *testing.T) {
	obj := map[string]any{"w_rd": true, "d_rs1": true, "unrelated": 7}

	m1 := New("addi")
	require.NoError(t, m1.ParseOverrides(obj))

	m2 := New("addi")
	require.NoError(t, m2.ParseOverrides(obj))
	require.NoError(t, m2.ParseOverrides(obj))

	assert.Equal(t, m1.OperandTypes, m2.OperandTypes)
	assert.Equal(t, OperandWord, m1.OperandTypes[FieldRD])
	assert.Equal(t, OperandDouble, m1.OperandTypes[FieldRS1])
}

func TestParseOverridesFalseIsIgnored(t *testing.T) {
	m := New("addi")
	require.NoError(t, m.ParseOverrides(map[string]any{"w_rd": false}))
	_, ok := m.OperandTypes[FieldRD]
	assert.False(t, ok)
}

func TestFreezePanicsOnMutation(t *testing.T) {
	m := New("addi")
	m.Freeze()

	assert.Panics(t, func() { m.AddISA("rv32i") })
	assert.Panics(t, func() { m.SetOperandType(FieldRD, OperandWord) })
}

func TestCloneIsIndependent(t *testing.T) {
	m := New("addi")
	m.AddISA("rv32i")
	m.AddTags("rvi")
	m.Fixed = []string{"funct7"}

	c := m.Clone()
	c.AddISA("rv64i")

	_, baseHas64 := m.ISA["rv64i"]
	_, cloneHas64 := c.ISA["rv64i"]
	assert.False(t, baseHas64)
	assert.True(t, cloneHas64)
	assert.Equal(t, m.Fixed, c.Fixed)
}

func TestHasAnyTag(t *testing.T) {
	m := New("jal")
	m.AddTags("rvi", "branch")

	assert.True(t, m.HasAnyTag(map[string]struct{}{"branch": {}}))
	assert.False(t, m.HasAnyTag(map[string]struct{}{"vector": {}}))
	assert.False(t, m.HasAnyTag(nil))
}

func TestRegistryAssignsDistinctUIDs(t *testing.T) {
	r := NewRegistry()

	u1 := r.Register(New("add"))
	u2 := r.Register(New("sub"))

	assert.NotEqual(t, u1, u2)

	mn, ok := r.MnemonicForUID(u1)
	require.True(t, ok)
	assert.Equal(t, "add", mn)
	assert.Equal(t, 2, r.Len())
	assert.ElementsMatch(t, []string{"add", "sub"}, r.Mnemonics())
}
