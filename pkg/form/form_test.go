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
package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldExtract(t *testing.T) {
	f := NewField("funct7", 25, 31)
	assert.Equal(t, uint64(0x7f), f.Mask()>>25)
	assert.Equal(t, uint64(0x20), f.Extract(0x40000033))
	assert.Equal(t, uint64(0), f.Extract(0x00000033))
}

func TestFieldIsEquivalent(t *testing.T) {
	a := NewField("rd", 7, 11)
	b := NewField("rd", 7, 11)
	c := NewField("rd", 7, 12)

	assert.True(t, a.IsEquivalent(b))
	assert.False(t, a.IsEquivalent(c))
}

func TestFieldIsZero(t *testing.T) {
	assert.True(t, Field{}.IsZero())
	assert.False(t, NewField("opcode", 0, 6).IsZero())
}

func TestRegistryBuiltins(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{"R", "I", "S", "B", "U", "J", "CR", "CI"} {
		f, ok := r.Lookup(name)
		require.Truef(t, ok, "expected built-in form %q", name)
		assert.NotEmpty(t, f.Fields)
	}

	_, ok := r.Lookup("nonexistent")
	assert.False(t, ok)
}

func TestRegistryRegisterPanicsOnEmptyFields(t *testing.T) {
	r := NewRegistry()
	assert.Panics(t, func() {
		r.Register(Form{Name: "empty"})
	})
}

func TestFormFieldByName(t *testing.T) {
	r := NewRegistry()
	rForm, _ := r.Lookup("R")

	f, ok := rForm.FieldByName("funct7")
	require.True(t, ok)
	assert.Equal(t, uint8(25), f.Lsb)

	_, ok = rForm.FieldByName("nope")
	assert.False(t, ok)
}
