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
package catalog

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffnye-gh/mavisgo/internal/dectypes"
)

func TestReadISAFile(t *testing.T) {
	entries, err := ReadISAFile(filepath.Join("..", "..", "testdata", "catalogs", "instructions.json"))
	require.NoError(t, err)
	assert.NotEmpty(t, entries)

	found := false

	for _, e := range entries {
		if m, ok := e.Mnemonic(); ok && m == "add" {
			found = true

			stencil, ok := e.Stencil()
			require.True(t, ok)
			assert.Equal(t, uint64(0x00000033), stencil)
		}
	}

	assert.True(t, found, "expected an 'add' entry in the fixture catalog")
}

func TestReadISAFileMissing(t *testing.T) {
	_, err := ReadISAFile(filepath.Join("testdata", "does-not-exist.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, dectypes.ErrBadISAFile))
}

func TestReadAnnotationFile(t *testing.T) {
	entries, err := ReadAnnotationFile(filepath.Join("..", "..", "testdata", "catalogs", "annotations.json"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "add", entries[0]["mnemonic"])
}

func TestEntryOpcodeFieldAcceptsHexStringOrNumber(t *testing.T) {
	e := Entry{"stencil": "0x33", "mask": float64(0xff), "value": "19"}

	stencil, ok := e.Stencil()
	require.True(t, ok)
	assert.Equal(t, uint64(0x33), stencil)

	mask, ok := e.MatchMask()
	require.True(t, ok)
	assert.Equal(t, uint64(0xff), mask)

	value, ok := e.MatchValue()
	require.True(t, ok)
	assert.Equal(t, uint64(19), value)

	_, ok = Entry{}.Stencil()
	assert.False(t, ok)
}

func TestEntryStringListAcceptsArrayOrScalar(t *testing.T) {
	e := Entry{"fixed": []any{"funct7"}, "tags": "experimental"}

	assert.Equal(t, []string{"funct7"}, e.StringList("fixed"))
	assert.Equal(t, []string{"experimental"}, e.StringList("tags"))
	assert.Nil(t, e.StringList("missing"))
}

func TestEntryAliasesParsesMixedNumericForms(t *testing.T) {
	e := Entry{"alias": []any{"0x40000033", float64(51)}}

	aliases := e.Aliases()
	require.Len(t, aliases, 2)
	assert.Equal(t, uint64(0x40000033), aliases[0])
	assert.Equal(t, uint64(51), aliases[1])
}

func TestEntryRoleAccessors(t *testing.T) {
	overlay := Entry{"mnemonic": "nop", "overlay": "addi"}
	base, ok := overlay.OverlayBase()
	require.True(t, ok)
	assert.Equal(t, "addi", base)

	pseudo := Entry{"pseudo": "nop.pseudo"}
	p, ok := pseudo.Pseudo()
	require.True(t, ok)
	assert.Equal(t, "nop.pseudo", p)

	xform := Entry{"xform": "custom.trace"}
	x, ok := xform.XForm()
	require.True(t, ok)
	assert.Equal(t, "custom.trace", x)
}
