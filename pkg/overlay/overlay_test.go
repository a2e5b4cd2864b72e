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
package overlay

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffnye-gh/mavisgo/internal/dectypes"
	"github.com/jeffnye-gh/mavisgo/pkg/meta"
)

func TestNewRequiresBase(t *testing.T) {
	baseMeta := meta.New("addi")
	_, err := New("nop", "", 0xffffffff, 0x13, baseMeta, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, dectypes.ErrOverlayMissingBase))
}

func TestNewClonesAndRenamesMeta(t *testing.T) {
	baseMeta := meta.New("addi")
	baseMeta.AddISA("rv32i")

	ov, err := New("nop", "addi", 0xffffffff, 0x13, baseMeta, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "nop", ov.Meta.Mnemonic)
	assert.Equal(t, "addi", baseMeta.Mnemonic)
	_, ok := ov.Meta.ISA["rv32i"]
	assert.True(t, ok)
}

func TestIsMatch(t *testing.T) {
	baseMeta := meta.New("addi")
	ov, err := New("nop", "addi", 0xffffffff, 0x00000013, baseMeta, nil, nil)
	require.NoError(t, err)

	assert.True(t, ov.IsMatch(0x00000013))
	assert.False(t, ov.IsMatch(0x00100013))
}

func TestByPopCountDescStableTieBreak(t *testing.T) {
	a := &Overlay{Mnemonic: "a", PopCount: 2}
	b := &Overlay{Mnemonic: "b", PopCount: 4}
	c := &Overlay{Mnemonic: "c", PopCount: 4}
	d := &Overlay{Mnemonic: "d", PopCount: 1}

	overlays := []*Overlay{a, b, c, d}
	ByPopCountDesc(overlays)

	assert.Equal(t, []string{"b", "c", "a", "d"}, names(overlays))
}

func names(overlays []*Overlay) []string {
	out := make([]string, len(overlays))
	for i, o := range overlays {
		out[i] = o.Mnemonic
	}

	return out
}
