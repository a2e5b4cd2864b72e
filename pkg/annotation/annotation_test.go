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
package annotation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeffnye-gh/mavisgo/internal/dectypes"
)

func TestLoadFileRejectsDuplicateWithinFile(t *testing.T) {
	r := NewRegistry()

	err := r.LoadFile("anno.json", []map[string]any{
		{"mnemonic": "add", "doc": "first"},
		{"mnemonic": "add", "doc": "second"},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, dectypes.ErrAnnotationNotUnique))
}

func TestLoadFileAcrossFilesOverrides(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.LoadFile("a.json", []map[string]any{
		{"mnemonic": "add", "doc": "from a"},
	}))
	require.NoError(t, r.LoadFile("b.json", []map[string]any{
		{"mnemonic": "add", "doc": "from b"},
	}))

	a, ok := r.Find("add")
	require.True(t, ok)
	assert.Equal(t, "from b", a.Data["doc"])
}

func TestFindMiss(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Find("nope")
	assert.False(t, ok)
}

func TestOverrideClonesAndDoesNotMutateOriginal(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.LoadFile("a.json", []map[string]any{
		{"mnemonic": "add", "doc": "original"},
	}))

	original, _ := r.Find("add")

	r.Override("add", "doc", "overridden")

	updated, _ := r.Find("add")
	assert.Equal(t, "overridden", updated.Data["doc"])
	assert.Equal(t, "original", original.Data["doc"])
}

func TestOverrideOnUnknownMnemonicCreatesEntry(t *testing.T) {
	r := NewRegistry()
	r.Override("xyz", "flag", true)

	a, ok := r.Find("xyz")
	require.True(t, ok)
	assert.Equal(t, true, a.Data["flag"])
}

func TestCloneIsIndependentCopy(t *testing.T) {
	a := &Annotation{Mnemonic: "add", Data: map[string]any{"doc": "x"}}
	c := a.Clone()
	c.Data["doc"] = "y"

	assert.Equal(t, "x", a.Data["doc"])
	assert.Equal(t, "y", c.Data["doc"])
}
