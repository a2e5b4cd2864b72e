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
package disasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderNoOperands(t *testing.T) {
	assert.Equal(t, "nop", Render("nop", nil, nil, 0, false))
}

func TestRenderDestsSourcesAndImm(t *testing.T) {
	got := Render("addi", []uint64{5}, []uint64{6}, 0x10, true)
	assert.Equal(t, "addi x5, x6, 0x10", got)
}

func TestRenderWithoutImm(t *testing.T) {
	got := Render("add", []uint64{5}, []uint64{6, 7}, 0, false)
	assert.Equal(t, "add x5, x6, x7", got)
}
