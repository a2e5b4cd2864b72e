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

// Package disasm renders a minimal "mnemonic dst.., src.." disassembly
// string. This is intentionally not a full disassembly grammar: the spec
// explicitly places the human-readable disassembly grammar out of scope,
// but Extractor.GetDasmString still needs something to call.
package disasm

import (
	"fmt"
	"strconv"
	"strings"
)

// Render prints mnemonic followed by destination register numbers, then
// source register numbers (prefixed "x"), then the immediate if present.
func Render(mnemonic string, dests, sources []uint64, imm uint64, hasImm bool) string {
	var parts []string

	for _, d := range dests {
		parts = append(parts, "x"+strconv.FormatUint(d, 10))
	}

	for _, s := range sources {
		parts = append(parts, "x"+strconv.FormatUint(s, 10))
	}

	if hasImm {
		parts = append(parts, fmt.Sprintf("0x%x", imm))
	}

	if len(parts) == 0 {
		return mnemonic
	}

	return mnemonic + " " + strings.Join(parts, ", ")
}
