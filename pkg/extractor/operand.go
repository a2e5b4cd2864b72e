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

// Package extractor decodes an opcode into operand values using a bound
// Form, per the field ordering declared by an instruction's catalog entry.
package extractor

import "github.com/jeffnye-gh/mavisgo/pkg/meta"

// Operand is a single decoded (field, type, value) tuple.
type Operand struct {
	Field meta.OperandFieldID
	Type  meta.OperandType
	Value uint64
}

// OperandInfo is the full decode result for one instruction: its ordered
// sources, its ordered destinations, the raw immediate (if any), and any
// special fields (rounding mode, branch condition, ...) keyed by name.
type OperandInfo struct {
	Sources  []Operand
	Dests    []Operand
	Imm      uint64
	HasImm   bool
	Specials map[string]uint64
}

// NewOperandInfo constructs an empty OperandInfo ready for population.
func NewOperandInfo() OperandInfo {
	return OperandInfo{Specials: make(map[string]uint64)}
}
