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

// Package meta holds per-instruction static attributes (InstMetaData) and
// the closed enumerations those attributes are drawn from.
package meta

import "fmt"

// OperandFieldID names an operand position an extractor can populate.
type OperandFieldID uint8

// Recognized operand field positions.
const (
	FieldRD OperandFieldID = iota
	FieldRS1
	FieldRS2
	FieldRS3
	FieldIMM
)

var operandFieldNames = map[OperandFieldID]string{
	FieldRD:  "rd",
	FieldRS1: "rs1",
	FieldRS2: "rs2",
	FieldRS3: "rs3",
	FieldIMM: "imm",
}

var operandFieldByName = reverseStringMap(operandFieldNames)

// String implements fmt.Stringer.
func (f OperandFieldID) String() string {
	if n, ok := operandFieldNames[f]; ok {
		return n
	}

	return fmt.Sprintf("OperandFieldID(%d)", uint8(f))
}

// ParseOperandFieldID resolves a catalog field name to its enum value.
func ParseOperandFieldID(name string) (OperandFieldID, bool) {
	id, ok := operandFieldByName[name]
	return id, ok
}

// OperandType classifies the register file / width an operand is drawn
// from, per the spec's "w|d|s|f-source/dest" JSON keys (word/double-word
// integer register, single/double-precision float register).
type OperandType uint8

// Recognized operand types.
const (
	OperandNone OperandType = iota
	OperandWord
	OperandDouble
	OperandSingle
	OperandFloatDouble
	OperandVector
)

var operandTypeNames = map[OperandType]string{
	OperandNone:        "none",
	OperandWord:        "w",
	OperandDouble:      "d",
	OperandSingle:      "s",
	OperandFloatDouble: "f",
	OperandVector:      "v",
}

var operandTypeByName = reverseStringMap(operandTypeNames)

// String implements fmt.Stringer.
func (t OperandType) String() string {
	if n, ok := operandTypeNames[t]; ok {
		return n
	}

	return fmt.Sprintf("OperandType(%d)", uint8(t))
}

// ParseOperandType resolves a catalog operand-type letter to its enum value.
func ParseOperandType(name string) (OperandType, bool) {
	t, ok := operandTypeByName[name]
	return t, ok
}

// RegFile names the register file an operand type ultimately reads/writes.
type RegFile uint8

// Recognized register files.
const (
	RegFileGPR RegFile = iota
	RegFileFPR
	RegFileVector
)

// RegFileOf maps an OperandType onto the RegFile that holds it.
func RegFileOf(t OperandType) RegFile {
	switch t {
	case OperandSingle, OperandFloatDouble:
		return RegFileFPR
	case OperandVector:
		return RegFileVector
	default:
		return RegFileGPR
	}
}

func reverseStringMap[K comparable](m map[K]string) map[string]K {
	out := make(map[string]K, len(m))
	for k, v := range m {
		out[v] = k
	}

	return out
}
