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

// builtinForms enumerates the forms of the reference 16/32-bit RISC-style
// family this decoder targets.  Field layouts follow the real bit positions
// of the family's standard (32-bit) and compressed (16-bit) encodings;
// immediate re-assembly/sign-extension is intentionally not modeled (the
// spec's ISA-semantics Non-goal), so multi-chunk immediates are collapsed
// into a single contiguous field where the real ISA would scatter them.
//
// Field order matters: it is the order in which the dispatch trie descends,
// so the shared discriminating fields (opcode, funct3, funct7, ...) are
// listed first and the pure operand fields (register numbers, immediates)
// are listed last, where per-instruction "ignore" lists exclude them from
// routing.
var builtinForms = []Form{
	{
		Name: "R",
		Fields: []Field{
			NewField("opcode", 0, 6),
			NewField("funct3", 12, 14),
			NewField("funct7", 25, 31),
			NewField("rd", 7, 11),
			NewField("rs1", 15, 19),
			NewField("rs2", 20, 24),
		},
	},
	{
		Name: "I",
		Fields: []Field{
			NewField("opcode", 0, 6),
			NewField("funct3", 12, 14),
			NewField("rd", 7, 11),
			NewField("rs1", 15, 19),
			NewField("imm12", 20, 31),
		},
	},
	{
		Name: "S",
		Fields: []Field{
			NewField("opcode", 0, 6),
			NewField("funct3", 12, 14),
			NewField("rs1", 15, 19),
			NewField("rs2", 20, 24),
			NewField("imm", 7, 31),
		},
	},
	{
		Name: "B",
		Fields: []Field{
			NewField("opcode", 0, 6),
			NewField("funct3", 12, 14),
			NewField("rs1", 15, 19),
			NewField("rs2", 20, 24),
			NewField("imm", 7, 31),
		},
	},
	{
		Name: "U",
		Fields: []Field{
			NewField("opcode", 0, 6),
			NewField("rd", 7, 11),
			NewField("imm", 12, 31),
		},
	},
	{
		Name: "J",
		Fields: []Field{
			NewField("opcode", 0, 6),
			NewField("rd", 7, 11),
			NewField("imm", 12, 31),
		},
	},
	{
		// Compressed register-register form (quadrant 2), e.g. c.add/c.mv.
		Name: "CR",
		Fields: []Field{
			NewField("quadrant", 0, 1),
			NewField("funct4", 12, 15),
			NewField("rd_rs1", 7, 11),
			NewField("rs2", 2, 6),
		},
	},
	{
		// Compressed immediate form, e.g. c.addi/c.li.
		Name: "CI",
		Fields: []Field{
			NewField("quadrant", 0, 1),
			NewField("funct3", 13, 15),
			NewField("rd_rs1", 7, 11),
			NewField("imm", 2, 6),
		},
	},
}
