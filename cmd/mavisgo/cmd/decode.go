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
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jeffnye-gh/mavisgo/internal/disasm"
	"github.com/jeffnye-gh/mavisgo/pkg/extractor"
	"github.com/jeffnye-gh/mavisgo/pkg/form"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [flags] opcode...",
	Short: "decode one or more raw opcodes against a configured catalog",
	Long:  "Configures a decoder from --isa/--anno catalogs, then decodes each given opcode (hex or decimal) and prints its mnemonic and operands.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d := configureFromFlags(cmd)

		for _, arg := range args {
			op, err := parseOpcodeArg(arg)
			if err != nil {
				fmt.Printf("%s: %v\n", arg, err)
				os.Exit(1)
			}

			inst, err := d.MakeInst(form.Opcode(op))
			if err != nil {
				fmt.Printf("0x%x: %v\n", op, err)
				continue
			}

			dasm := disasm.Render(inst.Mnemonic, operandValues(inst.OpInfo.Dests), operandValues(inst.OpInfo.Sources), inst.OpInfo.Imm, inst.OpInfo.HasImm)

			fmt.Printf("0x%x: %s (uid=%d)\n", op, dasm, inst.UID)
		}
	},
}

func operandValues(ops []extractor.Operand) []uint64 {
	vals := make([]uint64, len(ops))
	for i, o := range ops {
		vals[i] = o.Value
	}

	return vals
}

func parseOpcodeArg(s string) (uint64, error) {
	var v uint64

	if _, err := fmt.Sscanf(s, "0x%x", &v); err == nil {
		return v, nil
	}

	if _, err := fmt.Sscanf(s, "%d", &v); err == nil {
		return v, nil
	}

	return 0, fmt.Errorf("malformed opcode %q", s)
}

func init() {
	addCatalogFlags(decodeCmd)
	rootCmd.AddCommand(decodeCmd)
}
