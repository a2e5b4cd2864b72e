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
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jeffnye-gh/mavisgo/pkg/meta"
	"github.com/jeffnye-gh/mavisgo/pkg/util/termio"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags]",
	Short: "configure a decoder and print a summary of its registered instructions",
	Long:  "Configures a decoder from --isa/--anno catalogs and prints a table of every registered mnemonic with its ISA sets, tags and fixed-field disambiguators, column widths clipped to the current terminal width when stdout is a terminal.",
	Run: func(cmd *cobra.Command, args []string) {
		d := configureFromFlags(cmd)

		mnemonics := d.Meta().Mnemonics()
		sort.Strings(mnemonics)

		printInspectTable(d.Meta(), mnemonics, terminalWidth())

		fmt.Printf("\n%d instructions registered\n", len(mnemonics))
	},
}

// terminalWidth returns the current terminal column width, or a sane
// fallback when stdout isn't a terminal (e.g. piped output, CI logs).
func terminalWidth() int {
	const fallback = 80

	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fallback
	}

	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return fallback
	}

	return w
}

// printInspectTable renders one row per mnemonic (ISA sets, tags, fixed
// fields) using the teacher's FormattedTable widget, clipping the ISA and
// tags columns to a quarter of the width each so the table still fits a
// narrow terminal.
func printInspectTable(reg *meta.Registry, mnemonics []string, width int) {
	const cols = 4

	table := termio.NewFormattedTable(cols, uint(len(mnemonics)+1))
	table.SetRow(0, termio.NewText("mnemonic"), termio.NewText("isa"), termio.NewText("tags"), termio.NewText("fixed"))

	for i, mnem := range mnemonics {
		m, _ := reg.Lookup(mnem)

		table.SetRow(uint(i+1),
			termio.NewText(mnem),
			termio.NewText(joinSet(m.ISA)),
			termio.NewText(joinSet(m.Tags)),
			termio.NewText(strings.Join(sortedCopy(m.Fixed), ",")),
		)
	}

	if width > 0 {
		// Leave the mnemonic/fixed columns untouched; ISA/tags are the
		// columns most likely to run long on a wide catalog.
		perColumn := width / cols
		table.SetMaxWidth(1, uint(perColumn))
		table.SetMaxWidth(2, uint(perColumn))
	}

	table.Print(term.IsTerminal(int(os.Stdout.Fd())))
}

func joinSet(set map[string]struct{}) string {
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}

	sort.Strings(names)

	return strings.Join(names, ",")
}

func sortedCopy(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)

	return out
}

func init() {
	addCatalogFlags(inspectCmd)
	rootCmd.AddCommand(inspectCmd)
}
