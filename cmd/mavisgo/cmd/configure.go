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

	"github.com/jeffnye-gh/mavisgo/pkg/builder"
	"github.com/jeffnye-gh/mavisgo/pkg/util/perfstats"
)

// addCatalogFlags registers the catalog-selection flags shared by every
// subcommand that configures a decoder before doing its own work.
func addCatalogFlags(cmd *cobra.Command) {
	cmd.Flags().StringArray("isa", nil, "instruction catalog JSON file (repeatable)")
	cmd.Flags().StringArray("anno", nil, "annotation catalog JSON file (repeatable)")
	cmd.Flags().StringArray("tag", nil, "restrict to instructions carrying this tag (repeatable)")
	cmd.Flags().StringArray("exclude-tag", nil, "drop instructions carrying this tag (repeatable)")
}

// configureFromFlags builds a Decoder from the --isa/--anno/--tag/
// --exclude-tag flags registered by addCatalogFlags, timing the build with
// PerfStats and exiting the process on any Configure error.
func configureFromFlags(cmd *cobra.Command) *builder.Decoder {
	isaFiles := GetStringArray(cmd, "isa")
	if len(isaFiles) == 0 {
		fmt.Println("at least one --isa catalog file is required")
		os.Exit(2)
	}

	stats := perfstats.New()

	d, err := builder.Configure(builder.Options{
		ISAFiles:        isaFiles,
		AnnotationFiles: GetStringArray(cmd, "anno"),
		IncludeTags:     GetStringArray(cmd, "tag"),
		ExcludeTags:     GetStringArray(cmd, "exclude-tag"),
	})
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	stats.Log("configure")

	return d
}
