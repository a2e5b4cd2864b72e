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
package builder

import "github.com/jeffnye-gh/mavisgo/pkg/extractor"

// Options configures one Configure call.
type Options struct {
	// ISAFiles lists instruction catalog JSON files, processed in order.
	ISAFiles []string
	// AnnotationFiles lists annotation catalog JSON files, processed in
	// order (a mnemonic in a later file overrides an earlier one).
	AnnotationFiles []string
	// IncludeTags, when non-empty, restricts Configure to instructions
	// carrying at least one of these tags.
	IncludeTags []string
	// ExcludeTags drops any instruction carrying at least one of these
	// tags, even when it also carries an included tag.
	ExcludeTags []string
	// AnnotationOverrides applies command-line "mnemonic:name:value"
	// overrides after all annotation files have loaded.
	AnnotationOverrides []AnnotationOverride
	// Xforms registers named extractor overrides an instruction may select
	// via its catalog "xform" key, in place of the form's default
	// FormGeneric extractor. Populated by callers that need extraction
	// logic beyond simple field-to-operand mapping.
	Xforms map[string]extractor.Extractor
}

// AnnotationOverride is one command-line override of an annotation field.
type AnnotationOverride struct {
	Mnemonic string
	Name     string
	Value    any
}

func tagSet(tags []string) map[string]struct{} {
	if len(tags) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}

	return set
}
