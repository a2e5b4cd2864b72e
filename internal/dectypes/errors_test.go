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
package dectypes

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrappedErrorsMatchSentinels(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"BadISAFile", BadISAFile("x.json", errors.New("boom")), ErrBadISAFile},
		{"BadAnnotationFile", BadAnnotationFile("x.json", errors.New("boom")), ErrBadAnnotationFile},
		{"MissingMnemonic", MissingMnemonic("x.json", 0x33), ErrMissingMnemonic},
		{"UnknownForm", UnknownForm("x.json", "add", "Q"), ErrUnknownForm},
		{"UnknownOpcode", UnknownOpcode(0xdeadbeef), ErrUnknownOpcode},
		{"UnknownMnemonic", UnknownMnemonic("bogus"), ErrUnknownMnemonic},
		{"OpcodeConflict", OpcodeConflict("add", 0x33), ErrOpcodeConflict},
		{"FieldsIncompatible", FieldsIncompatible("add", "rd@7:11", "rd@6:10"), ErrFieldsIncompatible},
		{"InstructionAlias", InstructionAlias(0x33, "subw.demo", "sub"), ErrInstructionAlias},
		{"OverlayMissingBase", OverlayMissingBase("nop"), ErrOverlayMissingBase},
		{"OverlayBadMatchSpec", OverlayBadMatchSpec("nop"), ErrOverlayBadMatchSpec},
		{"OverlayMissingMatch", OverlayMissingMatch("nop"), ErrOverlayMissingMatch},
		{"AnnotationNotUniqueInFile", AnnotationNotUniqueInFile("add", "anno.json"), ErrAnnotationNotUnique},
		{"UArchInfoUnknownUnit", UArchInfoUnknownUnit("bogus"), ErrUArchInfoUnknownUnit},
		{"UArchInfoUnknownIssueTarget", UArchInfoUnknownIssueTarget("bogus"), ErrUArchInfoUnknownIssue},
		{"UArchInfoROBGroupParseError", UArchInfoROBGroupParseError("bogus"), ErrUArchInfoROBGroupParse},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.True(t, errors.Is(c.err, c.sentinel))
			assert.NotEmpty(t, c.err.Error())
		})
	}
}

func TestDistinctSentinelsDoNotCrossMatch(t *testing.T) {
	err := UnknownOpcode(0x33)
	assert.False(t, errors.Is(err, ErrUnknownMnemonic))
	assert.False(t, errors.Is(err, ErrOpcodeConflict))
}
