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

// Package dectypes holds the decoder's error sentinels. Every configure- or
// decode-time failure wraps one of these with fmt.Errorf and "%w", so
// callers can match with errors.Is/errors.As without depending on message
// text.
package dectypes

import (
	"errors"
	"fmt"
)

// Sentinel error kinds, matching spec section 7 verbatim.
var (
	ErrBadISAFile             = errors.New("bad ISA file")
	ErrBadAnnotationFile      = errors.New("bad annotation file")
	ErrMissingMnemonic        = errors.New("missing mnemonic")
	ErrUnknownForm            = errors.New("unknown form")
	ErrUnknownOpcode          = errors.New("unknown opcode")
	ErrUnknownMnemonic        = errors.New("unknown mnemonic")
	ErrOpcodeConflict         = errors.New("opcode conflict")
	ErrFieldsIncompatible     = errors.New("fields incompatible")
	ErrInstructionAlias       = errors.New("instruction alias")
	ErrOverlayMissingBase     = errors.New("overlay missing base")
	ErrOverlayBadMatchSpec    = errors.New("overlay bad match spec")
	ErrOverlayMissingMatch    = errors.New("overlay missing match")
	ErrAnnotationNotUnique    = errors.New("annotation not unique in file")
	ErrUArchInfoUnknownUnit   = errors.New("uArchInfo unknown unit")
	ErrUArchInfoUnknownIssue  = errors.New("uArchInfo unknown issue target")
	ErrUArchInfoROBGroupParse = errors.New("uArchInfo ROB group parse error")
)

// BadISAFile wraps ErrBadISAFile with the offending path.
func BadISAFile(path string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrBadISAFile, path, cause)
}

// BadAnnotationFile wraps ErrBadAnnotationFile with the offending path.
func BadAnnotationFile(path string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrBadAnnotationFile, path, cause)
}

// MissingMnemonic wraps ErrMissingMnemonic with file/stencil context.
func MissingMnemonic(file string, stencil uint64) error {
	return fmt.Errorf("%w: file %s, stencil 0x%x", ErrMissingMnemonic, file, stencil)
}

// UnknownForm wraps ErrUnknownForm with file/mnemonic/form context.
func UnknownForm(file, mnemonic, form string) error {
	return fmt.Errorf("%w: file %s, mnemonic %s, form %q", ErrUnknownForm, file, mnemonic, form)
}

// UnknownOpcode wraps ErrUnknownOpcode with the opcode that failed to decode.
func UnknownOpcode(op uint64) error {
	return fmt.Errorf("%w: 0x%x", ErrUnknownOpcode, op)
}

// UnknownMnemonic wraps ErrUnknownMnemonic with the mnemonic that failed
// direct-construction lookup.
func UnknownMnemonic(mnemonic string) error {
	return fmt.Errorf("%w: %s", ErrUnknownMnemonic, mnemonic)
}

// OpcodeConflict wraps ErrOpcodeConflict with the colliding mnemonic/stencil.
func OpcodeConflict(mnemonic string, stencil uint64) error {
	return fmt.Errorf("%w: mnemonic %s, stencil 0x%x", ErrOpcodeConflict, mnemonic, stencil)
}

// FieldsIncompatible wraps ErrFieldsIncompatible with the two diverging
// field definitions.
func FieldsIncompatible(mnemonic, fieldA, fieldB string) error {
	return fmt.Errorf("%w: mnemonic %s: %s vs %s", ErrFieldsIncompatible, mnemonic, fieldA, fieldB)
}

// InstructionAlias wraps ErrInstructionAlias with the alias stencil and the
// mnemonic it collided with.
func InstructionAlias(stencil uint64, mnemonic, other string) error {
	return fmt.Errorf("%w: stencil 0x%x, mnemonic %s collides with %s", ErrInstructionAlias, stencil, mnemonic, other)
}

// OverlayMissingBase wraps ErrOverlayMissingBase with the overlay's mnemonic.
func OverlayMissingBase(mnemonic string) error {
	return fmt.Errorf("%w: overlay %s", ErrOverlayMissingBase, mnemonic)
}

// OverlayBadMatchSpec wraps ErrOverlayBadMatchSpec with the overlay's mnemonic.
func OverlayBadMatchSpec(mnemonic string) error {
	return fmt.Errorf("%w: overlay %s", ErrOverlayBadMatchSpec, mnemonic)
}

// OverlayMissingMatch wraps ErrOverlayMissingMatch with the overlay's mnemonic.
func OverlayMissingMatch(mnemonic string) error {
	return fmt.Errorf("%w: overlay %s", ErrOverlayMissingMatch, mnemonic)
}

// AnnotationNotUniqueInFile wraps ErrAnnotationNotUnique with mnemonic/file context.
func AnnotationNotUniqueInFile(mnemonic, file string) error {
	return fmt.Errorf("%w: mnemonic %s, file %s", ErrAnnotationNotUnique, mnemonic, file)
}

// UArchInfoUnknownUnit wraps ErrUArchInfoUnknownUnit with the offending value.
func UArchInfoUnknownUnit(value string) error {
	return fmt.Errorf("%w: %q", ErrUArchInfoUnknownUnit, value)
}

// UArchInfoUnknownIssueTarget wraps ErrUArchInfoUnknownIssue with the offending value.
func UArchInfoUnknownIssueTarget(value string) error {
	return fmt.Errorf("%w: %q", ErrUArchInfoUnknownIssue, value)
}

// UArchInfoROBGroupParseError wraps ErrUArchInfoROBGroupParse with the offending value.
func UArchInfoROBGroupParseError(value string) error {
	return fmt.Errorf("%w: %q", ErrUArchInfoROBGroupParse, value)
}
