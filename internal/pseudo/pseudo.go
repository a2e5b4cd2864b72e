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

// Package pseudo builds instructions that are named and constructed
// directly by mnemonic, never reached by decoding an opcode: catalog
// entries carrying a "pseudo" key instead of "mnemonic"/"form"/"stencil".
// A pseudo factory is never inserted into the dispatch trie; it exists
// purely so MakeInstDirectly/MorphInst can resolve its mnemonic.
package pseudo

import (
	"github.com/jeffnye-gh/mavisgo/pkg/annotation"
	"github.com/jeffnye-gh/mavisgo/pkg/extractor"
	"github.com/jeffnye-gh/mavisgo/pkg/meta"
)

// Factory is the pseudo-instruction analogue of dtable.Leaf: it carries the
// same identity bundle but is never reachable by opcode lookup.
type Factory struct {
	Mnemonic   string
	UID        uint32
	Meta       *meta.InstMetaData
	Extractor  extractor.Extractor
	Annotation *annotation.Annotation
}

// Builder is a small mnemonic-keyed registry of pseudo factories, populated
// once during Configure and consulted only by direct-construction paths.
type Builder struct {
	byMnemonic map[string]*Factory
	byUID      map[uint32]*Factory
}

// NewBuilder constructs an empty pseudo-instruction registry.
func NewBuilder() *Builder {
	return &Builder{
		byMnemonic: make(map[string]*Factory),
		byUID:      make(map[uint32]*Factory),
	}
}

// Register records a fully-built pseudo factory. Registering the same
// mnemonic twice replaces the earlier entry, matching the reference
// PseudoBuilder's findIFact-or-create idiom (a second "configure" pass
// naming the same pseudo mnemonic wins).
func (b *Builder) Register(f *Factory) {
	if old, ok := b.byMnemonic[f.Mnemonic]; ok {
		delete(b.byUID, old.UID)
	}

	b.byMnemonic[f.Mnemonic] = f
	b.byUID[f.UID] = f
}

// Find returns the pseudo factory registered for mnemonic.
func (b *Builder) Find(mnemonic string) (*Factory, bool) {
	f, ok := b.byMnemonic[mnemonic]
	return f, ok
}

// FindByUID returns the pseudo factory registered for uid.
func (b *Builder) FindByUID(uid uint32) (*Factory, bool) {
	f, ok := b.byUID[uid]
	return f, ok
}

// Len reports how many pseudo-instructions are registered.
func (b *Builder) Len() int {
	return len(b.byMnemonic)
}
