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
package dtable

import (
	log "github.com/sirupsen/logrus"

	"github.com/jeffnye-gh/mavisgo/internal/dectypes"
	"github.com/jeffnye-gh/mavisgo/internal/uarch"
	"github.com/jeffnye-gh/mavisgo/pkg/annotation"
	"github.com/jeffnye-gh/mavisgo/pkg/extractor"
	"github.com/jeffnye-gh/mavisgo/pkg/form"
	"github.com/jeffnye-gh/mavisgo/pkg/overlay"
)

// cacheSize is the direct-mapped cache capacity, the same 1023 slots the
// reference uses (1023 = 3*11*31, not a prime); a line is selected by
// "opcode mod size".
const cacheSize = 1023

type cacheLine[T any] struct {
	tag    form.Opcode
	filled bool
	value  T
}

// directCache is a fixed-capacity, single-threaded, lock-free direct-mapped
// cache: collisions replace, there is no chaining. Correctness never
// depends on it; callers may always re-derive a miss from the trie.
type directCache[T any] struct {
	lines [cacheSize]cacheLine[T]
}

func newDirectCache[T any]() *directCache[T] {
	return &directCache[T]{}
}

func (c *directCache[T]) lookup(op form.Opcode) (T, bool) {
	line := &c.lines[uint64(op)%cacheSize]
	if line.filled && line.tag == op {
		return line.value, true
	}

	var zero T

	return zero, false
}

func (c *directCache[T]) allocate(op form.Opcode, v T) {
	c.lines[uint64(op)%cacheSize] = cacheLine[T]{tag: op, filled: true, value: v}
}

// IFactoryInfo is the structured decode result returned by GetInfo: the
// operand info produced by the resolved extractor, plus the resolved
// micro-architectural info, mnemonic, UID and annotation.
type IFactoryInfo struct {
	Mnemonic   string
	UID        uint32
	OpInfo     extractor.OperandInfo
	UArch      uarch.UArchInfo
	Annotation *annotation.Annotation
}

// Instruction is a freshly constructed decode result, as returned by
// MakeInst and friends.
type Instruction struct {
	Opcode form.Opcode
	IFactoryInfo
}

// DTable is the dispatch trie root plus its two hot-path caches. All tables
// are built once during Configure (via the builder package); afterward the
// structure is read-mostly except for the caches, which MakeInst/GetInfo
// may write to.
type DTable struct {
	root *MatchList

	byMnemonic map[string]*Leaf
	byUID      map[uint32]*Leaf

	ocache *directCache[*Leaf]
	icache *directCache[*Instruction]
}

// matchListPredicates is the six-entry root dispatch table required by the
// reference ISA family (spec 4.4): it partitions opcodes by encoding-length
// class before any form-specific dispatch happens.
var matchListPredicates = []func(form.Opcode) bool{
	func(op form.Opcode) bool { return (op & 0x3) != 0x3 },
	func(op form.Opcode) bool { return (op&0x3) == 0x3 && (op&0x1c) != 0x1c },
	func(op form.Opcode) bool { return (op & 0x3f) == 0x1f },
	func(op form.Opcode) bool { return (op & 0x7f) == 0x3f },
	func(op form.Opcode) bool { return (op&0x7f) == 0x7f && (op&0x7000) != 0x7000 },
	func(op form.Opcode) bool { return (op & 0x707f) == 0x707f },
}

// New constructs an empty DTable with the root MatchList pre-populated per
// the reference predicate table.
func New() *DTable {
	return &DTable{
		root: &MatchList{
			Predicates: matchListPredicates,
			Children:   make([]FactoryNode, len(matchListPredicates)),
		},
		byMnemonic: make(map[string]*Leaf),
		byUID:      make(map[uint32]*Leaf),
		ocache:     newDirectCache[*Leaf](),
		icache:     newDirectCache[*Instruction](),
	}
}

// RegisterLeaf records a newly built leaf for direct lookup by mnemonic/UID,
// used by the Builder immediately after trie insertion and later by
// MakeInstDirectly/MorphInst/overlay attachment.
func (dt *DTable) RegisterLeaf(leaf *Leaf) {
	dt.byMnemonic[leaf.Mnemonic] = leaf
	dt.byUID[leaf.UID] = leaf
}

// FindLeaf returns the leaf registered for mnemonic.
func (dt *DTable) FindLeaf(mnemonic string) (*Leaf, bool) {
	l, ok := dt.byMnemonic[mnemonic]
	return l, ok
}

// FindLeafByUID returns the leaf registered for uid.
func (dt *DTable) FindLeafByUID(uid uint32) (*Leaf, bool) {
	l, ok := dt.byUID[uid]
	return l, ok
}

// AttachOverlay appends ov to its base's leaf and re-sorts the base's
// overlay list by specificity (spec 4.6: overlays are stored inside the
// base leaf, never via a structural cycle back to it).
func (dt *DTable) AttachOverlay(ov *overlay.Overlay) error {
	base, ok := dt.FindLeaf(ov.BaseMnemonic)
	if !ok {
		return dectypes.OverlayMissingBase(ov.Mnemonic)
	}

	base.Overlays = append(base.Overlays, ov)
	overlay.ByPopCountDesc(base.Overlays)

	return nil
}

// GetInfo decodes op and returns its structured description, resolving any
// matching overlay. Results are cached in ocache; a cache hit skips the
// trie descent entirely.
func (dt *DTable) GetInfo(op form.Opcode) (IFactoryInfo, error) {
	if leaf, ok := dt.ocache.lookup(op); ok {
		return dt.infoFromLeaf(leaf, op), nil
	}

	leaf, err := dt.root.lookup(op)
	if err != nil {
		return IFactoryInfo{}, err
	}

	dt.ocache.allocate(op, leaf)

	return dt.infoFromLeaf(leaf, op), nil
}

func (dt *DTable) infoFromLeaf(leaf *Leaf, op form.Opcode) IFactoryInfo {
	r := leaf.resolve(op)

	return IFactoryInfo{
		Mnemonic:   r.Mnemonic,
		UID:        r.UID,
		OpInfo:     r.Extractor.Extract(op),
		UArch:      r.UArch,
		Annotation: r.Annotation,
	}
}

// MakeInst decodes op into a fresh Instruction, consulting/populating icache.
func (dt *DTable) MakeInst(op form.Opcode) (*Instruction, error) {
	if inst, ok := dt.icache.lookup(op); ok {
		return inst, nil
	}

	info, err := dt.GetInfo(op)
	if err != nil {
		return nil, err
	}

	inst := &Instruction{Opcode: op, IFactoryInfo: info}
	dt.icache.allocate(op, inst)

	return inst, nil
}

// TraceInfo is the minimal contract MakeInstFromTrace needs from a trace
// record: its opcode and the mnemonic the trace itself observed.
type TraceInfo interface {
	Opcode() form.Opcode
	Mnemonic() string
}

// MakeInstFromTrace decodes tinfo.Opcode() as usual; if the bit-decoded
// mnemonic disagrees with what the trace observed (e.g. the trace reflects
// a runtime fixup the static encoding doesn't capture), it rebuilds the
// instruction directly from the trace's mnemonic instead, bypassing the
// trie, and caches the result under the trace's opcode.
func (dt *DTable) MakeInstFromTrace(tinfo TraceInfo) (*Instruction, error) {
	inst, err := dt.MakeInst(tinfo.Opcode())
	if err != nil {
		return nil, err
	}

	if inst.Mnemonic == tinfo.Mnemonic() {
		return inst, nil
	}

	leaf, ok := dt.FindLeaf(tinfo.Mnemonic())
	if !ok {
		return nil, dectypes.UnknownMnemonic(tinfo.Mnemonic())
	}

	log.Debugf("makeInstFromTrace: overriding decode %q with trace mnemonic %q", inst.Mnemonic, tinfo.Mnemonic())

	r := leaf.resolve(tinfo.Opcode())
	morphed := &Instruction{
		Opcode: tinfo.Opcode(),
		IFactoryInfo: IFactoryInfo{
			Mnemonic:   r.Mnemonic,
			UID:        r.UID,
			OpInfo:     r.Extractor.Extract(tinfo.Opcode()),
			UArch:      r.UArch,
			Annotation: r.Annotation,
		},
	}
	dt.icache.allocate(tinfo.Opcode(), morphed)

	return morphed, nil
}

// DirectInfo supplies operand info explicitly, bypassing bit-extraction
// entirely; used by MakeInstDirectly/MorphInst for pseudo-instructions and
// other synthetic construction paths.
type DirectInfo struct {
	Mnemonic string
	UID      uint32
	HasUID   bool
	OpInfo   extractor.OperandInfo
}

// MakeInstDirectly builds an instruction by mnemonic/UID lookup, applying
// the caller-supplied OperandInfo instead of decoding from bits. Never
// touches the caches: the reference explicitly bypasses them here.
func (dt *DTable) MakeInstDirectly(info DirectInfo) (*Instruction, error) {
	leaf, ok := dt.resolveDirect(info)
	if !ok {
		return nil, dectypes.UnknownMnemonic(info.Mnemonic)
	}

	return &Instruction{
		IFactoryInfo: IFactoryInfo{
			Mnemonic:   leaf.Mnemonic,
			UID:        leaf.UID,
			OpInfo:     info.OpInfo,
			UArch:      leaf.UArch,
			Annotation: leaf.Annotation,
		},
	}, nil
}

// MorphInst rewrites inst in place using the given direct info, without
// allocating a new Instruction.
func (dt *DTable) MorphInst(inst *Instruction, info DirectInfo) error {
	leaf, ok := dt.resolveDirect(info)
	if !ok {
		return dectypes.UnknownMnemonic(info.Mnemonic)
	}

	inst.Mnemonic = leaf.Mnemonic
	inst.UID = leaf.UID
	inst.OpInfo = info.OpInfo
	inst.UArch = leaf.UArch
	inst.Annotation = leaf.Annotation

	return nil
}

func (dt *DTable) resolveDirect(info DirectInfo) (*Leaf, bool) {
	if info.HasUID {
		return dt.FindLeafByUID(info.UID)
	}

	return dt.FindLeaf(info.Mnemonic)
}

// FlushCaches discards both caches; the next GetInfo/MakeInst for any
// opcode is guaranteed to miss and re-derive from the trie.
func (dt *DTable) FlushCaches() {
	dt.ocache = newDirectCache[*Leaf]()
	dt.icache = newDirectCache[*Instruction]()
}
