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

// Package builder implements Configure: reading one or more instruction
// and annotation catalogs, applying tag filtering, and populating a
// dispatch trie, pseudo-instruction registry, and metadata/annotation
// registries from them. This is the collaborator the reference calls the
// Builder/Mavis facade; everything downstream (dtable, meta, overlay,
// extractor) stays ignorant of JSON and of this package.
package builder

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/jeffnye-gh/mavisgo/internal/dectypes"
	"github.com/jeffnye-gh/mavisgo/internal/pseudo"
	"github.com/jeffnye-gh/mavisgo/internal/uarch"
	"github.com/jeffnye-gh/mavisgo/pkg/annotation"
	"github.com/jeffnye-gh/mavisgo/pkg/catalog"
	"github.com/jeffnye-gh/mavisgo/pkg/dtable"
	"github.com/jeffnye-gh/mavisgo/pkg/extractor"
	"github.com/jeffnye-gh/mavisgo/pkg/form"
	"github.com/jeffnye-gh/mavisgo/pkg/meta"
	"github.com/jeffnye-gh/mavisgo/pkg/overlay"
)

// Decoder is the complete, configured decoder: the dispatch trie plus its
// sibling registries, as returned by Configure. It is the public surface
// CLI/consumers hold onto; every method here is a thin pass-through to the
// collaborator that actually implements it.
type Decoder struct {
	dt       *dtable.DTable
	forms    *form.Registry
	metaReg  *meta.Registry
	annoReg  *annotation.Registry
	xforms   *extractor.Registry
	pseudoes *pseudo.Builder
}

// Forms returns the built-in form registry, for diagnostics.
func (d *Decoder) Forms() *form.Registry { return d.forms }

// Meta returns the metadata registry, for diagnostics.
func (d *Decoder) Meta() *meta.Registry { return d.metaReg }

// Annotations returns the annotation registry, for diagnostics.
func (d *Decoder) Annotations() *annotation.Registry { return d.annoReg }

// GetInfo decodes op without constructing an Instruction.
func (d *Decoder) GetInfo(op form.Opcode) (dtable.IFactoryInfo, error) {
	return d.dt.GetInfo(op)
}

// MakeInst decodes op into a fresh Instruction.
func (d *Decoder) MakeInst(op form.Opcode) (*dtable.Instruction, error) {
	return d.dt.MakeInst(op)
}

// MakeInstFromTrace decodes a trace record, reconciling decode/trace
// mnemonic disagreement per dtable.MakeInstFromTrace.
func (d *Decoder) MakeInstFromTrace(t dtable.TraceInfo) (*dtable.Instruction, error) {
	return d.dt.MakeInstFromTrace(t)
}

// MakeInstDirectly builds an instruction by mnemonic/UID, checking the
// trie's registered leaves first and falling back to the pseudo registry.
func (d *Decoder) MakeInstDirectly(info dtable.DirectInfo) (*dtable.Instruction, error) {
	if inst, err := d.dt.MakeInstDirectly(info); err == nil {
		return inst, nil
	}

	pf, ok := d.resolvePseudo(info)
	if !ok {
		return nil, dectypes.UnknownMnemonic(info.Mnemonic)
	}

	return &dtable.Instruction{
		IFactoryInfo: dtable.IFactoryInfo{
			Mnemonic:   pf.Mnemonic,
			UID:        pf.UID,
			OpInfo:     info.OpInfo,
			Annotation: pf.Annotation,
		},
	}, nil
}

// MorphInst rewrites inst in place, same fallback order as MakeInstDirectly.
func (d *Decoder) MorphInst(inst *dtable.Instruction, info dtable.DirectInfo) error {
	if err := d.dt.MorphInst(inst, info); err == nil {
		return nil
	}

	pf, ok := d.resolvePseudo(info)
	if !ok {
		return dectypes.UnknownMnemonic(info.Mnemonic)
	}

	inst.Mnemonic = pf.Mnemonic
	inst.UID = pf.UID
	inst.OpInfo = info.OpInfo
	inst.Annotation = pf.Annotation

	return nil
}

func (d *Decoder) resolvePseudo(info dtable.DirectInfo) (*pseudo.Factory, bool) {
	if info.HasUID {
		return d.pseudoes.FindByUID(info.UID)
	}

	return d.pseudoes.Find(info.Mnemonic)
}

// FlushCaches discards both of the decoder's hot-path caches.
func (d *Decoder) FlushCaches() {
	d.dt.FlushCaches()
}

// Configure builds a Decoder from the given catalogs in two passes: plain
// instructions (with their alias stencils) and pseudo-instructions from
// every instruction catalog file first, then the overlays of all files,
// since an overlay's base must already be registered. An overlay whose base
// was dropped by the tag filter is skipped. Annotation files load before
// either pass, so Find/Override are available while building leaves.
func Configure(opts Options) (*Decoder, error) {
	d := &Decoder{
		dt:       dtable.New(),
		forms:    form.NewRegistry(),
		metaReg:  meta.NewRegistry(),
		annoReg:  annotation.NewRegistry(),
		xforms:   extractor.NewRegistry(),
		pseudoes: pseudo.NewBuilder(),
	}

	for name, ex := range opts.Xforms {
		d.xforms.RegisterXform(name, ex)
	}

	for _, path := range opts.AnnotationFiles {
		entries, err := catalog.ReadAnnotationFile(path)
		if err != nil {
			return nil, err
		}

		if err := d.annoReg.LoadFile(path, entries); err != nil {
			return nil, err
		}
	}

	for _, o := range opts.AnnotationOverrides {
		d.annoReg.Override(o.Mnemonic, o.Name, o.Value)
	}

	include := tagSet(opts.IncludeTags)
	exclude := tagSet(opts.ExcludeTags)

	var deferredOverlays []deferredOverlay

	tagSkipped := make(map[string]struct{})

	for _, path := range opts.ISAFiles {
		entries, err := catalog.ReadISAFile(path)
		if err != nil {
			return nil, err
		}

		for _, e := range entries {
			if base, ok := e.OverlayBase(); ok {
				deferredOverlays = append(deferredOverlays, deferredOverlay{file: path, base: base, entry: e})
				continue
			}

			if pseudoName, ok := e.Pseudo(); ok {
				if err := d.buildPseudo(path, pseudoName, e, include, exclude); err != nil {
					return nil, err
				}

				continue
			}

			if err := d.buildInstruction(path, e, include, exclude); err != nil {
				return nil, err
			}

			// buildInstruction returns nil without registering only when the
			// tag filter drops the entry.
			if m, ok := e.Mnemonic(); ok {
				if _, registered := d.metaReg.Lookup(m); !registered {
					tagSkipped[m] = struct{}{}
				}
			}
		}
	}

	for _, dov := range deferredOverlays {
		if _, skipped := tagSkipped[dov.base]; skipped {
			log.Debugf("builder: skipping overlay over %s (base dropped by tag filter)", dov.base)
			continue
		}

		if err := d.buildOverlay(dov.file, dov.entry, dov.base); err != nil {
			return nil, err
		}
	}

	d.metaReg.FreezeAll()

	return d, nil
}

type deferredOverlay struct {
	file  string
	base  string
	entry catalog.Entry
}

func (d *Decoder) buildInstruction(file string, e catalog.Entry, include, exclude map[string]struct{}) error {
	mnemonic, ok := e.Mnemonic()
	if !ok {
		return dectypes.MissingMnemonic(file, 0)
	}

	stencil, ok := e.Stencil()
	if !ok {
		return dectypes.BadISAFile(file, fmt.Errorf("mnemonic %s missing stencil", mnemonic))
	}

	formName, ok := e.Form()
	if !ok {
		return dectypes.UnknownForm(file, mnemonic, "")
	}

	f, ok := d.forms.Lookup(formName)
	if !ok {
		return dectypes.UnknownForm(file, mnemonic, formName)
	}

	m := meta.New(mnemonic)
	for _, isa := range e.StringList("isa") {
		m.AddISA(isa)
	}

	m.AddTags(e.StringList("tags")...)

	if exclude != nil && m.HasAnyTag(exclude) {
		log.Debugf("builder: skipping %s (excluded tag)", mnemonic)
		return nil
	}

	if include != nil && !m.HasAnyTag(include) {
		log.Debugf("builder: skipping %s (no included tag)", mnemonic)
		return nil
	}

	fixedNames := e.StringList("fixed")
	ignoreNames := e.StringList("ignore")
	m.Fixed = fixedNames
	m.Ignore = ignoreNames

	if err := m.ParseOverrides(e); err != nil {
		return err
	}

	fixedMask, fixedValue, hasFixed := computeFixed(f, fixedNames, form.Opcode(stencil))
	ignoreSet := stringSet(ignoreNames)

	ex := d.resolveExtractor(e, f, m)

	uarchInfo, err := uarch.Parse(mnemonic, e)
	if err != nil {
		return err
	}

	uid := d.metaReg.Register(m)
	anno, _ := d.annoReg.Find(mnemonic)

	leaf := &dtable.Leaf{
		Mnemonic:   mnemonic,
		UID:        uid,
		Meta:       m,
		Extractor:  ex,
		UArch:      uarchInfo,
		Annotation: anno,
	}

	if err := d.dt.InsertInstruction(f, form.Opcode(stencil), ignoreSet, fixedMask, fixedValue, hasFixed, leaf); err != nil {
		return err
	}

	d.dt.RegisterLeaf(leaf)

	for _, aliasStencil := range e.Aliases() {
		// The fixed-field disambiguator is re-derived from each alias's own
		// bits: an alias can share the routing fields with its primary
		// stencil while still differing in whatever field "fixed" names.
		aliasMask, aliasValue, aliasHasFixed := computeFixed(f, fixedNames, form.Opcode(aliasStencil))

		err := d.dt.InsertAlias(f, form.Opcode(aliasStencil), ignoreSet, aliasMask, aliasValue, aliasHasFixed, leaf)
		if err == nil {
			continue
		}

		if errors.Is(err, dectypes.ErrInstructionAlias) {
			log.Warnf("builder: %v", err)
			continue
		}

		return err
	}

	return nil
}

func (d *Decoder) buildOverlay(file string, e catalog.Entry, baseMnemonic string) error {
	mnemonic, ok := e.Mnemonic()
	if !ok {
		return dectypes.MissingMnemonic(file, 0)
	}

	baseMeta, ok := d.metaReg.Lookup(baseMnemonic)
	if !ok {
		return dectypes.OverlayMissingBase(mnemonic)
	}

	baseLeaf, ok := d.dt.FindLeaf(baseMnemonic)
	if !ok {
		return dectypes.OverlayMissingBase(mnemonic)
	}

	mask, hasMask := e.MatchMask()
	value, hasValue := e.MatchValue()

	switch {
	case !hasMask && !hasValue:
		return dectypes.OverlayMissingMatch(mnemonic)
	case !hasMask || !hasValue:
		return dectypes.OverlayBadMatchSpec(mnemonic)
	}

	ex := baseLeaf.Extractor
	if xformName, ok := e.XForm(); ok {
		if x, found := d.xforms.Xform(xformName); found {
			ex = x
		} else {
			log.Warnf("builder: overlay %s names unknown xform %q, inheriting base extractor", mnemonic, xformName)
		}
	}

	ov, err := overlay.New(mnemonic, baseMnemonic, form.Opcode(mask), form.Opcode(value), baseMeta, e, ex)
	if err != nil {
		return err
	}

	ov.UID = d.metaReg.Register(ov.Meta)

	return d.dt.AttachOverlay(ov)
}

func (d *Decoder) buildPseudo(file, mnemonic string, e catalog.Entry, include, exclude map[string]struct{}) error {
	m := meta.New(mnemonic)
	for _, isa := range e.StringList("isa") {
		m.AddISA(isa)
	}

	m.AddTags(e.StringList("tags")...)

	if exclude != nil && m.HasAnyTag(exclude) {
		return nil
	}

	if include != nil && !m.HasAnyTag(include) {
		return nil
	}

	if err := m.ParseOverrides(e); err != nil {
		return err
	}

	formName, _ := e.Form()

	var ex extractor.Extractor

	if f, ok := d.forms.Lookup(formName); ok {
		ex = d.resolveExtractor(e, f, m)
	}

	uid := d.metaReg.Register(m)
	anno, _ := d.annoReg.Find(mnemonic)

	d.pseudoes.Register(&pseudo.Factory{
		Mnemonic:   mnemonic,
		UID:        uid,
		Meta:       m,
		Extractor:  ex,
		Annotation: anno,
	})

	return nil
}

func (d *Decoder) resolveExtractor(e catalog.Entry, f form.Form, m *meta.InstMetaData) extractor.Extractor {
	if xformName, ok := e.XForm(); ok {
		if ex, found := d.xforms.Xform(xformName); found {
			return ex
		}

		log.Warnf("builder: unknown xform %q, falling back to default form extractor", xformName)
	}

	return extractor.NewFormGeneric(f, e.StringList("sources"), e.StringList("dests"), e.StringList("specials"), m.OperandTypes)
}

func computeFixed(f form.Form, names []string, stencil form.Opcode) (mask, value form.Opcode, has bool) {
	if len(names) == 0 {
		return 0, 0, false
	}

	for _, name := range names {
		fl, ok := f.FieldByName(name)
		if !ok {
			continue
		}

		mask |= fl.Mask()
	}

	value = stencil & mask

	return mask, value, mask != 0
}

func stringSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}

	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}

	return set
}
