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

// Package overlay implements the mask/value specialization that rewrites a
// base instruction's identity when a bit-pattern test passes.
package overlay

import (
	"math/bits"

	"github.com/jeffnye-gh/mavisgo/internal/dectypes"
	"github.com/jeffnye-gh/mavisgo/pkg/extractor"
	"github.com/jeffnye-gh/mavisgo/pkg/form"
	"github.com/jeffnye-gh/mavisgo/pkg/meta"
)

// Overlay specializes a base instruction's mnemonic/meta/extractor/UID when
// (opcode & MatchMask) == MatchValue. Overlays are stored inside their
// base's leaf factory (never owned by a structural cycle back to the base):
// the base does not hold a reference to its overlays' leaves, only its own.
type Overlay struct {
	Mnemonic     string
	BaseMnemonic string
	MatchMask    form.Opcode
	MatchValue   form.Opcode
	PopCount     int
	Meta         *meta.InstMetaData
	Extractor    extractor.Extractor
	UID          uint32
}

// New constructs an overlay from its catalog-declared base mnemonic and
// match spec. baseMeta is cloned and override-parsed per spec 4.6; ownership
// of the clone belongs to the returned Overlay.
func New(mnemonic, baseMnemonic string, mask, value form.Opcode, baseMeta *meta.InstMetaData, overrides map[string]any, ex extractor.Extractor) (*Overlay, error) {
	if baseMnemonic == "" {
		return nil, dectypes.OverlayMissingBase(mnemonic)
	}

	clonedMeta := baseMeta.Clone()
	clonedMeta.Mnemonic = mnemonic

	if err := clonedMeta.ParseOverrides(overrides); err != nil {
		return nil, err
	}

	return &Overlay{
		Mnemonic:     mnemonic,
		BaseMnemonic: baseMnemonic,
		MatchMask:    mask,
		MatchValue:   value,
		PopCount:     bits.OnesCount64(uint64(mask)),
		Meta:         clonedMeta,
		Extractor:    ex,
	}, nil
}

// IsMatch reports whether opcode op should be rewritten by this overlay.
func (o *Overlay) IsMatch(op form.Opcode) bool {
	return (op & o.MatchMask) == o.MatchValue
}

// ByPopCountDesc sorts overlays by specificity (mask popcount) descending,
// with insertion order (stable sort) as the tie-break, per spec 4.4/4.6.
func ByPopCountDesc(overlays []*Overlay) {
	// A simple stable insertion sort: overlay lists are small (single
	// digits per base instruction in practice) so O(n^2) is irrelevant,
	// and it keeps the tie-break on original insertion order for free.
	for i := 1; i < len(overlays); i++ {
		j := i
		for j > 0 && overlays[j-1].PopCount < overlays[j].PopCount {
			overlays[j-1], overlays[j] = overlays[j], overlays[j-1]
			j--
		}
	}
}
