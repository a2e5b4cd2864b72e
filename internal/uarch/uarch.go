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

// Package uarch parses the micro-architectural annotation keys ("issue",
// "unit", "latency", "pipelined", "serialize", "rob_group") recognized from
// instruction catalog JSON. This is the uArchInfo collaborator named in the
// spec: an external concern the decoder core carries opaque handles to, but
// never depends on for dispatch. The Builder parses it; the dispatch trie
// only stores the parsed UArchInfo in its leaves and decode results, and the
// extractor model does not import this package.
package uarch

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bitset"
	log "github.com/sirupsen/logrus"

	"github.com/jeffnye-gh/mavisgo/internal/dectypes"
)

// IssueTarget names the issue queue/port an instruction is steered to.
type IssueTarget uint8

// Recognized issue targets.
const (
	IssueInt IssueTarget = iota
	IssueFP
	IssueVector
	IssueBranch
	IssueLoadStore
	IssueSystem
)

var issueTargetNames = map[string]IssueTarget{
	"int":    IssueInt,
	"fp":     IssueFP,
	"vector": IssueVector,
	"vec":    IssueVector,
	"branch": IssueBranch,
	"br":     IssueBranch,
	"lsu":    IssueLoadStore,
	"system": IssueSystem,
	"sys":    IssueSystem,
}

// ParseIssueTarget resolves a catalog "issue" string to its enum value.
func ParseIssueTarget(name string) (IssueTarget, error) {
	t, ok := issueTargetNames[strings.ToLower(name)]
	if !ok {
		return 0, dectypes.UArchInfoUnknownIssueTarget(name)
	}

	return t, nil
}

// Recognized execution unit names, indexed into a UnitSet bitset.
var unitBits = map[string]uint{
	"alu":  0,
	"mul":  1,
	"div":  2,
	"br":   3,
	"lsu":  4,
	"fpu":  5,
	"vpu":  6,
	"csr":  7,
	"agen": 8,
}

// UnitSet is a bitmask of execution units an instruction may be issued to.
// Backed by bitset.BitSet rather than a raw uint64: a plain 64-bit mask
// (the spec's own design note) works today, but a BitSet grows past 64 bits
// for free once vector/tensor units are added, and the teacher's dependency
// closure already carries bits-and-blooms/bitset transitively.
type UnitSet struct {
	bits *bitset.BitSet
}

// NewUnitSet constructs an empty unit set.
func NewUnitSet() UnitSet {
	return UnitSet{bits: bitset.New(uint(len(unitBits)))}
}

// Add sets the named unit bit; an unrecognized name is an error.
func (u *UnitSet) Add(name string) error {
	bit, ok := unitBits[strings.ToLower(name)]
	if !ok {
		return dectypes.UArchInfoUnknownUnit(name)
	}

	if u.bits == nil {
		u.bits = bitset.New(uint(len(unitBits)))
	}

	u.bits.Set(bit)

	return nil
}

// Has reports whether the named unit is a member of this set.
func (u UnitSet) Has(name string) bool {
	bit, ok := unitBits[strings.ToLower(name)]
	if !ok || u.bits == nil {
		return false
	}

	return u.bits.Test(bit)
}

// String renders the set as comma-separated unit names, for diagnostics.
func (u UnitSet) String() string {
	if u.bits == nil {
		return ""
	}

	var names []string

	for name, bit := range unitBits {
		if u.bits.Test(bit) {
			names = append(names, name)
		}
	}

	return strings.Join(names, ",")
}

// ROBGroup is a reorder-buffer grouping: a numeric slot plus an optional tag.
type ROBGroup struct {
	Slot int
	Tag  string
}

// ParseROBGroup parses either a bare integer ("3") or an "N:tag" string
// ("3:vset") into a ROBGroup.
func ParseROBGroup(value string) (ROBGroup, error) {
	parts := strings.SplitN(value, ":", 2)

	slot, err := strconv.Atoi(parts[0])
	if err != nil {
		return ROBGroup{}, dectypes.UArchInfoROBGroupParseError(value)
	}

	if len(parts) == 2 {
		return ROBGroup{Slot: slot, Tag: parts[1]}, nil
	}

	return ROBGroup{Slot: slot}, nil
}

// UArchInfo bundles the micro-architectural metadata attached to a decoded
// instruction (the "uinfo" half of IFactoryInfo).
type UArchInfo struct {
	Issue      IssueTarget
	Units      UnitSet
	Latency    int
	Pipelined  bool
	Serialize  bool
	ROBGroup   ROBGroup
	hasROBGrp  bool
}

// Parse builds a UArchInfo from the recognized keys of an instruction's
// JSON object. Missing keys keep their zero value; malformed values
// propagate typed errors per spec section 7.
func Parse(mnemonic string, obj map[string]any) (UArchInfo, error) {
	var info UArchInfo

	if v, ok := obj["issue"].(string); ok {
		t, err := ParseIssueTarget(v)
		if err != nil {
			return info, err
		}

		info.Issue = t
	}

	info.Units = NewUnitSet()

	switch units := obj["unit"].(type) {
	case string:
		if err := info.Units.Add(units); err != nil {
			return info, err
		}
	case []any:
		for _, u := range units {
			name, ok := u.(string)
			if !ok {
				continue
			}

			if err := info.Units.Add(name); err != nil {
				return info, err
			}
		}
	}

	if v, ok := obj["latency"].(float64); ok {
		info.Latency = int(v)
	}

	if v, ok := obj["pipelined"].(bool); ok {
		info.Pipelined = v
	}

	if v, ok := obj["serialize"].(bool); ok {
		info.Serialize = v
	}

	if v, ok := obj["rob_group"]; ok {
		var s string

		switch rg := v.(type) {
		case string:
			s = rg
		case float64:
			s = strconv.Itoa(int(rg))
		}

		if s != "" {
			rg, err := ParseROBGroup(s)
			if err != nil {
				return info, err
			}

			info.ROBGroup = rg
			info.hasROBGrp = true
		}
	}

	log.Debugf("uArchInfo: %s", mnemonic)

	return info, nil
}

// String renders a short diagnostic form.
func (u UArchInfo) String() string {
	rob := ""
	if u.hasROBGrp {
		rob = fmt.Sprintf(" rob=%d:%s", u.ROBGroup.Slot, u.ROBGroup.Tag)
	}

	return fmt.Sprintf("issue=%d units=[%s] latency=%d pipelined=%v serialize=%v%s",
		u.Issue, u.Units, u.Latency, u.Pipelined, u.Serialize, rob)
}
