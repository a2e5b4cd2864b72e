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
package extractor

// Registry holds the named "xform" extractors an instruction may select in
// place of its form's default FormGeneric extractor. xforms are stateless
// and shared across every instruction that names them. The default,
// form-driven extractor needs no registry entry of its own: it is
// constructed directly via NewFormGeneric, bound to each instruction's own
// declared sources/dests/specials ordering.
type Registry struct {
	xforms map[string]Extractor
}

// NewRegistry constructs an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{xforms: make(map[string]Extractor)}
}

// RegisterXform adds a named override extractor.
func (r *Registry) RegisterXform(name string, ex Extractor) {
	r.xforms[name] = ex
}

// Xform returns the named override extractor.
func (r *Registry) Xform(name string) (Extractor, bool) {
	ex, ok := r.xforms[name]
	return ex, ok
}
