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
package form

import "fmt"

// Form is a named, ordered field layout shared by every instruction bound to
// it.  The trie depth used to dispatch instructions of this form equals
// len(Fields).  Selector is the distinguished field used for bookkeeping at
// the root of the dispatch trie (conventionally Fields[0]).
type Form struct {
	Name     string
	Fields   []Field
	Selector Field
}

// FieldByName returns the named field and true, or the zero Field and false.
func (f Form) FieldByName(name string) (Field, bool) {
	for _, fl := range f.Fields {
		if fl.Name == name {
			return fl, true
		}
	}

	return Field{}, false
}

// Registry is a static table of named, built-in forms.  Forms are not
// user-definable at runtime; they are constants of the ISA family the
// decoder targets.  Lookup returns a borrowed handle; the zero value and
// false indicate an unknown form name.
type Registry struct {
	forms map[string]Form
}

// NewRegistry constructs a registry pre-populated with the built-in forms of
// the reference ISA family (see builtin.go).
func NewRegistry() *Registry {
	r := &Registry{forms: make(map[string]Form)}
	for _, f := range builtinForms {
		r.forms[f.Name] = f
	}

	return r
}

// Lookup returns the named form, or ok=false when no such form is
// registered (callers surface this as UnknownForm).
func (r *Registry) Lookup(name string) (Form, bool) {
	f, ok := r.forms[name]
	return f, ok
}

// Register adds or replaces a form.  Exposed primarily for tests that need
// forms beyond the built-in set.
func (r *Registry) Register(f Form) {
	if len(f.Fields) == 0 {
		panic(fmt.Sprintf("form %q must declare at least one field", f.Name))
	}

	if f.Selector.IsZero() {
		f.Selector = f.Fields[0]
	}

	r.forms[f.Name] = f
}

// Names returns the registered form names, for diagnostics.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.forms))
	for n := range r.forms {
		names = append(names, n)
	}

	return names
}
