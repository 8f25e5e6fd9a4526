/*
 * Copyright 2020 grant@lastweekend.com.au
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package mockprovider

import "sort"

// Registry maps call signatures to configured return values.
//
// One Registry belongs to one Stub. Putting the same signature twice replaces the earlier values.
type Registry struct {
	entries map[Signature][]interface{}
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[Signature][]interface{})}
}

// Put stores values for sig
func (r *Registry) Put(sig Signature, values []interface{}) {
	stored := make([]interface{}, len(values))
	copy(stored, values)
	r.entries[sig] = stored
}

// Get returns the values configured for sig.
//
// found is false if sig was never configured, which is distinct from sig being configured with nil values.
func (r *Registry) Get(sig Signature) (values []interface{}, found bool) {
	stored, found := r.entries[sig]
	if !found {
		return nil, false
	}
	values = make([]interface{}, len(stored))
	copy(values, stored)
	return values, true
}

func (r *Registry) Len() int {
	return len(r.entries)
}

// Signatures returns all configured signatures in sorted order
func (r *Registry) Signatures() []Signature {
	sigs := make([]Signature, 0, len(r.entries))
	for sig := range r.entries {
		sigs = append(sigs, sig)
	}
	sort.Slice(sigs, func(i, j int) bool { return sigs[i] < sigs[j] })
	return sigs
}
