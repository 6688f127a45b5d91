// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package style

import (
	"github.com/mohae/deepcopy"
)

// Resolve follows name's parent chain to a fixed point and returns the
// flattened ResolvedStyle: family defaults at the bottom, each ancestor
// overlaying the one below it, the named style itself on top (§4.6 LIFO
// overlay). Cycle-safe: a name visited twice stops the walk and returns
// whatever was accumulated, rather than looping forever.
//
// Re-resolving a ResolvedStyle's own Name is idempotent: resolving an
// already-flattened style (no Parent on the synthetic lookup) just returns
// its own properties again, satisfying §8's idempotence invariant.
func (r *Registry) Resolve(name string) ResolvedStyle {
	s, ok := r.Styles[name]
	if !ok {
		return ResolvedStyle{Name: name, Properties: PropertyBag{}}
	}

	chain := r.parentChain(name)

	bag := r.FamilyDefaults[s.Family].clone()
	for i := len(chain) - 1; i >= 0; i-- {
		bag = overlay(bag, chain[i].Properties)
	}

	cloned := deepcopy.Copy(bag).(PropertyBag)
	return ResolvedStyle{Name: s.Name, Family: s.Family, Properties: cloned}
}

// parentChain returns [s, parent(s), parent(parent(s)), ...] stopping at the
// first name with no registered parent or the first repeat.
func (r *Registry) parentChain(name string) []*Style {
	visited := map[string]bool{}
	var chain []*Style
	cur := name
	for cur != "" {
		if visited[cur] {
			break
		}
		visited[cur] = true
		s, ok := r.Styles[cur]
		if !ok {
			break
		}
		chain = append(chain, s)
		cur = s.Parent
	}
	return chain
}
