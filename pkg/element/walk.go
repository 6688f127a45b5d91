// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package element

// Walk visits root and every descendant reachable through the real
// (non-virtual) parent/child/sibling structure, depth-first, in document
// order. It deliberately bypasses NextSibling's virtual repeat-expansion:
// a repeated table:table-row/table:table-column/table:table-cell's
// descendants are the same shared subtree across every repeat instance (only
// the row/column/cell wrapper itself is ever duplicated, see
// NextSibling/PreviousSibling), so visiting the
// real structure once already reaches every distinct element exactly once.
// visit returning false stops descent into that node's children (siblings
// are still visited).
func Walk(root ElementRef, visit func(ElementRef) bool) {
	if !root.IsValid() {
		return
	}
	descend := visit(root)
	if !descend {
		return
	}
	n := root.node()
	for childID := n.firstChild; childID != noID; childID = root.g.nodes[childID].nextSibling {
		Walk(ElementRef{g: root.g, id: childID}, visit)
	}
}
