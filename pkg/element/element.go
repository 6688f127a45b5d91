// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package element implements the polymorphic document element graph (§4.7):
// a tagged-variant tree over the parsed XML, with lazy sibling/child
// navigation. Per §9's design note, cyclic parent/child/sibling ownership is
// modeled as an arena of records indexed by ID rather than shared pointers.
package element

import "github.com/opendocument-go/docmodel/pkg/xmlutil"

// Kind tags which variant a Node is, per the §4.7 variant table.
type Kind int

const (
	KindRoot Kind = iota
	KindSlide
	KindPage
	KindSheet
	KindParagraph
	KindSpan
	KindText
	KindLineBreak
	KindPageBreak
	KindLink
	KindBookmark
	KindList
	KindListItem
	KindTable
	KindTableColumn
	KindTableRow
	KindTableCell
	KindFrame
	KindImage
	KindRect
	KindLine
	KindCircle
	KindCustomShape
	KindGroup
)

// id is an arena index; noID marks an absent reference.
type id int

const noID id = -1

// Node is one arena record. XML is nil for a purely synthetic node (there
// are none at present, but the field is kept non-pointer-coupled to IDs so
// future synthetic nodes — e.g. a promoted text:index-body — slot in
// without changing the traversal API).
type Node struct {
	Kind Kind
	XML  *xmlutil.Node

	parent        id
	firstChild    id
	nextSibling   id
	previousSib   id

	// repeatTotal/repeatIndex implement table:number-rows-repeated /
	// table:number-columns-repeated as virtual siblings (§4.8 edge case):
	// a TableRow/TableColumn/TableCell with repeatTotal > 1 reports repeatTotal
	// logical siblings before its nextSibling pointer is followed.
	repeatTotal int
	repeatIndex int

	// Table-cell specific (§4.7 TableCell row).
	RowSpan uint32
	ColSpan uint32
	Covered bool

	// Table specific.
	Dimensions Dims

	// Frame/drawing geometry (§4.7 Frame/Rect/Line/Circle/CustomShape).
	X, Y, Width, Height string

	// Name carries draw:name / table:name / style:name-derived identity
	// (Slide, Page, Sheet, Bookmark).
	Name string
	// Href carries xlink:href (Link, Image).
	Href string
	// StyleName carries the resolved-lookup key (text:style-name,
	// table:style-name, draw:style-name, ...).
	StyleName string

	// text holds the content of a Text node: one character-data run of
	// its parent, or the expansion of a single text:s/text:tab, per §4.7.
	// Consecutive runs are not merged; each is its own Text node.
	text string
}

// Dims mirrors table.Dimensions without importing the table package's
// Limits type into every caller's signature.
type Dims struct {
	Rows, Columns uint32
}

// Graph is the arena: every Node reachable from Root.
type Graph struct {
	nodes []Node
	root  id
}

// Root returns the graph's root element ID.
func (g *Graph) Root() ElementRef { return ElementRef{g: g, id: g.root} }

// ElementRef is a borrowed handle into a Graph — the public navigation
// surface. Its zero value is invalid; IsValid reports whether a reference
// points at a real node.
type ElementRef struct {
	g  *Graph
	id id
}

// IsValid reports whether r refers to an actual node.
func (r ElementRef) IsValid() bool { return r.g != nil && r.id != noID }

func (r ElementRef) node() *Node { return &r.g.nodes[r.id] }

// Kind returns the element's variant tag.
func (r ElementRef) Kind() Kind { return r.node().Kind }

// Parent returns r's parent, or an invalid ElementRef at the root.
func (r ElementRef) Parent() ElementRef { return ElementRef{g: r.g, id: r.node().parent} }

// FirstChild returns r's first child, or an invalid ElementRef if r has no
// children. Lazy by construction: the arena already holds the full tree
// built in one pass, but navigation never re-walks siblings to get here.
func (r ElementRef) FirstChild() ElementRef { return ElementRef{g: r.g, id: r.node().firstChild} }

// NextSibling returns the sibling following r. A repeated table
// row/column/cell reports its virtual copies (repeatIndex 0..repeatTotal-1) before
// advancing to the next real XML sibling, per §4.8's repeat-expansion edge
// case.
func (r ElementRef) NextSibling() ElementRef {
	n := r.node()
	if n.repeatTotal > 0 && n.repeatIndex+1 < n.repeatTotal {
		virtual := *n
		virtual.repeatIndex++
		r.g.nodes = append(r.g.nodes, virtual)
		return ElementRef{g: r.g, id: id(len(r.g.nodes) - 1)}
	}
	return ElementRef{g: r.g, id: n.nextSibling}
}

// PreviousSibling returns the sibling preceding r.
func (r ElementRef) PreviousSibling() ElementRef {
	n := r.node()
	if n.repeatIndex > 0 {
		virtual := *n
		virtual.repeatIndex--
		r.g.nodes = append(r.g.nodes, virtual)
		return ElementRef{g: r.g, id: id(len(r.g.nodes) - 1)}
	}
	return ElementRef{g: r.g, id: n.previousSib}
}

// Name returns the element's draw:name/table:name/bookmark-name identity.
func (r ElementRef) Name() string { return r.node().Name }

// Href returns a Link's or Image's xlink:href.
func (r ElementRef) Href() string { return r.node().Href }

// StyleName returns the raw style-name attribute this element referenced,
// for the caller to resolve through the style registry.
func (r ElementRef) StyleName() string { return r.node().StyleName }

// Dimensions returns a Table's logical (rows, columns), per §4.8.
func (r ElementRef) Dimensions() Dims { return r.node().Dimensions }

// RowSpan/ColSpan/Covered expose a TableCell's span state, per §4.7.
func (r ElementRef) RowSpan() uint32 { return r.node().RowSpan }
func (r ElementRef) ColSpan() uint32 { return r.node().ColSpan }
func (r ElementRef) Covered() bool   { return r.node().Covered }

// Geometry exposes a Frame/Rect/Line/Circle/CustomShape's x/y/width/height,
// per §4.7.
func (r ElementRef) Geometry() (x, y, width, height string) {
	n := r.node()
	return n.X, n.Y, n.Width, n.Height
}

// Text returns a Text element's own content, per §4.7; text held by
// neighbouring Text siblings is not included.
func (r ElementRef) Text() string { return r.node().text }

// SetText overwrites a Text element's content in place, on both the arena
// record and its backing XML node (XMLNode's Text field is what a
// subsequent xmlutil.Serialize call actually emits). Back-translation
// (§6's diff format) uses this to apply a "<cid>": "<new text>" edit.
func (r ElementRef) SetText(s string) {
	n := r.node()
	n.text = s
	if n.XML != nil {
		n.XML.Text = s
	}
}

// XMLNode returns the underlying parsed XML node r was built from, so a
// caller holding a content ID can reach the exact retained tree node whose
// Text field backs this element (nil only for the as-yet-unused synthetic
// case noted on Node).
func (r ElementRef) XMLNode() *xmlutil.Node { return r.node().XML }
