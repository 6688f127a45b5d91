// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package element

import (
	"strconv"
	"strings"

	"github.com/opendocument-go/docmodel/pkg/table"
	"github.com/opendocument-go/docmodel/pkg/xmlutil"
)

// dispatch maps an XML tag to the variant Kind it constructs, per §4.7's
// "central table maps tag → variant constructor."
var dispatch = map[string]Kind{
	"draw:page":              KindSlide,
	"draw:page-thumbnail":    KindPage,
	"table:table":            KindTable,
	"table:table-column":     KindTableColumn,
	"table:table-row":        KindTableRow,
	"table:table-cell":       KindTableCell,
	"table:covered-table-cell": KindTableCell,
	"text:p":                 KindParagraph,
	"text:h":                 KindParagraph,
	"text:span":               KindSpan,
	"text:line-break":         KindLineBreak,
	"text:soft-page-break":    KindPageBreak,
	"text:a":                  KindLink,
	"text:bookmark":           KindBookmark,
	"text:bookmark-start":     KindBookmark,
	"text:bookmark-end":       KindBookmark,
	"text:list":               KindList,
	"text:list-item":          KindListItem,
	"draw:frame":              KindFrame,
	"draw:image":              KindImage,
	"draw:rect":               KindRect,
	"draw:line":               KindLine,
	"draw:circle":              KindCircle,
	"draw:custom-shape":       KindCustomShape,
}

// Limits bounds table dimension estimation while building the graph.
type Limits = table.Limits

// Build constructs a Graph rooted at xmlRoot (a content.xml document
// element — office:document-content's office:body, or the equivalent
// OOXML document element once adapted upstream).
func Build(xmlRoot *xmlutil.Node, limits Limits) *Graph {
	g := &Graph{}
	g.root = g.addNode(Node{Kind: KindRoot, XML: xmlRoot, parent: noID, firstChild: noID, nextSibling: noID, previousSib: noID})
	g.buildChildren(g.root, xmlRoot, limits, false)
	return g
}

func (g *Graph) addNode(n Node) id {
	g.nodes = append(g.nodes, n)
	return id(len(g.nodes) - 1)
}

// buildChildren walks xmlNode's element children in source order,
// dispatching each to its variant, flattening unknown tags (and draw:g)
// into their own children per §4.7's Group rule, and promoting
// text:table-of-content's text:index-body transparently. When mixedContent
// is set, xmlNode's own direct text (xmlNode.TextRuns, one run preceding
// each child plus a trailing run) is interleaved into the same ordered
// link() chain as the element children it surrounds, per §4.7's text
// aggregation — only paragraph/span/link bodies set it; other containers
// (tables, lists, frames, …) only ever carry formatting whitespace between
// their element children, which this intentionally drops. Runs made only of
// XML whitespace (space, tab, CR, LF) are skipped in mixed content too.
func (g *Graph) buildChildren(parent id, xmlNode *xmlutil.Node, limits Limits, mixedContent bool) {
	var prev id = noID
	link := func(childID id) {
		g.nodes[childID].parent = parent
		g.nodes[childID].previousSib = prev
		g.nodes[childID].nextSibling = noID
		if prev == noID {
			g.nodes[parent].firstChild = childID
		} else {
			g.nodes[prev].nextSibling = childID
		}
		prev = childID
	}

	emitText := func(i int) {
		if !mixedContent || i >= len(xmlNode.TextRuns) {
			return
		}
		if s := xmlNode.TextRuns[i]; strings.Trim(s, " \t\r\n") != "" {
			link(g.addNode(Node{Kind: KindText, XML: xmlNode, text: s, parent: noID, firstChild: noID, nextSibling: noID, previousSib: noID}))
		}
	}

	for i, child := range xmlNode.Children {
		emitText(i)
		qname := child.QName()

		switch qname {
		case "text:table-of-content":
			if body := child.FirstChild("text:index-body"); body != nil {
				g.buildChildren(parent, body, limits, mixedContent)
			}
			continue
		case "draw:g":
			g.buildChildren(parent, child, limits, mixedContent)
			continue
		case "text:s", "text:tab":
			childID := g.buildTextRun(child)
			link(childID)
			continue
		case "text:bookmark-end":
			// Ranged bookmark resolves to its start position only (§9
			// supplement: the HTML renderer only needs anchors, not spans).
			continue
		}

		kind, known := dispatch[qname]
		if !known {
			// Unknown element in a known parent: flatten as a transparent
			// Group (§4.7).
			g.buildChildren(parent, child, limits, mixedContent)
			continue
		}

		childID := g.buildElement(kind, child, limits)
		link(childID)

		if recursesInto(kind) {
			childMixed := kind == KindParagraph || kind == KindSpan || kind == KindLink
			g.buildChildren(childID, child, limits, childMixed)
		}
	}
	emitText(len(xmlNode.Children))
}

func (g *Graph) buildTextRun(child *xmlutil.Node) id {
	var s string
	switch child.QName() {
	case "text:s":
		count := 1
		if v, ok := child.Attr("text:c"); ok {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				count = n
			}
		}
		s = spaces(count)
	case "text:tab":
		s = "\t"
	}
	return g.addNode(Node{Kind: KindText, XML: child, text: s, parent: noID, firstChild: noID, nextSibling: noID, previousSib: noID})
}

func spaces(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

// buildElement constructs one variant node's scalar fields (name, href,
// style name, geometry, span state) from its XML attributes. Children are
// linked separately by buildChildren's caller so Table's row/column repeat
// expansion (buildTable) can special-case them.
func (g *Graph) buildElement(kind Kind, xmlNode *xmlutil.Node, limits Limits) id {
	n := Node{Kind: kind, XML: xmlNode, parent: noID, firstChild: noID, nextSibling: noID, previousSib: noID}

	switch kind {
	case KindSlide, KindPage:
		n.Name = xmlNode.AttrOr("draw:name", "")
		n.StyleName = xmlNode.AttrOr("draw:style-name", "")
	case KindTable:
		n.Name = xmlNode.AttrOr("table:name", "")
		n.StyleName = xmlNode.AttrOr("table:style-name", "")
		dims := table.EstimateDimensions(xmlNode, limits)
		n.Dimensions = Dims{Rows: dims.Rows, Columns: dims.Columns}
	case KindTableColumn:
		n.StyleName = xmlNode.AttrOr("table:style-name", "")
		n.repeatTotal = attrInt(xmlNode, "table:number-columns-repeated", 1)
	case KindTableRow:
		n.StyleName = xmlNode.AttrOr("table:style-name", "")
		n.repeatTotal = attrInt(xmlNode, "table:number-rows-repeated", 1)
	case KindTableCell:
		n.ColSpan = uint32(attrInt(xmlNode, "table:number-columns-spanned", 1))
		n.RowSpan = uint32(attrInt(xmlNode, "table:number-rows-spanned", 1))
		n.Covered = xmlNode.QName() == "table:covered-table-cell"
		n.StyleName = xmlNode.AttrOr("table:style-name", "")
		n.repeatTotal = attrInt(xmlNode, "table:number-columns-repeated", 1)
	case KindParagraph, KindSpan:
		n.StyleName = xmlNode.AttrOr("text:style-name", "")
	case KindLink:
		n.Href = xmlNode.AttrOr("xlink:href", "")
		n.StyleName = xmlNode.AttrOr("text:style-name", "")
	case KindBookmark:
		n.Name = xmlNode.AttrOr("text:name", "")
	case KindFrame, KindRect, KindLine, KindCircle, KindCustomShape:
		n.StyleName = xmlNode.AttrOr("draw:style-name", "")
		n.X = xmlNode.AttrOr("svg:x", "")
		n.Y = xmlNode.AttrOr("svg:y", "")
		n.Width = xmlNode.AttrOr("svg:width", "")
		n.Height = xmlNode.AttrOr("svg:height", "")
	case KindImage:
		n.Href = xmlNode.AttrOr("xlink:href", "")
	}

	return g.addNode(n)
}

// recursesInto reports whether kind's XML children should be walked into
// the graph. The leaf variants (Text, LineBreak, PageBreak, Bookmark,
// Image, Rect/Line/Circle/CustomShape, TableColumn) never carry meaningful
// element children in ODF.
func recursesInto(kind Kind) bool {
	switch kind {
	case KindText, KindLineBreak, KindPageBreak, KindBookmark, KindImage,
		KindRect, KindLine, KindCircle, KindCustomShape, KindTableColumn:
		return false
	default:
		return true
	}
}

func attrInt(n *xmlutil.Node, qname string, def int) int {
	v, ok := n.Attr(qname)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		return def
	}
	return i
}
