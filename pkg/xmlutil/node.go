// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package xmlutil is the XML facade layer: it parses an archive entry into
// a generic, retained Node tree that the style registry and element graph
// both walk repeatedly without re-parsing, and offers attribute/child
// iteration helpers tuned to the ODF/OOXML namespaces in use here.
package xmlutil

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/opendocument-go/docmodel/pkg/docerr"
)

// Node is one element of the retained XML tree. Text holds the
// concatenation of this element's direct character-data children, in
// source order relative to siblings but independent of interleaved child
// elements (callers needing interleaved order use Children()). TextRuns
// preserves that interleaving: TextRuns[i] is the character data
// immediately preceding Children[i], and TextRuns[len(Children)] is the
// trailing run after the last child — len(TextRuns) is always
// len(Children)+1, so a caller walking Children by index can interleave
// the matching run before it without losing mixed-content ordering (a
// paragraph's "Hello <span>world</span> there" needs both the leading and
// trailing run, not just their concatenation).
type Node struct {
	Name     xml.Name
	Attrs    []xml.Attr
	Children []*Node
	Text     string
	TextRuns []string
	Parent   *Node

	pendingText string
}

// QName renders Name as "prefix:local" the way ODF/OOXML attribute and
// element names are conventionally written; empty prefix is rendered as
// "local". Name.Space holds a short prefix: encoding/xml resolves prefixes
// to namespace URIs, and parsing maps each known URI back to its literal
// prefix (see literalName).
func (n *Node) QName() string {
	if n.Name.Space == "" {
		return n.Name.Local
	}
	return n.Name.Space + ":" + n.Name.Local
}

// Attr returns the value of the attribute matching qname ("prefix:local"),
// and whether it was present.
func (n *Node) Attr(qname string) (string, bool) {
	for _, a := range n.Attrs {
		if qnameOf(a.Name) == qname {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOr returns the attribute value or def if absent.
func (n *Node) AttrOr(qname, def string) string {
	if v, ok := n.Attr(qname); ok {
		return v
	}
	return def
}

func qnameOf(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// ChildElements returns direct child elements, optionally filtered to the
// given qnames (no filter returns every child element).
func (n *Node) ChildElements(qnames ...string) []*Node {
	if len(qnames) == 0 {
		return n.Children
	}
	want := map[string]bool{}
	for _, q := range qnames {
		want[q] = true
	}
	var out []*Node
	for _, c := range n.Children {
		if want[c.QName()] {
			out = append(out, c)
		}
	}
	return out
}

// FirstChild returns the first direct child element matching qname, or nil.
func (n *Node) FirstChild(qname string) *Node {
	for _, c := range n.Children {
		if c.QName() == qname {
			return c
		}
	}
	return nil
}

// NextSibling returns the sibling element immediately following n, whatever
// its qname, or nil.
func (n *Node) NextSibling() *Node {
	if n.Parent == nil {
		return nil
	}
	sibs := n.Parent.Children
	for i, c := range sibs {
		if c == n {
			if i+1 < len(sibs) {
				return sibs[i+1]
			}
			return nil
		}
	}
	return nil
}

// PreviousSibling returns the sibling immediately preceding n, or nil.
func (n *Node) PreviousSibling() *Node {
	if n.Parent == nil {
		return nil
	}
	sibs := n.Parent.Children
	for i, c := range sibs {
		if c == n {
			if i > 0 {
				return sibs[i-1]
			}
			return nil
		}
	}
	return nil
}

// Parse decodes r into a retained Node tree rooted at the document element.
// Strict decoding is tried first; on any failure it retries once through
// golang.org/x/net/html/charset, to tolerate legacy-codepage
// ODF parts that mislabel or omit their XML declaration's encoding.
func Parse(r io.Reader) (*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	node, err := parseStrict(data)
	if err == nil {
		return node, nil
	}
	converted, cerr := charset.NewReader(bytes.NewReader(data), "")
	if cerr != nil {
		return nil, fmt.Errorf("xmlutil: %w: %v", docerr.ErrNotXML, err)
	}
	recoded, rerr := io.ReadAll(converted)
	if rerr != nil {
		return nil, fmt.Errorf("xmlutil: %w: %v", docerr.ErrNotXML, err)
	}
	node, err = parseStrict(recoded)
	if err != nil {
		return nil, fmt.Errorf("xmlutil: %w: %v", docerr.ErrNotXML, err)
	}
	return node, nil
}

func parseStrict(data []byte) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = true

	var root, cur *Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: literalName(t.Name), Attrs: literalAttrs(t.Attr), Parent: cur}
			if cur != nil {
				cur.TextRuns = append(cur.TextRuns, cur.pendingText)
				cur.pendingText = ""
				cur.Children = append(cur.Children, n)
			} else {
				root = n
			}
			cur = n
		case xml.EndElement:
			if cur != nil {
				cur.TextRuns = append(cur.TextRuns, cur.pendingText)
				cur.pendingText = ""
				cur = cur.Parent
			}
		case xml.CharData:
			if cur != nil {
				cur.Text += string(t)
				cur.pendingText += string(t)
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("xmlutil: empty document: %w", docerr.ErrNotXML)
	}
	return root, nil
}

// namespaceToPrefix maps the canonical ODF/OOXML namespace URIs (§6) back to
// the literal prefix the rest of this module matches on. encoding/xml
// resolves a declared "xmlns:office" into its URI; since every namespace
// this module cares about is enumerated in §6, translating back to the
// literal prefix lets every other layer keep writing "office:body" instead
// of carrying the URI around.
var namespaceToPrefix = map[string]string{
	"urn:oasis:names:tc:opendocument:xmlns:office:1.0":       "office",
	"urn:oasis:names:tc:opendocument:xmlns:text:1.0":         "text",
	"urn:oasis:names:tc:opendocument:xmlns:table:1.0":        "table",
	"urn:oasis:names:tc:opendocument:xmlns:drawing:1.0":      "draw",
	"urn:oasis:names:tc:opendocument:xmlns:style:1.0":        "style",
	"urn:oasis:names:tc:opendocument:xmlns:meta:1.0":         "meta",
	"urn:oasis:names:tc:opendocument:xmlns:manifest:1.0":     "manifest",
	"urn:oasis:names:tc:opendocument:xmlns:presentation:1.0": "presentation",
	"urn:oasis:names:tc:opendocument:xmlns:datastyle:1.0":    "number",
	"http://www.w3.org/1999/xlink":                           "xlink",
	"http://www.w3.org/1999/XSL/Format":                      "fo",
	"http://www.w3.org/2000/svg":                             "svg",
	"urn:org:documentfoundation:names:experimental:office:xmlns:loext:1.0": "loext",
	"http://schemas.openxmlformats.org/wordprocessingml/2006/main":        "w",
	"http://schemas.openxmlformats.org/presentationml/2006/main":          "p",
	"http://schemas.openxmlformats.org/drawingml/2006/main":               "a",
	"http://schemas.openxmlformats.org/officeDocument/2006/relationships": "r",
	"http://schemas.openxmlformats.org/spreadsheetml/2006/main":           "xl",
	"http://schemas.microsoft.com/office/drawing/2010/main":               "xdr",
	"http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing": "wp",
	"http://schemas.openxmlformats.org/drawingml/2006/picture":              "pic",
}

// literalName resolves n's namespace URI (set by encoding/xml when a
// matching xmlns declaration is in scope) back to the literal prefix used
// everywhere else in this module. An undeclared or unrecognized namespace
// falls back to whatever Go's decoder already produced, so elements outside
// the enumerated namespace set still round-trip as Group children instead
// of being dropped.
func literalName(n xml.Name) xml.Name {
	if prefix, ok := namespaceToPrefix[n.Space]; ok {
		return xml.Name{Space: prefix, Local: n.Local}
	}
	if i := strings.IndexByte(n.Local, ':'); i >= 0 {
		return xml.Name{Space: n.Local[:i], Local: n.Local[i+1:]}
	}
	return xml.Name{Space: n.Space, Local: n.Local}
}

func literalAttrs(attrs []xml.Attr) []xml.Attr {
	out := make([]xml.Attr, 0, len(attrs))
	for _, a := range attrs {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		out = append(out, xml.Attr{Name: literalName(a.Name), Value: a.Value})
	}
	return out
}
