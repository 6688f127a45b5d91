// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package xmlutil

import (
	"bytes"
	"encoding/xml"
	"sort"
)

// prefixToNamespace is namespaceToPrefix inverted, built once at package
// init: Serialize needs to re-declare a literal prefix's xmlns attribute on
// the document root, since Parse discards the original declarations (see
// literalAttrs) once every prefix has been resolved to its literal form.
var prefixToNamespace = invertNamespaceTable()

func invertNamespaceTable() map[string]string {
	out := make(map[string]string, len(namespaceToPrefix))
	for uri, prefix := range namespaceToPrefix {
		out[prefix] = uri
	}
	return out
}

// Serialize renders n and its subtree back to a well-formed XML document,
// redeclaring every namespace prefix used anywhere in the subtree as an
// xmlns attribute on the root element. A back-translation round trip
// (Parse, mutate Node.Text in place, Serialize) therefore produces a
// document any ODF/OOXML consumer can reopen, even though the retained
// tree never kept the original raw xmlns declarations.
func Serialize(n *Node) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	prefixes := map[string]bool{}
	collectPrefixes(n, prefixes)
	if err := writeNode(&buf, n, prefixes); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func collectPrefixes(n *Node, seen map[string]bool) {
	if n.Name.Space != "" {
		seen[n.Name.Space] = true
	}
	for _, a := range n.Attrs {
		if a.Name.Space != "" && a.Name.Space != "xmlns" {
			seen[a.Name.Space] = true
		}
	}
	for _, c := range n.Children {
		collectPrefixes(c, seen)
	}
}

// writeNode writes n as a start tag, its text/children, and its end tag.
// rootDecls is non-nil only for the outermost call, where the collected
// namespace declarations are emitted; nested calls pass nil so
// declarations appear exactly once, on the document element.
func writeNode(buf *bytes.Buffer, n *Node, rootDecls map[string]bool) error {
	buf.WriteByte('<')
	buf.WriteString(n.QName())

	if rootDecls != nil {
		prefixes := make([]string, 0, len(rootDecls))
		for p := range rootDecls {
			prefixes = append(prefixes, p)
		}
		sort.Strings(prefixes)
		for _, p := range prefixes {
			uri, ok := prefixToNamespace[p]
			if !ok {
				continue
			}
			buf.WriteString(` xmlns:`)
			buf.WriteString(p)
			buf.WriteString(`="`)
			if err := xml.EscapeText(buf, []byte(uri)); err != nil {
				return err
			}
			buf.WriteByte('"')
		}
	}

	for _, a := range n.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(qnameOf(a.Name))
		buf.WriteString(`="`)
		if err := xml.EscapeText(buf, []byte(a.Value)); err != nil {
			return err
		}
		buf.WriteByte('"')
	}

	if len(n.Children) == 0 && n.Text == "" {
		buf.WriteString("/>")
		return nil
	}

	buf.WriteByte('>')
	if n.Text != "" {
		if err := xml.EscapeText(buf, []byte(n.Text)); err != nil {
			return err
		}
	}
	for _, c := range n.Children {
		if err := writeNode(buf, c, nil); err != nil {
			return err
		}
	}
	buf.WriteString("</")
	buf.WriteString(n.QName())
	buf.WriteByte('>')
	return nil
}
