// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package style

import "github.com/opendocument-go/docmodel/pkg/xmlutil"

// ooxmlRunProperties maps a subset of <w:rPr>/<w:pPr> child element
// names to the semantic property name, with the unit/encoding adjustments
// spec.md §4.6 calls out explicitly: w:sz is half-points, w:ind is 1440ths
// of an inch, colors are hex without "#".
func ooxmlRunProperties(rPr *xmlutil.Node) PropertyBag {
	bag := PropertyBag{}
	if rPr == nil {
		return bag
	}
	if sz := rPr.FirstChild("w:sz"); sz != nil {
		if v, ok := sz.Attr("w:val"); ok {
			bag["font-size"] = halfPointsToPoints(v)
		}
	}
	if b := rPr.FirstChild("w:b"); b != nil {
		bag["font-weight"] = "bold"
	}
	if i := rPr.FirstChild("w:i"); i != nil {
		bag["font-style"] = "italic"
	}
	if color := rPr.FirstChild("w:color"); color != nil {
		if v, ok := color.Attr("w:val"); ok && v != "auto" {
			bag["color"] = "#" + v
		}
	}
	if fonts := rPr.FirstChild("w:rFonts"); fonts != nil {
		if v, ok := fonts.Attr("w:ascii"); ok {
			bag["font-family"] = v
		}
	}
	return bag
}

// ooxmlParagraphProperties maps <w:pPr> children to semantic properties.
func ooxmlParagraphProperties(pPr *xmlutil.Node) PropertyBag {
	bag := PropertyBag{}
	if pPr == nil {
		return bag
	}
	if jc := pPr.FirstChild("w:jc"); jc != nil {
		if v, ok := jc.Attr("w:val"); ok {
			bag["text-align"] = v
		}
	}
	if ind := pPr.FirstChild("w:ind"); ind != nil {
		if v, ok := ind.Attr("w:left"); ok {
			bag["margin-left"] = twipsToInches(v)
		}
	}
	return bag
}

// BuildOOXMLRegistry walks a word/styles.xml (or equivalent) root's
// <w:styles> children, registering one Style per <w:style w:styleId="...">
// keyed by styleId (spec.md §4.6: "style IDs are the registry keys"), plus
// docDefaults as the paragraph/text family defaults (supplemental — the
// OOXML analogue of ODF's style:default-style bucket, since OOXML style
// resolution needs an equivalent base layer per SPEC_FULL.md L6).
func BuildOOXMLRegistry(stylesRoot *xmlutil.Node) *Registry {
	r := NewRegistry()

	if docDefaults := stylesRoot.FirstChild("w:docDefaults"); docDefaults != nil {
		if rprDefault := docDefaults.FirstChild("w:rPrDefault"); rprDefault != nil {
			r.SetFamilyDefault(FamilyText, ooxmlRunProperties(rprDefault.FirstChild("w:rPr")))
		}
		if pprDefault := docDefaults.FirstChild("w:pPrDefault"); pprDefault != nil {
			r.SetFamilyDefault(FamilyParagraph, ooxmlParagraphProperties(pprDefault.FirstChild("w:pPr")))
		}
	}

	for _, sNode := range stylesRoot.ChildElements("w:style") {
		id, ok := sNode.Attr("w:styleId")
		if !ok {
			continue
		}
		family := FamilyParagraph
		if t, ok := sNode.Attr("w:type"); ok && t == "character" {
			family = FamilyText
		}
		bag := PropertyBag{}
		for k, v := range ooxmlRunProperties(sNode.FirstChild("w:rPr")) {
			bag[k] = v
		}
		for k, v := range ooxmlParagraphProperties(sNode.FirstChild("w:pPr")) {
			bag[k] = v
		}
		r.Add(&Style{
			Name:       id,
			Family:     family,
			Parent:     basedOnID(sNode),
			Properties: bag,
		})
	}
	return r
}

// basedOnID returns sNode's <w:basedOn w:val="..."/> target, or "" if
// absent — OOXML's basedOn relation is frequently unset.
func basedOnID(sNode *xmlutil.Node) string {
	basedOn := sNode.FirstChild("w:basedOn")
	if basedOn == nil {
		return ""
	}
	return basedOn.AttrOr("w:val", "")
}
