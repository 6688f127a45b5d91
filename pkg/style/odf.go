// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package style

import "github.com/opendocument-go/docmodel/pkg/xmlutil"

// propertyChildren are the style:*-properties / loext:*-properties element
// names whose attributes feed a Style's PropertyBag, ported from
// OpenDocumentStyleTranslator.cpp's StyleClassTranslator::properties set.
var propertyChildren = []string{
	"style:text-properties",
	"style:paragraph-properties",
	"style:graphic-properties",
	"style:table-properties",
	"style:table-column-properties",
	"style:table-row-properties",
	"style:table-cell-properties",
	"style:page-layout-properties",
	"style:section-properties",
	"style:drawing-page-properties",
	"loext:graphic-properties",
}

// BuildODFRegistry walks stylesRoot (styles.xml's document root) and, when
// present, contentAutomaticStyles (content.xml's <office:automatic-styles>),
// registering every <style:style>, <style:default-style>,
// <style:page-layout>, and <style:master-page> found. Automatic styles from
// content.xml are added after styles.xml's, so a name collision (unusual,
// but not forbidden) resolves in favor of the live document content.
func BuildODFRegistry(stylesRoot *xmlutil.Node, contentAutomaticStyles *xmlutil.Node) *Registry {
	r := NewRegistry()

	officeStyles := stylesRoot.FirstChild("office:styles")
	officeAutomatic := stylesRoot.FirstChild("office:automatic-styles")
	officeMaster := stylesRoot.FirstChild("office:master-styles")

	if officeStyles != nil {
		addStylesFrom(r, officeStyles, true)
	}
	if officeAutomatic != nil {
		addStylesFrom(r, officeAutomatic, false)
	}
	if contentAutomaticStyles != nil {
		addStylesFrom(r, contentAutomaticStyles, false)
	}
	if officeMaster != nil {
		for _, mp := range officeMaster.ChildElements("style:master-page") {
			r.AddMasterPage(&MasterPageStyle{
				Name:       mp.AttrOr("style:name", ""),
				PageLayout: mp.AttrOr("style:page-layout-name", ""),
			})
		}
	}
	return r
}

// addStylesFrom registers every style-bearing child of container.
// allowDefaults additionally registers style:default-style as a family
// default bucket (only meaningful inside office:styles).
func addStylesFrom(r *Registry, container *xmlutil.Node, allowDefaults bool) {
	for _, child := range container.Children {
		switch child.QName() {
		case "style:style":
			if s := styleFromNode(child, "style:name"); s != nil {
				r.Add(s)
			}
		case "style:page-layout":
			if s := styleFromNode(child, "style:name"); s != nil {
				s.Family = FamilyPageLayout
				r.Add(s)
			}
		case "style:default-style":
			if !allowDefaults {
				continue
			}
			family := ParseFamily(child.AttrOr("style:family", ""))
			r.SetFamilyDefault(family, propertiesOf(child))
		}
	}
}

func styleFromNode(n *xmlutil.Node, nameAttr string) *Style {
	name, ok := n.Attr(nameAttr)
	if !ok {
		return nil
	}
	return &Style{
		Name:       name,
		Family:     ParseFamily(n.AttrOr("style:family", "")),
		Parent:     n.AttrOr("style:parent-style-name", ""),
		Properties: propertiesOf(n),
	}
}

// propertiesOf flattens every recognized style:*-properties child's
// attributes into one bag.
func propertiesOf(styleNode *xmlutil.Node) PropertyBag {
	bag := PropertyBag{}
	for _, propTag := range propertyChildren {
		props := styleNode.FirstChild(propTag)
		if props == nil {
			continue
		}
		for _, a := range props.Attrs {
			bag[a.Name.Space+":"+a.Name.Local] = a.Value
		}
	}
	return bag
}
