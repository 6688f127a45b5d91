// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package style implements the style registry and resolution engine (§4.6):
// a tree of named styles with optional parents, resolved into a flattened
// property bag by following the parent chain and overlaying family
// defaults, then exposed through typed property views.
package style

// Family categorizes a Style, gating which properties are meaningful and
// which family-default bucket it overlays against.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyParagraph
	FamilyText
	FamilyTable
	FamilyTableColumn
	FamilyTableRow
	FamilyTableCell
	FamilyGraphic
	FamilySection
	FamilyPageLayout
	FamilyDrawingPage
)

var familyNames = map[string]Family{
	"paragraph":      FamilyParagraph,
	"text":           FamilyText,
	"table":          FamilyTable,
	"table-column":   FamilyTableColumn,
	"table-row":      FamilyTableRow,
	"table-cell":     FamilyTableCell,
	"graphic":        FamilyGraphic,
	"section":        FamilySection,
	"page-layout":    FamilyPageLayout,
	"drawing-page":   FamilyDrawingPage,
}

// ParseFamily maps an ODF style:family value (or this module's own
// synthetic family tag for page-layout/master-page entries) to a Family.
func ParseFamily(s string) Family {
	if f, ok := familyNames[s]; ok {
		return f
	}
	return FamilyUnknown
}

// PropertyBag is a raw attribute name → value map, exactly as read off one
// style:*-properties element (or, for OOXML, one <w:rPr>/<w:pPr>).
type PropertyBag map[string]string

// clone returns an independent copy of bag so overlaying never aliases a
// registry-owned map.
func (bag PropertyBag) clone() PropertyBag {
	out := make(PropertyBag, len(bag))
	for k, v := range bag {
		out[k] = v
	}
	return out
}

// overlay returns a new bag with child's entries overriding base's
// (base ← child, LIFO: the most specific style wins).
func overlay(base, child PropertyBag) PropertyBag {
	out := base.clone()
	for k, v := range child {
		out[k] = v
	}
	return out
}

// Style is one named entry in the registry: a family, an optional parent
// name, and the raw property bag read directly off its style:*-properties
// child element.
type Style struct {
	Name       string
	Family     Family
	Parent     string // empty means no explicit parent
	Properties PropertyBag
}

// MasterPageStyle binds a master page name to the page-layout style it
// references, per spec.md §3.
type MasterPageStyle struct {
	Name       string
	PageLayout string
}

// Registry is the root style store: every named Style plus one
// family-default bucket per family, plus master page styles.
type Registry struct {
	Styles       map[string]*Style
	FamilyDefaults map[Family]PropertyBag
	MasterPages  map[string]*MasterPageStyle
}

// NewRegistry returns an empty, ready-to-populate Registry.
func NewRegistry() *Registry {
	return &Registry{
		Styles:         make(map[string]*Style),
		FamilyDefaults: make(map[Family]PropertyBag),
		MasterPages:    make(map[string]*MasterPageStyle),
	}
}

// Add registers s, overwriting any previous style of the same name (later
// definitions — e.g. automatic-styles read after styles.xml — win, matching
// the original's single flat style map keyed by name).
func (r *Registry) Add(s *Style) {
	r.Styles[s.Name] = s
}

// SetFamilyDefault registers the family-wide default property bag (ODF's
// style:default-style, or this module's OOXML docDefaults translation).
func (r *Registry) SetFamilyDefault(f Family, bag PropertyBag) {
	r.FamilyDefaults[f] = bag
}

// AddMasterPage registers a master page → page-layout binding.
func (r *Registry) AddMasterPage(m *MasterPageStyle) {
	r.MasterPages[m.Name] = m
}

// ResolvedStyle is the flattened output of following a style's parent chain
// to a fixed point, independent of the registry's own backing maps (a
// caller is free to mutate it).
type ResolvedStyle struct {
	Name       string
	Family     Family
	Properties PropertyBag
}
