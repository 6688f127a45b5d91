// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendocument-go/docmodel/pkg/xmlutil"
)

func TestResolveHeadingChainScenario(t *testing.T) {
	// Scenario #5: Heading1 parents Default; Default sets font-size=10pt,
	// Heading1 sets font-weight=bold. Resolution yields both.
	xmlDoc := `<office:document-styles xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:style="urn:oasis:names:tc:opendocument:xmlns:style:1.0" xmlns:fo="http://www.w3.org/1999/XSL/Format">
<office:styles>
<style:style style:name="Default" style:family="paragraph">
<style:text-properties fo:font-size="10pt"/>
</style:style>
<style:style style:name="Heading1" style:family="paragraph" style:parent-style-name="Default">
<style:text-properties fo:font-weight="bold"/>
</style:style>
</office:styles>
</office:document-styles>`
	root, err := xmlutil.Parse(strings.NewReader(xmlDoc))
	require.NoError(t, err)

	r := BuildODFRegistry(root, nil)
	resolved := r.Resolve("Heading1")
	view := resolved.AsTextStyle()
	assert.Equal(t, "10pt", view.FontSize)
	assert.Equal(t, "bold", view.FontWeight)
}

func TestResolveIsIdempotent(t *testing.T) {
	r := NewRegistry()
	r.Add(&Style{Name: "A", Family: FamilyText, Properties: PropertyBag{"fo:color": "#ff0000"}})
	first := r.Resolve("A")
	r.Add(&Style{Name: first.Name, Family: first.Family, Properties: first.Properties})
	second := r.Resolve(first.Name)
	assert.Equal(t, first.Properties, second.Properties)
}

func TestResolveBreaksCycles(t *testing.T) {
	r := NewRegistry()
	r.Add(&Style{Name: "A", Parent: "B", Family: FamilyText, Properties: PropertyBag{"fo:color": "#111111"}})
	r.Add(&Style{Name: "B", Parent: "A", Family: FamilyText, Properties: PropertyBag{"fo:font-weight": "bold"}})
	resolved := r.Resolve("A")
	assert.NotPanics(t, func() { _ = resolved })
}

func TestTranslateDropsUnmappedAttributes(t *testing.T) {
	out := Translate(PropertyBag{"fo:font-family": "Arial", "fo:color": "#000000"})
	_, hasFontFamily := out["font-family"]
	assert.False(t, hasFontFamily)
	assert.Equal(t, "#000000", out["color"])
}
