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

func TestBuildOOXMLRegistryUnitsAndColor(t *testing.T) {
	xmlDoc := `<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:style w:type="paragraph" w:styleId="Heading1">
<w:rPr><w:sz w:val="32"/><w:color w:val="FF0000"/><w:b/></w:rPr>
<w:pPr><w:jc w:val="center"/><w:ind w:left="1440"/></w:pPr>
</w:style>
</w:styles>`
	root, err := xmlutil.Parse(strings.NewReader(xmlDoc))
	require.NoError(t, err)

	r := BuildOOXMLRegistry(root)
	resolved := r.Resolve("Heading1")
	text := resolved.AsTextStyle()
	assert.Equal(t, "16pt", text.FontSize)
	assert.Equal(t, "#FF0000", text.Color)
	assert.Equal(t, "bold", text.FontWeight)

	para := resolved.AsParagraphStyle()
	assert.Equal(t, "center", para.TextAlign)
	assert.Equal(t, "1in", para.MarginLeft)
}
