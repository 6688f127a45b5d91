// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package xmlutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleContent = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"
                          xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0">
  <office:body>
    <office:text>
      <text:p text:style-name="Standard">Hello <text:span>World</text:span></text:p>
    </office:text>
  </office:body>
</office:document-content>`

func TestParseAndQName(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleContent))
	require.NoError(t, err)
	assert.Equal(t, "office:document-content", root.QName())

	body := root.FirstChild("office:body")
	require.NotNil(t, body)
	text := body.FirstChild("office:text")
	require.NotNil(t, text)
	p := text.FirstChild("text:p")
	require.NotNil(t, p)

	styleName, ok := p.Attr("text:style-name")
	assert.True(t, ok)
	assert.Equal(t, "Standard", styleName)
}

func TestSiblingNavigation(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleContent))
	require.NoError(t, err)
	p := root.FirstChild("office:body").FirstChild("office:text").FirstChild("text:p")
	span := p.FirstChild("text:span")
	require.NotNil(t, span)
	assert.Nil(t, span.NextSibling())
	assert.Nil(t, span.PreviousSibling())
}

func TestParseRejectsMalformed(t *testing.T) {
	_, err := Parse(strings.NewReader("<office:a><office:b></office:a>"))
	assert.Error(t, err)
}
