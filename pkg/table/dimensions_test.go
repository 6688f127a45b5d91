// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendocument-go/docmodel/pkg/xmlutil"
)

func parseTable(t *testing.T, xmlFragment string) *xmlutil.Node {
	t.Helper()
	n, err := xmlutil.Parse(strings.NewReader(xmlFragment))
	require.NoError(t, err)
	return n
}

func TestEstimateDimensionsRepeatedRowAndSpannedRepeatedCell(t *testing.T) {
	root := parseTable(t, `<table:table xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0">
<table:table-row table:number-rows-repeated="3">
<table:table-cell table:number-columns-repeated="4" table:number-columns-spanned="2">text</table:table-cell>
</table:table-row>
</table:table>`)
	dims := EstimateDimensions(root, DefaultLimits())
	assert.Equal(t, uint32(3), dims.Rows)
	assert.Equal(t, uint32(8), dims.Columns)
	assert.False(t, dims.Truncated)
}

func TestEstimateDimensionsTruncatesAtLimit(t *testing.T) {
	root := parseTable(t, `<table:table xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0">
<table:table-row table:number-rows-repeated="100000">
<table:table-cell>text</table:table-cell>
</table:table-row>
</table:table>`)
	dims := EstimateDimensions(root, Limits{LimitRows: 10, LimitColumns: 500})
	assert.Equal(t, uint32(10), dims.Rows)
	assert.True(t, dims.Truncated)
}

func TestEstimateDimensionsRowspanCell(t *testing.T) {
	root := parseTable(t, `<table:table xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0">
<table:table-row>
<table:table-cell table:number-rows-spanned="2">A</table:table-cell>
<table:table-cell>B</table:table-cell>
</table:table-row>
<table:table-row>
<table:table-cell>C</table:table-cell>
</table:table-row>
</table:table>`)
	dims := EstimateDimensions(root, DefaultLimits())
	assert.Equal(t, uint32(2), dims.Rows)
	assert.Equal(t, uint32(2), dims.Columns)
}
