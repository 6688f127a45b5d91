// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package element

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendocument-go/docmodel/pkg/table"
	"github.com/opendocument-go/docmodel/pkg/xmlutil"
)

const (
	nsOffice = "urn:oasis:names:tc:opendocument:xmlns:office:1.0"
	nsText   = "urn:oasis:names:tc:opendocument:xmlns:text:1.0"
	nsTable  = "urn:oasis:names:tc:opendocument:xmlns:table:1.0"
	nsDraw   = "urn:oasis:names:tc:opendocument:xmlns:drawing:1.0"
	nsSVG    = "http://www.w3.org/2000/svg"
)

func parse(t *testing.T, fragment string) *xmlutil.Node {
	t.Helper()
	n, err := xmlutil.Parse(strings.NewReader(fragment))
	require.NoError(t, err)
	return n
}

func TestBuildParagraphSpanText(t *testing.T) {
	root := parse(t, `<office:body xmlns:text="`+nsText+`" xmlns:office="`+nsOffice+`">
		<text:p text:style-name="P1">
			Hello <text:span text:style-name="S1">world</text:span>
		</text:p>
	</office:body>`)

	g := Build(root, table.DefaultLimits())
	para := g.Root().FirstChild()
	require.True(t, para.IsValid())
	assert.Equal(t, KindParagraph, para.Kind())
	assert.Equal(t, "P1", para.StyleName())

	text := para.FirstChild()
	require.True(t, text.IsValid())
	assert.Equal(t, KindText, text.Kind())
	assert.Contains(t, text.Text(), "Hello")

	span := text.NextSibling()
	require.True(t, span.IsValid())
	assert.Equal(t, KindSpan, span.Kind())
	assert.Equal(t, "S1", span.StyleName())
}

func TestBuildTableRecursesIntoRowsAndCells(t *testing.T) {
	root := parse(t, `<office:body xmlns:table="`+nsTable+`" xmlns:office="`+nsOffice+`">
		<table:table table:name="Sheet1">
			<table:table-column/>
			<table:table-row>
				<table:table-cell table:number-columns-spanned="2"/>
				<table:covered-table-cell/>
			</table:table-row>
		</table:table>
	</office:body>`)

	g := Build(root, table.DefaultLimits())
	tbl := g.Root().FirstChild()
	require.True(t, tbl.IsValid())
	assert.Equal(t, KindTable, tbl.Kind())
	assert.Equal(t, "Sheet1", tbl.Name())
	assert.EqualValues(t, 1, tbl.Dimensions().Rows)
	assert.EqualValues(t, 2, tbl.Dimensions().Columns)

	col := tbl.FirstChild()
	require.True(t, col.IsValid())
	assert.Equal(t, KindTableColumn, col.Kind())

	row := col.NextSibling()
	require.True(t, row.IsValid())
	assert.Equal(t, KindTableRow, row.Kind())

	cell := row.FirstChild()
	require.True(t, cell.IsValid())
	assert.Equal(t, KindTableCell, cell.Kind())
	assert.EqualValues(t, 2, cell.ColSpan())
	assert.False(t, cell.Covered())

	covered := cell.NextSibling()
	require.True(t, covered.IsValid())
	assert.True(t, covered.Covered())
}

func TestBuildTableRowRepeatExpandsVirtualSiblings(t *testing.T) {
	root := parse(t, `<office:body xmlns:table="`+nsTable+`" xmlns:office="`+nsOffice+`">
		<table:table table:name="Sheet1">
			<table:table-row table:number-rows-repeated="3">
				<table:table-cell/>
			</table:table-row>
			<table:table-row>
				<table:table-cell/>
			</table:table-row>
		</table:table>
	</office:body>`)

	g := Build(root, table.DefaultLimits())
	tbl := g.Root().FirstChild()
	row1 := tbl.FirstChild()
	require.True(t, row1.IsValid())

	row2 := row1.NextSibling()
	require.True(t, row2.IsValid())
	assert.Equal(t, KindTableRow, row2.Kind())

	row3 := row2.NextSibling()
	require.True(t, row3.IsValid())

	row4 := row3.NextSibling()
	require.True(t, row4.IsValid())
	assert.Equal(t, KindTableRow, row4.Kind())

	back := row4.PreviousSibling()
	require.True(t, back.IsValid())
	assert.Equal(t, KindTableRow, back.Kind())
}

func TestBuildGroupFlattensUnknownElement(t *testing.T) {
	root := parse(t, `<office:body xmlns:text="`+nsText+`" xmlns:office="`+nsOffice+`" xmlns:weird="urn:example:weird">
		<weird:wrapper>
			<text:p text:style-name="P1"/>
		</weird:wrapper>
	</office:body>`)

	g := Build(root, table.DefaultLimits())
	para := g.Root().FirstChild()
	require.True(t, para.IsValid())
	assert.Equal(t, KindParagraph, para.Kind())
}

func TestBuildDrawGroupFlattens(t *testing.T) {
	root := parse(t, `<office:body xmlns:draw="`+nsDraw+`" xmlns:office="`+nsOffice+`" xmlns:svg="`+nsSVG+`">
		<draw:g>
			<draw:rect svg:x="1cm"/>
		</draw:g>
	</office:body>`)

	g := Build(root, table.DefaultLimits())
	rect := g.Root().FirstChild()
	require.True(t, rect.IsValid())
	assert.Equal(t, KindRect, rect.Kind())
	x, _, _, _ := rect.Geometry()
	assert.Equal(t, "1cm", x)
}

func TestBuildTableOfContentPromotesIndexBody(t *testing.T) {
	root := parse(t, `<office:body xmlns:text="`+nsText+`" xmlns:office="`+nsOffice+`">
		<text:table-of-content>
			<text:index-body>
				<text:p text:style-name="Index1"/>
			</text:index-body>
		</text:table-of-content>
	</office:body>`)

	g := Build(root, table.DefaultLimits())
	para := g.Root().FirstChild()
	require.True(t, para.IsValid())
	assert.Equal(t, KindParagraph, para.Kind())
	assert.Equal(t, "Index1", para.StyleName())
}

func TestBuildBookmarkEndSkipped(t *testing.T) {
	root := parse(t, `<office:body xmlns:text="`+nsText+`" xmlns:office="`+nsOffice+`">
		<text:p>
			<text:bookmark-start text:name="anchor1"/>
			<text:bookmark-end text:name="anchor1"/>
		</text:p>
	</office:body>`)

	g := Build(root, table.DefaultLimits())
	para := g.Root().FirstChild()
	require.True(t, para.IsValid())

	bookmark := para.FirstChild()
	require.True(t, bookmark.IsValid())
	assert.Equal(t, KindBookmark, bookmark.Kind())
	assert.Equal(t, "anchor1", bookmark.Name())

	assert.False(t, bookmark.NextSibling().IsValid())
}

func TestBuildTextRunsExpandSpacesAndTabs(t *testing.T) {
	root := parse(t, `<office:body xmlns:text="`+nsText+`" xmlns:office="`+nsOffice+`">
		<text:p><text:s text:c="3"/><text:tab/></text:p>
	</office:body>`)

	g := Build(root, table.DefaultLimits())
	para := g.Root().FirstChild()
	spacesNode := para.FirstChild()
	require.True(t, spacesNode.IsValid())
	assert.Equal(t, "   ", spacesNode.Text())

	tabNode := spacesNode.NextSibling()
	require.True(t, tabNode.IsValid())
	assert.Equal(t, "\t", tabNode.Text())
}
