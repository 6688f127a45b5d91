// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package table

import (
	"strconv"

	"github.com/opendocument-go/docmodel/pkg/xmlutil"
)

// Dimensions is the logical (rows, columns) extent of a table, expanded from
// repeats and spans rather than counted from raw XML children.
type Dimensions struct {
	Rows    uint32
	Columns uint32
	// Truncated reports whether estimation stopped early because LimitRows or
	// LimitColumns was reached, so callers can surface a partial-dimensions
	// warning instead of silently under-reporting.
	Truncated bool
}

// Limits caps pathologically large tables (a single spreadsheet row repeated
// a million times must not allocate a million logical rows).
type Limits struct {
	LimitRows    uint32
	LimitColumns uint32
}

// DefaultLimits matches the documented table_limit_rows / table_limit_cols
// defaults.
func DefaultLimits() Limits {
	return Limits{LimitRows: 10000, LimitColumns: 500}
}

// EstimateDimensions walks a <table:table> node's descendants with a Cursor,
// expanding table:number-rows-repeated / table:number-columns-repeated /
// table:number-columns-spanned / table:number-rows-spanned, and returns the
// logical dimensions capped at limits.
func EstimateDimensions(tableNode *xmlutil.Node, limits Limits) Dimensions {
	c := NewCursor()
	var dims Dimensions

	var walk func(n *xmlutil.Node)
	walk = func(n *xmlutil.Node) {
		for _, child := range n.Children {
			switch child.QName() {
			case "table:table-row":
				repeat := attrUint32(child, "table:number-rows-repeated", 1)
				c.AddRow(repeat)
				walkRow(child, c, &dims, limits)
			case "table:table-column":
				repeat := attrUint32(child, "table:number-columns-repeated", 1)
				c.AddColumn(repeat)
			case "table:table-header-rows", "table:table-rows", "table:table-columns",
				"table:table-column-group", "table:table-header-columns":
				walk(child)
			}
			if dims.Truncated {
				return
			}
			updateMax(&dims, c, limits)
		}
	}
	walk(tableNode)
	return dims
}

func walkRow(row *xmlutil.Node, c *Cursor, dims *Dimensions, limits Limits) {
	for _, cell := range row.Children {
		switch cell.QName() {
		case "table:table-cell":
			colspan := attrUint32(cell, "table:number-columns-spanned", 1)
			rowspan := attrUint32(cell, "table:number-rows-spanned", 1)
			repeat := attrUint32(cell, "table:number-columns-repeated", 1)
			c.AddCell(colspan, rowspan, repeat)
			updateMax(dims, c, limits)
		}
		if dims.Truncated {
			return
		}
	}
}

func updateMax(dims *Dimensions, c *Cursor, limits Limits) {
	if c.Row() > dims.Rows {
		dims.Rows = c.Row()
	}
	if c.Col() > dims.Columns {
		dims.Columns = c.Col()
	}
	if limits.LimitRows > 0 && dims.Rows > limits.LimitRows {
		dims.Rows = limits.LimitRows
		dims.Truncated = true
	}
	if limits.LimitColumns > 0 && dims.Columns > limits.LimitColumns {
		dims.Columns = limits.LimitColumns
		dims.Truncated = true
	}
}

func attrUint32(n *xmlutil.Node, qname string, def uint32) uint32 {
	v, ok := n.Attr(qname)
	if !ok {
		return def
	}
	i, err := strconv.ParseUint(v, 10, 32)
	if err != nil || i == 0 {
		return def
	}
	return uint32(i)
}
