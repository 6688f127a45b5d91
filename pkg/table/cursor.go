// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package table implements the table model: a cursor that expands repeated
// rows/columns and rowspan/colspan into a logical coordinate space, ported
// field-for-field from the original's TableCursor (the disambiguated
// algorithm per the source's own TableCursor vs. TableLocation note).
package table

// columnRange is a covered-column interval [Start, End) recorded against a
// future row by an earlier cell's rowspan.
type columnRange struct {
	Start, End uint32
}

// Cursor tracks the current logical (row, col) position while walking a
// table's rows and cells in document order, accounting for
// number-rows-repeated / number-columns-repeated / rowspan / colspan.
type Cursor struct {
	row, col uint32
	// sparse holds, for each row offset ahead of the current row (index 0
	// is the current row), the column ranges already covered by a
	// still-open rowspan from an earlier row.
	sparse [][]columnRange
}

// NewCursor returns a Cursor positioned at (0, 0).
func NewCursor() *Cursor {
	return &Cursor{sparse: [][]columnRange{nil}}
}

// Row returns the current logical row index.
func (c *Cursor) Row() uint32 { return c.row }

// Col returns the current logical column index.
func (c *Cursor) Col() uint32 { return c.col }

// AddRow advances to the next row, resetting the column to 0. repeat == 1 is
// the common case (pop the front span-frame); repeat > 1 clears all frames,
// since a repeated row cannot itself be the target of an in-progress
// rowspan from a prior row (a rowspan spanning into a repeated block would
// make the repeat non-trivial, which ODF does not produce).
func (c *Cursor) AddRow(repeat uint32) {
	if repeat == 0 {
		repeat = 1
	}
	c.row += repeat
	c.col = 0
	switch {
	case repeat > 1:
		c.sparse = c.sparse[:0]
	case len(c.sparse) > 0:
		c.sparse = c.sparse[1:]
	}
	if len(c.sparse) == 0 {
		c.sparse = append(c.sparse, nil)
	}
	c.advanceOverCovered()
}

// AddCell records a cell of the given colspan/rowspan, repeated repeat
// times, and advances the column cursor past it.
func (c *Cursor) AddCell(colspan, rowspan, repeat uint32) {
	if colspan == 0 {
		colspan = 1
	}
	if repeat == 0 {
		repeat = 1
	}
	if rowspan == 0 {
		rowspan = 1
	}
	newCol := c.col + colspan*repeat
	for i := uint32(1); i < rowspan; i++ {
		for uint32(len(c.sparse)) <= i {
			c.sparse = append(c.sparse, nil)
		}
		c.sparse[i] = append(c.sparse[i], columnRange{Start: c.col, End: newCol})
	}
	c.col = newCol
	c.advanceOverCovered()
}

// AddColumn advances the column cursor by repeat, used during column
// declaration walks (table:table-column elements), which never carry a
// rowspan.
func (c *Cursor) AddColumn(repeat uint32) {
	if repeat == 0 {
		repeat = 1
	}
	c.col += repeat
}

// advanceOverCovered skips the column cursor forward while it sits at the
// start of a covered range recorded against the current row.
func (c *Cursor) advanceOverCovered() {
	if len(c.sparse) == 0 {
		return
	}
	ranges := c.sparse[0]
	i := 0
	for i < len(ranges) && c.col == ranges[i].Start {
		c.col = ranges[i].End
		i++
	}
	c.sparse[0] = ranges[i:]
}
