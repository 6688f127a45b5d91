// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursorSimpleGrid(t *testing.T) {
	c := NewCursor()
	c.AddCell(1, 1, 1)
	assert.Equal(t, uint32(0), c.Row())
	assert.Equal(t, uint32(1), c.Col())
	c.AddCell(1, 1, 1)
	assert.Equal(t, uint32(2), c.Col())
	c.AddRow(1)
	assert.Equal(t, uint32(1), c.Row())
	assert.Equal(t, uint32(0), c.Col())
}

func TestCursorRowspanSkipsCoveredColumn(t *testing.T) {
	// Row 0: cell A (rowspan=2, colspan=1), cell B (colspan=1).
	c := NewCursor()
	c.AddCell(1, 2, 1) // A
	assert.Equal(t, uint32(1), c.Col())
	c.AddCell(1, 1, 1) // B
	assert.Equal(t, uint32(2), c.Col())
	c.AddRow(1)
	// Column 0 is covered by A's rowspan; first reachable cell in row 1 is
	// column 1.
	assert.Equal(t, uint32(1), c.Col())
}

func TestCursorRepeatedRowAndColumns(t *testing.T) {
	// One row repeated 3x containing one cell repeated 4x with colspan 2:
	// dimensions = (rows=3, columns=8).
	c := NewCursor()
	c.AddCell(2, 1, 4)
	assert.Equal(t, uint32(8), c.Col())
	c.AddRow(3)
	assert.Equal(t, uint32(3), c.Row())
	assert.Equal(t, uint32(0), c.Col())
}

func TestCursorNeverLandsInsideCoveredRegion(t *testing.T) {
	c := NewCursor()
	c.AddCell(3, 3, 1) // spans 3 rows x 3 cols
	c.AddRow(1)
	// row 1, col must be 0 (not covered by the 3-wide span starting at 0)
	// only if 0 is NOT covered -- it is, so cursor must skip past it.
	assert.Equal(t, uint32(3), c.Col())
	c.AddRow(1)
	assert.Equal(t, uint32(3), c.Col())
	c.AddRow(1)
	assert.Equal(t, uint32(0), c.Col())
}
