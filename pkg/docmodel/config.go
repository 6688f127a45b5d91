// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package docmodel

// GridlineMode selects how spreadsheet gridlines are rendered by the
// external HTML renderer, per §6's table_gridlines option.
type GridlineMode int

const (
	// GridlineNone omits gridlines entirely.
	GridlineNone GridlineMode = iota
	// GridlineSoft renders only gridlines the source document's cell
	// borders don't already draw (the default).
	GridlineSoft
	// GridlineHard renders every cell boundary regardless of the
	// document's own borders.
	GridlineHard
)

// Config is the unified translate()/back_translate() option set, per §6's
// "Configuration options" table — one struct replacing the original's two
// overlapping config types.
type Config struct {
	// EntryOffset is the first page/sheet to emit (0-based).
	EntryOffset int
	// EntryCount is the number of pages/sheets to emit; 0 means all.
	EntryCount int
	// SplitEntries emits one output per entry instead of one combined
	// output.
	SplitEntries bool
	// Editable wraps text nodes with edit markers (content IDs), the
	// prerequisite for BackTranslate.
	Editable bool
	// Paging applies text-document pagination.
	Paging bool
	// TableOffsetRows/TableOffsetCols crop the top-left of spreadsheets.
	TableOffsetRows uint32
	TableOffsetCols uint32
	// TableLimitRows/TableLimitCols cap emitted rows/columns.
	TableLimitRows uint32
	TableLimitCols uint32
	// TableLimitByDimensions uses the dimension estimator instead of a
	// hard cap when deciding how much of a sheet to walk.
	TableLimitByDimensions bool
	// TableGridlines selects gridline rendering.
	TableGridlines GridlineMode
}

// DefaultConfig returns §6's documented defaults.
func DefaultConfig() Config {
	return Config{
		TableLimitRows:         10000,
		TableLimitCols:         500,
		TableLimitByDimensions: true,
		TableGridlines:         GridlineSoft,
	}
}

// ConfigOption mutates a Config being built by NewConfig, following
// excelize's Options/CellOptions functional-option convention.
type ConfigOption func(*Config)

// WithEntryRange sets EntryOffset/EntryCount.
func WithEntryRange(offset, count int) ConfigOption {
	return func(c *Config) { c.EntryOffset = offset; c.EntryCount = count }
}

// WithSplitEntries sets SplitEntries.
func WithSplitEntries(split bool) ConfigOption {
	return func(c *Config) { c.SplitEntries = split }
}

// WithEditable sets Editable.
func WithEditable(editable bool) ConfigOption {
	return func(c *Config) { c.Editable = editable }
}

// WithPaging sets Paging.
func WithPaging(paging bool) ConfigOption {
	return func(c *Config) { c.Paging = paging }
}

// WithTableCrop sets TableOffsetRows/TableOffsetCols.
func WithTableCrop(rows, cols uint32) ConfigOption {
	return func(c *Config) { c.TableOffsetRows = rows; c.TableOffsetCols = cols }
}

// WithTableLimits sets TableLimitRows/TableLimitCols/TableLimitByDimensions.
func WithTableLimits(rows, cols uint32, byDimensions bool) ConfigOption {
	return func(c *Config) {
		c.TableLimitRows = rows
		c.TableLimitCols = cols
		c.TableLimitByDimensions = byDimensions
	}
}

// WithTableGridlines sets TableGridlines.
func WithTableGridlines(mode GridlineMode) ConfigOption {
	return func(c *Config) { c.TableGridlines = mode }
}

// NewConfig builds a Config from DefaultConfig with opts applied in order.
func NewConfig(opts ...ConfigOption) Config {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
