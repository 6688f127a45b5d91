// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package style

// ParagraphStyle is the typed view over a resolved paragraph-family style.
type ParagraphStyle struct {
	TextAlign  string
	MarginTop  string
	MarginLeft string
}

// TextStyle is the typed view over a resolved text-family style.
type TextStyle struct {
	FontFamily string
	FontSize   string
	FontWeight string
	FontStyle  string
	Color      string
	Background string
}

// TableStyle is the typed view over a resolved table-family style.
type TableStyle struct {
	Width string
}

// TableColumnStyle is the typed view over a resolved table-column style.
type TableColumnStyle struct {
	Width string
}

// TableRowStyle is the typed view over a resolved table-row style.
type TableRowStyle struct {
	Height string
}

// TableCellStyle is the typed view over a resolved table-cell style.
type TableCellStyle struct {
	Background  string
	Border      string
	VerticalAlign string
}

// DrawingStyle is the typed view over a resolved graphic-family style.
type DrawingStyle struct {
	X, Y, Width, Height string
}

// AsParagraphStyle projects r's translated properties onto ParagraphStyle.
func (r ResolvedStyle) AsParagraphStyle() ParagraphStyle {
	p := Translate(r.Properties)
	return ParagraphStyle{
		TextAlign:  p["text-align"],
		MarginTop:  p["margin-top"],
		MarginLeft: p["margin-left"],
	}
}

// AsTextStyle projects r's translated properties onto TextStyle.
func (r ResolvedStyle) AsTextStyle() TextStyle {
	p := Translate(r.Properties)
	return TextStyle{
		FontFamily: p["font-family"],
		FontSize:   p["font-size"],
		FontWeight: p["font-weight"],
		FontStyle:  p["font-style"],
		Color:      p["color"],
		Background: p["background-color"],
	}
}

// AsTableStyle projects r's translated properties onto TableStyle.
func (r ResolvedStyle) AsTableStyle() TableStyle {
	p := Translate(r.Properties)
	return TableStyle{Width: p["width"]}
}

// AsTableColumnStyle projects r's translated properties onto TableColumnStyle.
func (r ResolvedStyle) AsTableColumnStyle() TableColumnStyle {
	p := Translate(r.Properties)
	return TableColumnStyle{Width: p["width"]}
}

// AsTableRowStyle projects r's translated properties onto TableRowStyle.
func (r ResolvedStyle) AsTableRowStyle() TableRowStyle {
	p := Translate(r.Properties)
	return TableRowStyle{Height: p["height"]}
}

// AsTableCellStyle projects r's translated properties onto TableCellStyle.
func (r ResolvedStyle) AsTableCellStyle() TableCellStyle {
	p := Translate(r.Properties)
	return TableCellStyle{
		Background:    p["background-color"],
		Border:        p["border"],
		VerticalAlign: p["vertical-align"],
	}
}

// AsDrawingStyle projects r's translated properties onto DrawingStyle.
func (r ResolvedStyle) AsDrawingStyle() DrawingStyle {
	p := Translate(r.Properties)
	return DrawingStyle{X: p["x"], Y: p["y"], Width: p["width"], Height: p["height"]}
}
