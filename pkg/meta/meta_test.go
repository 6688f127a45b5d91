// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package meta

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendocument-go/docmodel/pkg/archive"
	"github.com/opendocument-go/docmodel/pkg/table"
)

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

const emptyManifest = `<manifest:manifest xmlns:manifest="urn:oasis:names:tc:opendocument:xmlns:manifest:1.0">
<manifest:file-entry manifest:full-path="/" manifest:media-type="application/vnd.oasis.opendocument.text"/>
<manifest:file-entry manifest:full-path="content.xml" manifest:media-type="text/xml"/>
</manifest:manifest>`

const emptyContent = `<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0">
<office:body/>
</office:document-content>`

func TestProbeEmptyODT(t *testing.T) {
	raw := buildZip(t, map[string]string{
		"mimetype":                "application/vnd.oasis.opendocument.text",
		"content.xml":             emptyContent,
		"styles.xml":              "<office:document-styles/>",
		"META-INF/manifest.xml":   emptyManifest,
	})
	s, err := archive.Open(raw)
	require.NoError(t, err)
	m, err := Probe(s, table.DefaultLimits())
	require.NoError(t, err)
	assert.Equal(t, TypeOpenDocumentText, m.Type)
	assert.False(t, m.Encrypted)
	assert.Equal(t, 0, m.EntryCount())
}

func TestProbeSpreadsheetEntries(t *testing.T) {
	content := `<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0">
<office:body>
<office:spreadsheet>
<table:table table:name="Sheet1">
<table:table-row table:number-rows-repeated="3">
<table:table-cell table:number-columns-repeated="4" table:number-columns-spanned="2">text</table:table-cell>
</table:table-row>
</table:table>
</office:spreadsheet>
</office:body>
</office:document-content>`
	raw := buildZip(t, map[string]string{
		"mimetype":              "application/vnd.oasis.opendocument.spreadsheet",
		"content.xml":           content,
		"styles.xml":            "<office:document-styles/>",
		"META-INF/manifest.xml": `<manifest:manifest xmlns:manifest="urn:oasis:names:tc:opendocument:xmlns:manifest:1.0"><manifest:file-entry manifest:full-path="/" manifest:media-type="application/vnd.oasis.opendocument.spreadsheet"/></manifest:manifest>`,
	})
	s, err := archive.Open(raw)
	require.NoError(t, err)
	m, err := Probe(s, table.DefaultLimits())
	require.NoError(t, err)
	require.NoError(t, PopulateODFEntries(s, &m, table.DefaultLimits()))
	require.Len(t, m.Entries, 1)
	assert.Equal(t, "Sheet1", m.Entries[0].Name)
	assert.Equal(t, uint32(3), m.Entries[0].Rows)
	assert.Equal(t, uint32(8), m.Entries[0].Columns)
}

func TestProbeRejectsNonODF(t *testing.T) {
	raw := buildZip(t, map[string]string{"readme.txt": "hello"})
	s, err := archive.Open(raw)
	require.NoError(t, err)
	_, err = Probe(s, table.DefaultLimits())
	assert.Error(t, err)
}

func TestProbeOOXMLWorkbook(t *testing.T) {
	workbook := `<workbook><sheets><sheet name="Data" sheetId="1"/></sheets></workbook>`
	raw := buildZip(t, map[string]string{"xl/workbook.xml": workbook})
	s, err := archive.Open(raw)
	require.NoError(t, err)
	m, err := Probe(s, table.DefaultLimits())
	require.NoError(t, err)
	assert.Equal(t, TypeOfficeOpenXmlWorkbook, m.Type)
	require.Len(t, m.Entries, 1)
	assert.Equal(t, "Data", m.Entries[0].Name)
}

func TestFileTypeStringKnownAndUnknown(t *testing.T) {
	assert.Equal(t, "odf-spreadsheet", TypeOpenDocumentSpreadsheet.String())
	assert.Equal(t, "unknown", FileType(999).String())
}
