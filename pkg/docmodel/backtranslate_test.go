// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package docmodel

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDiffDecodesModifiedText(t *testing.T) {
	d, err := ParseDiff([]byte(`{"modifiedText":{"t0":"new text"}}`))
	require.NoError(t, err)
	assert.Equal(t, "new text", d.ModifiedText["t0"])
}

func TestParseDiffRejectsMalformedJSON(t *testing.T) {
	_, err := ParseDiff([]byte(`not json`))
	assert.Error(t, err)
}

func TestBackTranslateRewritesContentXML(t *testing.T) {
	path := buildODT(t, sampleContent)
	d := New(WithRenderer(&stubRenderer{}))
	require.True(t, d.Open(path))
	require.True(t, d.Translate(filepath.Join(t.TempDir(), "out.html"), NewConfig(WithEditable(true))))

	ids := d.ContentIDs()
	require.Len(t, ids, 1)
	id := ids[0]

	out := filepath.Join(t.TempDir(), "edited.odt")
	diff := Diff{ModifiedText: map[string]string{id: "goodbye world"}}
	require.True(t, d.BackTranslate(diff, out))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)

	var contentXML []byte
	for _, f := range zr.File {
		if f.Name == "content.xml" {
			rc, err := f.Open()
			require.NoError(t, err)
			contentXML, err = io.ReadAll(rc)
			require.NoError(t, err)
		}
	}
	require.NotNil(t, contentXML)
	assert.Contains(t, string(contentXML), "goodbye world")
	assert.NotContains(t, string(contentXML), "hello world")
}

func TestBackTranslateDropsOmittedContentID(t *testing.T) {
	path := buildODT(t, sampleContent)
	d := New(WithRenderer(&stubRenderer{}))
	require.True(t, d.Open(path))
	require.True(t, d.Translate(filepath.Join(t.TempDir(), "out.html"), NewConfig(WithEditable(true))))

	out := filepath.Join(t.TempDir(), "edited.odt")
	require.True(t, d.BackTranslate(Diff{ModifiedText: map[string]string{}}, out))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name == "content.xml" {
			rc, err := f.Open()
			require.NoError(t, err)
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.NotContains(t, string(data), "hello world")
		}
	}
}
