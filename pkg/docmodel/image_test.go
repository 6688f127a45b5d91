// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package docmodel

import (
	"archive/zip"
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendocument-go/docmodel/pkg/element"
)

const frameContent = `<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0" xmlns:draw="urn:oasis:names:tc:opendocument:xmlns:drawing:1.0" xmlns:xlink="http://www.w3.org/1999/xlink">
<office:automatic-styles/>
<office:body>
<office:text>
<draw:frame>
<draw:image xlink:href="Pictures/logo.png"/>
</draw:frame>
</office:text>
</office:body>
</office:document-content>`

func buildODTWithImage(t *testing.T) string {
	t.Helper()
	var pngBuf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	require.NoError(t, png.Encode(&pngBuf, img))

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	files := map[string][]byte{
		"mimetype":              []byte("application/vnd.oasis.opendocument.text"),
		"content.xml":           []byte(frameContent),
		"styles.xml":            []byte("<office:document-styles/>"),
		"META-INF/manifest.xml": []byte(`<manifest:manifest xmlns:manifest="urn:oasis:names:tc:opendocument:xmlns:manifest:1.0"/>`),
		"Pictures/logo.png":     pngBuf.Bytes(),
	}
	for name, data := range files {
		fw, err := w.Create(name)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	dir := t.TempDir()
	path := filepath.Join(dir, "doc.odt")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestImageDimensionsDecodesEmbeddedPNG(t *testing.T) {
	path := buildODTWithImage(t)
	renderer := &stubRenderer{}
	d := New(WithRenderer(renderer))
	require.True(t, d.Open(path))
	require.True(t, d.Translate(filepath.Join(t.TempDir(), "out.html"), DefaultConfig()))

	var imgRef element.ElementRef
	var found bool
	element.Walk(d.Graph().Root(), func(ref element.ElementRef) bool {
		if ref.Kind() == element.KindImage {
			imgRef = ref
			found = true
		}
		return true
	})
	require.True(t, found)

	w, h, err := d.ImageDimensions(imgRef)
	require.NoError(t, err)
	assert.Equal(t, 40, w)
	assert.Equal(t, 20, h)
}

func TestImageDimensionsRejectsNonImageElement(t *testing.T) {
	path := buildODTWithImage(t)
	renderer := &stubRenderer{}
	d := New(WithRenderer(renderer))
	require.True(t, d.Open(path))
	require.True(t, d.Translate(filepath.Join(t.TempDir(), "out.html"), DefaultConfig()))

	_, _, err := d.ImageDimensions(d.Graph().Root())
	assert.Error(t, err)
}
