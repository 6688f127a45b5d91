// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package docmodel

import (
	"fmt"
	"image"
	_ "image/gif"  // register gif.DecodeConfig
	_ "image/jpeg" // register jpeg.DecodeConfig
	_ "image/png"  // register png.DecodeConfig

	_ "golang.org/x/image/bmp"  // register bmp.DecodeConfig
	_ "golang.org/x/image/webp" // register webp.DecodeConfig

	"github.com/opendocument-go/docmodel/pkg/element"
	"github.com/opendocument-go/docmodel/pkg/vpath"
)

// ImageDimensions probes an embedded raster image's pixel width/height by
// decoding just its header (image.DecodeConfig never reads the full pixel
// data), for a Frame whose Image child's source document omitted
// svg:width/svg:height on the enclosing frame (§4.7's Geometry leaves those
// blank in that case). A Renderer falls back to this when Geometry's width
// or height is empty.
func (d *Document) ImageDimensions(img element.ElementRef) (width, height int, err error) {
	if img.Kind() != element.KindImage {
		return 0, 0, fmt.Errorf("docmodel: element is not an Image")
	}
	href := img.Href()
	if href == "" {
		return 0, 0, fmt.Errorf("docmodel: image element has no xlink:href")
	}

	src, err := d.storage.Read(vpath.New(href))
	if err != nil {
		return 0, 0, fmt.Errorf("docmodel: reading %s: %w", href, err)
	}
	data, err := readAllSource(src)
	if err != nil {
		return 0, 0, fmt.Errorf("docmodel: reading %s: %w", href, err)
	}

	cfg, _, err := image.DecodeConfig(bytesReaderOf(data))
	if err != nil {
		return 0, 0, fmt.Errorf("docmodel: decoding %s: %w", href, err)
	}
	return cfg.Width, cfg.Height, nil
}
