// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package meta

import (
	"bytes"
	"io"

	"github.com/opendocument-go/docmodel/pkg/iox"
)

func bytesReader(data []byte) io.Reader {
	return bytes.NewReader(data)
}

func readAllSource(src iox.Source) ([]byte, error) {
	return iox.ReadAll(src)
}
