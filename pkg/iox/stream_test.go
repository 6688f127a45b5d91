// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package iox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPipe(t *testing.T) {
	src := NewSource(strings.NewReader("hello world"), 11)
	sink := &BufferSink{}
	assert.NoError(t, Pipe(src, sink))
	assert.Equal(t, "hello world", string(sink.Bytes()))
}

func TestReadAll(t *testing.T) {
	src := NewStringSource([]byte("payload"))
	data, err := ReadAll(src)
	assert.NoError(t, err)
	assert.Equal(t, "payload", string(data))
	assert.Equal(t, 0, src.Available())
}

func TestStringSourceReadsZeroAtEOF(t *testing.T) {
	src := NewStringSource([]byte("ab"))
	buf := make([]byte, 10)
	n, err := src.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, 2, n)
	n, err = src.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, 0, n)
}
