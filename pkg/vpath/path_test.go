// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package vpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNormalizes(t *testing.T) {
	assert.Equal(t, Root, New(""))
	assert.Equal(t, Root, New("/"))
	assert.Equal(t, Root, New("./"))
	assert.Equal(t, "a/b", New("./a//b/").String())
	assert.Equal(t, "a/b", New("a\\b").String())
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 0, New("mimetype").Depth())
	assert.Equal(t, 1, New("META-INF/manifest.xml").Depth())
	assert.Equal(t, 2, New("word/media/image1.png").Depth())
}

func TestJoinParent(t *testing.T) {
	a := New("META-INF")
	b := a.Join("manifest.xml")
	assert.Equal(t, "META-INF/manifest.xml", b.String())
	assert.Equal(t, a, b.Parent())
}

func TestBasenameExtension(t *testing.T) {
	p := New("word/document.xml")
	assert.Equal(t, "document.xml", p.Basename())
	assert.Equal(t, "xml", p.Extension())
	assert.Equal(t, "", Root.Extension())
}

func TestChildAncestor(t *testing.T) {
	root := Root
	a := New("word")
	b := New("word/document.xml")
	assert.True(t, a.ChildOf(root))
	assert.True(t, b.ChildOf(a))
	assert.True(t, root.AncestorOf(b))
	assert.True(t, a.AncestorOf(b))
	assert.False(t, b.AncestorOf(a))
	assert.False(t, b.AncestorOf(b))
}
