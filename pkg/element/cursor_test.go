// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendocument-go/docmodel/pkg/style"
	"github.com/opendocument-go/docmodel/pkg/table"
)

func TestCursorAccumulatesStyleFoldLeft(t *testing.T) {
	root := parse(t, `<office:body xmlns:text="`+nsText+`" xmlns:office="`+nsOffice+`">
		<text:p text:style-name="Body">
			<text:span text:style-name="Emph">hi</text:span>
		</text:p>
	</office:body>`)
	g := Build(root, table.DefaultLimits())

	registry := map[string]style.PropertyBag{
		"Body": {"font-size": "10pt", "color": "black"},
		"Emph": {"color": "red"},
	}
	resolve := func(name string) style.PropertyBag { return registry[name] }

	c := NewCursor(g.Root(), resolve, nil)
	assert.Empty(t, c.Style())

	require.True(t, c.PushChild()) // -> paragraph
	assert.Equal(t, KindParagraph, c.Current().Kind())
	assert.Equal(t, "10pt", c.Style()["font-size"])
	assert.Equal(t, "black", c.Style()["color"])

	require.True(t, c.PushChild()) // -> span
	assert.Equal(t, KindSpan, c.Current().Kind())
	assert.Equal(t, "10pt", c.Style()["font-size"], "span inherits paragraph's font-size")
	assert.Equal(t, "red", c.Style()["color"], "span's own color overrides the paragraph's")

	require.True(t, c.Pop())
	assert.Equal(t, KindParagraph, c.Current().Kind())
	assert.Equal(t, "black", c.Style()["color"], "popping back restores the paragraph's own style")
}

func TestCursorPushNextReplacesTopFrame(t *testing.T) {
	root := parse(t, `<office:body xmlns:text="`+nsText+`" xmlns:office="`+nsOffice+`">
		<text:p text:style-name="A"/>
		<text:p text:style-name="B"/>
	</office:body>`)
	g := Build(root, table.DefaultLimits())

	registry := map[string]style.PropertyBag{
		"A": {"color": "red"},
		"B": {"color": "blue"},
	}
	resolve := func(name string) style.PropertyBag { return registry[name] }

	c := NewCursor(g.Root(), resolve, nil)
	require.True(t, c.PushChild())
	assert.Equal(t, "red", c.Style()["color"])

	require.True(t, c.PushNext())
	assert.Equal(t, "blue", c.Style()["color"])

	assert.False(t, c.PushNext(), "no third sibling to advance to")
	assert.Equal(t, "blue", c.Style()["color"], "a failed PushNext leaves the cursor unchanged")
}

func TestCursorPushNextResetsToParentBaseNotPreviousSiblingOverrides(t *testing.T) {
	root := parse(t, `<office:body xmlns:text="`+nsText+`" xmlns:office="`+nsOffice+`">
		<text:p text:style-name="Parent">
			<text:span text:style-name="A"/>
			<text:span text:style-name="B"/>
		</text:p>
	</office:body>`)
	g := Build(root, table.DefaultLimits())

	registry := map[string]style.PropertyBag{
		"Parent": {"font-size": "10pt"},
		"A":      {"color": "red"},
		"B":      {"font-weight": "bold"},
	}
	resolve := func(name string) style.PropertyBag { return registry[name] }

	c := NewCursor(g.Root(), resolve, nil)
	require.True(t, c.PushChild()) // -> paragraph
	require.True(t, c.PushChild()) // -> span A
	assert.Equal(t, "red", c.Style()["color"])
	assert.Equal(t, "10pt", c.Style()["font-size"])

	require.True(t, c.PushNext()) // -> span B
	assert.Equal(t, "bold", c.Style()["font-weight"])
	assert.Equal(t, "10pt", c.Style()["font-size"], "span B still inherits the paragraph's font-size")
	_, hasColor := c.Style()["color"]
	assert.False(t, hasColor, "span B must not inherit span A's color override")
}

func TestCursorPopAtRootIsNoop(t *testing.T) {
	root := parse(t, `<office:body xmlns:office="`+nsOffice+`"/>`)
	g := Build(root, table.DefaultLimits())
	c := NewCursor(g.Root(), nil, nil)
	assert.False(t, c.Pop())
	assert.Equal(t, g.Root().Kind(), c.Current().Kind())
}
