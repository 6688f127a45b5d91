// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package element

import (
	"github.com/opendocument-go/docmodel/pkg/eventsink"
	"github.com/opendocument-go/docmodel/pkg/style"
)

// StyleResolver looks up a style by name, returning its flattened
// properties (nil if the name is unknown or empty — the intermediate style
// computation treats a missing lookup as "no further overrides", per §7's
// "unknown style name ... treated as no style, not fatal").
type StyleResolver func(name string) style.PropertyBag

// Cursor walks the element graph while accumulating the intermediate style
// (§4.6's fold-left from root to the current element), in O(depth) memory:
// only the stack of ancestor style overlays is retained, never the whole
// subtree.
type Cursor struct {
	resolve StyleResolver
	sink    eventsink.Sink
	frames  []cursorFrame
}

type cursorFrame struct {
	ref   ElementRef
	style style.PropertyBag
}

// NewCursor starts a Cursor at root, with resolve used to look up each
// element's own style-name attribute against the registry. A nil resolve
// disables style accumulation (every element's intermediate style is
// empty). An element whose style-name attribute is non-empty but resolves
// to nothing is reported to sink (nil sink drops it), per §7: "an unknown
// style name in an element is logged and treated as no style, not fatal."
func NewCursor(root ElementRef, resolve StyleResolver, sink eventsink.Sink) *Cursor {
	if resolve == nil {
		resolve = func(string) style.PropertyBag { return nil }
	}
	c := &Cursor{resolve: resolve, sink: sink}
	c.frames = []cursorFrame{{ref: root, style: c.lookup(currentStyleName(root))}}
	return c
}

func (c *Cursor) lookup(name string) style.PropertyBag {
	bag := c.resolve(name)
	if name != "" && bag == nil {
		eventsink.Warn(c.sink, "element: unknown style name %q, treating as no style", name)
	}
	return bag
}

func currentStyleName(r ElementRef) string {
	if !r.IsValid() {
		return ""
	}
	return r.StyleName()
}

// Current returns the element the cursor is positioned at.
func (c *Cursor) Current() ElementRef { return c.frames[len(c.frames)-1].ref }

// Style returns the accumulated intermediate style at the current position:
// every ancestor's own style overlaid in root-to-here order, the current
// element's own style on top.
func (c *Cursor) Style() style.PropertyBag { return c.frames[len(c.frames)-1].style }

// PushChild descends to Current's first child, pushing a new frame whose
// style overlays the parent frame's style with the child's own. Returns
// false (cursor unchanged) if Current has no children.
func (c *Cursor) PushChild() bool {
	child := c.Current().FirstChild()
	if !child.IsValid() {
		return false
	}
	c.push(child)
	return true
}

// PushNext advances to Current's next sibling, replacing the top frame
// in place (same depth, same parent's accumulated base). Returns false
// (cursor unchanged) if Current has no next sibling.
func (c *Cursor) PushNext() bool {
	next := c.Current().NextSibling()
	if !next.IsValid() {
		return false
	}
	c.frames[len(c.frames)-1] = c.makeFrame(next, len(c.frames)-2)
	return true
}

// Pop returns to the parent frame. Returns false (cursor unchanged) if
// already at the root frame.
func (c *Cursor) Pop() bool {
	if len(c.frames) <= 1 {
		return false
	}
	c.frames = c.frames[:len(c.frames)-1]
	return true
}

func (c *Cursor) push(ref ElementRef) {
	c.frames = append(c.frames, c.makeFrame(ref, len(c.frames)-1))
}

// makeFrame builds the frame for ref whose base style is parentFrameIdx's
// accumulated style (or empty, at the root).
func (c *Cursor) makeFrame(ref ElementRef, parentFrameIdx int) cursorFrame {
	base := style.PropertyBag{}
	if parentFrameIdx >= 0 {
		for k, v := range c.frames[parentFrameIdx].style {
			base[k] = v
		}
	}
	own := c.lookup(currentStyleName(ref))
	for k, v := range own {
		base[k] = v
	}
	return cursorFrame{ref: ref, style: base}
}
