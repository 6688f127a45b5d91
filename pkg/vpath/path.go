// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package vpath implements a normalized, immutable path type used to address
// entries inside an archive-backed Storage (Zip or CFB), independent of the
// slash/backslash conventions of the underlying container format.
package vpath

import "strings"

// Path is an immutable, normalized forward-slash path. The zero value is the
// root path.
type Path struct {
	clean string
	depth int
}

// Root is the path with nesting depth 0.
var Root = Path{}

// New normalizes raw into a Path: strips a leading "./", collapses repeated
// slashes, strips trailing slashes, and records the nesting depth (slash
// count) of the result.
func New(raw string) Path {
	s := raw
	s = strings.TrimPrefix(s, "./")
	s = strings.ReplaceAll(s, "\\", "/")
	for strings.Contains(s, "//") {
		s = strings.ReplaceAll(s, "//", "/")
	}
	s = strings.TrimPrefix(s, "/")
	s = strings.TrimSuffix(s, "/")
	if s == "." || s == "" {
		return Root
	}
	return Path{clean: s, depth: strings.Count(s, "/")}
}

// String returns the normalized path string; the root path is "".
func (p Path) String() string { return p.clean }

// Depth returns the recorded nesting depth (slash count). A path with
// nesting 0 is the root or a top-level entry.
func (p Path) Depth() int { return p.depth }

// IsRoot reports whether p is the root path.
func (p Path) IsRoot() bool { return p.clean == "" }

// IsAbsolute always reports true: every Path in this model is rooted at the
// storage root, there is no relative path representation.
func (p Path) IsAbsolute() bool { return true }

// Basename returns the final path segment, or "" for the root.
func (p Path) Basename() string {
	if p.IsRoot() {
		return ""
	}
	if i := strings.LastIndexByte(p.clean, '/'); i >= 0 {
		return p.clean[i+1:]
	}
	return p.clean
}

// Extension returns the basename's extension (without the dot), or "" if
// there is none.
func (p Path) Extension() string {
	base := p.Basename()
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		return base[i+1:]
	}
	return ""
}

// Parent returns the path one segment up, or Root if p is already Root or a
// top-level entry.
func (p Path) Parent() Path {
	if p.IsRoot() {
		return Root
	}
	i := strings.LastIndexByte(p.clean, '/')
	if i < 0 {
		return Root
	}
	return New(p.clean[:i])
}

// Join appends child as a new segment below p. An empty child returns p
// unchanged.
func (p Path) Join(child string) Path {
	c := New(child)
	if c.IsRoot() {
		return p
	}
	if p.IsRoot() {
		return c
	}
	return New(p.clean + "/" + c.clean)
}

// ChildOf reports whether p is a direct child of other.
func (p Path) ChildOf(other Path) bool {
	return !p.IsRoot() && p.Parent() == other
}

// AncestorOf reports whether p is a proper ancestor of other (including when
// p is Root and other is not).
func (p Path) AncestorOf(other Path) bool {
	if p == other {
		return false
	}
	if p.IsRoot() {
		return !other.IsRoot()
	}
	return strings.HasPrefix(other.clean, p.clean+"/")
}

// Equal reports path equality; Path already supports == via comparable
// fields, Equal is provided for readability at call sites.
func (p Path) Equal(other Path) bool { return p == other }
