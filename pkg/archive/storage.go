// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package archive implements the virtual filesystem layer: a unified
// Storage interface over Zip (archive/zip) and CFB/OLE2
// (github.com/richardlehane/mscfb) containers, normalizing both into the
// same path-addressed read API so upper layers never branch on container
// kind after open.
package archive

import (
	"bytes"
	"fmt"

	"github.com/opendocument-go/docmodel/pkg/docerr"
	"github.com/opendocument-go/docmodel/pkg/iox"
	"github.com/opendocument-go/docmodel/pkg/vpath"
)

// EntryKind distinguishes a file entry from a directory entry.
type EntryKind int

const (
	// KindFile is a leaf entry with readable content.
	KindFile EntryKind = iota
	// KindDirectory is a container entry; Size is undefined for it.
	KindDirectory
)

// Entry describes one addressable object in a Storage.
type Entry struct {
	Path vpath.Path
	Kind EntryKind
	Size int64
}

// Storage is the unified filesystem contract implemented by both Zip and
// CFB containers. For every file entry P, every proper ancestor of P is
// either absent from the storage or present as a directory entry; no path
// is both a file and a directory.
type Storage interface {
	// IsFile reports whether p names a file entry.
	IsFile(p vpath.Path) bool
	// IsDirectory reports whether p names a directory entry.
	IsDirectory(p vpath.Path) bool
	// Size returns the uncompressed size of file p. Only valid when
	// IsFile(p).
	Size(p vpath.Path) int64
	// Read opens a streaming Source over file p's content.
	Read(p vpath.Path) (iox.Source, error)
	// Visit enumerates the immediate children of directory p.
	Visit(p vpath.Path, fn func(Entry) error) error
	// Walk enumerates every entry at or below p, depth-first.
	Walk(p vpath.Path, fn func(Entry) error) error
}

// walkViaVisit implements Walk in terms of Visit for any Storage that only
// needs to provide Visit itself.
func walkViaVisit(s Storage, p vpath.Path, fn func(Entry) error) error {
	return s.Visit(p, func(e Entry) error {
		if err := fn(e); err != nil {
			return err
		}
		if e.Kind == KindDirectory {
			return walkViaVisit(s, e.Path, fn)
		}
		return nil
	})
}

var (
	zipSignature = []byte{'P', 'K', 0x03, 0x04}
	// emptyZipSignature starts a Zip with no entries (end-of-central-directory
	// record only).
	emptyZipSignature = []byte{'P', 'K', 0x05, 0x06}
	// oleIdentifier is the CFB/OLE2 magic signature, grounded verbatim on
	// excelize's crypt.go oleIdentifier constant.
	oleIdentifier = []byte{0xd0, 0xcf, 0x11, 0xe0, 0xa1, 0xb1, 0x1a, 0xe1}
)

// Open probes raw for a Zip signature first, then a CFB signature, and
// returns the matching Storage. An empty-archive Zip (no entries) is still a
// valid Zip. Returns ErrNoZipFile when neither signature matches; a CFB
// signature hands over to OpenCFB, whose own errors are returned.
func Open(raw []byte) (Storage, error) {
	if len(raw) >= 4 && (bytes.HasPrefix(raw, zipSignature) || bytes.HasPrefix(raw, emptyZipSignature)) {
		if s, err := OpenZip(raw); err == nil {
			return s, nil
		}
	}
	if len(raw) >= 8 && bytes.Equal(raw[:8], oleIdentifier) {
		return OpenCFB(raw)
	}
	return nil, fmt.Errorf("archive: %w", docerr.ErrNoZipFile)
}
