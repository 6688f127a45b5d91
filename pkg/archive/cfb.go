// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package archive

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/richardlehane/mscfb"

	"github.com/opendocument-go/docmodel/pkg/docerr"
	"github.com/opendocument-go/docmodel/pkg/iox"
	"github.com/opendocument-go/docmodel/pkg/vpath"
)

// CFB is a read-only Storage over a Microsoft Compound File Binary (OLE2)
// container, built on github.com/richardlehane/mscfb. Directories are
// inferred structurally from stream path prefixes, the same way Zip infers
// them, since mscfb's catalog walk only reliably exposes stream entries.
type CFB struct {
	raw   []byte
	sizes map[vpath.Path]int64
	dirs  map[vpath.Path]bool
}

// OpenCFB opens raw as a CFB container. Returns ErrNoCfbFile if the OLE2
// signature is missing, ErrCfbFileCorrupted if the sector chain cannot be
// walked.
func OpenCFB(raw []byte) (*CFB, error) {
	if len(raw) < 8 || !bytes.Equal(raw[:8], oleIdentifier) {
		return nil, fmt.Errorf("archive: %w", docerr.ErrNoCfbFile)
	}
	doc, err := mscfb.New(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("archive: %w: %v", docerr.ErrCfbFileCorrupted, err)
	}
	c := &CFB{
		raw:   raw,
		sizes: map[vpath.Path]int64{},
		dirs:  map[vpath.Path]bool{vpath.Root: true},
	}
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if entry == nil {
			continue
		}
		p := cfbEntryPath(entry)
		c.sizes[p] = entry.Size
		for anc := p.Parent(); ; anc = anc.Parent() {
			c.dirs[anc] = true
			if anc.IsRoot() {
				break
			}
		}
	}
	return c, nil
}

func cfbEntryPath(entry *mscfb.File) vpath.Path {
	segs := append(append([]string{}, entry.Path...), entry.Name)
	return vpath.New(strings.Join(segs, "/"))
}

// IsFile implements Storage.
func (c *CFB) IsFile(p vpath.Path) bool { _, ok := c.sizes[p]; return ok }

// IsDirectory implements Storage.
func (c *CFB) IsDirectory(p vpath.Path) bool { return c.dirs[p] }

// Size implements Storage.
func (c *CFB) Size(p vpath.Path) int64 {
	if s, ok := c.sizes[p]; ok {
		return s
	}
	return -1
}

// Read implements Storage. Each call allocates a fresh mscfb.Reader over the
// stored raw bytes so concurrent/reentrant reads of distinct (or the same)
// path never share cursor state, per §5's reentrancy requirement.
func (c *CFB) Read(p vpath.Path) (iox.Source, error) {
	size, ok := c.sizes[p]
	if !ok {
		return nil, fmt.Errorf("archive: %s: %w", p, docerr.ErrFileNotFound)
	}
	doc, err := mscfb.New(bytes.NewReader(c.raw))
	if err != nil {
		return nil, fmt.Errorf("archive: %w: %v", docerr.ErrCfbFileCorrupted, err)
	}
	for entry, nerr := doc.Next(); nerr == nil; entry, nerr = doc.Next() {
		if entry == nil {
			continue
		}
		if cfbEntryPath(entry) == p {
			return iox.NewSource(&cfbStreamReader{doc: doc}, int(size)), nil
		}
	}
	return nil, fmt.Errorf("archive: %s: %w", p, docerr.ErrFileNotFound)
}

// cfbStreamReader adapts the current entry of an *mscfb.Reader to io.Reader.
type cfbStreamReader struct{ doc *mscfb.Reader }

func (r *cfbStreamReader) Read(p []byte) (int, error) {
	n, err := r.doc.Read(p)
	if err == io.EOF {
		return n, io.EOF
	}
	return n, err
}

// Visit implements Storage.
func (c *CFB) Visit(p vpath.Path, fn func(Entry) error) error {
	seen := map[vpath.Path]bool{}
	for fp, size := range c.sizes {
		if fp.ChildOf(p) && !seen[fp] {
			seen[fp] = true
			if err := fn(Entry{Path: fp, Kind: KindFile, Size: size}); err != nil {
				return err
			}
		}
	}
	for dp := range c.dirs {
		if dp.ChildOf(p) && !seen[dp] {
			seen[dp] = true
			if err := fn(Entry{Path: dp, Kind: KindDirectory}); err != nil {
				return err
			}
		}
	}
	return nil
}

// Walk implements Storage.
func (c *CFB) Walk(p vpath.Path, fn func(Entry) error) error { return walkViaVisit(c, p, fn) }
