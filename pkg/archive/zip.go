// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/opendocument-go/docmodel/pkg/docerr"
	"github.com/opendocument-go/docmodel/pkg/iox"
	"github.com/opendocument-go/docmodel/pkg/vpath"
)

// Zip is a read-only Storage backed by archive/zip. Entry lookup is O(1):
// the central directory is indexed into a map once at open, independent of
// whatever order the directory itself is stored in.
type Zip struct {
	reader *zip.Reader
	files  map[vpath.Path]*zip.File
	dirs   map[vpath.Path]bool
}

// OpenZip opens raw as a Zip archive, returning ErrNotZipFile if the PKZIP
// signature is missing or the central directory cannot be parsed.
func OpenZip(raw []byte) (*Zip, error) {
	r, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("archive: %w", docerr.ErrNotZipFile)
	}
	z := &Zip{
		reader: r,
		files:  make(map[vpath.Path]*zip.File, len(r.File)),
		dirs:   map[vpath.Path]bool{vpath.Root: true},
	}
	for _, f := range r.File {
		p := vpath.New(f.Name)
		if f.FileInfo().IsDir() {
			z.dirs[p] = true
			continue
		}
		z.files[p] = f
		for anc := p.Parent(); ; anc = anc.Parent() {
			z.dirs[anc] = true
			if anc.IsRoot() {
				break
			}
		}
	}
	return z, nil
}

// IsFile implements Storage.
func (z *Zip) IsFile(p vpath.Path) bool { _, ok := z.files[p]; return ok }

// IsDirectory implements Storage.
func (z *Zip) IsDirectory(p vpath.Path) bool { return z.dirs[p] }

// Size implements Storage.
func (z *Zip) Size(p vpath.Path) int64 {
	if f, ok := z.files[p]; ok {
		return int64(f.UncompressedSize64)
	}
	return -1
}

// Read implements Storage. The returned Source inflates lazily and reports
// Available as the remaining uncompressed byte count.
func (z *Zip) Read(p vpath.Path) (iox.Source, error) {
	f, ok := z.files[p]
	if !ok {
		return nil, fmt.Errorf("archive: %s: %w", p, docerr.ErrFileNotFound)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	return iox.NewSource(&closeOnEOFReader{rc}, int(f.UncompressedSize64)), nil
}

// closeOnEOFReader closes the underlying ReadCloser once it reports EOF, so
// callers that drain via iox.Pipe/ReadAll don't need to know about Close.
type closeOnEOFReader struct{ rc io.ReadCloser }

func (r *closeOnEOFReader) Read(p []byte) (int, error) {
	n, err := r.rc.Read(p)
	if err == io.EOF {
		_ = r.rc.Close()
	}
	return n, err
}

// Visit implements Storage.
func (z *Zip) Visit(p vpath.Path, fn func(Entry) error) error {
	seen := map[vpath.Path]bool{}
	for fp, f := range z.files {
		if fp.ChildOf(p) && !seen[fp] {
			seen[fp] = true
			if err := fn(Entry{Path: fp, Kind: KindFile, Size: int64(f.UncompressedSize64)}); err != nil {
				return err
			}
		}
	}
	for dp := range z.dirs {
		if dp.ChildOf(p) && !seen[dp] && dp != p {
			seen[dp] = true
			if err := fn(Entry{Path: dp, Kind: KindDirectory}); err != nil {
				return err
			}
		}
	}
	return nil
}

// Walk implements Storage.
func (z *Zip) Walk(p vpath.Path, fn func(Entry) error) error { return walkViaVisit(z, p, fn) }

// ZipWriter builds a new Zip archive, supporting fresh inserts and
// copy-without-recompression from an existing Zip's raw compressed bytes.
type ZipWriter struct {
	w *zip.Writer
}

// NewZipWriter wraps sink as a Zip archive builder.
func NewZipWriter(sink iox.Sink) *ZipWriter {
	return &ZipWriter{w: zip.NewWriter(iox.AsWriter(sink))}
}

// Insert writes src as a new deflated entry at path name.
func (w *ZipWriter) Insert(name string, src iox.Source) error {
	fw, err := w.w.Create(name)
	if err != nil {
		return err
	}
	return iox.Pipe(src, writerSink{fw})
}

type writerSink struct{ w io.Writer }

func (s writerSink) Write(p []byte) (int, error) { return s.w.Write(p) }

// CopyFrom re-uses the already-compressed bytes of path from src without
// re-inflating and re-deflating.
func (w *ZipWriter) CopyFrom(src *Zip, path string) error {
	f, ok := src.files[vpath.New(path)]
	if !ok {
		return fmt.Errorf("archive: %s: %w", path, docerr.ErrFileNotFound)
	}
	rc, err := f.OpenRaw()
	if err != nil {
		return err
	}
	header := f.FileHeader
	fw, err := w.w.CreateRaw(&header)
	if err != nil {
		return err
	}
	_, err = io.Copy(fw, rc)
	return err
}

// Close finalizes the archive.
func (w *ZipWriter) Close() error { return w.w.Close() }
