// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package docmodel

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/opendocument-go/docmodel/pkg/archive"
	"github.com/opendocument-go/docmodel/pkg/iox"
	"github.com/opendocument-go/docmodel/pkg/vpath"
	"github.com/opendocument-go/docmodel/pkg/xmlutil"
)

// ErrNotEditable means BackTranslate was called on a Document that never
// ran an editable Translate (so it has no content ID map to apply a diff
// against), or whose type is not ODF (§4.9: back-translation is ODF-only).
var ErrNotEditable = errors.New("docmodel: document is not back-translatable")

// Diff is §6's back-translation diff format: a text-node edit keyed by the
// content ID Translate(cfg.Editable=true) assigned it. A content ID from
// the original translate that is absent from ModifiedText means "delete
// this run" (§6).
type Diff struct {
	ModifiedText map[string]string `json:"modifiedText"`
}

// ParseDiff decodes raw JSON into a Diff.
func ParseDiff(raw []byte) (Diff, error) {
	var d Diff
	if err := json.Unmarshal(raw, &d); err != nil {
		return Diff{}, fmt.Errorf("docmodel: %w", err)
	}
	return d, nil
}

// BackTranslate applies diff's text edits to the content model built by the
// last editable Translate call and re-emits the archive to outPath, per
// §4.9. Only available when CanBackTranslate (ODF + editable); OOXML
// back-translation is out of scope, per SPEC_FULL.md's supplemental note.
func (d *Document) BackTranslate(diff Diff, outPath string) bool {
	if !d.CanBackTranslate() {
		d.lastErr = ErrNotEditable
		return false
	}

	for id, ref := range d.contentIDs {
		if newText, ok := diff.ModifiedText[id]; ok {
			ref.SetText(newText)
		} else {
			ref.SetText("")
		}
	}

	if err := d.reemitODF(outPath); err != nil {
		d.lastErr = err
		return false
	}
	return true
}

// reemitODF writes a new Zip archive to outPath: every entry from the
// opened storage copied unchanged except content.xml, which is replaced by
// d.contentRoot (the same tree SetText mutated above, since the graph's
// Text elements carry XML pointers directly into it) serialized back out.
func (d *Document) reemitODF(outPath string) error {
	serialized, err := xmlutil.Serialize(d.contentRoot)
	if err != nil {
		return fmt.Errorf("docmodel: %w", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	w := archive.NewZipWriter(out)
	walkErr := d.storage.Walk(vpath.Root, func(e archive.Entry) error {
		if e.Kind != archive.KindFile || e.Path.String() == "content.xml" {
			return nil
		}
		src, err := d.storage.Read(e.Path)
		if err != nil {
			return err
		}
		data, err := readAllSource(src)
		if err != nil {
			return err
		}
		return w.Insert(e.Path.String(), iox.NewStringSource(data))
	})
	if walkErr != nil {
		return walkErr
	}
	if err := w.Insert("content.xml", iox.NewStringSource(serialized)); err != nil {
		return err
	}
	return w.Close()
}
