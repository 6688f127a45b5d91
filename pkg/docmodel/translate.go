// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package docmodel

import (
	"errors"

	"github.com/opendocument-go/docmodel/pkg/element"
)

// ErrNoRenderer means Translate was called on a Document constructed
// without WithRenderer. HTML/CSS/JS emission is an explicit Non-goal of
// this module (§1); Translate only builds the content model and content-ID
// map a renderer needs, then delegates to it.
var ErrNoRenderer = errors.New("docmodel: no renderer configured")

// Renderer is the external HTML-renderer collaborator translate() delegates
// to, per §4.9. Render receives the Document itself (so it can pull
// Graph()/Styles()/Storage()/ContentID as needed) plus the resolved output
// path and Config.
type Renderer interface {
	Render(doc *Document, outPath string, config Config) error
}

// Translate builds the style/element content model (ODF types) or leaves
// the Renderer to work from Storage()/Meta() directly (OOXML types, per
// DESIGN.md's Sheet-vs-Table note), assigns content IDs when cfg.Editable,
// and delegates to the configured Renderer, per §4.9. Returns false when
// CanTranslate reports false (LastError is left unchanged), and false with
// LastError set on any later failure, including no Renderer being configured.
func (d *Document) Translate(outPath string, cfg Config) bool {
	if !d.CanTranslate() {
		return false
	}
	if err := d.buildContentModel(cfg); err != nil {
		d.lastErr = err
		return false
	}
	if d.renderer == nil {
		d.lastErr = ErrNoRenderer
		return false
	}
	if err := d.renderer.Render(d, outPath, cfg); err != nil {
		d.lastErr = err
		return false
	}
	return true
}

// ContentID returns the Text element id was assigned to during the most
// recent Translate(cfg.Editable=true) call, and whether it exists.
func (d *Document) ContentID(id string) (element.ElementRef, bool) {
	ref, ok := d.contentIDs[id]
	return ref, ok
}

// ContentIDs returns every content ID assigned during the most recent
// editable Translate call, for a Renderer to enumerate when stamping edit
// markers into its HTML output.
func (d *Document) ContentIDs() []string {
	ids := make([]string, 0, len(d.contentIDs))
	for id := range d.contentIDs {
		ids = append(ids, id)
	}
	return ids
}
