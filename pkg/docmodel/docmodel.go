// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package docmodel is the document facade (§4.9): the one type the CLI and
// HTML renderer collaborators drive. It swallows every typed error from the
// lower layers into a boolean, keeping the richer error around behind
// LastError for a caller that wants to pick an exit code (§6).
package docmodel

import (
	"fmt"
	"os"

	"github.com/opendocument-go/docmodel/pkg/archive"
	"github.com/opendocument-go/docmodel/pkg/crypto"
	"github.com/opendocument-go/docmodel/pkg/docerr"
	"github.com/opendocument-go/docmodel/pkg/element"
	"github.com/opendocument-go/docmodel/pkg/eventsink"
	"github.com/opendocument-go/docmodel/pkg/meta"
	"github.com/opendocument-go/docmodel/pkg/style"
	"github.com/opendocument-go/docmodel/pkg/table"
	"github.com/opendocument-go/docmodel/pkg/vpath"
	"github.com/opendocument-go/docmodel/pkg/xmlutil"
)

// Document is the facade over one opened file: probing, decryption, and
// (when the type supports it) translation to HTML through an injected
// Renderer.
type Document struct {
	path string

	storage  archive.Storage
	fileMeta meta.FileMeta

	opened    bool
	decrypted bool
	lastErr   error

	sink     eventsink.Sink
	renderer Renderer

	styles        *style.Registry
	graph         *element.Graph
	contentRoot   *xmlutil.Node
	contentIDs    map[string]element.ElementRef
	nextContentID int
	editableBuilt bool
}

// DocOption configures a Document at construction time.
type DocOption func(*Document)

// WithEventSink installs sink to receive non-fatal diagnostics (an unknown
// style name, …). A nil sink (the default) drops every event.
func WithEventSink(sink eventsink.Sink) DocOption {
	return func(d *Document) { d.sink = sink }
}

// WithRenderer installs the external HTML renderer Translate delegates to.
func WithRenderer(r Renderer) DocOption {
	return func(d *Document) { d.renderer = r }
}

// New constructs an unopened Document.
func New(opts ...DocOption) *Document {
	d := &Document{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Guess probes path without committing any state to a Document, per §4.9.
func Guess(path string) (meta.FileType, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return meta.TypeUnknown, err
	}
	s, err := archive.Open(raw)
	if err != nil {
		return meta.TypeUnknown, err
	}
	m, err := meta.Probe(s, table.DefaultLimits())
	if err != nil {
		return meta.TypeUnknown, err
	}
	return m.Type, nil
}

// Open tries Zip then CFB, then ODF then OOXML then legacy, per §4.9. On
// success it keeps the storage and meta and sets Opened; on failure
// LastError carries the typed reason and Open returns false.
func (d *Document) Open(path string) bool {
	d.reset()

	raw, err := os.ReadFile(path)
	if err != nil {
		d.lastErr = err
		return false
	}
	s, err := archive.Open(raw)
	if err != nil {
		d.lastErr = err
		return false
	}
	m, err := meta.Probe(s, table.DefaultLimits())
	if err != nil {
		d.lastErr = err
		return false
	}

	d.path = path
	d.storage = s
	d.fileMeta = m
	d.opened = true
	d.decrypted = !m.Encrypted

	if d.decrypted && isODF(m.Type) {
		if err := meta.PopulateODFEntries(d.storage, &d.fileMeta, table.DefaultLimits()); err != nil {
			eventsink.Warn(d.sink, "docmodel: populating ODF entries for %s: %v", path, err)
		}
	}
	return true
}

// Close drops the storage and resets meta, per §4.9.
func (d *Document) Close() { d.reset() }

func (d *Document) reset() {
	d.path = ""
	d.storage = nil
	d.fileMeta = meta.FileMeta{}
	d.opened = false
	d.decrypted = false
	d.lastErr = nil
	d.styles = nil
	d.graph = nil
	d.contentRoot = nil
	d.contentIDs = nil
	d.nextContentID = 0
	d.editableBuilt = false
}

// Decrypt unwraps the document's crypto layer, per §4.9: only meaningful
// when Opened and Encrypted; returns false on a wrong password, true also
// when the document was already decrypted.
func (d *Document) Decrypt(password string) bool {
	if !d.opened || !d.fileMeta.Encrypted {
		return false
	}
	if d.decrypted {
		return true
	}

	var (
		unwrapped archive.Storage
		err       error
	)
	if d.fileMeta.Type == meta.TypeOfficeOpenXmlEncrypted {
		unwrapped, err = crypto.UnwrapOOXML(d.storage, password)
	} else {
		unwrapped, err = crypto.UnwrapODF(d.storage, password)
	}
	if err != nil {
		d.lastErr = err
		return false
	}

	d.storage = unwrapped
	d.decrypted = true
	// Probing an encrypted ODF/OOXML container can only ever classify it
	// from the manifest/envelope; re-probe now that content.xml (or the
	// decrypted package) is readable in the clear, so Entries reflects
	// the real page/table list instead of staying empty.
	if m, err := meta.Probe(d.storage, table.DefaultLimits()); err == nil {
		m.Encrypted = true
		d.fileMeta = m
	}
	if isODF(d.fileMeta.Type) {
		if err := meta.PopulateODFEntries(d.storage, &d.fileMeta, table.DefaultLimits()); err != nil {
			eventsink.Warn(d.sink, "docmodel: populating ODF entries after decrypt: %v", err)
		}
	}
	return true
}

// Meta returns the probed FileMeta, per §4.9.
func (d *Document) Meta() meta.FileMeta { return d.fileMeta }

// LastError returns the typed error behind the most recent false/failed
// boolean-returning call, for a CLI collaborator selecting among §6's exit
// codes. It is not reset by a successful call other than Open/Close.
func (d *Document) LastError() error { return d.lastErr }

// CanTranslate reports whether Translate can succeed: opened, decrypted,
// and of one of the HTML-producible types, per §4.9.
func (d *Document) CanTranslate() bool {
	return d.opened && d.decrypted && isHTMLProducible(d.fileMeta.Type)
}

// CanBackTranslate reports whether BackTranslate can succeed: ODF and
// editable, per §4.9's gating and the supplemental note in SPEC_FULL.md
// that OOXML back-translation is out of scope (the original never
// finished one either).
func (d *Document) CanBackTranslate() bool {
	return d.CanTranslate() && isODF(d.fileMeta.Type) && d.editableBuilt
}

func isODF(t meta.FileType) bool {
	switch t {
	case meta.TypeOpenDocumentText, meta.TypeOpenDocumentPresentation,
		meta.TypeOpenDocumentSpreadsheet, meta.TypeOpenDocumentGraphics:
		return true
	}
	return false
}

func isHTMLProducible(t meta.FileType) bool {
	switch t {
	case meta.TypeOpenDocumentText, meta.TypeOpenDocumentPresentation,
		meta.TypeOpenDocumentSpreadsheet, meta.TypeOpenDocumentGraphics,
		meta.TypeOfficeOpenXmlDocument, meta.TypeOfficeOpenXmlPresentation,
		meta.TypeOfficeOpenXmlWorkbook:
		return true
	}
	return false
}

// Styles returns the style registry built by the most recent successful
// Translate call, for a Renderer to resolve element style names against.
// Nil until Translate has built a content model (ODF types only; see
// buildContentModel).
func (d *Document) Styles() *style.Registry { return d.styles }

// Graph returns the element graph built by the most recent successful
// Translate call. Nil until Translate has built a content model.
func (d *Document) Graph() *element.Graph { return d.graph }

// Storage exposes the opened (and, once Decrypt succeeds, decrypted)
// storage directly, for a Renderer that needs to read auxiliary parts
// (images, OOXML parts this module's element graph doesn't model yet).
func (d *Document) Storage() archive.Storage { return d.storage }

// parseXML reads and parses an XML entry from the document's storage.
func (d *Document) parseXML(p vpath.Path) (*xmlutil.Node, error) {
	src, err := d.storage.Read(p)
	if err != nil {
		return nil, err
	}
	data, err := readAllSource(src)
	if err != nil {
		return nil, err
	}
	return xmlutil.Parse(bytesReaderOf(data))
}

// effectiveLimits derives a table.Limits from a Config, falling back to
// §6's documented defaults when the caller leaves a field zero.
func effectiveLimits(cfg Config) table.Limits {
	limits := table.DefaultLimits()
	if cfg.TableLimitRows > 0 {
		limits.LimitRows = cfg.TableLimitRows
	}
	if cfg.TableLimitCols > 0 {
		limits.LimitColumns = cfg.TableLimitCols
	}
	return limits
}

// buildContentModel parses content.xml/styles.xml and builds the style
// registry and element graph a Renderer (or BackTranslate) consumes. Only
// ODF types build a graph today: pkg/element's tag-dispatch table is
// ODF-only (see DESIGN.md's Sheet-vs-Table note), so an OOXML Renderer
// works directly off Storage()/Meta() instead.
func (d *Document) buildContentModel(cfg Config) error {
	if !isODF(d.fileMeta.Type) {
		return nil
	}

	contentRoot, err := d.parseXML(vpath.New("content.xml"))
	if err != nil {
		return fmt.Errorf("docmodel: %w", err)
	}
	stylesRoot, err := d.parseXML(vpath.New("styles.xml"))
	if err != nil {
		return fmt.Errorf("docmodel: %w", err)
	}
	body := contentRoot.FirstChild("office:body")
	if body == nil {
		return fmt.Errorf("docmodel: %w", docerr.ErrNotXML)
	}

	d.styles = style.BuildODFRegistry(stylesRoot, contentRoot.FirstChild("office:automatic-styles"))
	d.graph = element.Build(body, effectiveLimits(cfg))
	d.contentRoot = contentRoot

	d.contentIDs = nil
	d.editableBuilt = false
	if cfg.Editable {
		d.assignContentIDs()
		d.editableBuilt = true
	}
	return nil
}

// assignContentIDs walks the graph's real structure once, giving every
// Text element a stable "t<N>" content ID in document order, per §6's
// back-translation diff format ("<cid> matches the content ID assigned
// during translate to each text node").
func (d *Document) assignContentIDs() {
	d.contentIDs = map[string]element.ElementRef{}
	d.nextContentID = 0

	element.Walk(d.graph.Root(), func(ref element.ElementRef) bool {
		if ref.Kind() == element.KindText {
			id := fmt.Sprintf("t%d", d.nextContentID)
			d.nextContentID++
			d.contentIDs[id] = ref
		}
		return true
	})
}

// styleResolver adapts the style registry into an element.StyleResolver,
// returning nil (not a zero-value PropertyBag) for an unregistered name so
// Cursor's own "unknown style name" diagnostic fires correctly.
func (d *Document) styleResolver() element.StyleResolver {
	return func(name string) style.PropertyBag {
		if name == "" || d.styles == nil {
			return nil
		}
		if _, ok := d.styles.Styles[name]; !ok {
			return nil
		}
		return d.styles.Resolve(name).Properties
	}
}

// NewCursor returns an element.Cursor positioned at the content graph's
// root, wired to this Document's style registry and event sink. Returns
// nil if Translate has not yet built a content model.
func (d *Document) NewCursor() *element.Cursor {
	if d.graph == nil {
		return nil
	}
	return element.NewCursor(d.graph.Root(), d.styleResolver(), d.sink)
}
