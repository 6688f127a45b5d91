// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package docerr holds the typed error kinds shared across every layer (§7
// of the design), so higher layers can match on them with errors.Is instead
// of string comparison. Lower layers return these directly; the document
// facade is the only place they get collapsed into booleans.
package docerr

import "errors"

var (
	// ErrNotZipFile means the container lacks the PKZIP end-of-central-
	// directory / local-file-header signature.
	ErrNotZipFile = errors.New("docmodel: not a zip file")
	// ErrNoZipFile means open-as-zip failed; caller should try CFB next.
	ErrNoZipFile = errors.New("docmodel: no zip file")
	// ErrNoCfbFile means the container lacks the CFB/OLE2 signature.
	ErrNoCfbFile = errors.New("docmodel: no compound file")
	// ErrCfbFileCorrupted means the CFB sector chain is structurally
	// invalid.
	ErrCfbFileCorrupted = errors.New("docmodel: compound file corrupted")
	// ErrFileNotFound means a read was attempted against a path absent
	// from the storage.
	ErrFileNotFound = errors.New("docmodel: file not found")
	// ErrNoOpenDocumentFile means the expected ODF markers (content.xml,
	// styles.xml, mimetype/manifest) are absent.
	ErrNoOpenDocumentFile = errors.New("docmodel: no opendocument file")
	// ErrNoOfficeOpenXmlFile means none of the expected OOXML part markers
	// are present.
	ErrNoOfficeOpenXmlFile = errors.New("docmodel: no office open xml file")
	// ErrUnsupportedCryptoAlgorithm means the manifest or encryption info
	// names an algorithm, checksum type, key derivation, or start-key
	// generation this module does not implement.
	ErrUnsupportedCryptoAlgorithm = errors.New("docmodel: unsupported crypto algorithm")
	// ErrWrongPassword means decrypt succeeded structurally but the
	// checksum of the validation entry did not match.
	ErrWrongPassword = errors.New("docmodel: wrong password")
	// ErrNotXML means an archive entry expected to be XML failed to
	// parse.
	ErrNotXML = errors.New("docmodel: not well-formed xml")
	// ErrUnknownFileType means meta probing could not classify the
	// document.
	ErrUnknownFileType = errors.New("docmodel: unknown file type")
	// ErrCorruptedContent means a decrypted+inflated entry's size does
	// not match the manifest-declared plaintext size.
	ErrCorruptedContent = errors.New("docmodel: corrupted content")
)
