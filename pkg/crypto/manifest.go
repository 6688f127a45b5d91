// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package crypto implements the cryptographic unwrap layer: ODF
// manifest-driven decryption and OOXML/CFB ECMA-376 decryption, both
// re-exposing their container as a plain archive.Storage once a correct
// password has been supplied.
package crypto

import (
	"bytes"
	"encoding/base64"
	"fmt"

	"github.com/opendocument-go/docmodel/pkg/docerr"
	"github.com/opendocument-go/docmodel/pkg/vpath"
	"github.com/opendocument-go/docmodel/pkg/xmlutil"
)

// ChecksumType identifies the manifest's declared checksum algorithm and
// scope (whole-stream vs. first 1K).
type ChecksumType int

// Checksum kinds recognized by the manifest parser, per §3.
const (
	ChecksumUnknown ChecksumType = iota
	ChecksumSHA256
	ChecksumSHA1
	ChecksumSHA256_1K
	ChecksumSHA1_1K
)

// Algorithm identifies the manifest's declared symmetric cipher.
type Algorithm int

// Cipher kinds recognized by the manifest parser, per §3.
const (
	AlgorithmUnknown Algorithm = iota
	AlgorithmAES256CBC
	AlgorithmTripleDESCBC
	AlgorithmBlowfishCFB
)

// KeyDerivation identifies the manifest's declared key-derivation function.
type KeyDerivation int

// Key-derivation kinds recognized by the manifest parser, per §3.
const (
	KeyDerivationUnknown KeyDerivation = iota
	KeyDerivationPBKDF2
)

// ManifestEntry is one <manifest:file-entry> carrying
// <manifest:encryption-data>, per §3.
type ManifestEntry struct {
	Path                string
	Size                int64 // plaintext size
	ChecksumType         ChecksumType
	Checksum             []byte
	Algorithm            Algorithm
	IV                   []byte
	KeyDerivation        KeyDerivation
	KeySize              int
	KeyIterationCount    int
	KeySalt              []byte
	StartKeyGeneration   ChecksumType // SHA1 or SHA256 only; default SHA1
	StartKeySize         int
}

// Manifest aggregates every encrypted entry declared in
// META-INF/manifest.xml.
type Manifest struct {
	Encrypted    bool
	Entries      map[string]*ManifestEntry
	SmallestFile *ManifestEntry
}

var (
	checksumTypes = map[string]ChecksumType{
		"SHA256":   ChecksumSHA256,
		"SHA1":     ChecksumSHA1,
		"SHA1/1K":  ChecksumSHA1_1K,
		"urn:oasis:names:tc:opendocument:xmlns:manifest:1.0#sha256-1k": ChecksumSHA256_1K,
	}
	algorithmTypes = map[string]Algorithm{
		"http://www.w3.org/2001/04/xmlenc#aes256-cbc": AlgorithmAES256CBC,
		"":             AlgorithmTripleDESCBC,
		"Blowfish CFB": AlgorithmBlowfishCFB,
	}
	keyDerivationTypes = map[string]KeyDerivation{
		"PBKDF2": KeyDerivationPBKDF2,
	}
	startKeyTypes = map[string]ChecksumType{
		"SHA1":                                     ChecksumSHA1,
		"http://www.w3.org/2000/09/xmldsig#sha256": ChecksumSHA256,
	}
)

// ParseManifest parses META-INF/manifest.xml into a Manifest. A
// manifest entry whose path is absent from the storage's central directory
// is ignored rather than failing the parse (§8 boundary behavior).
func ParseManifest(manifestXML []byte, knownPaths func(string) bool) (*Manifest, error) {
	root, err := xmlutil.Parse(bytes.NewReader(manifestXML))
	if err != nil {
		return nil, fmt.Errorf("crypto: %w", docerr.ErrNotXML)
	}
	m := &Manifest{Entries: map[string]*ManifestEntry{}}
	for _, fe := range root.ChildElements("manifest:file-entry") {
		fullPath, _ := fe.Attr("manifest:full-path")
		if fullPath == "" || fullPath == "/" {
			continue
		}
		if knownPaths != nil && !knownPaths(fullPath) {
			continue
		}
		cryptoNode := fe.FirstChild("manifest:encryption-data")
		if cryptoNode == nil {
			continue
		}
		entry := &ManifestEntry{Path: fullPath}
		entry.Size = attrInt64(fe, "manifest:size")

		checksumTypeName, _ := cryptoNode.Attr("manifest:checksum-type")
		entry.Checksum = base64Attr(cryptoNode, "manifest:checksum")
		entry.ChecksumType = lookupChecksum(checksumTypeName)

		algo := cryptoNode.FirstChild("manifest:algorithm")
		if algo != nil {
			algoName, _ := algo.Attr("manifest:algorithm-name")
			entry.Algorithm = lookupAlgorithm(algoName)
			entry.IV = base64Attr(algo, "manifest:initialisation-vector")
		}

		key := cryptoNode.FirstChild("manifest:key-derivation")
		if key != nil {
			keyName, _ := key.Attr("manifest:key-derivation-name")
			entry.KeyDerivation = lookupKeyDerivation(keyName)
			entry.KeySize = int(attrInt64(key, "manifest:key-size"))
			entry.KeyIterationCount = int(attrInt64(key, "manifest:iteration-count"))
			entry.KeySalt = base64Attr(key, "manifest:salt")
		}

		start := cryptoNode.FirstChild("manifest:start-key-generation")
		if start != nil {
			startName, _ := start.Attr("manifest:start-key-generation-name")
			entry.StartKeyGeneration = lookupStartKey(startName)
			entry.StartKeySize = int(attrInt64(start, "manifest:key-size"))
		} else {
			// §8 boundary: absent start-key-generation defaults to
			// SHA1/20 bytes.
			entry.StartKeyGeneration = ChecksumSHA1
			entry.StartKeySize = 20
		}

		m.Entries[fullPath] = entry
		m.Encrypted = true
		if m.SmallestFile == nil || entry.Size < m.SmallestFile.Size {
			m.SmallestFile = entry
		}
	}
	return m, nil
}

func lookupChecksum(name string) ChecksumType {
	if v, ok := checksumTypes[name]; ok {
		return v
	}
	return ChecksumUnknown
}

func lookupAlgorithm(name string) Algorithm {
	if v, ok := algorithmTypes[name]; ok {
		return v
	}
	return AlgorithmUnknown
}

func lookupKeyDerivation(name string) KeyDerivation {
	if v, ok := keyDerivationTypes[name]; ok {
		return v
	}
	return KeyDerivationUnknown
}

func lookupStartKey(name string) ChecksumType {
	if v, ok := startKeyTypes[name]; ok {
		return v
	}
	return ChecksumUnknown
}

func attrInt64(n *xmlutil.Node, qname string) int64 {
	v, ok := n.Attr(qname)
	if !ok {
		return 0
	}
	var out int64
	for _, r := range v {
		if r < '0' || r > '9' {
			return out
		}
		out = out*10 + int64(r-'0')
	}
	return out
}

func base64Attr(n *xmlutil.Node, qname string) []byte {
	v, ok := n.Attr(qname)
	if !ok {
		return nil
	}
	decoded, err := base64.StdEncoding.DecodeString(v)
	if err != nil {
		return nil
	}
	return decoded
}

// entryFor returns the manifest entry for p (an archive path) and whether
// the manifest lists one.
func (m *Manifest) entryFor(p vpath.Path) (*ManifestEntry, bool) {
	e, ok := m.Entries[p.String()]
	return e, ok
}

