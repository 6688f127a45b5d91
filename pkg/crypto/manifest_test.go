// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const manifestMissingStartKey = `<manifest:manifest xmlns:manifest="urn:oasis:names:tc:opendocument:xmlns:manifest:1.0">
<manifest:file-entry manifest:full-path="content.xml" manifest:size="10">
<manifest:encryption-data manifest:checksum-type="SHA1" manifest:checksum="AAAA">
<manifest:algorithm manifest:algorithm-name="http://www.w3.org/2001/04/xmlenc#aes256-cbc" manifest:initialisation-vector="AAAA"/>
<manifest:key-derivation manifest:key-derivation-name="PBKDF2" manifest:key-size="32" manifest:iteration-count="100" manifest:salt="AAAA"/>
</manifest:encryption-data>
</manifest:file-entry>
</manifest:manifest>`

func TestParseManifestDefaultsStartKey(t *testing.T) {
	m, err := ParseManifest([]byte(manifestMissingStartKey), func(string) bool { return true })
	require.NoError(t, err)
	require.True(t, m.Encrypted)
	entry := m.Entries["content.xml"]
	require.NotNil(t, entry)
	assert.Equal(t, ChecksumSHA1, entry.StartKeyGeneration)
	assert.Equal(t, 20, entry.StartKeySize)
}

func TestParseManifestIgnoresUnknownPath(t *testing.T) {
	m, err := ParseManifest([]byte(manifestMissingStartKey), func(string) bool { return false })
	require.NoError(t, err)
	assert.False(t, m.Encrypted)
	assert.Empty(t, m.Entries)
}
