// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package crypto

import (
	"bytes"
	"compress/flate"
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"crypto/sha1"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/blowfish"
	"golang.org/x/crypto/pbkdf2"

	"github.com/opendocument-go/docmodel/pkg/archive"
	"github.com/opendocument-go/docmodel/pkg/docerr"
	"github.com/opendocument-go/docmodel/pkg/iox"
	"github.com/opendocument-go/docmodel/pkg/vpath"
)

// UnwrapODF implements §4.4's algorithm: parse the manifest, validate the
// password against the smallest encrypted entry, and return a Storage that
// transparently decrypts+inflates every manifest-listed path on read.
func UnwrapODF(s archive.Storage, password string) (archive.Storage, error) {
	manifestPath := vpath.New("META-INF/manifest.xml")
	if !s.IsFile(manifestPath) {
		// No manifest at all: nothing declares encryption, pass through.
		return s, nil
	}
	src, err := s.Read(manifestPath)
	if err != nil {
		return nil, err
	}
	raw, err := iox.ReadAll(src)
	if err != nil {
		return nil, err
	}
	manifest, err := ParseManifest(raw, func(p string) bool { return s.IsFile(vpath.New(p)) })
	if err != nil {
		return nil, err
	}
	if !manifest.Encrypted {
		return s, nil
	}
	smallest := manifest.SmallestFile
	if smallest == nil || !odfEntrySupported(smallest) {
		return nil, fmt.Errorf("crypto: %w", docerr.ErrUnsupportedCryptoAlgorithm)
	}

	startKey, err := odfStartKey(password, smallest)
	if err != nil {
		return nil, err
	}

	plain, err := odfDecryptEntry(s, smallest, startKey)
	if err != nil {
		return nil, err
	}
	if !odfChecksumMatches(plain, smallest) {
		return nil, fmt.Errorf("crypto: %w", docerr.ErrWrongPassword)
	}

	return &odfStorage{Storage: s, manifest: manifest, startKey: startKey}, nil
}

func odfEntrySupported(e *ManifestEntry) bool {
	return e.ChecksumType != ChecksumUnknown &&
		e.Algorithm != AlgorithmUnknown &&
		e.KeyDerivation != KeyDerivationUnknown &&
		e.StartKeyGeneration != ChecksumUnknown
}

// odfStartKey computes hash(password, start_key_generation) truncated to
// start_key_size.
func odfStartKey(password string, e *ManifestEntry) ([]byte, error) {
	var sum []byte
	switch e.StartKeyGeneration {
	case ChecksumSHA1:
		h := sha1.Sum([]byte(password))
		sum = h[:]
	case ChecksumSHA256:
		h := sha256.Sum256([]byte(password))
		sum = h[:]
	default:
		return nil, fmt.Errorf("crypto: %w", docerr.ErrUnsupportedCryptoAlgorithm)
	}
	if len(sum) < e.StartKeySize {
		return nil, fmt.Errorf("crypto: start key hash shorter than declared size: %w", docerr.ErrUnsupportedCryptoAlgorithm)
	}
	return sum[:e.StartKeySize], nil
}

// odfDeriveKey runs PBKDF2-HMAC-SHA1 to produce the derived symmetric key.
func odfDeriveKey(startKey []byte, e *ManifestEntry) []byte {
	return pbkdf2.Key(startKey, e.KeySalt, e.KeyIterationCount, e.KeySize, sha1.New)
}

// odfDecryptEntry reads entry's ciphertext from the underlying storage,
// decrypts with the entry's algorithm, and strips PKCS#5/7 padding.
func odfDecryptEntry(s archive.Storage, e *ManifestEntry, startKey []byte) ([]byte, error) {
	src, err := s.Read(vpath.New(e.Path))
	if err != nil {
		return nil, err
	}
	cipherText, err := iox.ReadAll(src)
	if err != nil {
		return nil, err
	}
	derivedKey := odfDeriveKey(startKey, e)
	plain, err := odfDecryptBytes(e.Algorithm, derivedKey, e.IV, cipherText)
	if err != nil {
		return nil, err
	}
	return stripPKCS5Padding(plain), nil
}

func odfDecryptBytes(alg Algorithm, key, iv, cipherText []byte) ([]byte, error) {
	var block cipher.Block
	var err error
	switch alg {
	case AlgorithmAES256CBC:
		block, err = aes.NewCipher(key)
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(cipherText))
		cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, cipherText)
		return out, nil
	case AlgorithmTripleDESCBC:
		block, err = des.NewTripleDESCipher(key)
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(cipherText))
		cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, cipherText)
		return out, nil
	case AlgorithmBlowfishCFB:
		block, err = blowfish.NewCipher(key)
		if err != nil {
			return nil, err
		}
		out := make([]byte, len(cipherText))
		cipher.NewCFBDecrypter(block, iv).XORKeyStream(out, cipherText)
		return out, nil
	default:
		return nil, fmt.Errorf("crypto: %w", docerr.ErrUnsupportedCryptoAlgorithm)
	}
}

func stripPKCS5Padding(data []byte) []byte {
	if len(data) == 0 {
		return data
	}
	pad := int(data[len(data)-1])
	if pad <= 0 || pad > len(data) {
		return data
	}
	return data[:len(data)-pad]
}

func odfChecksumMatches(plain []byte, e *ManifestEntry) bool {
	var sum []byte
	switch e.ChecksumType {
	case ChecksumSHA1:
		h := sha1.Sum(plain)
		sum = h[:]
	case ChecksumSHA256:
		h := sha256.Sum256(plain)
		sum = h[:]
	case ChecksumSHA1_1K:
		h := sha1.Sum(firstN(plain, 1024))
		sum = h[:]
	case ChecksumSHA256_1K:
		h := sha256.Sum256(firstN(plain, 1024))
		sum = h[:]
	default:
		return false
	}
	return bytes.Equal(sum, e.Checksum)
}

func firstN(b []byte, n int) []byte {
	if len(b) < n {
		return b
	}
	return b[:n]
}

// odfStorage wraps a Storage, decrypting + raw-inflating every manifest-
// listed path on read and passing every other path straight through.
type odfStorage struct {
	archive.Storage
	manifest *Manifest
	startKey []byte
}

func (s *odfStorage) Read(p vpath.Path) (iox.Source, error) {
	entry, ok := s.manifest.entryFor(p)
	if !ok {
		return s.Storage.Read(p)
	}
	plain, err := odfDecryptEntry(s.Storage, entry, s.startKey)
	if err != nil {
		return nil, err
	}
	inflated, err := inflateRaw(plain)
	if err != nil {
		return nil, err
	}
	if int64(len(inflated)) != entry.Size {
		return nil, fmt.Errorf("crypto: %s: %w", p, docerr.ErrCorruptedContent)
	}
	return iox.NewStringSource(inflated), nil
}

func (s *odfStorage) Size(p vpath.Path) int64 {
	if entry, ok := s.manifest.entryFor(p); ok {
		return entry.Size
	}
	return s.Storage.Size(p)
}

// inflateRaw performs raw DEFLATE inflation (compress/flate, not the
// zlib-wrapped compress/zlib) per §9's explicit distinction.
func inflateRaw(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	return io.ReadAll(r)
}
