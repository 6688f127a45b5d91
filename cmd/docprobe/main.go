// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Command docprobe is a thin diagnostic binary over pkg/docmodel: it opens
// a document, decrypts it if a password is supplied, and prints the probed
// FileMeta (type, encryption, entries) to stdout. It exists to exercise the
// facade end to end, not as a supported tool of this module.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/opendocument-go/docmodel/pkg/docmodel"
)

func main() {
	password := flag.String("password", "", "password to unwrap an encrypted document")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-password PASS] FILE\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	doc := docmodel.New()
	if !doc.Open(path) {
		fmt.Fprintf(os.Stderr, "docprobe: open %s: %v\n", path, doc.LastError())
		os.Exit(1)
	}
	defer doc.Close()

	m := doc.Meta()
	if m.Encrypted {
		if *password == "" {
			fmt.Fprintf(os.Stderr, "docprobe: %s is encrypted; pass -password\n", path)
			os.Exit(1)
		}
		if !doc.Decrypt(*password) {
			fmt.Fprintf(os.Stderr, "docprobe: decrypt %s: %v\n", path, doc.LastError())
			os.Exit(1)
		}
		m = doc.Meta()
	}

	fmt.Printf("type:      %s\n", m.Type)
	fmt.Printf("encrypted: %v\n", m.Encrypted)
	fmt.Printf("entries:   %d\n", m.EntryCount())
	for _, e := range m.Entries {
		fmt.Printf("  - %-20s rows=%-6d cols=%-4d %s\n", e.Name, e.Rows, e.Columns, e.Notes)
	}
}
