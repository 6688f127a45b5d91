// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package eventsink carries the one logging seam the document core exposes
// to callers (§9): no package-level logger, just an interface a caller can
// install on a Document to observe non-fatal diagnostics (an unknown style
// name, a skipped malformed part). A nil Sink silently drops every event,
// matching the original's scattered LOG(WARNING) call sites without
// introducing an ambient global.
package eventsink

// Sink receives a single formatted diagnostic event.
type Sink interface {
	Warnf(format string, args ...interface{})
}

// Warn calls sink.Warnf if sink is non-nil; a nil sink drops the event.
func Warn(sink Sink, format string, args ...interface{}) {
	if sink != nil {
		sink.Warnf(format, args...)
	}
}
