// Copyright 2016 - 2020 The excelize Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package style

import "strconv"

// halfPointsToPoints converts a w:sz value (half-points) to a CSS-style
// point measurement, per spec.md §4.6.
func halfPointsToPoints(v string) string {
	n, err := strconv.Atoi(v)
	if err != nil {
		return v
	}
	pts := float64(n) / 2
	return trimFloat(pts) + "pt"
}

// twipsToInches converts a w:ind value (1440ths of an inch) to inches, per
// spec.md §4.6.
func twipsToInches(v string) string {
	n, err := strconv.Atoi(v)
	if err != nil {
		return v
	}
	in := float64(n) / 1440
	return trimFloat(in) + "in"
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
