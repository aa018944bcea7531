// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package xl9555 is a container for the XL9555 I/O expander driver, found in
// the xl9555 subdirectory, and the packages and tools built around it:
//
//   - pinscreen renders the 16 line levels to a terminal or a PNG image.
//   - cmd/xl9555 reads and drives the chip from the command line.
package xl9555
