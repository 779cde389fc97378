// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package logger defines a type for writing progress and retry notices.
package logger

import (
	"fmt"
	"io"
)

// Logf is the basic logger type: a printf-like func. Like log.Printf, the
// format need not end in a newline. Logf functions must be safe for concurrent
// use.
type Logf func(format string, args ...any)

// To returns a Logf that writes each message to w on its own line.
func To(w io.Writer) Logf {
	return func(format string, args ...any) {
		fmt.Fprintf(w, format+"\n", args...)
	}
}
