// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package internal contains common functionality for development tools.
package internal

import (
	"fmt"
	"io"
	"strings"
)

var rule = strings.Repeat("=", 70)

// Banner prints title framed by horizontal rules.
func Banner(w io.Writer, title string) {
	fmt.Fprintf(w, "%s\n  %s\n%s\n\n", rule, title, rule)
}

// Footer prints a closing rule, preceded by msg if it's not empty.
func Footer(w io.Writer, msg string) {
	fmt.Fprintln(w)
	if msg == "" {
		fmt.Fprintln(w, rule)
		return
	}
	fmt.Fprintf(w, "%s\n  %s\n%s\n", rule, msg, rule)
}
