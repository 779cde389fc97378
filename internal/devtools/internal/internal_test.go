// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package internal

import (
	"bytes"
	"strings"
	"testing"

	"go.astrophena.name/base/testutil"
)

func TestBanner(t *testing.T) {
	var buf bytes.Buffer
	Banner(&buf, "Icon generator")
	r := strings.Repeat("=", 70)
	testutil.AssertEqual(t, buf.String(), r+"\n  Icon generator\n"+r+"\n\n")
}

func TestFooter(t *testing.T) {
	r := strings.Repeat("=", 70)

	var buf bytes.Buffer
	Footer(&buf, "Done!")
	testutil.AssertEqual(t, buf.String(), "\n"+r+"\n  Done!\n"+r+"\n")

	buf.Reset()
	Footer(&buf, "")
	testutil.AssertEqual(t, buf.String(), "\n"+r+"\n")
}
