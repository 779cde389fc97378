// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package logger

import (
	"bytes"
	"testing"

	"go.astrophena.name/base/testutil"
)

func TestTo(t *testing.T) {
	var buf bytes.Buffer
	logf := To(&buf)
	logf("warning: %v", "rejected")
	logf("retrying with basic parameters...")
	testutil.AssertEqual(t, buf.String(), "warning: rejected\nretrying with basic parameters...\n")
}
