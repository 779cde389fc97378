// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Resize-icons prepares the Android launcher icons.

# Usage

	$ go tool resize-icons [flags] <input_image_file> [res_dir]

This tool resizes the provided input image (ideally a square 1024x1024 PNG)
to every launcher density and saves the results as WebP images named
ic_launcher.webp and ic_launcher_round.webp in the mipmap-mdpi,
mipmap-hdpi, mipmap-xhdpi, mipmap-xxhdpi and mipmap-xxxhdpi
subdirectories of res_dir (default "res").

The res_dir directory must already exist; density subdirectories are
created as needed.

Example:

	$ go tool resize-icons output/20260105T123501_generated_icon.png app/src/main/res
*/
package main

import (
	_ "embed"

	"go.astrophena.name/base/cli"
)

//go:embed doc.go
var doc []byte

func init() {
	cli.SetDocComment(doc)
}
