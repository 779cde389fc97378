// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Icongen generates or edits the app icon with an OpenAI-compatible image API.

# Usage

	$ go tool icongen [flags] [generate [--prompt words...]]
	$ go tool icongen [flags] edit --images paths... --prompt words... [--output name]

Without a subcommand, icongen generates an icon with the built-in prompt.
Prompt words don't need quoting: everything up to the next flag is joined
with spaces.

Results are written to the output directory (default "output") as
TIMESTAMP_generated_icon.png or TIMESTAMP_edit_NAME.png, where NAME is the
first input image without its extension. If the API returns a URL instead of
image data, the URL is written to icon_url.txt. If the returned data can't be
decoded, its beginning is written to error_response.txt.

# Environment Variables

  - OPENAI_API_KEY: API key (required).
  - OPENAI_BASE_URL: API root (default "https://api.openai.com/v1").
  - IMAGE_MODEL: model name (default "dall-e-3").
  - IMAGE_SIZE: image size (default "1024x1024").
  - IMAGE_QUALITY: image quality (default "standard").
  - IMAGE_MODERATION: moderation level (default "low").

Variables can also be set in a .env file (see the -env-file flag); the
environment takes precedence.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/base/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
