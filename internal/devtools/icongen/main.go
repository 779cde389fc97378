// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.astrophena.name/base/cli"
	"go.astrophena.name/iconkit/internal/config"
	"go.astrophena.name/iconkit/internal/devtools/internal"
	"go.astrophena.name/iconkit/internal/imageapi"
	"go.astrophena.name/iconkit/internal/imagesave"
	"go.astrophena.name/iconkit/internal/logger"
)

func main() { cli.Main(new(app)) }

const defaultPrompt = `A vibrant and playful mobile app icon for a party games app.
Central element is a festive magician's top hat with colorful confetti
and sparkles bursting out from it. The hat should be black with a purple band.
Around it, add small playful elements like dice or cards floating in the air.
Bright gradient background with warm party colors (pink, purple, orange).
Modern flat design style with slight 3D effect and soft shadows.
The overall mood is fun, energetic, and friendly.
Square icon format with rounded corners, suitable for mobile app stores.
Clean, minimalist composition that looks good at small sizes.
IMPORTANT: The icon should fill the entire frame edge-to-edge with no white borders or margins.
The background gradient should extend to all edges of the image.`

type app struct {
	outDir  string
	envFile string

	// used in tests
	httpc *http.Client
	now   func() time.Time
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.StringVar(&a.outDir, "out", "output", "Write results to `dir`.")
	fs.StringVar(&a.envFile, "env-file", ".env", "Read variables missing from the environment from `file`.")
}

func (a *app) Run(ctx context.Context) error {
	return a.run(ctx, cli.GetEnv(ctx))
}

func (a *app) run(ctx context.Context, env *cli.Env) error {
	cmd, err := parseArgs(env.Args)
	if err != nil {
		return err
	}

	internal.Banner(env.Stdout, "Party in Pocket icon generator")

	cfg, err := config.Load(env.Getenv, a.envFile)
	if errors.Is(err, config.ErrMissingAPIKey) {
		fmt.Fprintln(env.Stderr, "Set the OPENAI_API_KEY environment variable:")
		fmt.Fprintln(env.Stderr, "   export OPENAI_API_KEY='your-api-key-here'")
		return err
	} else if err != nil {
		return err
	}

	client := &imageapi.Client{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		HTTPClient: a.httpc,
		Logf:       logger.To(env.Stdout),
	}
	saver := &imagesave.Saver{Dir: a.outDir, Stdout: env.Stdout}
	settings := cfg.Settings()

	now := time.Now
	if a.now != nil {
		now = a.now
	}

	var (
		p        imageapi.Payload
		filename string
	)
	switch cmd.name {
	case "edit":
		fmt.Fprintln(env.Stdout, "Editing image...")
		printSettings(env, cfg, cmd.prompt)
		fmt.Fprintln(env.Stdout, "Input images:")
		for _, path := range cmd.images {
			fmt.Fprintf(env.Stdout, "   • %s\n", path)
		}
		fmt.Fprintln(env.Stdout)

		filename = cmd.output
		if filename == "" {
			filename = imagesave.EditedName(now(), cmd.images[0])
		}
		p, err = client.Edit(ctx, cmd.images, cmd.prompt, settings)
		if err != nil {
			return err
		}
		fmt.Fprintln(env.Stdout, "Image edited!")
	default:
		prompt := cmd.prompt
		if prompt == "" {
			prompt = defaultPrompt
		}
		fmt.Fprintln(env.Stdout, "Generating a new icon...")
		printSettings(env, cfg, prompt)

		p, err = client.Generate(ctx, prompt, settings)
		if err != nil {
			return err
		}
		fmt.Fprintln(env.Stdout, "Image generated!")
		filename = imagesave.GeneratedName(now())
	}

	if p.RevisedPrompt != "" {
		fmt.Fprintf(env.Stdout, "Revised prompt: %s\n", p.RevisedPrompt)
	}
	if _, err := saver.Save(p, filename); err != nil {
		return err
	}

	internal.Footer(env.Stdout, "Done!")
	return nil
}

func printSettings(env *cli.Env, cfg *config.Config, prompt string) {
	fmt.Fprintln(env.Stdout, "Settings:")
	fmt.Fprintf(env.Stdout, "   • API: %s\n", cfg.BaseURL)
	fmt.Fprintf(env.Stdout, "   • Model: %s\n", cfg.Model)
	fmt.Fprintf(env.Stdout, "   • Size: %s\n", cfg.Size)
	fmt.Fprintf(env.Stdout, "   • Quality: %s\n", cfg.Quality)
	fmt.Fprintf(env.Stdout, "   • Moderation: %s\n", cfg.Moderation)
	fmt.Fprintf(env.Stdout, "\nPrompt:\n%s\n\n", strings.TrimSpace(prompt))
}
