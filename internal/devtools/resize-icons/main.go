// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"flag"
	"fmt"

	"go.astrophena.name/base/cli"
	"go.astrophena.name/iconkit/internal/devtools/internal"
	"go.astrophena.name/iconkit/internal/mipmap"
)

func main() {
	cli.Main(new(app))
}

type app struct {
	quality float64
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.Float64Var(&a.quality, "quality", mipmap.DefaultQuality, "WebP quality, greater than 0 and at most 100.")
}

func (a *app) Run(ctx context.Context) error {
	return a.run(ctx, cli.GetEnv(ctx))
}

func (a *app) run(ctx context.Context, env *cli.Env) error {
	if len(env.Args) < 1 || len(env.Args) > 2 {
		return fmt.Errorf("%w: usage: go tool resize-icons <input_image_file> [res_dir]", cli.ErrInvalidArgs)
	}
	if a.quality <= 0 || a.quality > 100 {
		return fmt.Errorf("%w: -quality must be greater than 0 and at most 100, got %g", cli.ErrInvalidArgs, a.quality)
	}
	inputFile := env.Args[0]
	resDir := "res"
	if len(env.Args) == 2 {
		resDir = env.Args[1]
	}

	internal.Banner(env.Stdout, "Preparing Android app icons")

	if _, err := mipmap.Resize(ctx, inputFile, resDir, &mipmap.Options{
		Quality: float32(a.quality),
		Stdout:  env.Stdout,
	}); err != nil {
		return err
	}

	fmt.Fprintf(env.Stdout, "\nDone! Icons saved to %s\n", resDir)
	fmt.Fprintln(env.Stdout, "\nNext steps:")
	fmt.Fprintln(env.Stdout, "   1. Rebuild the project: ./gradlew clean assembleDebug")
	fmt.Fprintln(env.Stdout, "   2. Install on a device and check the icon")
	internal.Footer(env.Stdout, "")
	return nil
}
