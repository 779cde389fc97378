// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package mipmap produces Android launcher icons in every screen density.
package mipmap

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
	"go.astrophena.name/base/logger"
)

// ErrResRootMissing is returned when the resource directory doesn't exist.
var ErrResRootMissing = errors.New("res directory not found")

// ErrInvalidQuality is returned when the WebP quality is outside 0–100.
var ErrInvalidQuality = errors.New("quality must be between 0 and 100")

// Density is an Android screen density bucket.
type Density struct {
	Name string
	Size int // icon width and height in pixels
}

// Densities lists the launcher icon sizes, from mdpi to xxxhdpi.
var Densities = []Density{
	{"mdpi", 48},
	{"hdpi", 72},
	{"xhdpi", 96},
	{"xxhdpi", 144},
	{"xxxhdpi", 192},
}

// Icon file names written into each mipmap directory.
const (
	LauncherFile      = "ic_launcher.webp"
	LauncherRoundFile = "ic_launcher_round.webp"
)

// DefaultQuality is the WebP quality used when Options don't set one.
const DefaultQuality = 95

// Options configure Resize.
type Options struct {
	// Quality is the lossy WebP quality, up to 100. Zero means
	// DefaultQuality.
	Quality float32
	// Stdout receives progress messages. If nil, they are discarded.
	Stdout io.Writer
}

// Resize writes every density of the image at src into resRoot and returns
// the paths of the written files.
func Resize(ctx context.Context, src, resRoot string, opts *Options) ([]string, error) {
	if opts == nil {
		opts = &Options{}
	}
	quality := opts.Quality
	if quality < 0 || quality > 100 {
		return nil, fmt.Errorf("%w, got %g", ErrInvalidQuality, quality)
	}
	if quality == 0 {
		quality = DefaultQuality
	}
	out := opts.Stdout
	if out == nil {
		out = io.Discard
	}

	if _, err := os.Stat(src); err != nil {
		return nil, fmt.Errorf("input image: %w", err)
	}
	fmt.Fprintf(out, "Loading icon: %s\n", src)

	img, err := imaging.Open(src)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", src, err)
	}

	b := img.Bounds()
	if b.Dx() != b.Dy() {
		logger.Warn(ctx, "source image is not square",
			slog.String("path", src),
			slog.Int("width", b.Dx()),
			slog.Int("height", b.Dy()),
		)
		fmt.Fprintf(out, "Warning: image is not square (%dx%d), a square image is recommended\n", b.Dx(), b.Dy())
	}
	fmt.Fprintf(out, "Source size: %dx%d\n", b.Dx(), b.Dy())
	fmt.Fprintf(out, "Color mode: %s\n", colorModelName(img.ColorModel()))

	if fi, err := os.Stat(resRoot); errors.Is(err, os.ErrNotExist) || (err == nil && !fi.IsDir()) {
		return nil, fmt.Errorf("%w: %s", ErrResRootMissing, resRoot)
	} else if err != nil {
		return nil, err
	}

	encOpts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, quality)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "\nGenerating icons:\n")
	var written []string
	for _, d := range Densities {
		dir := filepath.Join(resRoot, "mipmap-"+d.Name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return written, err
		}

		resized := imaging.Resize(img, d.Size, d.Size, imaging.Lanczos)
		var buf bytes.Buffer
		if err := webp.Encode(&buf, resized, encOpts); err != nil {
			return written, fmt.Errorf("encoding %s icon: %w", d.Name, err)
		}

		for _, name := range []string{LauncherFile, LauncherRoundFile} {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return written, err
			}
			written = append(written, path)
		}
		fmt.Fprintf(out, "   %-8s (%dx%dpx) -> %s\n", d.Name, d.Size, d.Size, filepath.Join(dir, LauncherFile))
	}

	return written, nil
}

func colorModelName(m color.Model) string {
	if _, ok := m.(color.Palette); ok {
		return "Paletted"
	}
	switch m {
	case color.RGBAModel:
		return "RGBA"
	case color.RGBA64Model:
		return "RGBA64"
	case color.NRGBAModel:
		return "NRGBA"
	case color.NRGBA64Model:
		return "NRGBA64"
	case color.AlphaModel:
		return "Alpha"
	case color.Alpha16Model:
		return "Alpha16"
	case color.GrayModel:
		return "Gray"
	case color.Gray16Model:
		return "Gray16"
	case color.CMYKModel:
		return "CMYK"
	case color.YCbCrModel:
		return "YCbCr"
	case color.NYCbCrAModel:
		return "NYCbCrA"
	}
	return "unknown"
}
