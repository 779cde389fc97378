// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package imagesave writes image API results to disk.
package imagesave

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.astrophena.name/iconkit/internal/imageapi"
)

// Sidecar file names.
const (
	URLFile   = "icon_url.txt"
	ErrorFile = "error_response.txt"
)

// errorDumpLen is how many characters of an undecodable locator end up in
// ErrorFile.
const errorDumpLen = 1000

// timestampLayout is YYYYMMDDTHHMMSS.
const timestampLayout = "20060102T150405"

// GeneratedName returns the file name for a generated icon.
func GeneratedName(t time.Time) string {
	return t.Format(timestampLayout) + "_generated_icon.png"
}

// EditedName returns the file name for an edit of the image at path.
func EditedName(t time.Time, path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return t.Format(timestampLayout) + "_edit_" + stem + ".png"
}

// DecodeError is returned when a locator looked like embedded image data but
// could not be decoded.
type DecodeError struct {
	// Dump is the file with the beginning of the raw locator.
	Dump string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding base64 image: %v (response saved to %s)", e.Err, e.Dump)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Saver stores payloads in a directory.
type Saver struct {
	// Dir is the output directory. It is created if it doesn't exist.
	Dir string
	// Stdout receives progress messages. If nil, they are discarded.
	Stdout io.Writer
}

// Save writes p under filename in s.Dir and returns the path of the image,
// or the URL for a remote reference.
func (s *Saver) Save(p imageapi.Payload, filename string) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.Dir, filename)

	switch p.Kind {
	case imageapi.InlineBytes:
		b, err := p.Decode()
		if err != nil {
			return "", fmt.Errorf("decoding b64_json: %w", err)
		}
		return s.writeImage(path, b)
	case imageapi.RemoteReference:
		return s.saveURL(p.Data, path)
	case imageapi.EmbeddedBase64:
		b, err := p.Decode()
		if err != nil {
			return "", s.dump(p.Data, err)
		}
		return s.writeImage(path, b)
	}
	return "", fmt.Errorf("%w: %v", imageapi.ErrUnknownShape, p.Kind)
}

func (s *Saver) writeImage(path string, b []byte) (string, error) {
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", err
	}
	s.printf("Image saved: %s\n", path)
	return path, nil
}

func (s *Saver) saveURL(url, imagePath string) (string, error) {
	urlFile := filepath.Join(s.Dir, URLFile)
	if err := os.WriteFile(urlFile, []byte(url), 0o644); err != nil {
		return "", err
	}
	s.printf("URL: %s\n", url)
	s.printf("URL saved to: %s\n", urlFile)
	s.printf("\nDownload the image from the link or run:\n")
	s.printf("   curl -o %s '%s'\n", imagePath, url)
	return url, nil
}

func (s *Saver) dump(raw string, decodeErr error) error {
	if r := []rune(raw); len(r) > errorDumpLen {
		raw = string(r[:errorDumpLen])
	}
	errFile := filepath.Join(s.Dir, ErrorFile)
	if err := os.WriteFile(errFile, []byte(raw), 0o644); err != nil {
		return err
	}
	s.printf("Response saved for debugging: %s\n", errFile)
	return &DecodeError{Dump: errFile, Err: decodeErr}
}

func (s *Saver) printf(format string, args ...any) {
	if s.Stdout == nil {
		return
	}
	fmt.Fprintf(s.Stdout, format, args...)
}
