// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package imagesave

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.astrophena.name/base/testutil"
	"go.astrophena.name/iconkit/internal/imageapi"
)

func newSaver(t *testing.T) (*Saver, *bytes.Buffer) {
	var out bytes.Buffer
	return &Saver{Dir: filepath.Join(t.TempDir(), "output"), Stdout: &out}, &out
}

func readFile(t *testing.T, path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestSaveInline(t *testing.T) {
	s, _ := newSaver(t)
	got, err := s.Save(imageapi.Payload{Kind: imageapi.InlineBytes, Data: "iVBORw0KGgo="}, "icon.png")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(s.Dir, "icon.png")
	testutil.AssertEqual(t, got, want)
	testutil.AssertEqual(t, readFile(t, want), "\x89PNG\r\n\x1a\n")
}

func TestSaveRemoteReference(t *testing.T) {
	s, out := newSaver(t)
	const url = "https://example.com/x.png"
	got, err := s.Save(imageapi.Payload{Kind: imageapi.RemoteReference, Data: url}, "icon.png")
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, got, url)
	testutil.AssertEqual(t, readFile(t, filepath.Join(s.Dir, URLFile)), url)

	if _, err := os.Stat(filepath.Join(s.Dir, "icon.png")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("image file should not exist, got err = %v", err)
	}
	if !strings.Contains(out.String(), "curl -o "+filepath.Join(s.Dir, "icon.png")+" '"+url+"'") {
		t.Errorf("missing download hint in output:\n%s", out.String())
	}
}

func TestSaveEmbeddedBase64(t *testing.T) {
	cases := map[string]string{
		"data uri":    "data:image/png;base64,QUJD",
		"bare base64": "QUJD",
	}
	for name, locator := range cases {
		t.Run(name, func(t *testing.T) {
			s, _ := newSaver(t)
			got, err := s.Save(imageapi.Payload{Kind: imageapi.EmbeddedBase64, Data: locator}, "icon.png")
			if err != nil {
				t.Fatal(err)
			}
			testutil.AssertEqual(t, readFile(t, got), "ABC")
		})
	}
}

func TestSaveUndecodable(t *testing.T) {
	s, _ := newSaver(t)
	raw := strings.Repeat("!", 1500)
	_, err := s.Save(imageapi.Payload{Kind: imageapi.EmbeddedBase64, Data: raw}, "icon.png")

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("want *DecodeError, got %v", err)
	}
	testutil.AssertEqual(t, decodeErr.Dump, filepath.Join(s.Dir, ErrorFile))
	testutil.AssertEqual(t, readFile(t, decodeErr.Dump), raw[:1000])

	if _, err := os.Stat(filepath.Join(s.Dir, "icon.png")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("image file should not exist, got err = %v", err)
	}
}

func TestSaveMislabeledText(t *testing.T) {
	for _, locator := range []string{"Invalid", "QUI", "-_8="} {
		t.Run(locator, func(t *testing.T) {
			s, _ := newSaver(t)
			_, err := s.Save(imageapi.Payload{Kind: imageapi.EmbeddedBase64, Data: locator}, "icon.png")

			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("want *DecodeError, got %v", err)
			}
			testutil.AssertEqual(t, readFile(t, decodeErr.Dump), locator)
			if _, err := os.Stat(filepath.Join(s.Dir, "icon.png")); !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("image file should not exist, got err = %v", err)
			}
		})
	}
}

func TestSaveUnknownKind(t *testing.T) {
	s, _ := newSaver(t)
	_, err := s.Save(imageapi.Payload{}, "icon.png")
	if !errors.Is(err, imageapi.ErrUnknownShape) {
		t.Fatalf("want ErrUnknownShape, got %v", err)
	}
}

func TestNames(t *testing.T) {
	t1 := time.Date(2026, time.January, 5, 12, 35, 1, 0, time.UTC)
	t2 := t1.Add(time.Second)

	testutil.AssertEqual(t, GeneratedName(t1), "20260105T123501_generated_icon.png")
	if GeneratedName(t1) == GeneratedName(t2) {
		t.Errorf("names one second apart should differ")
	}
	testutil.AssertEqual(t, EditedName(t1, filepath.Join("output", "old_icon.webp")), "20260105T123501_edit_old_icon.png")
}

func TestSaveTwiceDoesNotOverwrite(t *testing.T) {
	s, _ := newSaver(t)
	t1 := time.Date(2026, time.January, 5, 12, 35, 1, 0, time.UTC)

	first, err := s.Save(imageapi.Payload{Kind: imageapi.InlineBytes, Data: "QUJD"}, GeneratedName(t1))
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Save(imageapi.Payload{Kind: imageapi.InlineBytes, Data: "REVG"}, GeneratedName(t1.Add(time.Second)))
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatalf("both saves went to %s", first)
	}
	testutil.AssertEqual(t, readFile(t, first), "ABC")
	testutil.AssertEqual(t, readFile(t, second), "DEF")
}
