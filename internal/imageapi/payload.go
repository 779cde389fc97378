// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package imageapi

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownShape is returned when an image result carries neither inline
// data nor a locator.
var ErrUnknownShape = errors.New("unknown image response shape")

// Kind describes what a Payload holds.
type Kind int

// Payload kinds, in the order ParsePayload checks them.
const (
	// InlineBytes is base64 image data from the b64_json field.
	InlineBytes Kind = iota + 1
	// RemoteReference is an http(s) URL to fetch the image from.
	RemoteReference
	// EmbeddedBase64 is base64 image data (possibly a data URI) that the
	// backend put into the url field.
	EmbeddedBase64
)

func (k Kind) String() string {
	switch k {
	case InlineBytes:
		return "inline bytes"
	case RemoteReference:
		return "remote reference"
	case EmbeddedBase64:
		return "embedded base64"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Payload is a single image returned by the API.
type Payload struct {
	Kind Kind
	// Data is base64 for InlineBytes, the URL for RemoteReference and the
	// raw locator string for EmbeddedBase64.
	Data string
	// RevisedPrompt is the prompt the backend actually used, if it reported
	// one.
	RevisedPrompt string
}

// ParsePayload classifies the b64_json and url fields of an image result.
func ParsePayload(b64JSON, url string) (Payload, error) {
	switch {
	case b64JSON != "":
		return Payload{Kind: InlineBytes, Data: b64JSON}, nil
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		return Payload{Kind: RemoteReference, Data: url}, nil
	case url != "":
		return Payload{Kind: EmbeddedBase64, Data: url}, nil
	}
	return Payload{}, fmt.Errorf("%w: expected b64_json or url, both are absent", ErrUnknownShape)
}

// Decode returns the image bytes of an InlineBytes or EmbeddedBase64
// payload.
func (p Payload) Decode() ([]byte, error) {
	switch p.Kind {
	case InlineBytes:
		return decodeBase64(p.Data)
	case EmbeddedBase64:
		return decodeBase64(stripDataURI(p.Data))
	case RemoteReference:
		return nil, errors.New("remote reference has no inline data")
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownShape, p.Kind)
}

// stripDataURI returns the part of a data URI after "base64,", or after the
// first comma when there is no such marker. Other strings are returned as
// is.
func stripDataURI(s string) string {
	if !strings.HasPrefix(s, "data:") {
		return s
	}
	if _, after, ok := strings.Cut(s, "base64,"); ok {
		return after
	}
	if _, after, ok := strings.Cut(s, ","); ok {
		return after
	}
	return s
}

// decodeBase64 decodes padded standard base64. Bytes outside the base64
// alphabet, such as line breaks, are dropped first.
func decodeBase64(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		switch {
		case 'A' <= r && r <= 'Z', 'a' <= r && r <= 'z', '0' <= r && r <= '9':
			return r
		case r == '+', r == '/', r == '=':
			return r
		}
		return -1
	}, s)
	if s == "" {
		return nil, errors.New("no image data")
	}
	return base64.StdEncoding.DecodeString(s)
}
