// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Package imageapi talks to an OpenAI-compatible image API.

Backends differ in which optional parameters they accept. Each operation
therefore has an ordered list of parameter tiers: the richest request is
sent first, and when the backend rejects it the next, plainer tier is tried.
*/
package imageapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"go.astrophena.name/base/request"
	"go.astrophena.name/iconkit/internal/logger"
)

// DefaultBaseURL is the API endpoint used when none is configured.
const DefaultBaseURL = "https://api.openai.com/v1"

// ErrImageNotFound is returned by Edit when an input image does not exist.
var ErrImageNotFound = errors.New("image not found")

// Settings are the generation parameters sent with each request.
type Settings struct {
	Model      string
	Size       string
	Quality    string
	Moderation string
}

// Client is an image API client.
type Client struct {
	// APIKey is sent as a bearer token.
	APIKey string
	// BaseURL is the API root, like "https://api.openai.com/v1". If empty,
	// DefaultBaseURL is used.
	BaseURL string
	// HTTPClient is a HTTP client for making requests. If nil,
	// request.DefaultClient is used.
	HTTPClient *http.Client
	// Logf is a logger for retry warnings. If nil, log.Printf is used.
	Logf logger.Logf
}

// APIError is a non-successful response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("image API returned %d: %s", e.StatusCode, e.Message)
}

// rejected reports whether err means that the backend refused the request
// parameters, so a plainer tier may succeed.
func rejected(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.StatusCode {
	case http.StatusBadRequest, http.StatusNotFound, http.StatusUnsupportedMediaType, http.StatusUnprocessableEntity:
		return true
	}
	return false
}

// Generate creates an image from a text prompt.
func (c *Client) Generate(ctx context.Context, prompt string, s Settings) (Payload, error) {
	basic := map[string]any{
		"model":  s.Model,
		"prompt": prompt,
		"size":   s.Size,
		"n":      1,
	}
	full := maps.Clone(basic)
	if s.Quality != "" {
		full["quality"] = s.Quality
	}
	if s.Moderation != "" {
		full["moderation"] = s.Moderation
	}
	tiers := []map[string]any{full}
	if len(full) != len(basic) {
		tiers = append(tiers, basic)
	}

	res, err := tryTiers(c, tiers, func(body map[string]any) (*imagesResponse, error) {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		return c.post(ctx, "/images/generations", "application/json", bytes.NewReader(b))
	})
	if err != nil {
		return Payload{}, fmt.Errorf("generating image: %w", err)
	}
	return res.payload()
}

type formField struct {
	name, value string
}

// Edit edits one or more images according to a prompt.
func (c *Client) Edit(ctx context.Context, images []string, prompt string, s Settings) (Payload, error) {
	if len(images) == 0 {
		return Payload{}, errors.New("editing image: no input images")
	}
	for _, path := range images {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return Payload{}, fmt.Errorf("%w: %s", ErrImageNotFound, path)
		} else if err != nil {
			return Payload{}, err
		}
	}

	files := make([]*os.File, 0, len(images))
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()
	for _, path := range images {
		f, err := os.Open(path)
		if err != nil {
			return Payload{}, err
		}
		files = append(files, f)
	}

	tiers := [][]formField{
		{
			{"prompt", prompt},
			{"size", s.Size},
			{"model", s.Model},
			{"n", "1"},
		},
		{
			{"prompt", prompt},
			{"n", "1"},
		},
	}

	res, err := tryTiers(c, tiers, func(fields []formField) (*imagesResponse, error) {
		body, contentType, err := multipartBody(files, fields)
		if err != nil {
			return nil, err
		}
		return c.post(ctx, "/images/edits", contentType, body)
	})
	if err != nil {
		return Payload{}, fmt.Errorf("editing image: %w", err)
	}
	return res.payload()
}

// tryTiers calls do with each tier in order until one succeeds or an error
// other than a parameter rejection occurs.
func tryTiers[T any](c *Client, tiers []T, do func(T) (*imagesResponse, error)) (*imagesResponse, error) {
	var err error
	for i, tier := range tiers {
		var res *imagesResponse
		res, err = do(tier)
		if err == nil {
			return res, nil
		}
		if !rejected(err) || i == len(tiers)-1 {
			break
		}
		c.logf("warning: %v", err)
		c.logf("retrying with basic parameters...")
	}
	return nil, err
}

func multipartBody(files []*os.File, fields []formField) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fieldName := "image"
	if len(files) > 1 {
		fieldName = "image[]"
	}
	for _, f := range files {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, "", err
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fieldName, filepath.Base(f.Name())))
		h.Set("Content-Type", contentTypeOf(f.Name()))
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, f); err != nil {
			return nil, "", err
		}
	}
	for _, field := range fields {
		if err := mw.WriteField(field.name, field.value); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

func contentTypeOf(path string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); ct != "" {
		return ct
	}
	return "image/png"
}

type imagesResponse struct {
	Created int64 `json:"created"`
	Data    []struct {
		B64JSON       string `json:"b64_json"`
		URL           string `json:"url"`
		RevisedPrompt string `json:"revised_prompt"`
	} `json:"data"`
}

func (r *imagesResponse) payload() (Payload, error) {
	if len(r.Data) == 0 {
		return Payload{}, fmt.Errorf("%w: response has no data", ErrUnknownShape)
	}
	d := r.Data[0]
	p, err := ParsePayload(d.B64JSON, d.URL)
	if err != nil {
		return Payload{}, err
	}
	p.RevisedPrompt = d.RevisedPrompt
	return p, nil
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) post(ctx context.Context, path, contentType string, body io.Reader) (*imagesResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	res, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: res.StatusCode, Message: errorMessage(b)}
	}

	var ir imagesResponse
	if err := json.Unmarshal(b, &ir); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &ir, nil
}

// errorMessage extracts a human-readable message from an error body.
func errorMessage(b []byte) string {
	var er errorResponse
	if err := json.Unmarshal(b, &er); err == nil && er.Error.Message != "" {
		return er.Error.Message
	}
	const snippetLen = 200
	if len(b) == 0 {
		return "(empty body)"
	}
	if len(b) > snippetLen {
		return string(b[:snippetLen]) + "..."
	}
	return string(b)
}

func (c *Client) endpoint(path string) string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimSuffix(base, "/") + path
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return request.DefaultClient
}

func (c *Client) logf(format string, args ...any) {
	if c.Logf == nil {
		log.Printf(format, args...)
		return
	}
	c.Logf(format, args...)
}
