// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package config loads the image API configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"go.astrophena.name/iconkit/internal/imageapi"
)

// ErrMissingAPIKey is returned when OPENAI_API_KEY is not set.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not set")

// Config is the image API configuration.
type Config struct {
	APIKey     string `mapstructure:"OPENAI_API_KEY"`
	BaseURL    string `mapstructure:"OPENAI_BASE_URL"`
	Model      string `mapstructure:"IMAGE_MODEL"`
	Size       string `mapstructure:"IMAGE_SIZE"`
	Quality    string `mapstructure:"IMAGE_QUALITY"`
	Moderation string `mapstructure:"IMAGE_MODERATION"`
}

var defaults = map[string]string{
	"OPENAI_BASE_URL":  imageapi.DefaultBaseURL,
	"IMAGE_MODEL":      "dall-e-3",
	"IMAGE_SIZE":       "1024x1024",
	"IMAGE_QUALITY":    "standard",
	"IMAGE_MODERATION": "low",
}

var keys = []string{
	"OPENAI_API_KEY",
	"OPENAI_BASE_URL",
	"IMAGE_MODEL",
	"IMAGE_SIZE",
	"IMAGE_QUALITY",
	"IMAGE_MODERATION",
}

// Load reads the configuration using getenv. If envFile names an existing
// dotenv file, its values are used for variables that getenv doesn't
// provide.
//
// An empty variable counts as unset. Set IMAGE_QUALITY or IMAGE_MODERATION
// to "None" to leave that parameter out of requests.
func Load(getenv func(string) string, envFile string) (*Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("reading %s: %w", envFile, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if getenv != nil {
		for _, key := range keys {
			if val := getenv(key); val != "" {
				v.Set(key, val)
			}
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if c.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if c.BaseURL == "" {
		c.BaseURL = imageapi.DefaultBaseURL
	}
	c.Quality = optional(c.Quality)
	c.Moderation = optional(c.Moderation)
	return &c, nil
}

// optional maps the "None" placeholder to an empty, unset value.
func optional(s string) string {
	if s == "None" {
		return ""
	}
	return s
}

// Settings returns the generation settings.
func (c *Config) Settings() imageapi.Settings {
	return imageapi.Settings{
		Model:      c.Model,
		Size:       c.Size,
		Quality:    c.Quality,
		Moderation: c.Moderation,
	}
}
