// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"fmt"
	"strings"

	"go.astrophena.name/base/cli"
)

// command is a parsed subcommand invocation.
type command struct {
	name   string // "generate" or "edit"
	prompt string
	images []string
	output string
}

// parseArgs parses the subcommand and its options. Options that take several
// values consume arguments until the next one that starts with "-".
func parseArgs(args []string) (*command, error) {
	cmd := &command{name: "generate"}
	if len(args) == 0 {
		return cmd, nil
	}

	switch args[0] {
	case "generate", "edit":
		cmd.name = args[0]
	default:
		return nil, fmt.Errorf("%w: unknown command %q", cli.ErrInvalidArgs, args[0])
	}

	var promptSet, imagesSet bool
	rest := args[1:]
	for len(rest) > 0 {
		opt := rest[0]
		rest = rest[1:]

		name, inline, hasInline := strings.Cut(opt, "=")
		values := func() []string {
			if hasInline {
				return []string{inline}
			}
			var vals []string
			for len(rest) > 0 && !isOption(rest[0]) {
				vals = append(vals, rest[0])
				rest = rest[1:]
			}
			return vals
		}

		switch {
		case name == "--prompt" || name == "-p":
			words := values()
			if len(words) == 0 {
				return nil, fmt.Errorf("%w: %s needs at least one word", cli.ErrInvalidArgs, name)
			}
			cmd.prompt = strings.Join(words, " ")
			promptSet = true
		case (name == "--images") && cmd.name == "edit":
			cmd.images = values()
			if len(cmd.images) == 0 {
				return nil, fmt.Errorf("%w: --images needs at least one path", cli.ErrInvalidArgs)
			}
			imagesSet = true
		case (name == "--output" || name == "-o") && cmd.name == "edit":
			vals := values()
			if len(vals) != 1 {
				return nil, fmt.Errorf("%w: %s needs exactly one file name", cli.ErrInvalidArgs, name)
			}
			cmd.output = vals[0]
		default:
			return nil, fmt.Errorf("%w: unexpected argument %q for %s", cli.ErrInvalidArgs, opt, cmd.name)
		}
	}

	if cmd.name == "edit" {
		if !imagesSet {
			return nil, fmt.Errorf("%w: edit requires --images", cli.ErrInvalidArgs)
		}
		if !promptSet {
			return nil, fmt.Errorf("%w: edit requires --prompt", cli.ErrInvalidArgs)
		}
	}
	return cmd, nil
}

func isOption(arg string) bool {
	return len(arg) > 1 && strings.HasPrefix(arg, "-")
}
