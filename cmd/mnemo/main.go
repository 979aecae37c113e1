// Copyright 2025 The Mnemo Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the mnemo association server and CLI.

Mnemo cuts a word into the two halves that are easiest to remember and lists
the real words that sound like each half. Pairs are graded on how well
known and how similar sounding their associations are, and balanced splits
win over lopsided ones.

# Usage

Start the HTTP API:

	mnemo serve --addr 127.0.0.1:8390

Serve msgpack over stdin/stdout for editor integrations:

	mnemo ipc

Try a word from the shell, or open the interactive prompt:

	mnemo split pavement --limit 5
	mnemo repl

Look up the closest real word and its definitions:

	mnemo define paralize

# Configuration

The TOML config is created with defaults on first run under the user config
directory (mnemo/config.toml) and can be overridden with --config:

	[server]
	addr = "127.0.0.1:8390"
	default_limit = 10
	max_limit = 64

	[lookup]
	base_url = "https://api.datamuse.com"
	cache_size = 2048

	[search]
	min_fragment_length = 3
	min_word_length = 5

The serve and ipc commands reload the [server] section when the file changes.
*/
package main

import (
	"os"

	"github.com/bastiangx/mnemo/cmd/mnemo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
