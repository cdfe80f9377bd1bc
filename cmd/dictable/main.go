// Copyright 2025 The dictable Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the dictable search server and CLI.

dictable loads a dictionary table (headers plus rows of text cells) and makes
it searchable as you type. Every cell is lowercased and stripped of combining
diacritics, split on whitespace, and indexed under each word and each of its
first ten prefixes. A search must match every one of its words, where a word
matches any indexed key containing it, so "kkie" finds "hokkien" and "lang"
finds "lâng".

# Usage

Search once:

	dictable query good person
	dictable query --mode prefix --json hok

Search interactively, line by line or full screen:

	dictable repl
	dictable tui

Serve searches to another process over msgpack:

	dictable serve --data https://example.com/PH.json

Convert a dataset to msgpack for faster loads:

	dictable convert PH.json PH.msgpack

# Configuration

Runtime configuration lives in a TOML file, created with defaults on first
run at ~/.config/dictable/config.toml:

	[search]
	debounce_ms = 150
	prefix_cap = 10

	[dataset]
	source = "PH.json"
	fetch_timeout_ms = 3000
	watch = false

	[server]
	max_limit = 200

	[cli]
	default_limit = 50
	default_mode = "substring"

--data and --watch override the dataset section, --config picks another file.

# IPC Protocol

The server reads msgpack requests from stdin and writes one msgpack response
per request to stdout:

	{"id": "req1", "q": "good", "l": 20}
	{"id": "req1", "r": [["hó", "good"]], "c": 1, "n": 1, "t": 85, "sid": "..."}

See package server for every action.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/dictable/internal/commands"
	"github.com/charmbracelet/log"
)

const Version = "0.1.0-beta"

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main only manages the flow; commands print nothing on failure, errors
// are logged here.
func main() {
	sigHandler()
	if err := commands.Execute(context.Background(), Version); err != nil {
		log.Fatalf("dictable: %v", err)
	}
}
