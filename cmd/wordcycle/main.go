// Copyright 2026 The WordCycle Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the completion cycling server and CLI [DBG] application.

Note: This is a BETA release. APIs and functionality may rapidly change.

WordCycle provides inline word completion drawn from the text the user is
already editing. It scans the host buffer for words matching the typed
prefix, both exact-prefix and fuzzy subsequence matches, and lets the user
cycle through them in place. It can operate as a MessagePack IPC server for
integration with text editors, or as a CLI application for testing and
debugging.

The engine keeps no dictionary and no persistent index: every completion
chain starts with a fresh scan of the buffer the host sent, so candidates
always reflect the live document. Repeated cycle requests with an unchanged
prefix keep the collected candidate ring and just step through it.

# Usage

Start the server with default settings:

	wordcycle

Enable debug logging:

	wordcycle -d

Run in CLI mode for interactive testing, loading a text file as the buffer:

	wordcycle -c -f notes.txt

# Configuration

Runtime configuration is managed through a TOML file:

	[cycle]
	sort_order = 1
	candidates_limit = 12
	distance_limit = 0
	skip_fuzzy_if_exact = false
	remove_trailing_word_part = false

sort_order 0 ranks candidates alphabetically, 1 by distance from the
cursor. distance_limit restricts the scan to a byte radius around the
cursor (0 searches the whole buffer) and is stored in bytes while the ops
surface speaks kilobytes. The config file is automatically created with
defaults if it doesn't exist, and damaged files are salvaged value by
value. With -watch the server picks up external edits to the file between
requests.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. Cycle requests
are processed synchronously with microsecond timing information included in
responses.

Send a cycle request with the buffer and cursor:

	{"id": "req1", "op": "cycle_forward", "t": "foobar foo fo", "cur": 13}

Receive the edit to apply as a single undo action:

	{"id": "req1", "status": "ok", "rs": 11, "re": 13, "t": "foobar", "cur": 17, "n": 3, "us": 213}

Config requests allow runtime adjustment of the active settings:

	{"id": "cfg1", "op": "config", "cl": 24, "sf": true}
	{"id": "cfg2", "op": "get_config"}

# Server Mode

The default mode starts a MessagePack IPC server that processes cycle
requests from stdin and writes responses to stdout. This design enables
integration with text editors and other applications through process
communication.

	srv := server.NewServer(cfg, cfgPath)
	err := srv.Start()

The server automatically handles request parsing, validation, and response
formatting. The host owns the buffer; the server answers with the replace
span and the inserted text and never touches host state itself.

# CLI Mode

CLI mode provides an interactive interface for testing and debugging the
cycling behavior. It types words into an in-memory buffer and steps through
completions with human-readable output.

	inputHandler := cli.NewInputHandler(text, cfg, limit)
	err := inputHandler.Start()

This mode is primarily intended for development and testing new features
before deploying to server mode. It runs the same session logic as the
server but against a local document.

# Command Line Flags

The following flags control application behavior:

	-version
	    Show current version
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-config string
	    Path to the TOML settings file (default resolved per platform)
	-f string
	    Text file loaded as the CLI buffer (CLI mode only)
	-limit int
	    Number of words the CLI w command lists
	-watch
	    Reload the settings file when it changes on disk

The application resolves the settings path relative to the user config
directory, falling back to the executable location.
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/ysandre/wordcycle/internal/cli"
	"github.com/ysandre/wordcycle/internal/logger"
	"github.com/ysandre/wordcycle/internal/utils"
	"github.com/ysandre/wordcycle/pkg/config"
	"github.com/ysandre/wordcycle/pkg/server"
)

const (
	Version = "0.3.0-beta"
	AppName = "wordcycle"
	gh      = "https://github.com/ysandre/wordcycle"
)

// sampleText seeds the CLI buffer when no -f file is given.
const sampleText = "the quick brown fox jumps over the lazy dog while the " +
	"quicksilver quail quietly queues behind the quirky quokka "

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

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()

	// custom Flags
	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	configPath := flag.String("config", "", "Path to the TOML settings file")
	docFile := flag.String("f", "", "Text file loaded as the CLI buffer")
	listLimit := flag.Int("limit", 10, "Number of words the CLI w command lists")
	watchConfig := flag.Bool("watch", false, "Reload the settings file when it changes on disk")

	flag.Parse()

	if *showVersion {
		vlog := logger.Default("")

		styles := log.DefaultStyles()
		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
			Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		vlog.SetStyles(styles)

		vlog.Print("")
		vlog.Print("[ WordCycle ] Cycles through completions from your own buffer!")
		vlog.Print("", "version", Version)
		vlog.Print("")
		vlog.Print("use -h or --help to see available options")
		vlog.Print("Github Repo", "gh", gh)

		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, cfgPath := config.LoadWithPriority(*configPath)
	log.Debugf("Using config file: (%s)", cfgPath)

	// CLI would be mainly used for testing and dbg purposes.
	// Any new features or changes should be tested in CLI mode first.
	if *cliMode {
		log.SetReportTimestamp(false)

		text := sampleText
		if *docFile != "" {
			data, err := os.ReadFile(*docFile)
			if err != nil {
				log.Fatalf("Failed to read document %s: %v", *docFile, err)
			}
			text = string(data)
		}

		log.Debug("Input info:", "buffer", len(text), "limit", *listLimit)
		inputHandler := cli.NewInputHandler(text, cfg, *listLimit)
		if err := inputHandler.Start(); err != nil && err != io.EOF {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(cfg, cfgPath)
	if *watchConfig {
		if err := srv.WatchConfig(); err != nil {
			log.Warnf("Config watcher unavailable: %v", err)
		} else {
			defer srv.Close()
		}
	}

	showStartupInfo(cfgPath)

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(configPath string) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println(" WordCycle ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("config file: ( %s )", utils.AbsolutePath(configPath))
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
