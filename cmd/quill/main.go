// Package main is the entry point for the quill editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hmori/quill/internal/app"
	"github.com/hmori/quill/internal/config"
	"github.com/hmori/quill/internal/term"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger := app.NopLogger()
	if opts.debug {
		logFile, err := os.OpenFile("quill.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: opening debug log: %v\n", err)
			return 1
		}
		defer logFile.Close()
		logger = app.NewLogger(logFile, app.LogLevelDebug)
	}

	session, err := term.Open(os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	// The terminal must come back on every exit path. A terminal that
	// cannot be restored is unusable, so that failure is fatal.
	defer func() {
		if err := session.Restore(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}()

	editor, err := app.New(session, app.Options{
		Filename: opts.filename,
		Config:   cfg,
		Logger:   logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\r\n", err)
		return 1
	}
	defer editor.Close()

	if err := editor.Run(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\r\n", err)
		return 1
	}
	return 0
}

type options struct {
	filename   string
	configPath string
	debug      bool
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.debug, "debug", false, "Write diagnostics to quill.log")
	flag.BoolVar(&opts.debug, "d", false, "Write diagnostics to quill.log (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "quill - a minimal terminal text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: quill [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  quill                  Open with an empty buffer\n")
		fmt.Fprintf(os.Stderr, "  quill notes.txt        Open a file\n")
		fmt.Fprintf(os.Stderr, "  quill -c quill.toml f  Open with explicit settings\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("quill %s\n", app.Version)
		os.Exit(0)
	}

	if opts.configPath == "" {
		opts.configPath = config.DefaultPath()
	}
	if flag.NArg() > 0 {
		opts.filename = flag.Arg(0)
	}
	return opts
}
