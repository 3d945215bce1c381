package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nguyentantai21042004/meeting-scribe/internal/app"
	"github.com/nguyentantai21042004/meeting-scribe/internal/config"
	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
	"github.com/nguyentantai21042004/meeting-scribe/internal/source"
	"github.com/nguyentantai21042004/meeting-scribe/pkg/executor"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	socketURL := flag.String("url", "", "relay URL (overrides client.socket_url)")
	sourceName := flag.String("source", "", "line source: demo, stdin, file or command")
	file := flag.String("file", "", "transcript file to tail (file source)")
	logPath := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	config.LoadDefaultEnv()

	cfg, err := config.LoadOptional(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *socketURL != "" {
		cfg.Client.SocketURL = *socketURL
	}
	if *sourceName != "" {
		cfg.Client.Source = *sourceName
	}
	if *file != "" {
		cfg.Client.File = *file
		if *sourceName == "" {
			cfg.Client.Source = config.SourceFile
		}
	}
	if args := flag.Args(); len(args) > 0 {
		cfg.Client.Command = args
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	// The dashboard owns the terminal, so logs go to a file or nowhere.
	log := logger.Discard()
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log = logger.NewWithWriter(cfg.Logging.Level, f, cfg.Logging.Format == "json")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	exec := executor.New()
	newSource := func() (source.Source, error) {
		return source.New(cfg.Client, os.Stdin, exec)
	}
	// Fail fast on a bad source instead of on the first start.
	if _, err := newSource(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid line source: %v\n", err)
		os.Exit(1)
	}

	m := app.New(ctx, app.Options{
		SocketURL:  cfg.Client.SocketURL,
		SourceName: cfg.Client.Source,
		NewSource:  newSource,
		Logger:     log,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Client.Source == config.SourceStdin {
		// stdin carries transcript lines; read keys from the terminal.
		opts = append(opts, tea.WithInputTTY())
	}

	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
