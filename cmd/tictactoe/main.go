package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ctchen222/bitboard-tic-tac-toe/internal/bot"
	"ctchen222/bitboard-tic-tac-toe/internal/config"
	"ctchen222/bitboard-tic-tac-toe/internal/logger"
	"ctchen222/bitboard-tic-tac-toe/internal/telemetry"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.yml", "path to the YAML config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-config file] [play | selfplay [flags] | analyze [flags] position]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize telemetry
	shutdown, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	// Initialize logging; stdout belongs to the board
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to parse log level: %v", err)
	}
	var logOut io.Writer = os.Stderr
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("failed to open log file: %v", err)
		}
		defer f.Close()
		logOut = f
	}
	l := logger.Init(logOut, level)

	engine := bot.NewEngine(bot.Options{Pruning: cfg.Search.Pruning}, bot.WithLogger(l))

	args := flag.Args()
	command := "play"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	switch command {
	case "play":
		err = play(ctx, cfg, engine, os.Stdin, os.Stdout, l)
	case "selfplay":
		var lost bool
		lost, err = selfplay(ctx, engine, args, os.Stdout, l)
		if err == nil && lost {
			return 1
		}
	case "analyze":
		err = analyze(ctx, engine, args, os.Stdout)
	default:
		flag.Usage()
		return 2
	}
	if err != nil {
		l.Error("command failed", "command", command, "error", err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
