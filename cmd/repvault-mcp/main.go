package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/claude/repvault/internal/cli"
	"github.com/claude/repvault/internal/config"
	repmcp "github.com/claude/repvault/internal/mcp"
	"github.com/claude/repvault/internal/storage"
	"github.com/claude/repvault/internal/tracker"
	"github.com/claude/repvault/internal/vault"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.repvault)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("repvault-mcp", Version)
		return
	}

	// Stdout carries the MCP protocol; logging goes to stderr.
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg = config.Default()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "repvault-mcp: failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))

	pass, err := cli.Passphrase()
	if err != nil {
		log.Error("passphrase", "error", err)
		os.Exit(1)
	}
	session, err := vault.NewSession(pass)
	if err != nil {
		log.Error("vault session", "error", err)
		os.Exit(1)
	}

	records := storage.NewRecordStore(cfg.Data.StorePath())
	defer records.Close()
	docs := storage.NewDocumentStore(records, session)

	tr := tracker.New(docs, log)
	if err := tr.Load(context.Background()); err != nil {
		if errors.Is(err, vault.ErrDecrypt) {
			log.Error("wrong passphrase or damaged vault file", "path", cfg.Data.StorePath())
		} else {
			log.Error("failed to open vault", "path", cfg.Data.StorePath(), "error", err)
		}
		os.Exit(1)
	}
	log.Info("vault opened", "path", cfg.Data.StorePath())

	s := repmcp.New(tr, Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server stopped", "error", err)
		os.Exit(1)
	}
}
