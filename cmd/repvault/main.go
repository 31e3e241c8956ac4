package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/repvault/internal/cli"
	"github.com/claude/repvault/internal/config"
	"github.com/claude/repvault/internal/storage"
	"github.com/claude/repvault/internal/tracker"
	"github.com/claude/repvault/internal/vault"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "log":
		cmdLog(args)
	case "workouts":
		cmdWorkouts(args)
	case "exercise":
		cmdExercise(args)
	case "measure":
		cmdMeasure(args)
	case "streak":
		cmdStreak(args)
	case "stats":
		cmdStats(args)
	case "prs":
		cmdPRs(args)
	case "settings":
		cmdSettings(args)
	case "backup":
		cmdBackup(args)
	case "restore":
		cmdRestore(args)
	case "version":
		fmt.Println("repvault", Version)
	case "help", "-h", "-help", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "repvault: unknown command %q\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: repvault <command> [flags]

Commands:
  log        log a workout (-set "Name:reps@weight[:ss]", repeatable)
  workouts   list workouts, or delete one with -delete <id>
  exercise   manage the exercise library (add, rename, toggle, delete, list)
  measure    manage body measurements (add, delete, list)
  streak     show the weekly workout streak
  stats      show workout totals
  prs        show personal records
  settings   show or change settings
  backup     export an encrypted backup file
  restore    replace all data from a backup file
  version    print version and exit

The vault passphrase is read from REPVAULT_PASSPHRASE or prompted for.
Each command accepts -config <file>; without it data lives under ~/.repvault.
`)
}

// app bundles everything a subcommand needs after the vault is open.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	session *vault.Session
	records *storage.RecordStore
	tracker *tracker.Tracker
}

// openApp loads config, collects the passphrase, opens the store, and
// loads the document. It exits the process on failure; every subcommand
// needs all of this before doing anything.
func openApp(ctx context.Context, configPath string) *app {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg = config.Default()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "repvault: failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))

	pass, err := cli.Passphrase()
	if err != nil {
		fmt.Fprintf(os.Stderr, "repvault: %v\n", err)
		os.Exit(1)
	}
	session, err := vault.NewSession(pass)
	if err != nil {
		fmt.Fprintf(os.Stderr, "repvault: %v\n", err)
		os.Exit(1)
	}

	records := storage.NewRecordStore(cfg.Data.StorePath())
	docs := storage.NewDocumentStore(records, session)
	tr := tracker.New(docs, log)
	if err := tr.Load(ctx); err != nil {
		if errors.Is(err, vault.ErrDecrypt) {
			fmt.Fprintln(os.Stderr, "repvault: wrong passphrase (or the vault file is damaged)")
		} else {
			log.Error("failed to open vault", "path", cfg.Data.StorePath(), "error", err)
		}
		os.Exit(1)
	}

	return &app{cfg: cfg, log: log, session: session, records: records, tracker: tr}
}

func (a *app) close() {
	if err := a.records.Close(); err != nil {
		a.log.Warn("closing store", "error", err)
	}
}

// fatal prints a one-line error and exits. Validation problems read
// better without slog's key=value dressing.
func fatal(err error) {
	fmt.Fprintf(os.Stderr, "repvault: %v\n", err)
	os.Exit(1)
}
