package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/claude/repvault/internal/backup"
	"github.com/claude/repvault/internal/models"
	"github.com/claude/repvault/internal/stats"
	"github.com/claude/repvault/internal/tracker"
)

func cmdStreak(args []string) {
	fs := flag.NewFlagSet("streak", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	fs.Parse(args)

	ctx := context.Background()
	a := openApp(ctx, *configPath)
	defer a.close()

	settings := a.tracker.Settings()
	computed := a.tracker.Streak(models.Today())
	shown := stats.DisplayStreak(computed, settings.ManualStreakWeeks)

	fmt.Printf("current streak: %d week(s)\n", shown.Current)
	fmt.Printf("best streak:    %d week(s)\n", shown.Best)
	if settings.ManualStreakWeeks > 0 {
		fmt.Printf("(manual override active: computed current is %d)\n", computed.Current)
	}
}

func cmdStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	volume := fs.Bool("volume", false, "include per-exercise volume totals")
	fs.Parse(args)

	ctx := context.Background()
	a := openApp(ctx, *configPath)
	defer a.close()

	totals := a.tracker.Stats(models.Today())
	fmt.Printf("total workouts: %d\n", totals.Workouts)
	fmt.Printf("this month:     %d\n", totals.ThisMonth)

	if *volume {
		unit := a.tracker.Settings().WeightUnit
		fmt.Println()
		for _, v := range stats.VolumeByExercise(a.tracker.Workouts()) {
			fmt.Printf("%-28s %4d sets  %10.1f %s\n", v.Exercise, v.Sets, v.Volume, unit)
		}
	}
}

func cmdPRs(args []string) {
	fs := flag.NewFlagSet("prs", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	fs.Parse(args)

	ctx := context.Background()
	a := openApp(ctx, *configPath)
	defer a.close()

	records := a.tracker.PersonalRecords()
	if len(records) == 0 {
		fmt.Println("no weighted sets logged yet")
		return
	}
	unit := a.tracker.Settings().WeightUnit
	for _, pr := range records {
		fmt.Printf("%-28s %g %s x %d  (%s)\n", pr.Exercise, pr.Weight, unit, pr.Reps, pr.Date)
	}
}

func cmdSettings(args []string) {
	sub := "show"
	rest := args
	if len(args) > 0 && (args[0] == "show" || args[0] == "set") {
		sub, rest = args[0], args[1:]
	}

	switch sub {
	case "show":
		fs := flag.NewFlagSet("settings show", flag.ExitOnError)
		configPath := fs.String("config", "", "path to config file")
		fs.Parse(rest)

		ctx := context.Background()
		a := openApp(ctx, *configPath)
		defer a.close()

		s := a.tracker.Settings()
		weekStart := "sunday"
		if s.WeekStartMonday {
			weekStart = "monday"
		}
		fmt.Printf("week start:          %s\n", weekStart)
		fmt.Printf("auto-add exercises:  %v\n", s.AutoAddExercises)
		fmt.Printf("weight unit:         %s\n", s.WeightUnit)
		fmt.Printf("theme:               %s\n", s.Theme)
		fmt.Printf("manual streak weeks: %d\n", s.ManualStreakWeeks)

	case "set":
		fs := flag.NewFlagSet("settings set", flag.ExitOnError)
		configPath := fs.String("config", "", "path to config file")
		weekStart := fs.String("week-start", "", "week start day: sunday or monday")
		autoAdd := fs.Bool("auto-add", false, "auto-add unknown exercises to the library")
		unit := fs.String("unit", "", "weight unit: lbs or kg")
		theme := fs.String("theme", "", "interface theme")
		manualStreak := fs.Int("manual-streak", 0, "manual streak override in weeks (0 clears it)")
		fs.Parse(rest)

		var patch tracker.SettingsPatch
		var badWeekStart bool
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "week-start":
				switch *weekStart {
				case "monday":
					v := true
					patch.WeekStartMonday = &v
				case "sunday":
					v := false
					patch.WeekStartMonday = &v
				default:
					badWeekStart = true
				}
			case "auto-add":
				patch.AutoAddExercises = autoAdd
			case "unit":
				patch.WeightUnit = unit
			case "theme":
				patch.Theme = theme
			case "manual-streak":
				patch.ManualStreakWeeks = manualStreak
			}
		})
		if badWeekStart {
			fatal(fmt.Errorf("-week-start must be %q or %q", "sunday", "monday"))
		}

		ctx := context.Background()
		a := openApp(ctx, *configPath)
		defer a.close()
		if err := a.tracker.UpdateSettings(ctx, patch); err != nil {
			fatal(err)
		}
		fmt.Println("settings updated")

	default:
		fmt.Fprintf(os.Stderr, "repvault settings: unknown subcommand %q\n", sub)
		os.Exit(1)
	}
}

func cmdBackup(args []string) {
	fs := flag.NewFlagSet("backup", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	dir := fs.String("dir", "", "destination directory (default from config)")
	fs.Parse(args)

	ctx := context.Background()
	a := openApp(ctx, *configPath)
	defer a.close()

	dest := *dir
	if dest == "" {
		dest = a.cfg.Data.BackupDir
	}
	path, err := backup.Export(a.tracker.Snapshot(), a.session, dest, time.Now())
	if err != nil {
		fatal(err)
	}
	fmt.Printf("backup written to %s\n", path)
}

func cmdRestore(args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	fs.Parse(args)
	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: repvault restore [flags] <backup file>")
		os.Exit(1)
	}

	ctx := context.Background()
	a := openApp(ctx, *configPath)
	defer a.close()

	doc, err := backup.Restore(fs.Arg(0), a.session)
	if err != nil {
		fatal(err)
	}
	if err := a.tracker.ReplaceDocument(ctx, doc); err != nil {
		fatal(err)
	}
	fmt.Printf("restored %d workouts, %d exercises, %d measurements\n",
		len(doc.Workouts), len(doc.Exercises), len(doc.Measurements))
}
