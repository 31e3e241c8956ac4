package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/claude/repvault/internal/cli"
	"github.com/claude/repvault/internal/models"
	"github.com/claude/repvault/internal/tracker"
)

func cmdLog(args []string) {
	fs := flag.NewFlagSet("log", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	dateStr := fs.String("date", "", "workout date YYYY-MM-DD (default today)")
	name := fs.String("name", "", "workout name")
	notes := fs.String("notes", "", "workout notes")
	var sets cli.SetSpecs
	fs.Var(&sets, "set", `logged set as "Name:reps@weight[:ss]" (repeatable)`)
	fs.Parse(args)

	date := models.Today()
	if *dateStr != "" {
		var err error
		date, err = models.ParseDate(*dateStr)
		if err != nil {
			fatal(err)
		}
	}

	ctx := context.Background()
	a := openApp(ctx, *configPath)
	defer a.close()

	id, err := a.tracker.AddWorkout(ctx, date, *name, *notes, sets)
	if err != nil {
		fatal(err)
	}
	fmt.Printf("logged workout %d on %s (%d sets)\n", id, date, len(sets))
}

func cmdWorkouts(args []string) {
	fs := flag.NewFlagSet("workouts", flag.ExitOnError)
	configPath := fs.String("config", "", "path to config file")
	deleteID := fs.Int64("delete", 0, "delete the workout with this id")
	fs.Parse(args)

	ctx := context.Background()
	a := openApp(ctx, *configPath)
	defer a.close()

	if *deleteID != 0 {
		if err := a.tracker.DeleteWorkout(ctx, *deleteID); err != nil {
			fatal(err)
		}
		fmt.Printf("deleted workout %d\n", *deleteID)
		return
	}

	workouts := a.tracker.Workouts()
	if len(workouts) == 0 {
		fmt.Println("no workouts logged")
		return
	}
	unit := a.tracker.Settings().WeightUnit
	for _, w := range workouts {
		title := w.Name
		if title == "" {
			title = "(unnamed)"
		}
		fmt.Printf("%s  #%d  %s\n", w.Date, w.ID, title)
		for _, s := range w.Exercises {
			marker := ""
			if s.IsSuperset {
				marker = "  [superset]"
			}
			fmt.Printf("    %-24s set %d: %d reps @ %s%s\n",
				s.ExerciseName, s.SetNumber, s.Reps, formatWeight(s.Weight, unit), marker)
		}
		if w.Notes != "" {
			fmt.Printf("    notes: %s\n", w.Notes)
		}
	}
}

func cmdExercise(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: repvault exercise <add|rename|toggle|delete|list> [flags]")
		os.Exit(1)
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "add":
		fs := flag.NewFlagSet("exercise add", flag.ExitOnError)
		configPath := fs.String("config", "", "path to config file")
		category := fs.String("category", "", "exercise category")
		subcategory := fs.String("subcategory", "", "exercise subcategory")
		video := fs.String("video", "", "form video link")
		fs.Parse(rest)
		name := fs.Arg(0)

		ctx := context.Background()
		a := openApp(ctx, *configPath)
		defer a.close()
		if err := a.tracker.AddExercise(ctx, name, *category, *subcategory, *video); err != nil {
			fatal(err)
		}
		fmt.Printf("added exercise %q\n", name)

	case "rename":
		fs := flag.NewFlagSet("exercise rename", flag.ExitOnError)
		configPath := fs.String("config", "", "path to config file")
		category := fs.String("category", "", "exercise category")
		subcategory := fs.String("subcategory", "", "exercise subcategory")
		video := fs.String("video", "", "form video link")
		fs.Parse(rest)
		if fs.NArg() < 2 {
			fmt.Fprintln(os.Stderr, "Usage: repvault exercise rename [flags] <old name> <new name>")
			os.Exit(1)
		}
		oldName, newName := fs.Arg(0), fs.Arg(1)

		ctx := context.Background()
		a := openApp(ctx, *configPath)
		defer a.close()
		if err := a.tracker.RenameExercise(ctx, oldName, newName, *category, *subcategory, *video); err != nil {
			fatal(err)
		}
		fmt.Printf("renamed %q to %q (history updated)\n", oldName, newName)

	case "toggle":
		fs := flag.NewFlagSet("exercise toggle", flag.ExitOnError)
		configPath := fs.String("config", "", "path to config file")
		fs.Parse(rest)

		ctx := context.Background()
		a := openApp(ctx, *configPath)
		defer a.close()
		if err := a.tracker.ToggleExerciseDisabled(ctx, fs.Arg(0)); err != nil {
			fatal(err)
		}
		fmt.Printf("toggled %q\n", fs.Arg(0))

	case "delete":
		fs := flag.NewFlagSet("exercise delete", flag.ExitOnError)
		configPath := fs.String("config", "", "path to config file")
		fs.Parse(rest)

		ctx := context.Background()
		a := openApp(ctx, *configPath)
		defer a.close()
		if err := a.tracker.DeleteExercise(ctx, fs.Arg(0)); err != nil {
			fatal(err)
		}
		fmt.Printf("deleted exercise %q (logged history kept)\n", fs.Arg(0))

	case "list":
		fs := flag.NewFlagSet("exercise list", flag.ExitOnError)
		configPath := fs.String("config", "", "path to config file")
		all := fs.Bool("all", false, "include disabled exercises")
		fs.Parse(rest)

		ctx := context.Background()
		a := openApp(ctx, *configPath)
		defer a.close()
		for _, e := range a.tracker.Exercises() {
			if e.Disabled && !*all {
				continue
			}
			state := ""
			if e.Disabled {
				state = "  [disabled]"
			}
			fmt.Printf("%-28s %s / %s%s\n", e.Name, e.Category, e.Subcategory, state)
		}

	default:
		fmt.Fprintf(os.Stderr, "repvault exercise: unknown subcommand %q\n", sub)
		os.Exit(1)
	}
}

func cmdMeasure(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: repvault measure <add|delete|list> [flags]")
		os.Exit(1)
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "add":
		fs := flag.NewFlagSet("measure add", flag.ExitOnError)
		configPath := fs.String("config", "", "path to config file")
		dateStr := fs.String("date", "", "measurement date YYYY-MM-DD (default today)")
		weight := fs.Float64("weight", 0, "body weight")
		bodyFat := fs.Float64("bodyfat", 0, "body fat percentage")
		chest := fs.Float64("chest", 0, "chest circumference")
		waist := fs.Float64("waist", 0, "waist circumference")
		hips := fs.Float64("hips", 0, "hip circumference")
		biceps := fs.Float64("biceps", 0, "biceps circumference")
		thighs := fs.Float64("thighs", 0, "thigh circumference")
		calves := fs.Float64("calves", 0, "calf circumference")
		fs.Parse(rest)

		// Only flags the user actually passed become recorded values;
		// an untouched zero default means "not measured".
		var values tracker.MeasurementValues
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "weight":
				values.Weight = weight
			case "bodyfat":
				values.BodyFat = bodyFat
			case "chest":
				values.Chest = chest
			case "waist":
				values.Waist = waist
			case "hips":
				values.Hips = hips
			case "biceps":
				values.Biceps = biceps
			case "thighs":
				values.Thighs = thighs
			case "calves":
				values.Calves = calves
			}
		})

		date := models.Today()
		if *dateStr != "" {
			var err error
			date, err = models.ParseDate(*dateStr)
			if err != nil {
				fatal(err)
			}
		}

		ctx := context.Background()
		a := openApp(ctx, *configPath)
		defer a.close()
		id, err := a.tracker.AddMeasurement(ctx, date, values)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("recorded measurement %d on %s\n", id, date)

	case "delete":
		fs := flag.NewFlagSet("measure delete", flag.ExitOnError)
		configPath := fs.String("config", "", "path to config file")
		fs.Parse(rest)
		id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
		if err != nil {
			fatal(fmt.Errorf("invalid measurement id %q", fs.Arg(0)))
		}

		ctx := context.Background()
		a := openApp(ctx, *configPath)
		defer a.close()
		if err := a.tracker.DeleteMeasurement(ctx, id); err != nil {
			fatal(err)
		}
		fmt.Printf("deleted measurement %d\n", id)

	case "list":
		fs := flag.NewFlagSet("measure list", flag.ExitOnError)
		configPath := fs.String("config", "", "path to config file")
		fs.Parse(rest)

		ctx := context.Background()
		a := openApp(ctx, *configPath)
		defer a.close()
		measurements := a.tracker.Measurements()
		if len(measurements) == 0 {
			fmt.Println("no measurements recorded")
			return
		}
		unit := a.tracker.Settings().WeightUnit
		for _, m := range measurements {
			fmt.Printf("%s  #%d ", m.Date, m.ID)
			printValue("weight", m.Weight, unit)
			printValue("bodyfat", m.BodyFat, "%")
			printValue("chest", m.Chest, "")
			printValue("waist", m.Waist, "")
			printValue("hips", m.Hips, "")
			printValue("biceps", m.Biceps, "")
			printValue("thighs", m.Thighs, "")
			printValue("calves", m.Calves, "")
			fmt.Println()
		}

	default:
		fmt.Fprintf(os.Stderr, "repvault measure: unknown subcommand %q\n", sub)
		os.Exit(1)
	}
}

func printValue(label string, v *float64, unit string) {
	if v == nil {
		return
	}
	if unit != "" && unit != "%" {
		fmt.Printf(" %s=%g %s", label, *v, unit)
		return
	}
	fmt.Printf(" %s=%g%s", label, *v, unit)
}

func formatWeight(w float64, unit string) string {
	if w == 0 {
		return "bodyweight"
	}
	return fmt.Sprintf("%g %s", w, unit)
}
