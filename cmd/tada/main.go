package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/Makepad-fr/tada/internal/cli"
	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/ui"
)

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		ui.Fail(err.Error())
		os.Exit(1)
	}

	// Root flags (apply to every subcommand)
	dataFile := flag.String("data", cfg.DataFile, "path to the todo JSON file")
	theme := flag.String("theme", cfg.Theme, "output theme: classic, neon or mono")
	noColor := flag.Bool("no-color", os.Getenv("NO_COLOR") != "", "disable colored output")
	flag.Usage = cli.PrintHelp
	flag.Parse()

	cfg.DataFile = *dataFile
	cfg.Theme = *theme
	if err := cfg.Validate(); err != nil {
		ui.Fail("invalid flags: " + err.Error())
		os.Exit(2)
	}

	ui.SetTheme(cfg.Theme)
	if *noColor {
		ui.SetColorForcing(false, true)
	}
	logger := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	logger.Debug("config loaded", "data", cfg.DataFile, "theme", cfg.Theme, "history", cfg.HistoryLimit)

	// Hand the remaining args to the CLI runner.
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintHelp()
		os.Exit(2)
	}

	code := cli.Run(args, cli.Options{
		Config: cfg,
		Logger: logger,
	})
	if code != 0 {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(code)
}
