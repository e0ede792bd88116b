package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/miosa/window-table/app"
	"github.com/miosa/window-table/config"
	"github.com/miosa/window-table/logger"
	"github.com/miosa/window-table/source"
	"github.com/miosa/window-table/style"
	"github.com/miosa/window-table/ui/table"
)

var version = "dev"

func main() {
	profileFlag := flag.String("profile", "", "Named profile for settings isolation (~/.wtable/profiles/<name>)")
	noColor := flag.Bool("no-color", false, "Disable ANSI colors")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.BoolVar(showVersion, "V", false, "Show version and exit")
	sourceFlag := flag.String("source", "", "Data source: csv:, json:, parquet:, delta:, git:, procs, or an http(s) URL")
	variable := flag.Bool("variable", true, "Size rows individually from their content")
	rowHeight := flag.Int("row-height", 0, "Height of a row before it is measured")
	overscan := flag.Int("overscan", -1, "Rows rendered beyond each edge of the viewport")
	noHeader := flag.Bool("no-header", false, "Hide the header row")
	debounce := flag.Int("debounce", -1, "Resize debounce in milliseconds")
	static := flag.Bool("static", false, "Print the whole table to stdout and exit")
	logPath := flag.String("log", "", "Append debug logs to this file")
	flag.Parse()

	if *showVersion {
		fmt.Printf("wtable %s\n", version)
		os.Exit(0)
	}

	if *noColor {
		// Caller can set NO_COLOR=1 in the shell to disable colors.
		os.Setenv("NO_COLOR", "1")
	}

	home, _ := os.UserHomeDir()
	app.ProfileDir = filepath.Join(home, ".wtable")
	if *profileFlag != "" {
		app.ProfileDir = filepath.Join(home, ".wtable", "profiles", *profileFlag)
	}

	cfg := config.Load(app.ProfileDir)
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "variable" {
			cfg.VariableRows = *variable
		}
	})
	if *rowHeight > 0 {
		cfg.RowHeight = *rowHeight
	}
	if *overscan >= 0 {
		cfg.Overscan = *overscan
	}
	if *noHeader {
		cfg.DisableHeader = true
	}
	if *debounce >= 0 {
		cfg.DebounceMS = *debounce
	}

	spec := *sourceFlag
	if spec == "" && flag.NArg() > 0 {
		spec = flag.Arg(0)
	}
	if spec == "" {
		spec = cfg.Source
	}
	src, err := source.Open(spec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "wtable: %v\n", err)
		os.Exit(1)
	}

	log := logger.DefaultLogger
	if *logPath != "" {
		l, closer, err := logger.OpenFile(*logPath, logger.DebugLevel, logger.TypeText)
		if err != nil {
			fmt.Fprintf(os.Stderr, "wtable: %v\n", err)
			os.Exit(1)
		}
		defer closer.Close()
		log = l
	}

	// Auto-detect terminal background and set theme before any rendering.
	// A saved theme wins and is applied by app.New.
	if lipgloss.HasDarkBackground(os.Stdin, os.Stdout) {
		style.SetTheme("dark")
	} else {
		style.SetTheme("light")
	}

	if *static {
		if err := printStatic(src, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "wtable: %v\n", err)
			os.Exit(1)
		}
		return
	}

	p := tea.NewProgram(app.New(src, cfg, log))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "wtable: %v\n", err)
		os.Exit(1)
	}
}

func printStatic(src source.Source, cfg config.Config) error {
	ds, err := src.Load(context.Background())
	if err != nil {
		return err
	}
	if cfg.Theme != "" {
		style.SetTheme(cfg.Theme)
	}
	fmt.Println(table.RenderStatic(app.BuildColumns(ds, cfg), ds.Rows, 0))
	return nil
}
