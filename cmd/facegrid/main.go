// Package main is the entry point for the facegrid viewer.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dshills/facegrid/internal/app"
	"github.com/dshills/facegrid/internal/config"
	"github.com/dshills/facegrid/internal/logging"
	"github.com/dshills/facegrid/internal/renderer"
	"github.com/dshills/facegrid/internal/renderer/backend"
	"github.com/dshills/facegrid/internal/renderer/face"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type cliOptions struct {
	configPath    string
	theme         string
	engine        string
	language      string
	scripts       stringList
	watch         bool
	noLineNumbers bool
	noStatusLine  bool
	logLevel      string
	logFile       string
	dump          bool
	listThemes    bool
	file          string
}

func main() {
	os.Exit(run())
}

func run() int {
	cli := parseFlags()

	if cli.listThemes {
		for _, name := range face.BuiltinThemeNames() {
			fmt.Println(name)
		}
		return 0
	}

	cfg, err := loadConfig(cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	log, closeLog, err := newLogger(cfg, cli.dump)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log: %v\n", err)
		return 1
	}
	defer closeLog()

	opts := app.Options{
		Path:     cli.file,
		Language: cli.language,
		Config:   cfg,
		Logger:   log,
	}
	if cli.file == "" || cli.file == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: reading stdin: %v\n", err)
			return 1
		}
		opts.Path = ""
		opts.Lines = renderer.SplitLines(string(data))
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	if cli.dump {
		if err := application.Dump(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	snap := application.Metrics().Snapshot()
	log.Info("exiting: %d passes (avg %s), %d renders, %d draw calls",
		snap.Passes, snap.PassAvg, snap.Renders, snap.DrawCalls)
	return 0
}

// loadConfig loads the settings file and environment, then applies the
// flags that were given on the command line.
func loadConfig(cli cliOptions) (config.Config, error) {
	path := cli.configPath
	if path == "" {
		if p, err := config.DefaultPath(); err == nil {
			path = p
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "theme", "t":
			cfg.Theme = cli.theme
		case "engine", "e":
			cfg.Engine = cli.engine
		case "watch":
			cfg.WatchTheme = cli.watch
		case "no-line-numbers":
			cfg.LineNumbers = !cli.noLineNumbers
		case "no-status-line":
			cfg.StatusLine = !cli.noStatusLine
		case "log-level":
			cfg.LogLevel = cli.logLevel
		case "log-file":
			cfg.LogFile = cli.logFile
		}
	})
	cfg.Overlays = append(cfg.Overlays, cli.scripts...)
	return cfg, cfg.Validate()
}

// newLogger writes to the configured log file. Without one, dump mode logs
// to stderr and the terminal viewer discards logs so they cannot corrupt
// the screen.
func newLogger(cfg config.Config, dump bool) (*logging.Logger, func(), error) {
	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Level()

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		logCfg.Output = f
		return logging.New(logCfg), func() { _ = f.Close() }, nil
	}
	if dump {
		return logging.New(logCfg), func() {}, nil
	}
	return logging.Nop(), func() {}, nil
}

func parseFlags() cliOptions {
	var cli cliOptions
	var showVersion bool
	var showHelp bool

	flag.StringVar(&cli.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&cli.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&cli.theme, "theme", "", "Built-in theme name or theme file (.toml, .yaml)")
	flag.StringVar(&cli.theme, "t", "", "Theme (shorthand)")
	flag.StringVar(&cli.engine, "engine", "", "Highlighter engine (treesitter, lexer, rules)")
	flag.StringVar(&cli.engine, "e", "", "Highlighter engine (shorthand)")
	flag.StringVar(&cli.language, "lang", "", "Language name instead of detecting it from the file extension")
	flag.StringVar(&cli.language, "l", "", "Language name (shorthand)")
	flag.Var(&cli.scripts, "script", "Lua overlay highlighter; may be repeated")
	flag.Var(&cli.scripts, "s", "Lua overlay highlighter (shorthand)")
	flag.BoolVar(&cli.watch, "watch", false, "Reload the theme file when it changes")
	flag.BoolVar(&cli.noLineNumbers, "no-line-numbers", false, "Hide the line-number gutter")
	flag.BoolVar(&cli.noStatusLine, "no-status-line", false, "Hide the status bar")
	flag.StringVar(&cli.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&cli.logFile, "log-file", "", "Write logs to this file")
	flag.BoolVar(&cli.dump, "dump", false, "Print the highlighted segments instead of opening the viewer")
	flag.BoolVar(&cli.dump, "d", false, "Print the highlighted segments (shorthand)")
	flag.BoolVar(&cli.listThemes, "list-themes", false, "List the built-in themes")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "facegrid - syntax-highlighting file viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: facegrid [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n  %s\n", strings.Join(config.EnvVars(), "\n  "))
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  facegrid main.go                  View a file\n")
		fmt.Fprintf(os.Stderr, "  facegrid -t monokai -e lexer x.py View with another theme and engine\n")
		fmt.Fprintf(os.Stderr, "  facegrid -d main.go               Print segments to stdout\n")
		fmt.Fprintf(os.Stderr, "  cat x.rs | facegrid -l rust -d    Highlight stdin\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("facegrid %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Error: at most one file may be given\n")
		os.Exit(1)
	}
	cli.file = flag.Arg(0)

	return cli
}
