package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"quickswitch/internal/app"
	"quickswitch/internal/config"
	"quickswitch/internal/history"
	"quickswitch/internal/shellinit"
)

var version = "dev"

func main() {
	var (
		mode        = flag.String("mode", "normal", "startup mode: normal or history")
		printCwd    = flag.Bool("print-cwd", false, "print the working directory and exit")
		initShell   = flag.String("init-shell", "", "print the wrapper function for a shell (bash, zsh, fish)")
		configPath  = flag.String("config", "", "path to config file")
		verbose     = flag.Int("verbose", 0, "log verbosity (0=off, 1=info, 2+=debug)")
		logFile     = flag.String("log-file", "", "log destination (default: temp file when verbose)")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "quickswitch - interactive directory navigator\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\nOptions:\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nAdd 'eval \"$(quickswitch -init-shell bash)\"' to your shell rc,\nthen run 'qs' to browse and cd.\n")
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("quickswitch %s\n", version)
		return
	}

	if *initShell != "" {
		script, err := shellinit.Script(*initShell)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Print(script)
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "quickswitch: %v\n", err)
		os.Exit(1)
	}

	if *printCwd {
		fmt.Println(cwd)
		return
	}

	logCleanup, err := setupLogging(*verbose, *logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "quickswitch: %v\n", err)
		os.Exit(1)
	}
	defer logCleanup()

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "quickswitch: config: %v\n", err)
		os.Exit(1)
	}

	dataDir, err := config.DataDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "quickswitch: %v\n", err)
		os.Exit(1)
	}
	store := history.NewStore(dataDir, cfg.History)

	startMode := app.ModeNormal
	switch *mode {
	case "normal":
	case "history":
		startMode = app.ModeHistory
	default:
		fmt.Fprintf(os.Stderr, "quickswitch: unknown mode %q\n", *mode)
		os.Exit(1)
	}

	model := app.New(app.Options{
		Config:   cfg,
		Logger:   slog.Default(),
		Store:    store,
		StartDir: cwd,
		Mode:     startMode,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "quickswitch: %v\n", err)
		os.Exit(1)
	}

	m, ok := final.(*app.Model)
	if !ok {
		os.Exit(1)
	}
	if err := m.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "quickswitch: %v\n", err)
		os.Exit(1)
	}

	if result := m.Result(); result != "" {
		// stdout belongs to the TUI; the wrapper reads stderr.
		os.Setenv("QS_SELECT_PATH", result)
		fmt.Fprintln(os.Stderr, result)
	}
}

// setupLogging configures slog. Verbosity 0 discards everything; higher
// levels log to the given file or a temp file so the TTY stays clean.
func setupLogging(verbose int, logFile string) (func(), error) {
	if verbose <= 0 {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return func() {}, nil
	}

	level := slog.LevelInfo
	if verbose >= 2 {
		level = slog.LevelDebug
	}

	path := logFile
	if path == "" {
		path = filepath.Join(os.TempDir(), fmt.Sprintf("quickswitch-%d.log", os.Getpid()))
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	slog.Info("quickswitch starting", "version", version, "log", path)
	return func() { f.Close() }, nil
}
