package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docidx"
	"github.com/fwojciec/docidx/fs"
	"github.com/fwojciec/docidx/goquery"
	dochttp "github.com/fwojciec/docidx/http"
	"github.com/fwojciec/docidx/json"
	docslog "github.com/fwojciec/docidx/slog"
	"github.com/fwojciec/docidx/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Config file path. Set before calling Run(); overridden by --config.
	ConfigPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	LibraryService docidx.LibraryService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:     defaultDBPath(),
		ConfigPath: os.Getenv("DOCIDX_CONFIG"),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docidx"),
		kong.Description("Build, store and search API documentation indexes."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docidx --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	configPath := m.ConfigPath
	if cli.Config != "" {
		configPath = cli.Config
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCIDX_CONFIG or --config to point at a valid YAML file\n")
		return err
	}
	if cli.Verbose {
		cfg.Log.Level = "debug"
	}
	logger, err := cfg.Log.NewLogger(stderr)
	if err != nil {
		return err
	}

	deps.Config = cfg
	deps.Logger = logger
	deps.Loader = fs.NewLoader(map[string]docidx.Decoder{
		".json": docidx.DecoderFunc(json.Decode),
		".js":   docidx.DecoderFunc(json.DecodeScript),
	})

	command := strings.Fields(kongCtx.Command())[0]

	// build works on files only
	if command == "build" {
		return kongCtx.Run(deps)
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCIDX_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	libraries, err := sqlite.NewLibraryService(m.DB)
	if err != nil {
		return err
	}
	m.LibraryService = docslog.NewLoggingLibraryService(libraries, logger)
	deps.Libraries = m.LibraryService

	if command == "add" {
		fetcher := dochttp.NewFetcher(
			dochttp.WithTimeout(cfg.HTTP.Timeout),
			dochttp.WithRateLimit(cfg.HTTP.RateLimit),
		)
		defer fetcher.Close()

		deps.Fetcher = dochttp.NewRetryFetcher(docslog.NewLoggingFetcher(fetcher, logger), logger)
		deps.Locator = goquery.NewScriptLocator()
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("DOCIDX_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "docidx.db"
	}
	dir := filepath.Join(home, ".docidx")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "docidx.db")
}
